// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import "github.com/pkg/errors"

// Resume executes instructions until the program outputs a value, halts or
// blocks on input, and returns the opcode of the last instruction.
//
// Errors are returned as is: either ErrBlocked, or a *Fault.
func (i *Instance) Resume() (Opcode, error) {
	for {
		op, err := i.Step()
		if err != nil || op == OpOut || op == OpHalt {
			return op, err
		}
	}
}

// Run starts execution of the VM and runs it until it halts.
//
// If the program needs more input than available, Run returns ErrBlocked.
// This is a normal exit condition for programs that are fed input
// interactively: push some more input and call Run again.
//
// If a fault occurs, the PC will point to the instruction that triggered it
// and the returned error's cause will be a *Fault.
func (i *Instance) Run() error {
	for {
		op, err := i.Step()
		if err != nil {
			if err == ErrBlocked {
				return err
			}
			return errors.WithStack(err)
		}
		if op == OpHalt {
			return nil
		}
	}
}
