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

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrBlocked is returned by Step, Resume and Run when an input instruction is
// reached with an empty input queue. It is a normal suspension: push input
// and call Step again.
var ErrBlocked = errors.New("blocked on input")

// FaultKind classifies a Fault.
type FaultKind int

// Fault kinds.
const (
	OpcodeFault    FaultKind = iota + 1 // unknown opcode or negative instruction word
	ModeFault                           // parameter mode digit is not 0, 1 or 2
	WriteModeFault                      // immediate mode used as a write target
	AddressFault                        // address < 0 or >= memory limit
	HaltedFault                         // Step called on a halted instance
)

var faultNames = [...]string{
	OpcodeFault:    "invalid opcode",
	ModeFault:      "invalid parameter mode",
	WriteModeFault: "immediate write target",
	AddressFault:   "address out of bounds",
	HaltedFault:    "instance halted",
}

func (k FaultKind) String() string {
	if k > 0 && int(k) < len(faultNames) {
		return faultNames[k]
	}
	return fmt.Sprintf("fault(%d)", int(k))
}

// Fault is a fatal execution error. PC and Word identify the faulting
// instruction.
type Fault struct {
	Kind  FaultKind
	PC    Cell
	Word  Cell
	Param int  // 1-based parameter index for mode faults
	Addr  Cell // offending address for AddressFault
}

func (f *Fault) Error() string {
	switch f.Kind {
	case ModeFault, WriteModeFault:
		return fmt.Sprintf("%v: parameter %d of %d @pc=%d", f.Kind, f.Param, f.Word, f.PC)
	case AddressFault:
		return fmt.Sprintf("%v: %d @pc=%d", f.Kind, f.Addr, f.PC)
	case HaltedFault:
		return fmt.Sprintf("%v @pc=%d", f.Kind, f.PC)
	}
	return fmt.Sprintf("%v %d @pc=%d", f.Kind, f.Word, f.PC)
}

// FaultOf returns the *Fault at the root of err, if any.
func FaultOf(err error) (*Fault, bool) {
	f, ok := errors.Cause(err).(*Fault)
	return f, ok
}
