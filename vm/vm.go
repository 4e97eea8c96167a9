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
	"io"

	"github.com/db47h/intcode/internal/ici"
	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

// Cell is the raw type stored in a memory location.
type Cell int64

type patch struct {
	addr, v Cell
}

// Instance represents an Intcode VM instance.
type Instance struct {
	Channel
	PC       Cell    // Program Counter (aka. Instruction Pointer)
	Mem      *Memory // Memory
	rb       Cell
	halted   bool
	insCount int64
	limit    int
	patches  []patch
	log      log15.Logger
	trace    bool
}

// Option interface
type Option func(*Instance) error

// Input queues the given values as input.
func Input(v ...Cell) Option {
	return func(i *Instance) error { i.PushInput(v...); return nil }
}

// MemoryLimit sets the maximum number of memory cells that the program may
// address. The default is DefaultMemoryLimit.
func MemoryLimit(n int) Option {
	return func(i *Instance) error {
		if n <= 0 {
			return errors.Errorf("invalid memory limit %d", n)
		}
		i.limit = n
		if i.Mem != nil {
			return i.Mem.setLimit(n)
		}
		return nil
	}
}

// Patch stores v at address addr before the program starts. This is how
// programs are usually parameterized, for example by setting a noun and verb
// at addresses 1 and 2.
func Patch(addr, v Cell) Option {
	return func(i *Instance) error {
		if i.Mem != nil {
			return errors.Wrap(i.Mem.Store(addr, v), "patch failed")
		}
		i.patches = append(i.patches, patch{addr, v})
		return nil
	}
}

// Logger sets the logger used to trace every executed instruction at debug
// level. Tracing is disabled by default.
func Logger(l log15.Logger) Option {
	return func(i *Instance) error {
		i.log = l
		i.trace = l != nil
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode VM instance running a copy of the given image.
//
// Options will be set by calling SetOptions.
func New(img Image, opts ...Option) (*Instance, error) {
	i := &Instance{
		limit: DefaultMemoryLimit,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	mem, err := newMemory(img, i.limit)
	if err != nil {
		return nil, err
	}
	i.Mem = mem
	for _, p := range i.patches {
		if err = mem.Store(p.addr, p.v); err != nil {
			return nil, errors.Wrap(err, "patch failed")
		}
	}
	i.patches = nil
	if i.log == nil {
		i.log = log15.New()
		i.log.SetHandler(log15.DiscardHandler())
	}
	return i, nil
}

// RelativeBase returns the current value of the relative base register.
func (i *Instance) RelativeBase() Cell {
	return i.rb
}

// Halted returns true once the instance has executed a halt instruction.
func (i *Instance) Halted() bool {
	return i.halted
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Dump dumps the registers, the I/O queues and the memory of the VM to the
// specified io.Writer.
func (i *Instance) Dump(w io.Writer) error {
	ew := ici.NewErrWriter(w)
	fmt.Fprintf(ew, "pc=%d rb=%d halted=%t ins=%d\n", i.PC, i.rb, i.halted, i.insCount)
	ew.WriteString("in:  ")
	Image(i.in).Save(ew)
	ew.WriteString("out: ")
	Image(i.out).Save(ew)
	ew.WriteString("mem: ")
	return i.Mem.Slice().Save(ew)
}
