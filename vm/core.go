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

import "math"

// param returns the raw value of the k-th parameter (1-based) of the current
// instruction.
func (i *Instance) param(k int) (Cell, error) {
	return i.Mem.Load(i.PC + Cell(k))
}

// read resolves the k-th parameter as a value.
func (i *Instance) read(k int, m Mode) (Cell, error) {
	v, err := i.param(k)
	if err != nil {
		return 0, err
	}
	switch m {
	case Position:
		return i.Mem.Load(v)
	case Immediate:
		return v, nil
	case Relative:
		a, err := i.rel(v)
		if err != nil {
			return 0, err
		}
		return i.Mem.Load(a)
	}
	return 0, &Fault{Kind: ModeFault, Param: k}
}

// addr resolves the k-th parameter as a write target. The returned address is
// guaranteed to be within the memory limit.
func (i *Instance) addr(k int, m Mode) (Cell, error) {
	v, err := i.param(k)
	if err != nil {
		return 0, err
	}
	switch m {
	case Position:
	case Relative:
		if v, err = i.rel(v); err != nil {
			return 0, err
		}
	case Immediate:
		return 0, &Fault{Kind: WriteModeFault, Param: k}
	default:
		return 0, &Fault{Kind: ModeFault, Param: k}
	}
	if err = i.Mem.check(v); err != nil {
		return 0, err
	}
	return v, nil
}

// rel returns rb+off. A sum that does not fit in a Cell is an AddressFault
// whose Addr is clamped to the bound it crossed.
func (i *Instance) rel(off Cell) (Cell, error) {
	a := i.rb + off
	if (a > i.rb) != (off > 0) {
		clamp := Cell(math.MaxInt64)
		if off < 0 {
			clamp = math.MinInt64
		}
		return 0, &Fault{Kind: AddressFault, Addr: clamp}
	}
	return a, nil
}

// operands resolves the two input parameters and the destination of
// three-parameter instructions.
func (i *Instance) operands(modes [3]Mode) (a, b, dst Cell, err error) {
	if a, err = i.read(1, modes[0]); err != nil {
		return
	}
	if b, err = i.read(2, modes[1]); err != nil {
		return
	}
	dst, err = i.addr(3, modes[2])
	return
}

// fault fills in the location of a *Fault returned by the memory or operand
// resolution code.
func (i *Instance) fault(err error, word Cell) error {
	if f, ok := err.(*Fault); ok {
		f.PC, f.Word = i.PC, word
	}
	return err
}

func b2c(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

// Step executes the instruction at PC and returns its opcode.
//
// If the instruction is an input and the input queue is empty, Step returns
// OpIn and ErrBlocked, leaving the memory and PC untouched.
//
// All parameters are resolved before anything is written to memory: an
// instruction that faults has no side effect. Once the instance has halted,
// Step returns a HaltedFault.
func (i *Instance) Step() (Opcode, error) {
	word, err := i.Mem.Load(i.PC)
	if err != nil {
		return 0, i.fault(err, 0)
	}
	op, modes := Decode(word)
	if i.halted {
		return op, &Fault{Kind: HaltedFault, PC: i.PC, Word: word}
	}
	if i.trace {
		i.log.Debug("step", "pc", i.PC, "word", word, "op", op, "rb", i.rb)
	}
	if word < 0 {
		return op, &Fault{Kind: OpcodeFault, PC: i.PC, Word: word}
	}

	switch op {
	case OpAdd:
		a, b, dst, err := i.operands(modes)
		if err != nil {
			return op, i.fault(err, word)
		}
		i.Mem.Store(dst, a+b)
		i.PC += 4
	case OpMul:
		a, b, dst, err := i.operands(modes)
		if err != nil {
			return op, i.fault(err, word)
		}
		i.Mem.Store(dst, a*b)
		i.PC += 4
	case OpIn:
		dst, err := i.addr(1, modes[0])
		if err != nil {
			return op, i.fault(err, word)
		}
		v, ok := i.peek()
		if !ok {
			return op, ErrBlocked
		}
		i.pop()
		i.Mem.Store(dst, v)
		i.PC += 2
	case OpOut:
		v, err := i.read(1, modes[0])
		if err != nil {
			return op, i.fault(err, word)
		}
		i.emit(v)
		i.PC += 2
	case OpJumpIfTrue:
		v, err := i.read(1, modes[0])
		if err != nil {
			return op, i.fault(err, word)
		}
		if v != 0 {
			to, err := i.read(2, modes[1])
			if err != nil {
				return op, i.fault(err, word)
			}
			i.PC = to
		} else {
			i.PC += 3
		}
	case OpJumpIfFalse:
		v, err := i.read(1, modes[0])
		if err != nil {
			return op, i.fault(err, word)
		}
		if v == 0 {
			to, err := i.read(2, modes[1])
			if err != nil {
				return op, i.fault(err, word)
			}
			i.PC = to
		} else {
			i.PC += 3
		}
	case OpLessThan:
		a, b, dst, err := i.operands(modes)
		if err != nil {
			return op, i.fault(err, word)
		}
		i.Mem.Store(dst, b2c(a < b))
		i.PC += 4
	case OpEquals:
		a, b, dst, err := i.operands(modes)
		if err != nil {
			return op, i.fault(err, word)
		}
		i.Mem.Store(dst, b2c(a == b))
		i.PC += 4
	case OpAdjustBase:
		v, err := i.read(1, modes[0])
		if err != nil {
			return op, i.fault(err, word)
		}
		rb, err := i.rel(v)
		if err != nil {
			return op, i.fault(err, word)
		}
		i.rb = rb
		i.PC += 2
	case OpHalt:
		i.halted = true
	default:
		return op, &Fault{Kind: OpcodeFault, PC: i.PC, Word: word}
	}
	i.insCount++
	return op, nil
}
