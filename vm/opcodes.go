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

import "strconv"

// Opcode is the operation encoded in the two lowest decimal digits of an
// instruction word.
type Opcode Cell

// Intcode Virtual Machine Opcodes.
const (
	OpAdd Opcode = iota + 1
	OpMul
	OpIn
	OpOut
	OpJumpIfTrue
	OpJumpIfFalse
	OpLessThan
	OpEquals
	OpAdjustBase
	OpHalt Opcode = 99
)

var opcodes = [...]string{
	OpAdd:         "add",
	OpMul:         "mul",
	OpIn:          "in",
	OpOut:         "out",
	OpJumpIfTrue:  "jt",
	OpJumpIfFalse: "jf",
	OpLessThan:    "lt",
	OpEquals:      "eq",
	OpAdjustBase:  "arb",
}

// String returns the assembler mnemonic for op.
func (op Opcode) String() string {
	if op == OpHalt {
		return "hlt"
	}
	if op > 0 && int(op) < len(opcodes) {
		return opcodes[op]
	}
	return "op(" + strconv.FormatInt(int64(op), 10) + ")"
}

// Mode is a parameter addressing mode.
type Mode uint8

// Parameter modes.
const (
	Position Mode = iota
	Immediate
	Relative
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

func emod(a, b Cell) Cell {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// Decode splits an instruction word into its opcode and the modes of its
// three parameters. Decode does not validate either of them.
func Decode(word Cell) (op Opcode, modes [3]Mode) {
	op = Opcode(emod(word, 100))
	w := word / 100
	for k := range modes {
		modes[k] = Mode(emod(w, 10))
		w /= 10
	}
	return op, modes
}

// Encode returns the instruction word for op with the given parameter modes.
// It is the inverse of Decode for valid opcodes and modes.
func Encode(op Opcode, modes ...Mode) Cell {
	w := Cell(op)
	m := Cell(100)
	for _, mode := range modes {
		w += Cell(mode) * m
		m *= 10
	}
	return w
}
