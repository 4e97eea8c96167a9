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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

type instr struct {
	names []string
	nargs int
	dst   int // 1-based index of the write target, 0 if none
}

var opcodes = map[vm.Opcode]instr{
	vm.OpAdd:         {[]string{"add"}, 3, 3},
	vm.OpMul:         {[]string{"mul"}, 3, 3},
	vm.OpIn:          {[]string{"in", "input"}, 1, 1},
	vm.OpOut:         {[]string{"out", "output"}, 1, 0},
	vm.OpJumpIfTrue:  {[]string{"jt", "jnz"}, 2, 0},
	vm.OpJumpIfFalse: {[]string{"jf", "jz"}, 2, 0},
	vm.OpLessThan:    {[]string{"lt"}, 3, 3},
	vm.OpEquals:      {[]string{"eq"}, 3, 3},
	vm.OpAdjustBase:  {[]string{"arb", "rbo"}, 1, 0},
	vm.OpHalt:        {[]string{"hlt", "halt"}, 0, 0},
}

var opcodeIndex = func() map[string]vm.Opcode {
	m := make(map[string]vm.Opcode)
	for op, in := range opcodes {
		for _, n := range in.names {
			m[n] = op
		}
	}
	return m
}()

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// The name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (vm.Image, error) {
	p := newParser()
	if err := p.Parse(name, r); err != nil {
		return nil, err
	}
	return p.image(), nil
}

// decode returns the instruction at pc if the word at that address is an
// instruction the assembler could have produced.
func decode(img vm.Image, pc int) (vm.Opcode, [3]vm.Mode, bool) {
	word := img[pc]
	op, modes := vm.Decode(word)
	in, ok := opcodes[op]
	if !ok || word < 0 || pc+in.nargs >= len(img) {
		return op, modes, false
	}
	if vm.Encode(op, modes[:in.nargs]...) != word {
		return op, modes, false
	}
	for k := 0; k < in.nargs; k++ {
		if modes[k] > vm.Relative || (k+1 == in.dst && modes[k] == vm.Immediate) {
			return op, modes, false
		}
	}
	return op, modes, true
}

// Disassemble writes a disassembly of the cells in the given image at position
// pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Words that do not decode to a valid instruction, or whose parameters run
// past the end of the image, are written as a .dat directive.
func Disassemble(img vm.Image, pc int, w io.Writer) (next int, err error) {
	ew := ici.NewErrWriter(w)
	op, modes, ok := decode(img, pc)
	if !ok {
		ew.WriteString(".dat ")
		ew.Int(int64(img[pc]))
		return pc + 1, ew.Err
	}
	ew.WriteString(opcodes[op].names[0])
	for k := 0; k < opcodes[op].nargs; k++ {
		if k == 0 {
			ew.WriteByte(' ')
		} else {
			ew.WriteString(", ")
		}
		switch modes[k] {
		case vm.Position:
			ew.WriteByte('@')
		case vm.Relative:
			ew.WriteByte('~')
		}
		ew.WriteString(strconv.FormatInt(int64(img[pc+k+1]), 10))
	}
	return pc + 1 + opcodes[op].nargs, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given image to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (img[0]). It will return any write error.
func DisassembleAll(img vm.Image, base int, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	for pc := 0; pc < len(img); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(img, pc, ew)
		ew.WriteByte('\n')
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
