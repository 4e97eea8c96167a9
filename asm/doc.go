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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm	alias	operands	description
//	------	---	-----	--------	------------------------------------------
//	1	add		a, b, dst	dst = a + b
//	2	mul		a, b, dst	dst = a * b
//	3	in	input	dst		dst = next input value
//	4	out	output	a		output a
//	5	jt	jnz	a, to		jump to "to" if a != 0
//	6	jf	jz	a, to		jump to "to" if a == 0
//	7	lt		a, b, dst	dst = 1 if a < b, else 0
//	8	eq		a, b, dst	dst = 1 if a == b, else 0
//	9	arb	rbo	a		add a to the relative base
//	99	hlt	halt			halt
//
// Operands:
//
// The parameter mode of an operand is given by its prefix:
//
//	42	immediate: the value 42
//	@42	position: the value at address 42
//	~42	relative: the value at address relative base + 42
//
// Operands may be separated by commas. Write targets (dst) cannot be
// immediate. Any operand can be a label, in which case the label address is
// used as the operand value:
//
//	in @count	( store input at the address of label count )
//	jt 1, loop	( unconditional jump to loop )
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	( this is a
//	  rather long
//	  multiline comment )
//
// Literals and label/const identifiers:
//
// Input is split at white space into tokens. If a token can be converted to a
// Go integer (see strconv.ParseInt), it is converted to an integer literal. A
// Go character literal between single quotes is converted to the corresponding
// integer. A defined constant is replaced by its value and can be used
// anywhere an integer literal is expected. Any other operand is a label.
//
// Where the parser is expecting an instruction, integer literals, character
// literals and constants are compiled as data:
//
//	.dat 42
//	42	( same as above )
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:). Forward references
// are ok:
//
//	:loop	in @x
//		out @x
//		jt 1, loop
//	:x	0
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named constant
// or character literal.
//
//	.org <value>
//
// places the next instruction at the address specified by the given integer
// literal or named constant. Skipped cells are zero.
//
//	.dat <value>
//
// compiles the specified integer value, named constant, character literal or
// label address as-is.
package asm
