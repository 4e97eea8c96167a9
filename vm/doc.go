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

// Package vm implements the Intcode virtual machine.
//
// An Intcode program is a sequence of signed integers. The instruction word at
// the program counter encodes the opcode in its two lowest decimal digits and
// the addressing mode of each parameter in the following digits:
//
//	ABCDE
//	 1002
//
//	DE - two-digit opcode,      02 == opcode 2
//	 C - mode of 1st parameter,  0 == position mode
//	 B - mode of 2nd parameter,  1 == immediate mode
//	 A - mode of 3rd parameter,  0 == position mode (omitted leading zero)
//
// Supported opcodes:
//
//	opcode	asm	params	description
//	------	---	------	-----------------------------------------------------
//	1	add	a b c	c = a + b
//	2	mul	a b c	c = a * b
//	3	in	a	a = next queued input value
//	4	out	a	emit a on the output channel
//	5	jt	a b	if a != 0, jump to b
//	6	jf	a b	if a == 0, jump to b
//	7	lt	a b c	c = 1 if a < b, else 0
//	8	eq	a b c	c = 1 if a == b, else 0
//	9	arb	a	relative base += a
//	99	hlt		halt
//
// Parameter modes are Position (0), Immediate (1) and Relative (2). A
// parameter written to by an instruction must not use Immediate mode.
//
// An Instance never blocks. When an input instruction finds the input queue
// empty, Step and Run return ErrBlocked and leave the instance untouched: the
// caller is expected to push more input with PushInput and resume execution.
// This is what the network package does to wire several instances together.
//
// Malformed programs are reported as a *Fault that records the faulting
// instruction's address and word. Memory grows on demand up to a configurable
// limit (see MemoryLimit); any access outside of [0, limit) is a fault.
package vm
