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

package asm_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
)

// Adds two numbers read from input.
func ExampleAssemble() {
	code := `
		( a constant definition. Does not generate any code on its own )
		.equ ZERO 0

:start	in @a
		in @b
		add @a, @b, @sum
		out @sum
		hlt

:a		.dat ZERO
:b		ZERO		( implicit data )
:sum	0
`

	img, err := asm.Assemble("raw_string", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(img)

	i, err := vm.New(img, vm.Input(3, 4))
	if err != nil {
		fmt.Println(err)
		return
	}
	if err = i.Run(); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(i.Outputs())

	// Output:
	// 3,11,3,12,1,11,12,13,4,13,99,0,0,0
	// [7]
}

func ExampleDisassembleAll() {
	img, _ := vm.ParseString("109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99")
	asm.DisassembleAll(img, 0, os.Stdout)

	// Output:
	//          0	arb 1
	//          2	out ~-1
	//          4	add @100, 1, @100
	//          8	eq @100, 16, @101
	//         12	jf @101, 0
	//         15	hlt
}
