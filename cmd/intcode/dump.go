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

package main

import (
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

var dumpConfig = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}

// dumpFault writes debug information about err to w: the fault or node error
// details, and the state of the failing instance if known.
func dumpFault(w io.Writer, i *vm.Instance, err error) error {
	ew := ici.NewErrWriter(w)
	var ne *network.NodeError
	if errors.As(err, &ne) {
		dumpConfig.Fdump(ew, ne)
	} else if f, ok := vm.FaultOf(err); ok {
		dumpConfig.Fdump(ew, f)
	}
	if i == nil {
		return ew.Err
	}
	ew.WriteString("instance:\n")
	i.Dump(ew)
	if pc := int(i.PC); pc >= 0 && pc < i.Mem.Len() {
		ew.WriteString("at pc: ")
		asm.Disassemble(i.Mem.Slice(), pc, ew)
		ew.WriteByte('\n')
	}
	return ew.Err
}
