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

package vm_test

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/db47h/intcode/vm"
)

type C []vm.Cell

func setup(t *testing.T, code string, opts ...vm.Option) *vm.Instance {
	t.Helper()
	img, err := vm.ParseString(code)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	i, err := vm.New(img, opts...)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return i
}

func run(t *testing.T, code string, opts ...vm.Option) *vm.Instance {
	t.Helper()
	i := setup(t, code, opts...)
	if err := i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	if !i.Halted() {
		t.Fatal("Run returned without error but the instance has not halted")
	}
	return i
}

func load(t *testing.T, i *vm.Instance, addr vm.Cell) vm.Cell {
	t.Helper()
	v, err := i.Mem.Load(addr)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return v
}

func assertOutput(t *testing.T, name string, i *vm.Instance, out C) {
	t.Helper()
	got := i.Outputs()
	if len(got) != len(out) || (len(out) > 0 && !reflect.DeepEqual(C(got), out)) {
		t.Errorf("%s: expected output %v, got %v", name, out, got)
	}
}

var memTests = [...]struct {
	name string
	code string
	addr vm.Cell
	v    vm.Cell
}{
	{"add+mul", "1,9,10,3,2,3,11,0,99,30,40,50", 0, 3500},
	{"add", "1,0,0,0,99", 0, 2},
	{"mul", "2,3,0,3,99", 0, 2},
	{"mul/result", "2,3,0,3,99", 3, 6},
	{"mul/beyond", "2,4,4,5,99,0", 0, 2},
	{"mul/beyond/result", "2,4,4,5,99,0", 5, 9801},
	{"self-modifying", "1,1,1,4,99,5,6,0,99", 0, 30},
	{"immediate", "1002,4,3,4,33", 4, 99},
	{"negative", "1101,100,-1,4,0", 4, 99},
}

func TestRun_memory(t *testing.T) {
	for _, test := range memTests {
		i := run(t, test.code)
		if v := load(t, i, test.addr); v != test.v {
			t.Errorf("%s: mem[%d] = %d, expected %d", test.name, test.addr, v, test.v)
		}
	}
}

var ioTests = [...]struct {
	name string
	code string
	in   C
	out  C
}{
	{"echo", "3,0,4,0,99", C{42}, C{42}},
	{"eq8/position", "3,9,8,9,10,9,4,9,99,-1,8", C{8}, C{1}},
	{"eq8/position/false", "3,9,8,9,10,9,4,9,99,-1,8", C{7}, C{0}},
	{"lt8/position", "3,9,7,9,10,9,4,9,99,-1,8", C{7}, C{1}},
	{"lt8/position/false", "3,9,7,9,10,9,4,9,99,-1,8", C{8}, C{0}},
	{"eq8/immediate", "3,3,1108,-1,8,3,4,3,99", C{8}, C{1}},
	{"eq8/immediate/false", "3,3,1108,-1,8,3,4,3,99", C{9}, C{0}},
	{"lt8/immediate", "3,3,1107,-1,8,3,4,3,99", C{-5}, C{1}},
	{"lt8/immediate/false", "3,3,1107,-1,8,3,4,3,99", C{8}, C{0}},
	{"jump/position/0", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", C{0}, C{0}},
	{"jump/position/1", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", C{5}, C{1}},
	{"jump/immediate/0", "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", C{0}, C{0}},
	{"jump/immediate/1", "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", C{-3}, C{1}},
	{"cmp8/below", cmp8, C{7}, C{999}},
	{"cmp8/equal", cmp8, C{8}, C{1000}},
	{"cmp8/above", cmp8, C{9}, C{1001}},
	{"quine", quine, nil, C{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}},
	{"large/literal", "104,1125899906842624,99", nil, C{1125899906842624}},
	{"large/product", "1102,34915192,34915192,7,4,7,99,0", nil, C{1219070632396864}},
}

const (
	cmp8 = "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
		"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
		"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"
	quine = "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"
)

func TestRun_io(t *testing.T) {
	for _, test := range ioTests {
		i := run(t, test.code, vm.Input(test.in...))
		assertOutput(t, test.name, i, test.out)
	}
}

func TestRun_largeProduct(t *testing.T) {
	i := run(t, "1102,34915192,34915192,7,4,7,99,0")
	v, ok := i.LastOutput()
	if !ok {
		t.Fatal("no output")
	}
	if s := strconv.FormatInt(int64(v), 10); len(s) != 16 {
		t.Errorf("expected a 16 digit number, got %s", s)
	}
}

// immediate mode comparisons must hold for any pair of operands.
func TestRun_compare(t *testing.T) {
	pairs := [...][2]vm.Cell{
		{0, 0}, {1, 0}, {0, 1}, {-1, 1}, {1, -1}, {-7, -7}, {42, 42},
		{1 << 40, 1<<40 + 1}, {-(1 << 50), 1 << 50},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		for _, op := range []vm.Opcode{vm.OpEquals, vm.OpLessThan} {
			w := vm.Encode(op, vm.Immediate, vm.Immediate, vm.Position)
			img := vm.Image{w, a, b, 7, 4, 7, 99, 0}
			i, err := vm.New(img)
			if err != nil {
				t.Fatal(err)
			}
			if err = i.Run(); err != nil {
				t.Fatalf("%+v", err)
			}
			var want vm.Cell
			if (op == vm.OpEquals && a == b) || (op == vm.OpLessThan && a < b) {
				want = 1
			}
			if v, _ := i.LastOutput(); v != want {
				t.Errorf("%v %d %d: expected %d, got %d", op, a, b, want, v)
			}
		}
	}
}

func TestRun_relative(t *testing.T) {
	// arb 50; add #7 #8 ~3; out ~3; hlt
	i := run(t, "109,50,21101,7,8,3,204,3,99")
	if rb := i.RelativeBase(); rb != 50 {
		t.Errorf("expected relative base 50, got %d", rb)
	}
	if v := load(t, i, 53); v != 15 {
		t.Errorf("expected mem[53] = 15, got %d", v)
	}
	assertOutput(t, "relative", i, C{15})

	// negative offsets and a relative input
	i = run(t, "109,20,109,-5,203,-3,204,-3,99", vm.Input(-12))
	if rb := i.RelativeBase(); rb != 15 {
		t.Errorf("expected relative base 15, got %d", rb)
	}
	if v := load(t, i, 12); v != -12 {
		t.Errorf("expected mem[12] = -12, got %d", v)
	}
	assertOutput(t, "relative/negative", i, C{-12})
}

func TestRun_deterministic(t *testing.T) {
	a := run(t, quine)
	b := run(t, quine)
	if !reflect.DeepEqual(a.Outputs(), b.Outputs()) {
		t.Errorf("outputs differ: %v != %v", a.Outputs(), b.Outputs())
	}
	if !reflect.DeepEqual(a.Mem.Slice(), b.Mem.Slice()) {
		t.Error("final memory differs")
	}
	if a.InstructionCount() != b.InstructionCount() {
		t.Errorf("instruction count differs: %d != %d", a.InstructionCount(), b.InstructionCount())
	}
}

func TestNew_image(t *testing.T) {
	img := vm.Image{1, 0, 0, 0, 99}
	i, err := vm.New(img)
	if err != nil {
		t.Fatal(err)
	}
	if err = i.Run(); err != nil {
		t.Fatal(err)
	}
	if img[0] != 1 {
		t.Error("running an instance modified its image")
	}
}

func TestNew_patch(t *testing.T) {
	i := run(t, "1,0,0,0,99", vm.Patch(1, 4), vm.Patch(2, 4))
	if v := load(t, i, 0); v != 198 {
		t.Errorf("expected mem[0] = 198, got %d", v)
	}
	if _, err := vm.New(vm.Image{99}, vm.Patch(-1, 0)); err == nil {
		t.Error("expected patch at a negative address to fail")
	}
}

func TestNew_memoryLimit(t *testing.T) {
	if _, err := vm.New(vm.Image{1, 0, 0, 0, 99}, vm.MemoryLimit(4)); err == nil {
		t.Error("expected an error for a memory limit below the image size")
	}
	if _, err := vm.New(vm.Image{99}, vm.MemoryLimit(0)); err == nil {
		t.Error("expected an error for a zero memory limit")
	}
	i := setup(t, "99", vm.MemoryLimit(8))
	if l := i.Mem.Limit(); l != 8 {
		t.Errorf("expected limit 8, got %d", l)
	}
}
