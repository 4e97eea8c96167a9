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
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
)

func TestChannel(t *testing.T) {
	var c vm.Channel
	if _, ok := c.LastOutput(); ok {
		t.Error("LastOutput on an empty channel")
	}
	if _, ok := c.TakeOutput(); ok {
		t.Error("TakeOutput on an empty channel")
	}
	c.PushInput(1, 2)
	c.PushInput(3)
	if c.Pending() != 3 {
		t.Errorf("expected 3 pending values, got %d", c.Pending())
	}

	// echo three values
	i := setup(t, "3,0,4,0,3,0,4,0,3,0,4,0,99", vm.Input(5, 6))
	i.PushInput(7)
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	if v, ok := i.LastOutput(); !ok || v != 7 {
		t.Errorf("LastOutput = %d, %v", v, ok)
	}
	if i.Unread() != 3 {
		t.Errorf("expected 3 unread values, got %d", i.Unread())
	}
	for _, want := range (C{5, 6, 7}) {
		v, ok := i.TakeOutput()
		if !ok || v != want {
			t.Errorf("TakeOutput = %d, %v, expected %d", v, ok, want)
		}
	}
	if _, ok := i.TakeOutput(); ok || i.Unread() != 0 {
		t.Error("TakeOutput returned more values than produced")
	}
	assertOutput(t, "channel", i, C{5, 6, 7})
}

func TestParse(t *testing.T) {
	tests := [...]struct {
		src string
		img vm.Image
		err bool
	}{
		{"1,0,0,0,99\n", vm.Image{1, 0, 0, 0, 99}, false},
		{"  104, -1125899906842624 ,99 ", vm.Image{104, -1125899906842624, 99}, false},
		{"1,,2,\n\n", vm.Image{1, 2}, false},
		{"\n1,\r\n2\r\n", vm.Image{1, 2}, false},
		{"", nil, false},
		{"1,x,3", nil, true},
		{"1 2", nil, true},
		{"99999999999999999999", nil, true},
	}
	for _, test := range tests {
		img, err := vm.ParseString(test.src)
		if test.err {
			if err == nil {
				t.Errorf("%q: expected an error", test.src)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", test.src, err)
			continue
		}
		if len(img) != len(test.img) || (len(img) > 0 && !reflect.DeepEqual(img, test.img)) {
			t.Errorf("%q: expected %v, got %v", test.src, test.img, img)
		}
	}
}

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "program.txt")
	img := vm.Image{3, 0, 4, 0, -99, 99}
	var b bytes.Buffer
	if err := img.Save(&b); err != nil {
		t.Fatal(err)
	}
	if b.String() != "3,0,4,0,-99,99\n" {
		t.Fatalf("unexpected Save output %q", b.String())
	}
	if err := os.WriteFile(fn, b.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	loaded, err := vm.Load(fn)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(img, loaded) {
		t.Fatalf("expected %v, got %v", img, loaded)
	}
	if _, err = vm.Load(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected an error loading a missing file")
	}
}

func TestInstance_Dump(t *testing.T) {
	i := setup(t, "3,0,4,0,99", vm.Input(8, 9))
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := i.Dump(&b); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	exp := []string{
		"pc=4 rb=0 halted=true ins=3",
		"in:  9",
		"out: 8",
		"mem: 8,0,4,0,99",
	}
	if !reflect.DeepEqual(lines, exp) {
		t.Errorf("expected:\n%s\ngot:\n%s", strings.Join(exp, "\n"), b.String())
	}
}
