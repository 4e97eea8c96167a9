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

package network_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

type C []vm.Cell

func parse(t *testing.T, code string) vm.Image {
	t.Helper()
	img, err := vm.ParseString(code)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return img
}

const (
	chain1 = "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0"
	chain2 = "3,23,3,24,1002,24,10,24,1002,23,-1,23,101,5,23,23,1,24,23,23,4,23,99,0,0"
	chain3 = "3,31,3,32,1002,32,10,32,1001,31,-2,31,1007,31,0,33,1002,33,7,33,1,33,31,31,1,32,31,31,4,31,99,0,0,0"
	ring1  = "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5"
	ring2  = "3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54,-5,54,1105,1,12,1,53,54,53,1008,54,0,55,1001,55,1,55,2,53,55,53,4,53,1001,56,-1,56,1005,56,6,99,0,0,0,0,10"
)

var ampTests = [...]struct {
	name   string
	code   string
	amp    network.Amplifier
	phases C
	signal vm.Cell
}{
	{"chain/1", chain1, network.Chain, C{4, 3, 2, 1, 0}, 43210},
	{"chain/2", chain2, network.Chain, C{0, 1, 2, 3, 4}, 54321},
	{"chain/3", chain3, network.Chain, C{1, 0, 4, 3, 2}, 65210},
	{"feedback/1", ring1, network.Feedback, C{9, 8, 7, 6, 5}, 139629729},
}

func TestAmplifiers(t *testing.T) {
	for _, test := range ampTests {
		v, err := test.amp(context.Background(), parse(t, test.code), test.phases, 0)
		if err != nil {
			t.Errorf("%s: %+v", test.name, err)
			continue
		}
		if v != test.signal {
			t.Errorf("%s: expected %d, got %d", test.name, test.signal, v)
		}
	}
}

func TestMaxSignal(t *testing.T) {
	tests := [...]struct {
		name   string
		code   string
		amp    network.Amplifier
		phases C
		signal vm.Cell
	}{
		{"chain/1", chain1, network.Chain, network.Range(0, 4), 43210},
		{"chain/2", chain2, network.Chain, network.Range(0, 4), 54321},
		{"chain/3", chain3, network.Chain, network.Range(0, 4), 65210},
		{"feedback/1", ring1, network.Feedback, network.Range(5, 9), 139629729},
		{"feedback/2", ring2, network.Feedback, network.Range(5, 9), 18216},
	}
	for _, test := range tests {
		img := parse(t, test.code)
		v, phases, err := network.MaxSignal(context.Background(), img, test.amp, test.phases)
		if err != nil {
			t.Errorf("%s: %+v", test.name, err)
			continue
		}
		if v != test.signal {
			t.Errorf("%s: expected %d, got %d", test.name, test.signal, v)
		}
		// the winning phases must reproduce the signal
		if s, err := test.amp(context.Background(), img, phases, 0); err != nil || s != v {
			t.Errorf("%s: phases %v produced %d, %v", test.name, phases, s, err)
		}
	}
	for _, test := range ampTests {
		_, phases, err := network.MaxSignal(context.Background(), parse(t, test.code), test.amp, test.phases)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(C(phases), test.phases) {
			t.Errorf("%s: expected best phases %v, got %v", test.name, test.phases, phases)
		}
	}
}

func TestPermutations(t *testing.T) {
	perms := network.Permutations(network.Range(0, 4))
	if len(perms) != 120 {
		t.Fatalf("expected 120 permutations, got %d", len(perms))
	}
	seen := make(map[[5]vm.Cell]bool)
	for _, p := range perms {
		var k [5]vm.Cell
		copy(k[:], p)
		if seen[k] {
			t.Fatalf("duplicate permutation %v", p)
		}
		seen[k] = true
	}
	if !reflect.DeepEqual(C(perms[0]), C{0, 1, 2, 3, 4}) {
		t.Errorf("first permutation is %v", perms[0])
	}
	if network.Permutations(nil) != nil {
		t.Error("expected no permutations of an empty set")
	}
	if p := network.Permutations(C{7}); len(p) != 1 || p[0][0] != 7 {
		t.Errorf("unexpected permutations of a single value: %v", p)
	}
}

func TestNetwork_single(t *testing.T) {
	n, err := network.New(parse(t, "3,0,1002,0,2,0,4,0,4,0,99"), network.Single(), network.Seed(21))
	if err != nil {
		t.Fatal(err)
	}
	if err = n.Run(context.Background()); err != nil {
		t.Fatalf("%+v", err)
	}
	if !reflect.DeepEqual(C(n.Sink()), C{42, 42}) {
		t.Errorf("unexpected sink %v", n.Sink())
	}
	if v, ok := n.Signal(); !ok || v != 42 {
		t.Errorf("Signal() = %d, %v", v, ok)
	}
	if !n.Node(0).Halted() {
		t.Error("node 0 has not halted")
	}
}

func TestNetwork_noGovernor(t *testing.T) {
	topo := network.Topology{
		Size:     3,
		Route:    func(int) int { return network.Sink },
		Governor: -1,
	}
	n, err := network.New(parse(t, "3,0,4,0,99"), topo, network.Phases(1, 2, 3))
	if err != nil {
		t.Fatal(err)
	}
	if err = n.Run(context.Background()); err != nil {
		t.Fatalf("%+v", err)
	}
	if !reflect.DeepEqual(C(n.Sink()), C{1, 2, 3}) {
		t.Errorf("unexpected sink %v", n.Sink())
	}
	if v, _ := n.Signal(); v != 3 {
		t.Errorf("expected signal 3, got %d", v)
	}
}

func TestNetwork_deadlock(t *testing.T) {
	// both nodes wait for input that never comes
	n, err := network.New(parse(t, "3,0,4,0,99"), network.Ring(2))
	if err != nil {
		t.Fatal(err)
	}
	if err = n.Run(context.Background()); errors.Cause(err) != network.ErrDeadlock {
		t.Fatalf("expected ErrDeadlock, got %v", err)
	}

	// first node halts, second one starves
	n, err = network.New(parse(t, "3,0,4,0,3,0,99"), network.Pipeline(2), network.Seed(1))
	if err != nil {
		t.Fatal(err)
	}
	if err = n.Run(context.Background()); errors.Cause(err) != network.ErrDeadlock {
		t.Fatalf("expected ErrDeadlock, got %v", err)
	}
}

func TestNetwork_fault(t *testing.T) {
	n, err := network.New(parse(t, "3,0,4,0,77"), network.Pipeline(2), network.Seed(5))
	if err != nil {
		t.Fatal(err)
	}
	err = n.Run(context.Background())
	ne, ok := err.(*network.NodeError)
	if !ok {
		t.Fatalf("expected a *NodeError, got %v", err)
	}
	if ne.Node != 0 || ne.PC != 4 {
		t.Errorf("unexpected node error %v", ne)
	}
	if f, ok := vm.FaultOf(err); !ok || f.Kind != vm.OpcodeFault || f.Word != 77 {
		t.Errorf("expected an opcode fault, got %v", err)
	}
	if !reflect.DeepEqual(C(n.Node(1).Outputs()), C{5}) {
		t.Errorf("node 1 did not forward its input: %v", n.Node(1).Outputs())
	}
}

func TestNetwork_cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// infinite loop
	n, err := network.New(parse(t, "1105,1,0"), network.Single())
	if err != nil {
		t.Fatal(err)
	}
	if err = n.Run(ctx); errors.Cause(err) != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNew_errors(t *testing.T) {
	img := parse(t, "99")
	if _, err := network.New(img, network.Pipeline(3), network.Phases(1, 2)); err == nil {
		t.Error("expected an error for a phase count mismatch")
	}
	if _, err := network.New(img, network.Topology{}); err == nil {
		t.Error("expected an error for an empty topology")
	}
	if _, err := network.New(img, network.Single(), network.VMOptions(vm.MemoryLimit(0))); err == nil {
		t.Error("expected vm option errors to be reported")
	}
	bad := network.Topology{Size: 1, Route: func(int) int { return 5 }, Governor: 0}
	n, err := network.New(parse(t, "104,1,99"), bad)
	if err != nil {
		t.Fatal(err)
	}
	if err = n.Run(context.Background()); err == nil {
		t.Error("expected an error for an invalid route")
	}
}
