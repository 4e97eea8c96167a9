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

package network

import (
	"context"
	"runtime"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Amplifier computes the output signal of a series of amplifiers running img,
// one per phase setting, given an input signal.
type Amplifier func(ctx context.Context, img vm.Image, phases []vm.Cell, seed vm.Cell, opts ...Option) (vm.Cell, error)

func amplify(ctx context.Context, img vm.Image, topo Topology, phases []vm.Cell, seed vm.Cell, opts ...Option) (vm.Cell, error) {
	opts = append([]Option{Phases(phases...), Seed(seed)}, opts...)
	n, err := New(img, topo, opts...)
	if err != nil {
		return 0, err
	}
	if err = n.Run(ctx); err != nil {
		return 0, err
	}
	v, ok := n.Signal()
	if !ok {
		return 0, errors.Errorf("phases %v: no output signal", phases)
	}
	return v, nil
}

// Chain runs a Pipeline of amplifiers, one per phase setting, and returns the
// last value output by the last amplifier.
func Chain(ctx context.Context, img vm.Image, phases []vm.Cell, seed vm.Cell, opts ...Option) (vm.Cell, error) {
	return amplify(ctx, img, Pipeline(len(phases)), phases, seed, opts...)
}

// Feedback runs a Ring of amplifiers, one per phase setting, and returns the
// last value output by the last amplifier before it halts.
func Feedback(ctx context.Context, img vm.Image, phases []vm.Cell, seed vm.Cell, opts ...Option) (vm.Cell, error) {
	return amplify(ctx, img, Ring(len(phases)), phases, seed, opts...)
}

// Range returns the phase settings lo, lo+1, ... hi.
func Range(lo, hi vm.Cell) []vm.Cell {
	if hi < lo {
		return nil
	}
	r := make([]vm.Cell, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		r = append(r, v)
	}
	return r
}

// MaxSignal tries every permutation of the given phase settings with the amp
// wiring and a zero input signal. It returns the highest signal and the first
// permutation, in generation order, that produced it.
//
// Permutations are evaluated concurrently, each in its own network.
func MaxSignal(ctx context.Context, img vm.Image, amp Amplifier, phases []vm.Cell, opts ...Option) (vm.Cell, []vm.Cell, error) {
	perms := Permutations(phases)
	if len(perms) == 0 {
		return 0, nil, errors.New("no phase settings")
	}
	signals := make([]vm.Cell, len(perms))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k := range perms {
		k := k
		g.Go(func() error {
			v, err := amp(ctx, img, perms[k], 0, opts...)
			if err != nil {
				return errors.Wrapf(err, "phases %v", perms[k])
			}
			signals[k] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, nil, err
	}
	best := 0
	for k := range signals {
		if signals[k] > signals[best] {
			best = k
		}
	}
	return signals[best], perms[best], nil
}
