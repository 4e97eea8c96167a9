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

// Package network runs several Intcode instances of the same program wired
// together by a Topology.
//
// Instances are run one at a time in round-robin order by a single goroutine:
// each turn resumes one instance until it outputs a value, blocks on input or
// halts, then routes its outputs. No state is shared between instances other
// than the values routed between them.
package network

import (
	"context"
	"fmt"

	"github.com/db47h/intcode/vm"
	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

// ErrDeadlock is returned by Run when every running node is blocked on input
// and none of them made progress during a full round.
var ErrDeadlock = errors.New("deadlock: all running nodes are blocked on input")

// NodeError wraps an error raised by a node.
type NodeError struct {
	Node int
	PC   vm.Cell
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %d @pc=%d: %v", e.Node, e.PC, e.Err)
}

// Cause returns the underlying error.
func (e *NodeError) Cause() error { return e.Err }

// Unwrap returns the underlying error.
func (e *NodeError) Unwrap() error { return e.Err }

// Network is a set of instances wired together.
type Network struct {
	topo   Topology
	nodes  []*vm.Instance
	phases []vm.Cell
	seed   []vm.Cell
	vmOpts []vm.Option
	sink   []vm.Cell
	signal vm.Cell
	sig    bool
	log    log15.Logger
}

// Option is a functional option for New.
type Option func(*Network) error

// Phases sets the first input value of each node. The number of phases must
// match the network size.
func Phases(p ...vm.Cell) Option {
	return func(n *Network) error {
		n.phases = append(n.phases[:0], p...)
		return nil
	}
}

// Seed pushes the given values into the input of the first node, after its
// phase setting.
func Seed(v ...vm.Cell) Option {
	return func(n *Network) error {
		n.seed = append(n.seed, v...)
		return nil
	}
}

// VMOptions sets the options used to create each node.
func VMOptions(opts ...vm.Option) Option {
	return func(n *Network) error {
		n.vmOpts = append(n.vmOpts, opts...)
		return nil
	}
}

// Logger sets the logger. It also enables instruction tracing on every node
// with a child logger carrying a "node" context key.
func Logger(l log15.Logger) Option {
	return func(n *Network) error {
		n.log = l
		return nil
	}
}

// New creates a new network of topo.Size instances of the program img.
func New(img vm.Image, topo Topology, opts ...Option) (*Network, error) {
	if topo.Size <= 0 || topo.Route == nil {
		return nil, errors.Errorf("invalid topology: size %d", topo.Size)
	}
	if topo.Governor >= topo.Size {
		return nil, errors.Errorf("invalid topology: governor %d out of range", topo.Governor)
	}
	n := &Network{topo: topo}
	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}
	if n.phases != nil && len(n.phases) != topo.Size {
		return nil, errors.Errorf("got %d phase settings for %d nodes", len(n.phases), topo.Size)
	}
	trace := n.log != nil
	if n.log == nil {
		n.log = log15.New()
		n.log.SetHandler(log15.DiscardHandler())
	}
	n.nodes = make([]*vm.Instance, topo.Size)
	for k := range n.nodes {
		var opts []vm.Option
		if trace {
			opts = append(opts, vm.Logger(n.log.New("node", k)))
		}
		opts = append(opts, n.vmOpts...)
		if n.phases != nil {
			opts = append(opts, vm.Input(n.phases[k]))
		}
		if k == 0 {
			opts = append(opts, vm.Input(n.seed...))
		}
		i, err := vm.New(img, opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "node %d", k)
		}
		n.nodes[k] = i
	}
	return n, nil
}

// Node returns the k-th instance of the network.
func (n *Network) Node(k int) *vm.Instance {
	return n.nodes[k]
}

// Sink returns the values that left the network.
func (n *Network) Sink() []vm.Cell {
	return n.sink
}

// Signal returns the last value produced by the governor node, or by any node
// into the sink if the topology has no governor.
func (n *Network) Signal() (vm.Cell, bool) {
	return n.signal, n.sig
}

func (n *Network) done() bool {
	if n.topo.Governor >= 0 {
		return n.nodes[n.topo.Governor].Halted()
	}
	for _, i := range n.nodes {
		if !i.Halted() {
			return false
		}
	}
	return true
}

func (n *Network) route(from int, v vm.Cell) error {
	to := n.topo.Route(from)
	if from == n.topo.Governor {
		n.signal, n.sig = v, true
	}
	switch {
	case to == Sink:
		n.sink = append(n.sink, v)
		if n.topo.Governor < 0 {
			n.signal, n.sig = v, true
		}
	case to >= 0 && to < len(n.nodes):
		n.nodes[to].PushInput(v)
	default:
		return errors.Errorf("node %d: invalid route to %d", from, to)
	}
	n.log.Debug("route", "from", from, "to", to, "value", v)
	return nil
}

// Run runs the network until the governor halts.
//
// Run returns ErrDeadlock if all running nodes starve on input, a *NodeError
// if a node faults, or the context error if ctx is done. The context is
// checked once per round.
func (n *Network) Run(ctx context.Context) error {
	for round := 0; ; round++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "network")
		}
		progress := false
		for k, i := range n.nodes {
			if i.Halted() {
				continue
			}
			count := i.InstructionCount()
			_, err := i.Resume()
			if i.InstructionCount() != count {
				progress = true
			}
			if err != nil && err != vm.ErrBlocked {
				n.log.Error("node fault", "node", k, "err", err)
				return &NodeError{Node: k, PC: i.PC, Err: err}
			}
			for v, ok := i.TakeOutput(); ok; v, ok = i.TakeOutput() {
				if err = n.route(k, v); err != nil {
					return err
				}
			}
			if n.done() {
				n.log.Debug("network done", "rounds", round+1)
				return nil
			}
		}
		if !progress {
			return errors.WithStack(ErrDeadlock)
		}
	}
}
