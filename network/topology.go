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

// Sink is the Route destination of values leaving the network.
const Sink = -1

// Topology describes how the nodes of a network are wired together.
type Topology struct {
	// Size is the number of nodes.
	Size int
	// Route returns the node that receives the outputs of node from, or Sink.
	Route func(from int) int
	// Governor is the node whose halt completes a run. If negative, a run
	// completes when all nodes have halted.
	Governor int
}

// Single returns the topology of a single program whose outputs all go to
// the sink.
func Single() Topology {
	return Topology{
		Size:     1,
		Route:    func(int) int { return Sink },
		Governor: 0,
	}
}

// Pipeline returns a linear topology of n nodes: the outputs of node i are
// fed to node i+1, and the outputs of the last node go to the sink.
func Pipeline(n int) Topology {
	return Topology{
		Size: n,
		Route: func(from int) int {
			if from == n-1 {
				return Sink
			}
			return from + 1
		},
		Governor: n - 1,
	}
}

// Ring returns a feedback topology of n nodes: like Pipeline, except that the
// outputs of the last node are fed back to the first one. Ring networks
// complete when the last node halts.
func Ring(n int) Topology {
	return Topology{
		Size:     n,
		Route:    func(from int) int { return (from + 1) % n },
		Governor: n - 1,
	}
}
