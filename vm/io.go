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

package vm

// Channel holds the I/O state of an Instance: a FIFO of pending input values
// consumed by input instructions, and the ordered sequence of values produced
// by output instructions.
//
// Outputs are never discarded. TakeOutput only advances a read cursor so that
// callers routing values elsewhere can consume them one at a time while
// Outputs still returns the full history.
type Channel struct {
	in   []Cell
	out  []Cell
	read int
}

// PushInput appends values to the input queue.
func (c *Channel) PushInput(v ...Cell) {
	c.in = append(c.in, v...)
}

// Pending returns the number of queued input values.
func (c *Channel) Pending() int {
	return len(c.in)
}

func (c *Channel) peek() (Cell, bool) {
	if len(c.in) == 0 {
		return 0, false
	}
	return c.in[0], true
}

func (c *Channel) pop() {
	c.in = c.in[1:]
}

func (c *Channel) emit(v Cell) {
	c.out = append(c.out, v)
}

// Outputs returns all values produced so far, in order. The returned slice
// must not be modified.
func (c *Channel) Outputs() []Cell {
	return c.out
}

// LastOutput returns the most recent output value. ok is false if nothing has
// been output yet.
func (c *Channel) LastOutput() (v Cell, ok bool) {
	if len(c.out) == 0 {
		return 0, false
	}
	return c.out[len(c.out)-1], true
}

// TakeOutput returns the oldest output value not yet returned by TakeOutput.
func (c *Channel) TakeOutput() (v Cell, ok bool) {
	if c.read >= len(c.out) {
		return 0, false
	}
	v = c.out[c.read]
	c.read++
	return v, true
}

// Unread returns the number of output values not yet consumed with
// TakeOutput.
func (c *Channel) Unread() int {
	return len(c.out) - c.read
}
