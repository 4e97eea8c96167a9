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

import "github.com/pkg/errors"

// DefaultMemoryLimit is the default maximum number of cells an Instance may
// address.
const DefaultMemoryLimit = 1 << 20

// Memory is the VM's memory. It grows on demand when written to, up to a
// fixed limit. Cells that have never been written to read as 0.
type Memory struct {
	cells []Cell
	limit int
}

func newMemory(img Image, limit int) (*Memory, error) {
	if limit < len(img) {
		return nil, errors.Errorf("memory limit %d smaller than image size %d", limit, len(img))
	}
	// some slack for the usual scratch space right after the program
	sz := len(img) + len(img)/2
	if sz > limit {
		sz = limit
	}
	m := &Memory{make([]Cell, len(img), sz), limit}
	copy(m.cells, img)
	return m, nil
}

func (m *Memory) check(addr Cell) error {
	if addr < 0 || addr >= Cell(m.limit) {
		return &Fault{Kind: AddressFault, Addr: addr}
	}
	return nil
}

// Len returns the size of the touched memory region, i.e. one past the
// highest address ever written to.
func (m *Memory) Len() int {
	return len(m.cells)
}

// Limit returns the memory limit in cells.
func (m *Memory) Limit() int {
	return m.limit
}

// Load returns the value stored at addr.
func (m *Memory) Load(addr Cell) (Cell, error) {
	if err := m.check(addr); err != nil {
		return 0, err
	}
	if addr >= Cell(len(m.cells)) {
		return 0, nil
	}
	return m.cells[addr], nil
}

// Store stores v at addr, growing the memory if needed.
func (m *Memory) Store(addr, v Cell) error {
	if err := m.check(addr); err != nil {
		return err
	}
	if a := int(addr); a >= len(m.cells) {
		m.grow(a + 1)
	}
	m.cells[addr] = v
	return nil
}

func (m *Memory) grow(n int) {
	if n <= cap(m.cells) {
		m.cells = m.cells[:n]
		return
	}
	c := 2 * cap(m.cells)
	if c < n {
		c = n
	}
	if c > m.limit {
		c = m.limit
	}
	t := make([]Cell, n, c)
	copy(t, m.cells)
	m.cells = t
}

func (m *Memory) setLimit(limit int) error {
	if limit < len(m.cells) {
		return errors.Errorf("memory limit %d smaller than used memory %d", limit, len(m.cells))
	}
	m.limit = limit
	return nil
}

// Slice returns a copy of the touched memory region.
func (m *Memory) Slice() Image {
	s := make(Image, len(m.cells))
	copy(s, m.cells)
	return s
}
