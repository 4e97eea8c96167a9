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

package arcade

import (
	"bytes"
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
)

// Terminal is a character display.
type Terminal interface {
	io.Writer
	Flush() error
	Size() (width int, height int)
	Clear()
	MoveCursor(row, col int)
	FgColor(fg int)
	BgColor(bg int)
}

// Colors.
const (
	ColorBlack = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

var tileColors = [...]int{Empty: ColorBlack, Wall: ColorBlue, Block: ColorGreen, Paddle: ColorWhite, Ball: ColorYellow}

type vt100Terminal struct {
	io.Writer
	flush func() error
	size  func() (int, int)
}

func (t *vt100Terminal) Flush() error {
	if t.flush == nil {
		return nil
	}
	return t.flush()
}

func (t *vt100Terminal) Size() (width int, height int) {
	if t.size == nil {
		return 0, 0
	}
	return t.size()
}

func (t *vt100Terminal) Clear() {
	t.Write([]byte{'\033', '[', '2', 'J', '\033', '[', '1', ';', '1', 'H'})
}

func (t *vt100Terminal) MoveCursor(row, col int) {
	var b bytes.Buffer
	b.Write([]byte{'\033', '['})
	b.WriteString(strconv.Itoa(row))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(col))
	b.WriteByte('H')
	t.Write(b.Bytes())
}

func (t *vt100Terminal) FgColor(fg int) {
	t.Write([]byte{'\033', '[', '3', '0' + byte(fg), 'm'})
}

func (t *vt100Terminal) BgColor(bg int) {
	t.Write([]byte{'\033', '[', '4', '0' + byte(bg), 'm'})
}

// NewVT100Terminal returns a new Terminal implementation that uses VT100 escape
// sequences to implement the Clear, MoveCursor, FgColor and BgColor methods.
//
// The caller only needs to provide the functions implementing Flush and Size.
// Either of these functions may be nil, in which case they will be implemented
// as no-ops.
func NewVT100Terminal(w io.Writer, flush func() error, size func() (width int, height int)) Terminal {
	return &vt100Terminal{w, flush, size}
}

// Render draws the screen and score to t, then flushes t.
//
// If t reports a non-zero size, the frame is centered on the terminal and
// clipped to fit, the score line included.
func (c *Cabinet) Render(t Terminal) error {
	ew := ici.NewErrWriter(t)
	w, h := c.Size()
	top, left := 1, 1
	if tw, th := t.Size(); tw > 0 && th > 0 {
		if tw > w {
			left += (tw - w) / 2
		} else {
			w = tw
		}
		if th > h+1 {
			top += (th - h - 1) / 2
		} else {
			h = th - 1
		}
	}
	t.Clear()
	line := make([]rune, 0, w)
	for y := 0; y < h; y++ {
		t.MoveCursor(top+y, left)
		fg := -1
		line = line[:0]
		for x := 0; x < w; x++ {
			tile := c.screen[Point{x, y}]
			if tc := tileColors[tile]; tc != fg {
				ew.WriteString(string(line))
				line = line[:0]
				t.FgColor(tc)
				fg = tc
			}
			line = append(line, tile.Rune())
		}
		ew.WriteString(string(line))
	}
	t.MoveCursor(top+h, left)
	t.FgColor(ColorWhite)
	ew.WriteString("Score: ")
	ew.Int(int64(c.score))
	ew.WriteByte('\n')
	if ew.Err != nil {
		return ew.Err
	}
	return t.Flush()
}
