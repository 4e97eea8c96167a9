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

// Package hull drives a hull painting robot with an Intcode program.
//
// The robot starts at the origin, facing up, on a black hull. Each time the
// program reads input, it gets the color of the panel under the robot (0 for
// black, 1 for white). The program then outputs pairs of values: the color to
// paint the current panel with, and the direction to turn (0 for left, 1 for
// right). After each turn the robot moves forward one panel. Up is towards
// negative Y.
package hull

import (
	"context"
	"io"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	mapset "github.com/deckarep/golang-set"
	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

// Color is the color of a hull panel.
type Color vm.Cell

// Panel colors.
const (
	Black Color = iota
	White
)

// Point is a panel location.
type Point struct {
	X, Y int
}

// Heading is the direction the robot faces.
type Heading int

// Headings, clockwise.
const (
	Up Heading = iota
	Right
	Down
	Left
)

var deltas = [...]Point{Up: {0, -1}, Right: {1, 0}, Down: {0, 1}, Left: {-1, 0}}

// Turn returns the new heading after a turn: 0 is left, 1 is right.
func (h Heading) Turn(dir vm.Cell) Heading {
	if dir == 0 {
		return (h + 3) % 4
	}
	return (h + 1) % 4
}

func (h Heading) String() string {
	return [...]string{"up", "right", "down", "left"}[h]
}

// Hull is the state of a painted hull.
type Hull struct {
	panels  map[Point]Color
	painted mapset.Set
	pos     Point
	heading Heading
	log     log15.Logger
}

func newHull(start Color, l log15.Logger) *Hull {
	return &Hull{
		panels:  map[Point]Color{{}: start},
		painted: mapset.NewSet(),
		log:     l,
	}
}

// Option configures Paint.
type Option func(*config)

type config struct {
	log    log15.Logger
	vmOpts []vm.Option
}

// Logger sets the logger used to report robot moves at debug level.
func Logger(l log15.Logger) Option {
	return func(c *config) { c.log = l }
}

// VMOptions sets options for the robot's Intcode instance.
func VMOptions(opts ...vm.Option) Option {
	return func(c *config) { c.vmOpts = append(c.vmOpts, opts...) }
}

// Paint runs the robot program img on a hull whose starting panel has the
// given color, until the program halts. The returned Hull is valid even if
// err is not nil.
func Paint(ctx context.Context, img vm.Image, start Color, opts ...Option) (*Hull, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = log15.New()
		cfg.log.SetHandler(log15.DiscardHandler())
	}
	h := newHull(start, cfg.log)
	i, err := vm.New(img, cfg.vmOpts...)
	if err != nil {
		return h, err
	}
	var pair []vm.Cell
	for !i.Halted() {
		if err = ctx.Err(); err != nil {
			return h, errors.Wrap(err, "paint")
		}
		_, err = i.Resume()
		for v, ok := i.TakeOutput(); ok; v, ok = i.TakeOutput() {
			if pair = append(pair, v); len(pair) == 2 {
				if err := h.step(pair[0], pair[1]); err != nil {
					return h, errors.Wrapf(err, "pc=%d", i.PC)
				}
				pair = pair[:0]
			}
		}
		switch err {
		case nil:
		case vm.ErrBlocked:
			i.PushInput(vm.Cell(h.Color(h.pos)))
		default:
			return h, errors.WithStack(err)
		}
	}
	if len(pair) != 0 {
		return h, errors.Errorf("program halted with an incomplete output pair")
	}
	return h, nil
}

// step paints the current panel, then turns and moves the robot.
func (h *Hull) step(color, turn vm.Cell) error {
	if color != vm.Cell(Black) && color != vm.Cell(White) {
		return errors.Errorf("invalid color %d", color)
	}
	if turn != 0 && turn != 1 {
		return errors.Errorf("invalid turn direction %d", turn)
	}
	h.panels[h.pos] = Color(color)
	h.painted.Add(h.pos)
	h.heading = h.heading.Turn(turn)
	d := deltas[h.heading]
	h.pos = Point{h.pos.X + d.X, h.pos.Y + d.Y}
	h.log.Debug("move", "color", color, "heading", h.heading, "x", h.pos.X, "y", h.pos.Y)
	return nil
}

// Color returns the color of the panel at p.
func (h *Hull) Color(p Point) Color {
	return h.panels[p]
}

// Painted returns the number of panels painted at least once.
func (h *Hull) Painted() int {
	return h.painted.Cardinality()
}

// Position returns the robot's position and heading.
func (h *Hull) Position() (Point, Heading) {
	return h.pos, h.heading
}

// Bounds returns the top-left and bottom-right corners of the smallest
// rectangle containing all white panels. ok is false if there are none.
func (h *Hull) Bounds() (min, max Point, ok bool) {
	for p, c := range h.panels {
		if c != White {
			continue
		}
		if !ok {
			min, max, ok = p, p, true
			continue
		}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max, ok
}

// Render draws the white panels of the hull to w, one line per row, with '#'
// for white and '.' for black.
func (h *Hull) Render(w io.Writer) error {
	ew := ici.NewErrWriter(w)
	min, max, ok := h.Bounds()
	if !ok {
		return nil
	}
	for y := min.Y; y <= max.Y; y++ {
		for x := min.X; x <= max.X; x++ {
			c := byte('.')
			if h.panels[Point{x, y}] == White {
				c = '#'
			}
			ew.WriteByte(c)
		}
		ew.WriteByte('\n')
	}
	return ew.Err
}
