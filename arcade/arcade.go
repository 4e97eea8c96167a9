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

// Package arcade runs Intcode arcade cabinet games.
//
// The game program draws by outputting triples of values: x, y and a tile id.
// The special triple (-1, 0, score) updates the score display instead. When
// the program reads input, it reads the joystick position: -1 for left, 0 for
// neutral and 1 for right.
package arcade

import (
	"context"

	"github.com/db47h/intcode/vm"
	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

// Tile is a screen tile id.
type Tile vm.Cell

// Tile ids.
const (
	Empty Tile = iota
	Wall
	Block
	Paddle
	Ball
)

var tileRunes = [...]rune{Empty: ' ', Wall: '█', Block: '▒', Paddle: '▔', Ball: '●'}

// Rune returns the character used to draw the tile.
func (t Tile) Rune() rune {
	if t >= 0 && int(t) < len(tileRunes) {
		return tileRunes[t]
	}
	return '?'
}

// Point is a screen location.
type Point struct {
	X, Y int
}

// A Controller provides joystick input.
type Controller interface {
	Joystick(c *Cabinet) vm.Cell
}

// ControllerFunc is an adapter to use ordinary functions as Controllers.
type ControllerFunc func(c *Cabinet) vm.Cell

// Joystick calls f(c).
func (f ControllerFunc) Joystick(c *Cabinet) vm.Cell { return f(c) }

// AutoPilot is a Controller that keeps the paddle under the ball.
var AutoPilot Controller = ControllerFunc((*Cabinet).Track)

// Cabinet is an arcade cabinet running a game program.
type Cabinet struct {
	inst    *vm.Instance
	screen  map[Point]Tile
	max     Point
	ball    Point
	paddle  Point
	score   vm.Cell
	frames  int
	ctl     Controller
	onFrame func(*Cabinet) error
	vmOpts  []vm.Option
	log     log15.Logger
}

// Option is a functional option for New.
type Option func(*Cabinet) error

// Quarters sets the number of quarters inserted in the machine by patching
// memory address 0. Two quarters set the machine in free play mode.
func Quarters(n vm.Cell) Option {
	return func(c *Cabinet) error {
		c.vmOpts = append(c.vmOpts, vm.Patch(0, n))
		return nil
	}
}

// WithController sets the joystick controller. The default is AutoPilot.
func WithController(ctl Controller) Option {
	return func(c *Cabinet) error {
		if ctl == nil {
			return errors.New("nil controller")
		}
		c.ctl = ctl
		return nil
	}
}

// OnFrame sets a function called every time the game waits for joystick
// input, and once more when it halts. Returning an error aborts the game.
func OnFrame(f func(*Cabinet) error) Option {
	return func(c *Cabinet) error {
		c.onFrame = f
		return nil
	}
}

// VMOptions sets options for the game's Intcode instance.
func VMOptions(opts ...vm.Option) Option {
	return func(c *Cabinet) error {
		c.vmOpts = append(c.vmOpts, opts...)
		return nil
	}
}

// Logger sets the logger.
func Logger(l log15.Logger) Option {
	return func(c *Cabinet) error {
		c.log = l
		return nil
	}
}

// New returns a new cabinet loaded with the game program img.
func New(img vm.Image, opts ...Option) (*Cabinet, error) {
	c := &Cabinet{
		screen: make(map[Point]Tile),
		ctl:    AutoPilot,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.log == nil {
		c.log = log15.New()
		c.log.SetHandler(log15.DiscardHandler())
	}
	i, err := vm.New(img, c.vmOpts...)
	if err != nil {
		return nil, err
	}
	c.inst = i
	return c, nil
}

func (c *Cabinet) draw(x, y, t vm.Cell) error {
	if x == -1 && y == 0 {
		c.score = t
		c.log.Debug("score", "score", t)
		return nil
	}
	if x < 0 || y < 0 {
		return errors.Errorf("invalid screen position (%d, %d)", x, y)
	}
	if t < vm.Cell(Empty) || t > vm.Cell(Ball) {
		return errors.Errorf("invalid tile id %d at (%d, %d)", t, x, y)
	}
	p := Point{int(x), int(y)}
	c.screen[p] = Tile(t)
	switch Tile(t) {
	case Ball:
		c.ball = p
	case Paddle:
		c.paddle = p
	}
	if p.X > c.max.X {
		c.max.X = p.X
	}
	if p.Y > c.max.Y {
		c.max.Y = p.Y
	}
	return nil
}

func (c *Cabinet) frame() error {
	c.frames++
	if c.onFrame != nil {
		return c.onFrame(c)
	}
	return nil
}

// Run runs the game until it halts. The context is checked every frame.
func (c *Cabinet) Run(ctx context.Context) error {
	var triple []vm.Cell
	for {
		_, err := c.inst.Resume()
		for v, ok := c.inst.TakeOutput(); ok; v, ok = c.inst.TakeOutput() {
			if triple = append(triple, v); len(triple) == 3 {
				if err := c.draw(triple[0], triple[1], triple[2]); err != nil {
					return errors.Wrapf(err, "pc=%d", c.inst.PC)
				}
				triple = triple[:0]
			}
		}
		switch err {
		case nil:
			if !c.inst.Halted() {
				continue
			}
			if len(triple) != 0 {
				return errors.New("game halted with an incomplete output triple")
			}
			c.log.Info("game over", "score", c.score, "blocks", c.Blocks(), "frames", c.frames)
			return c.frame()
		case vm.ErrBlocked:
			if err = ctx.Err(); err != nil {
				return errors.Wrap(err, "arcade")
			}
			if err = c.frame(); err != nil {
				return err
			}
			c.inst.PushInput(c.ctl.Joystick(c))
		default:
			return errors.WithStack(err)
		}
	}
}

// Tile returns the tile at p.
func (c *Cabinet) Tile(p Point) Tile {
	return c.screen[p]
}

// Size returns the size of the screen drawn so far.
func (c *Cabinet) Size() (width, height int) {
	if len(c.screen) == 0 {
		return 0, 0
	}
	return c.max.X + 1, c.max.Y + 1
}

// Blocks returns the number of block tiles on screen.
func (c *Cabinet) Blocks() int {
	n := 0
	for _, t := range c.screen {
		if t == Block {
			n++
		}
	}
	return n
}

// Score returns the current score.
func (c *Cabinet) Score() vm.Cell {
	return c.score
}

// Ball returns the position of the ball.
func (c *Cabinet) Ball() Point { return c.ball }

// Paddle returns the position of the paddle.
func (c *Cabinet) Paddle() Point { return c.paddle }

// Frames returns the number of frames displayed so far.
func (c *Cabinet) Frames() int { return c.frames }

// Instance returns the game's Intcode instance.
func (c *Cabinet) Instance() *vm.Instance { return c.inst }

// Track returns the joystick position that moves the paddle towards the ball.
func (c *Cabinet) Track() vm.Cell {
	switch {
	case c.ball.X < c.paddle.X:
		return -1
	case c.ball.X > c.paddle.X:
		return 1
	}
	return 0
}
