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

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/db47h/intcode/arcade"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
)

var errQuit = errors.New("game aborted")

// player reads joystick moves from the keyboard: 'a' for left, 'd' for right,
// any other key for neutral and 'q' to quit.
type player struct {
	in   io.ByteReader
	term arcade.Terminal
	move vm.Cell
}

func (p *player) Joystick(*arcade.Cabinet) vm.Cell {
	return p.move
}

func (p *player) frame(c *arcade.Cabinet) error {
	if err := c.Render(p.term); err != nil {
		return err
	}
	if c.Instance().Halted() {
		return nil
	}
	k, err := p.in.ReadByte()
	if err != nil {
		return errors.Wrap(err, "keyboard")
	}
	switch k {
	case 'a', 'A':
		p.move = -1
	case 'd', 'D':
		p.move = 1
	case 'q', 'Q', 4:
		return errQuit
	default:
		p.move = 0
	}
	return nil
}

var arcadeCommand = cli.Command{
	Name:      "arcade",
	Usage:     "Run an arcade cabinet game",
	ArgsUsage: "<program>",
	Description: `The arcade command runs a game program with the paddle driven by an
auto-pilot and prints the number of blocks left on screen and the final score.

With -play, the game is displayed in the terminal and the paddle is controlled
with the 'a' (left) and 'd' (right) keys. Any other key leaves the paddle in
place and 'q' quits.`,
	Flags: []cli.Flag{
		cli.Int64Flag{Name: "quarters", Usage: "number of quarters to insert (2 for free play)"},
		cli.BoolFlag{Name: "play", Usage: "play interactively"},
	},
	Action: func(ctx *cli.Context) error {
		img, err := loadImage(ctx)
		if err != nil {
			return err
		}
		quarters := cfg.Arcade.Quarters
		if ctx.IsSet("quarters") {
			quarters = vm.Cell(ctx.Int64("quarters"))
		}
		opts := []arcade.Option{
			arcade.VMOptions(vmOptions()...),
			arcade.Logger(log.New("module", "arcade")),
		}
		if quarters != 0 {
			opts = append(opts, arcade.Quarters(quarters))
		}

		stdout := bufio.NewWriter(os.Stdout)
		defer stdout.Flush()
		if ctx.Bool("play") {
			tearDown, err := setRawIO()
			if err != nil {
				return err
			}
			defer tearDown()
			p := &player{
				in:   bufio.NewReader(os.Stdin),
				term: arcade.NewVT100Terminal(stdout, stdout.Flush, consoleSize(os.Stdout)),
			}
			opts = append(opts, arcade.WithController(p), arcade.OnFrame(p.frame))
		}

		c, err := arcade.New(img, opts...)
		if err != nil {
			return err
		}
		if err = c.Run(context.Background()); err != nil && err != errQuit {
			failed = c.Instance()
			return err
		}
		fmt.Fprintln(stdout, c.Blocks(), c.Score())
		return nil
	},
}
