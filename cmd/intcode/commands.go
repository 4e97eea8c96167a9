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
	"os"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/hull"
	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
)

func loadImage(ctx *cli.Context) (vm.Image, error) {
	if ctx.NArg() != 1 {
		return nil, errors.Errorf("%s: expected exactly one program file", ctx.Command.Name)
	}
	name := ctx.Args().First()
	if name == "-" {
		return vm.Parse(bufio.NewReader(os.Stdin))
	}
	return vm.Load(name)
}

var runCommand = cli.Command{
	Name:      "run",
	Usage:     "Run a program",
	ArgsUsage: "<program>",
	Description: `The run command runs a program with the given input values and
prints its outputs, one per line.`,
	Flags: []cli.Flag{
		cli.StringFlag{Name: "input, i", Usage: "comma separated input `values`"},
		cli.StringFlag{Name: "patch", Usage: "comma separated `addr,value` pairs patched in memory before running"},
		cli.BoolFlag{Name: "dump", Usage: "print final memory"},
	},
	Action: func(ctx *cli.Context) error {
		img, err := loadImage(ctx)
		if err != nil {
			return err
		}
		opts := vmOptions()
		in, err := vm.ParseString(ctx.String("input"))
		if err != nil {
			return errors.Wrap(err, "input")
		}
		opts = append(opts, vm.Input(in...))
		patches, err := vm.ParseString(ctx.String("patch"))
		if err != nil {
			return errors.Wrap(err, "patch")
		}
		if len(patches)%2 != 0 {
			return errors.New("patch: odd number of values")
		}
		for k := 0; k < len(patches); k += 2 {
			opts = append(opts, vm.Patch(patches[k], patches[k+1]))
		}
		i, err := vm.New(img, opts...)
		if err != nil {
			return err
		}
		err = i.Run()
		out := bufio.NewWriter(os.Stdout)
		defer out.Flush()
		for _, v := range i.Outputs() {
			fmt.Fprintln(out, v)
		}
		switch {
		case err == vm.ErrBlocked:
			failed = i
			return errors.New("program is waiting for more input")
		case err != nil:
			failed = i
			return err
		}
		log.Info("program halted", "instructions", i.InstructionCount())
		if ctx.Bool("dump") {
			return i.Mem.Slice().Save(out)
		}
		return nil
	},
}

var ampCommand = cli.Command{
	Name:      "amp",
	Usage:     "Find the best phase settings of a series of amplifiers",
	ArgsUsage: "<program>",
	Description: `The amp command tries all permutations of phase settings for a
series of amplifiers running the same program and prints the highest output
signal along with the phase settings that produced it.`,
	Flags: []cli.Flag{
		cli.BoolFlag{Name: "feedback", Usage: "wire the amplifiers in a feedback loop"},
		cli.Int64Flag{Name: "min", Usage: "lowest phase setting"},
		cli.Int64Flag{Name: "max", Usage: "highest phase setting"},
	},
	Action: func(ctx *cli.Context) error {
		img, err := loadImage(ctx)
		if err != nil {
			return err
		}
		c := cfg.Amp
		if ctx.IsSet("feedback") {
			c.Feedback = ctx.Bool("feedback")
			if c.Feedback && !ctx.IsSet("min") && !ctx.IsSet("max") {
				c.PhaseMin, c.PhaseMax = 5, 9
			}
		}
		if ctx.IsSet("min") {
			c.PhaseMin = vm.Cell(ctx.Int64("min"))
		}
		if ctx.IsSet("max") {
			c.PhaseMax = vm.Cell(ctx.Int64("max"))
		}
		amp := network.Chain
		if c.Feedback {
			amp = network.Feedback
		}
		phases := network.Range(c.PhaseMin, c.PhaseMax)
		log.Debug("phase search", "feedback", c.Feedback, "phases", phases)
		opts := []network.Option{network.VMOptions(vmOptions()...)}
		signal, best, err := network.MaxSignal(context.Background(), img, amp, phases, opts...)
		if err != nil {
			return err
		}
		fmt.Println(signal, vm.Image(best))
		return nil
	},
}

var paintCommand = cli.Command{
	Name:      "paint",
	Usage:     "Run a hull painting robot",
	ArgsUsage: "<program>",
	Description: `The paint command runs a hull painting robot program and prints the
number of panels painted at least once, followed by the painted hull.`,
	Flags: []cli.Flag{
		cli.BoolFlag{Name: "white", Usage: "start on a white panel"},
	},
	Action: func(ctx *cli.Context) error {
		img, err := loadImage(ctx)
		if err != nil {
			return err
		}
		start := hull.Color(cfg.Hull.StartColor)
		if ctx.IsSet("white") {
			start = hull.Black
			if ctx.Bool("white") {
				start = hull.White
			}
		}
		h, err := hull.Paint(context.Background(), img, start,
			hull.Logger(log.New("module", "hull")),
			hull.VMOptions(vmOptions()...))
		if err != nil {
			return err
		}
		fmt.Println(h.Painted())
		return h.Render(os.Stdout)
	},
}

var gravityCommand = cli.Command{
	Name:      "gravity",
	Usage:     "Find the noun and verb producing a given output",
	ArgsUsage: "<program>",
	Description: `The gravity command searches the noun and verb (values patched at
addresses 1 and 2) for which the program leaves the target value at address 0.
It prints 100 * noun + verb.`,
	Flags: []cli.Flag{
		cli.Int64Flag{Name: "target", Usage: "target `value` at address 0"},
	},
	Action: func(ctx *cli.Context) error {
		img, err := loadImage(ctx)
		if err != nil {
			return err
		}
		c := cfg.Gravity
		if ctx.IsSet("target") {
			c.Target = vm.Cell(ctx.Int64("target"))
		}
		noun, verb, err := gravityAssist(img, c, vmOptions()...)
		if err != nil {
			return err
		}
		fmt.Println(100*noun + verb)
		return nil
	},
}

var asmCommand = cli.Command{
	Name:      "asm",
	Usage:     "Assemble a program",
	ArgsUsage: "<source>",
	Description: `The asm command assembles the given source file and writes the
resulting program in text form.`,
	Flags: []cli.Flag{
		cli.StringFlag{Name: "o", Usage: "output `file` (default stdout)"},
	},
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return errors.New("asm: expected exactly one source file")
		}
		name := ctx.Args().First()
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrap(err, "asm")
		}
		defer f.Close()
		img, err := asm.Assemble(name, bufio.NewReader(f))
		if err != nil {
			return err
		}
		if o := ctx.String("o"); o != "" {
			out, err := os.Create(o)
			if err != nil {
				return errors.Wrap(err, "asm")
			}
			if err = img.Save(out); err != nil {
				out.Close()
				return err
			}
			return errors.Wrap(out.Close(), "asm")
		}
		return img.Save(os.Stdout)
	},
}

var disasmCommand = cli.Command{
	Name:      "disasm",
	Usage:     "Disassemble a program",
	ArgsUsage: "<program>",
	Action: func(ctx *cli.Context) error {
		img, err := loadImage(ctx)
		if err != nil {
			return err
		}
		out := bufio.NewWriter(os.Stdout)
		if err = asm.DisassembleAll(img, 0, out); err != nil {
			return err
		}
		return out.Flush()
	},
}
