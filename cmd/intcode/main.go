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
	"fmt"
	"os"
	"sort"

	"github.com/db47h/intcode/vm"
	"github.com/inconshreveable/log15"
	colorable "github.com/mattn/go-colorable"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	cfg       = defaultConfig()
	debug     bool
	verbosity int
	log       = log15.New()

	// instance that caused the last error, for debug dumps
	failed *vm.Instance
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration `file`",
	}
	debugFlag = cli.BoolFlag{
		Name:        "debug",
		Usage:       "enable debug diagnostics",
		Destination: &debug,
	}
	verbosityFlag = cli.IntFlag{
		Name:        "verbosity",
		Usage:       "logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug",
		Value:       int(log15.LvlWarn),
		Destination: &verbosity,
	}
	memFlag = cli.IntFlag{
		Name:  "mem",
		Usage: "memory limit in cells",
	}
	traceFlag = cli.BoolFlag{
		Name:  "trace",
		Usage: "log every executed instruction (needs -verbosity 4)",
	}
)

func setup(ctx *cli.Context) error {
	log.SetHandler(log15.LvlFilterHandler(log15.Lvl(verbosity),
		log15.StreamHandler(colorable.NewColorableStderr(), log15.TerminalFormat())))
	if ctx.GlobalIsSet(configFlag.Name) {
		if err := loadConfig(ctx.GlobalString(configFlag.Name), cfg); err != nil {
			return err
		}
	}
	if ctx.GlobalIsSet(memFlag.Name) {
		cfg.VM.MemoryLimit = ctx.GlobalInt(memFlag.Name)
	}
	if ctx.GlobalIsSet(traceFlag.Name) {
		cfg.VM.Trace = ctx.GlobalBool(traceFlag.Name)
	}
	return nil
}

// vmOptions returns the instance options set by the configuration.
func vmOptions() []vm.Option {
	opts := []vm.Option{vm.MemoryLimit(cfg.VM.MemoryLimit)}
	if cfg.VM.Trace {
		opts = append(opts, vm.Logger(log.New("module", "vm")))
	}
	return opts
}

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	dumpFault(os.Stderr, failed, err)
	os.Exit(1)
}

func main() {
	app := cli.NewApp()
	app.Name = "intcode"
	app.Usage = "Intcode virtual machine and tools"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		configFlag,
		debugFlag,
		verbosityFlag,
		memFlag,
		traceFlag,
	}
	app.Before = setup
	app.Commands = []cli.Command{
		runCommand,
		ampCommand,
		paintCommand,
		arcadeCommand,
		gravityCommand,
		asmCommand,
		disasmCommand,
		dumpConfigCommand,
	}
	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	atExit(app.Run(os.Args))
}
