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
	"io"
	"os"
	"reflect"

	"github.com/db47h/intcode/vm"
	"github.com/naoina/toml"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
)

type vmConfig struct {
	MemoryLimit int
	Trace       bool
}

type ampConfig struct {
	Feedback bool
	PhaseMin vm.Cell
	PhaseMax vm.Cell
}

type hullConfig struct {
	StartColor vm.Cell
}

type arcadeConfig struct {
	Quarters vm.Cell
}

type gravityConfig struct {
	Target  vm.Cell
	MaxNoun vm.Cell
	MaxVerb vm.Cell
}

type config struct {
	VM      vmConfig
	Amp     ampConfig
	Hull    hullConfig
	Arcade  arcadeConfig
	Gravity gravityConfig
}

func defaultConfig() *config {
	return &config{
		VM:      vmConfig{MemoryLimit: vm.DefaultMemoryLimit},
		Amp:     ampConfig{PhaseMin: 0, PhaseMax: 4},
		Gravity: gravityConfig{Target: 19690720, MaxNoun: 99, MaxVerb: 99},
	}
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return errors.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

func loadConfig(fileName string, cfg *config) error {
	f, err := os.Open(fileName)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	defer f.Close()
	err = tomlSettings.NewDecoder(f).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(fileName + ", " + err.Error())
	}
	return err
}

func (cfg *config) write(w io.Writer) error {
	out, err := tomlSettings.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	_, err = w.Write(out)
	return err
}

var dumpConfigCommand = cli.Command{
	Name:        "dumpconfig",
	Usage:       "Show configuration values",
	Description: `The dumpconfig command shows the effective configuration in TOML format.`,
	Action: func(ctx *cli.Context) error {
		return cfg.write(os.Stdout)
	},
}
