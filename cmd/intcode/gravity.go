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
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// gravityAssist returns the first noun and verb, in increasing order, for
// which img leaves c.Target at address 0. Combinations that fault are skipped.
func gravityAssist(img vm.Image, c gravityConfig, opts ...vm.Option) (noun, verb vm.Cell, err error) {
	for noun = 0; noun <= c.MaxNoun; noun++ {
		for verb = 0; verb <= c.MaxVerb; verb++ {
			i, err := vm.New(img, append(opts, vm.Patch(1, noun), vm.Patch(2, verb))...)
			if err != nil {
				return 0, 0, err
			}
			if err = i.Run(); err != nil {
				log.Debug("gravity: skipped", "noun", noun, "verb", verb, "err", err)
				continue
			}
			if v, _ := i.Mem.Load(0); v == c.Target {
				return noun, verb, nil
			}
		}
	}
	return 0, 0, errors.Errorf("no noun and verb produce %d", c.Target)
}
