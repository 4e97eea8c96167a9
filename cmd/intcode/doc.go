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

// The intcode command line tool is a showcase for the package
// github.com/db47h/intcode/vm and its companion packages.
//
// Usage:
//
//	intcode [global options] command [command options] <program>
//
// Global options:
//
//	-config file
//		  load settings from TOML file
//	-debug
//		  dump the faulting instance and error stack traces upon failure
//	-verbosity level
//		  log level (0=crit, 1=error, 2=warn, 3=info, 4=debug)
//	-mem cells
//		  memory limit of each instance
//	-trace
//		  trace every executed instruction at debug level
//
// Commands:
//
//	run       run a program with the given inputs and print its outputs
//	amp       find the phase settings yielding the highest amplifier signal
//	paint     run a hull painting robot and render the hull
//	arcade    run an arcade cabinet game, optionally interactive
//	gravity   find the noun and verb that produce a given value
//	asm       assemble a source file into a program image
//	disasm    disassemble a program image
//	dumpconfig  print the effective configuration as TOML
//
// Programs are text files of comma separated integers. Use "-" to read from
// standard input.
package main
