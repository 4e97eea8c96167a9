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

package asm

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

// ErrAsm is the error type returned by Assemble. Each entry holds the position
// in the source and the error message.
type ErrAsm []struct {
	Pos scanner.Position
	Msg string
}

func (e ErrAsm) Error() string {
	var b strings.Builder
	for i := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e[i].Pos.String())
		b.WriteString(": ")
		b.WriteString(e[i].Msg)
	}
	return b.String()
}

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

// parser states.
const (
	stInstr   = iota // accept anything
	stOperand        // need an instruction operand
	stOrg            // need integer or const (.org)
	stEqu            // need integer or const (.equ value)
	stDat            // need integer, const or label (.dat)
)

type parser struct {
	i       []vm.Cell
	pc      int
	size    int
	s       scanner.Scanner
	labels  map[string]*label
	consts  map[string]labelSite
	cstName string
	cstPos  scanner.Position
	errs    ErrAsm

	// instruction being assembled
	op    vm.Opcode
	opPC  int
	arg   int
	opPos scanner.Position
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]labelSite)
	return p
}

func (p *parser) error(pos scanner.Position, msg string) {
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, struct {
			Pos scanner.Position
			Msg string
		}{pos, msg})
	}
}

func (p *parser) tooManyErrors() bool {
	return len(p.errs) >= maxErrors
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

func (p *parser) image() vm.Image {
	return vm.Image(p.i[:p.size:p.size])
}

func (p *parser) useLabel(name string, pos scanner.Position) {
	lbl := p.labels[name]
	if lbl == nil {
		// use current position as valid temp position
		lbl = &label{labelSite{pos, -1}, nil}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{pos, p.pc})
}

// value converts s to an integer. It accepts Go integer literals, character
// literals and defined constants.
func (p *parser) value(s string) (v vm.Cell, ok bool, err error) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true, nil
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, _, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil {
			return 0, false, err
		}
		return vm.Cell(r), true, nil
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true, nil
	}
	return 0, false, nil
}

// operand compiles the next operand of the current instruction.
func (p *parser) operand(s string, pos scanner.Position) {
	var mode vm.Mode
	switch {
	case strings.HasPrefix(s, "@"):
		mode, s = vm.Position, s[1:]
	case strings.HasPrefix(s, "~"):
		mode, s = vm.Relative, s[1:]
	default:
		mode = vm.Immediate
	}
	p.arg++
	if s == "" {
		p.error(pos, "Empty operand")
		p.write(0)
		return
	}
	if p.arg == opcodes[p.op].dst && mode == vm.Immediate {
		p.error(pos, "Immediate write target: "+s)
	}
	p.i[p.opPC] += vm.Cell(mode) * pow10[p.arg+1]
	p.data(s, pos)
}

var pow10 = [...]vm.Cell{1, 10, 100, 1000, 10000}

// data compiles s as a literal value or a label address.
func (p *parser) data(s string, pos scanner.Position) {
	v, ok, err := p.value(s)
	if err != nil {
		p.error(pos, err.Error())
	}
	if !ok && err == nil {
		if s[0] == ':' || s[0] == '.' || s == "(" {
			p.error(pos, "Unexpected token as argument: "+s)
		}
		p.useLabel(s, pos)
	}
	p.write(v)
}

func (p *parser) defineLabel(s string, pos scanner.Position) {
	n := s[1:]
	if len(n) == 0 {
		p.error(pos, "Empty label name")
		return
	}
	if cst, ok := p.consts[n]; ok {
		p.error(pos, "Label redefinition: "+n+", previously defined as a constant here: "+cst.pos.String())
		return
	}
	if l, ok := p.labels[n]; ok {
		if l.address != -1 {
			p.error(pos, "Label redefinition: "+n+", previous definition here: "+l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = pos
		return
	}
	p.labels[n] = &label{labelSite{pos, p.pc}, nil}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) error {
	state := stInstr

	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.error(s.Position, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF && !p.tooManyErrors(); tok = p.s.Scan() {
		pos := p.s.Position
		if tok != scanner.Ident {
			p.error(pos, "Unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		// operands may be separated by commas
		s := strings.TrimSuffix(p.s.TokenText(), ",")
		if s == "" {
			continue
		}
		if s == "(" {
			// skip comments
			for tok = p.s.Scan(); tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
			}
			if tok == scanner.EOF {
				p.error(pos, "Unterminated comment")
			}
			continue
		}

		switch state {
		case stOperand:
			p.operand(s, pos)
			if p.arg == opcodes[p.op].nargs {
				state = stInstr
			}
			continue
		case stDat:
			p.data(s, pos)
			state = stInstr
			continue
		case stOrg, stEqu:
			v, ok, err := p.value(s)
			switch {
			case err != nil:
				p.error(pos, err.Error())
			case !ok:
				p.error(pos, "Expected integer or constant, got "+s)
			case state == stOrg:
				if v < 0 {
					p.error(pos, "Negative .org address")
					break
				}
				p.pc = int(v)
			default:
				p.consts[p.cstName] = labelSite{p.cstPos, int(v)}
			}
			state = stInstr
			continue
		}

		switch s[0] {
		case ':':
			p.defineLabel(s, pos)
		case '.':
			switch s {
			case ".org":
				state = stOrg
			case ".dat":
				state = stDat
			case ".equ":
				t := p.s.Scan()
				if t != scanner.Ident {
					p.error(p.s.Position, ".equ: expected identifier, got "+p.s.TokenText())
					break
				}
				p.cstName = p.s.TokenText()
				p.cstPos = p.s.Position
				if l, ok := p.labels[p.cstName]; ok {
					p.error(p.cstPos, ".equ: redefinition of "+p.cstName+", previously defined/used as a label here: "+l.pos.String())
					break
				}
				state = stEqu
			default:
				p.error(pos, "Unknown dot directive: "+s)
			}
		default:
			if op, ok := opcodeIndex[s]; ok {
				p.op, p.opPC, p.arg, p.opPos = op, p.pc, 0, pos
				p.write(vm.Cell(op))
				if opcodes[op].nargs > 0 {
					state = stOperand
				}
				break
			}
			// implicit .dat
			v, ok, err := p.value(s)
			switch {
			case err != nil:
				p.error(pos, err.Error())
			case !ok:
				p.error(pos, "Unknown instruction: "+s)
			default:
				p.write(v)
			}
		}
	}

	switch state {
	case stOperand:
		p.error(p.opPos, "Missing operand for "+p.op.String())
	case stOrg, stEqu, stDat:
		p.error(p.s.Pos(), "Missing directive argument")
	}

	// write labels in a stable order so that errors are reproducible.
	names := make([]string, 0, len(p.labels))
	for n := range p.labels {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		l := p.labels[n]
		if l.address == -1 {
			p.error(l.uses[0].pos, "Undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return p.errs
	}
	return nil
}
