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

package vm

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
)

// Image is an Intcode program literal. Instances never modify the Image they
// are created from, so the same Image can be shared by any number of them.
type Image []Cell

// scanValues is a bufio.SplitFunc that splits comma separated values.
func scanValues(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.IndexByte(data, ','); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Parse reads a program in text form: comma separated base 10 signed
// integers. White space around values is ignored, and so are empty values.
func Parse(r io.Reader) (Image, error) {
	var img Image
	s := bufio.NewScanner(r)
	s.Split(scanValues)
	for n := 0; s.Scan(); n++ {
		t := strings.TrimSpace(s.Text())
		if t == "" {
			continue
		}
		v, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "value #%d", n)
		}
		img = append(img, Cell(v))
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return img, nil
}

// ParseString parses a program from a string. See Parse.
func ParseString(s string) (Image, error) {
	return Parse(strings.NewReader(s))
}

// Load loads a program from file fileName.
func Load(fileName string) (Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := Parse(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return img, nil
}

// Save writes the image to w in the text form accepted by Parse, followed by
// a new line.
func (img Image) Save(w io.Writer) error {
	ew := ici.NewErrWriter(w)
	for i, v := range img {
		if i > 0 {
			ew.WriteByte(',')
		}
		ew.Int(int64(v))
	}
	ew.WriteByte('\n')
	return ew.Err
}

func (img Image) String() string {
	var b strings.Builder
	img.Save(&b)
	return strings.TrimSuffix(b.String(), "\n")
}
