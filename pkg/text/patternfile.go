// Copyright 2025 walteh LLC
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

package text

import (
	"bufio"
	"io"
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
)

const maxPatternLine = 1024 * 1024

// 📖 ParsePatterns reads tab separated pattern pairs, one per line. Blank
// lines and lines starting with '#' are skipped. Escapes understood by
// Unescape are expanded in both halves.
func ParsePatterns(r io.Reader) ([]Pair, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxPatternLine)

	var pairs []Pair
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		bits := strings.Split(line, "\t")
		if len(bits) != 2 {
			return nil, &PatternSyntaxError{
				Line:    lineNo,
				Pattern: line,
				Err:     errors.Errorf("expected exactly one tab separating pattern and replacement, found %d", len(bits)-1),
			}
		}

		pairs = append(pairs, Pair{
			From: Unescape(bits[0]),
			To:   Unescape(bits[1]),
			Line: lineNo,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading patterns: %w", err)
	}

	return pairs, nil
}

// 📂 LoadPatternFile parses the pattern file at path
func LoadPatternFile(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening pattern file: %w", err)
	}
	defer f.Close()

	pairs, err := ParsePatterns(f)
	if err != nil {
		return nil, errors.Errorf("parsing pattern file %s: %w", path, err)
	}
	return pairs, nil
}

var escapes = map[byte]byte{
	'n': '\n',
	't': '\t',
	'r': '\r',
	'f': '\f',
	'v': '\v',
	'a': '\a',
}

// Unescape expands \n, \t, \r, \f, \v and \a. Every other backslash
// sequence, including "\\", is left untouched for the regex engine and
// the template parser.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}
		next := s[i+1]
		if r, ok := escapes[next]; ok {
			sb.WriteByte(r)
			i++
			continue
		}
		sb.WriteByte(c)
		if next == '\\' {
			sb.WriteByte(next)
			i++
		}
	}
	return sb.String()
}
