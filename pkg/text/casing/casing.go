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

// Package casing splits identifiers into words and renders them in one of
// the four common casing conventions.
//
// Only ASCII letters, digits and underscore are understood. Bytes outside
// that alphabet are never treated as part of an identifier and behaviour
// for non-ASCII letters is undefined.
package casing

import (
	"strings"
)

// 🔠 Convention is an identifier casing convention
type Convention int

const (
	LowerCamel      Convention = iota // fooBarBaz
	UpperCamel                        // FooBarBaz
	LowerUnderscore                   // foo_bar_baz
	UpperUnderscore                   // FOO_BAR_BAZ
)

// Conventions returns every convention in expansion order.
func Conventions() []Convention {
	return []Convention{LowerCamel, UpperCamel, LowerUnderscore, UpperUnderscore}
}

// String returns a string representation of Convention
func (c Convention) String() string {
	switch c {
	case LowerCamel:
		return "lowerCamel"
	case UpperCamel:
		return "UpperCamel"
	case LowerUnderscore:
		return "lower_underscore"
	case UpperUnderscore:
		return "UPPER_UNDERSCORE"
	default:
		return "unknown"
	}
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool { return isUpper(b) || isLower(b) }
func isIdentPart(b byte) bool  { return isIdentStart(b) || isDigit(b) || b == '_' }

// ✂️ Split breaks an identifier into lowercase words.
//
// Names containing an underscore are split on it. Anything else is treated
// as camel case: a word starts at an uppercase letter that follows a
// non-uppercase byte, or at the last letter of an uppercase run that is
// followed by a lowercase letter, so "HTTPServer" splits into "http" and
// "server". Empty words are dropped.
func Split(name string) []string {
	var raw []string
	if strings.Contains(name, "_") {
		raw = strings.Split(name, "_")
	} else {
		start := 0
		for i := 1; i < len(name); i++ {
			if !isUpper(name[i]) {
				continue
			}
			prevUpper := isUpper(name[i-1])
			if !prevUpper || (i+1 < len(name) && isLower(name[i+1])) {
				raw = append(raw, name[start:i])
				start = i
			}
		}
		raw = append(raw, name[start:])
	}

	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if w == "" {
			continue
		}
		words = append(words, strings.ToLower(w))
	}
	return words
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

// 🧩 Join renders words in the given convention
func Join(words []string, conv Convention) string {
	var sb strings.Builder
	for i, w := range words {
		switch conv {
		case LowerCamel:
			if i == 0 {
				sb.WriteString(strings.ToLower(w))
			} else {
				sb.WriteString(capitalize(w))
			}
		case UpperCamel:
			sb.WriteString(capitalize(w))
		case LowerUnderscore:
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteString(strings.ToLower(w))
		case UpperUnderscore:
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteString(strings.ToUpper(w))
		}
	}
	return sb.String()
}

// 🔄 Convert rewrites every identifier inside expr into the given convention.
// Bytes between identifiers are copied unchanged.
func Convert(expr string, conv Convention) string {
	var sb strings.Builder
	sb.Grow(len(expr))
	i := 0
	for i < len(expr) {
		if !isIdentStart(expr[i]) {
			sb.WriteByte(expr[i])
			i++
			continue
		}
		j := i + 1
		for j < len(expr) && isIdentPart(expr[j]) {
			j++
		}
		sb.WriteString(Join(Split(expr[i:j]), conv))
		i = j
	}
	return sb.String()
}

// Variants returns expr rendered in every convention, in Conventions order.
func Variants(expr string) []string {
	convs := Conventions()
	out := make([]string, len(convs))
	for i, c := range convs {
		out[i] = Convert(expr, c)
	}
	return out
}
