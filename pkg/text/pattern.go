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
	"fmt"
	"regexp"

	"github.com/walteh/repren/pkg/text/casing"
	"gitlab.com/tozd/go/errors"
)

// 🚩 Flags are applied uniformly to every pattern at compile time
type Flags struct {
	Insensitive  bool // case-insensitive matching
	Literal      bool // match pattern text verbatim
	WordBreaks   bool // anchor both ends at word boundaries
	DotAll       bool // let '.' match newlines (only useful at once)
	PreserveCase bool // expand each pair into its casing variants
}

// 📝 Pair is one uncompiled (pattern, replacement) entry
type Pair struct {
	From string
	To   string
	Line int // source line in a pattern file, 0 if none
}

// 🔍 Matcher is the capability the engine needs from a regular expression.
type Matcher interface {
	// FindAll returns the submatch index pairs of every leftmost,
	// non-overlapping match in buf, as regexp.FindAllSubmatchIndex does.
	FindAll(buf []byte) [][]int
	// NumGroups returns the number of capture groups, not counting group 0.
	NumGroups() int
	String() string
}

type regexpMatcher struct {
	re *regexp.Regexp
}

func (m regexpMatcher) FindAll(buf []byte) [][]int { return m.re.FindAllSubmatchIndex(buf, -1) }
func (m regexpMatcher) NumGroups() int             { return m.re.NumSubexp() }
func (m regexpMatcher) String() string             { return m.re.String() }

// segment is one piece of a replacement template: literal bytes, or a
// group reference when group >= 0.
type segment struct {
	literal []byte
	group   int
}

// 🎯 Pattern is a compiled expression plus its replacement template.
// Patterns are immutable once compiled.
type Pattern struct {
	Priority int    // 0 is highest
	Line     int    // pattern file line, 0 if none
	From     string // expression source before flags were applied
	To       string // replacement template source

	matcher  Matcher
	template []segment
}

// String returns the compiled expression and its template
func (p *Pattern) String() string {
	return fmt.Sprintf("%s -> %s", p.matcher.String(), p.To)
}

// Expr returns the expression actually handed to the regex engine
func (p *Pattern) Expr() string {
	return p.matcher.String()
}

// 📚 PatternSet is the ordered, priority-bearing list of patterns for a run.
type PatternSet struct {
	patterns []*Pattern
	flags    Flags
}

// Patterns returns the compiled patterns in priority order
func (ps *PatternSet) Patterns() []*Pattern {
	return ps.patterns
}

// Len returns the number of compiled patterns
func (ps *PatternSet) Len() int {
	return len(ps.patterns)
}

// Flags returns the flags the set was compiled with
func (ps *PatternSet) Flags() Flags {
	return ps.flags
}

// 🏭 Compile compiles pairs into a PatternSet. Pair order is priority
// order. Any invalid pair fails the whole set with a *PatternSyntaxError.
func Compile(pairs []Pair, flags Flags) (*PatternSet, error) {
	if flags.PreserveCase {
		pairs = expandCaseVariants(pairs)
		flags.Literal = true
	}

	ps := &PatternSet{flags: flags}
	for _, pair := range pairs {
		p, err := compilePair(pair, flags)
		if err != nil {
			return nil, err
		}
		p.Priority = len(ps.patterns)
		ps.patterns = append(ps.patterns, p)
	}
	return ps, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(pairs []Pair, flags Flags) *PatternSet {
	ps, err := Compile(pairs, flags)
	if err != nil {
		panic(err)
	}
	return ps
}

func compilePair(pair Pair, flags Flags) (*Pattern, error) {
	expr := pair.From
	if flags.Literal {
		expr = regexp.QuoteMeta(expr)
	}
	if flags.WordBreaks {
		expr = `\b(?:` + expr + `)\b`
	}
	switch {
	case flags.Insensitive && flags.DotAll:
		expr = "(?is)" + expr
	case flags.Insensitive:
		expr = "(?i)" + expr
	case flags.DotAll:
		expr = "(?s)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternSyntaxError{Line: pair.Line, Pattern: pair.From, Err: err}
	}

	// a pattern that matches nothing would apply at every position
	if re.Match(nil) {
		return nil, &PatternSyntaxError{Line: pair.Line, Pattern: pair.From, Err: errors.New("matches empty string")}
	}

	return &Pattern{
		Line:     pair.Line,
		From:     pair.From,
		To:       pair.To,
		matcher:  regexpMatcher{re: re},
		template: parseTemplate(pair.To),
	}, nil
}

// parseTemplate splits a replacement into literal runs and \0-\9 group
// references. "\\" is a literal backslash; any other escape is kept as is.
func parseTemplate(tmpl string) []segment {
	var segs []segment
	var lit []byte
	flush := func() {
		if len(lit) > 0 {
			segs = append(segs, segment{literal: lit, group: -1})
			lit = nil
		}
	}
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '\\' || i+1 >= len(tmpl) {
			lit = append(lit, c)
			continue
		}
		next := tmpl[i+1]
		switch {
		case next >= '0' && next <= '9':
			flush()
			segs = append(segs, segment{group: int(next - '0')})
			i++
		case next == '\\':
			lit = append(lit, '\\')
			i++
		default:
			lit = append(lit, c)
		}
	}
	flush()
	return segs
}

// expandCaseVariants replaces each pair with one pair per casing
// convention. Variants of an earlier pair always precede those of a later
// one; a variant whose From repeats an earlier variant of the same pair is
// dropped.
func expandCaseVariants(pairs []Pair) []Pair {
	out := make([]Pair, 0, len(pairs)*len(casing.Conventions()))
	for _, pair := range pairs {
		froms := casing.Variants(pair.From)
		tos := casing.Variants(pair.To)
		seen := make(map[string]bool, len(froms))
		for i := range froms {
			if seen[froms[i]] {
				continue
			}
			seen[froms[i]] = true
			out = append(out, Pair{From: froms[i], To: tos[i], Line: pair.Line})
		}
	}
	return out
}
