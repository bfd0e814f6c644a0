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
	"bytes"
	"context"
	"io"
	"sort"

	"gitlab.com/tozd/go/errors"
)

// 🧭 Mode selects how a buffer is split before matching
type Mode int

const (
	// LineMode matches each line on its own, without its trailing newline.
	LineMode Mode = iota
	// AtOnceMode matches the whole buffer in one pass.
	AtOnceMode
)

// String returns a string representation of Mode
func (m Mode) String() string {
	if m == AtOnceMode {
		return "at-once"
	}
	return "line"
}

// match is one candidate or accepted span
type match struct {
	start, end int
	pattern    *Pattern
	groups     []int
}

// 📊 Result is the outcome of one Replace call
type Result struct {
	Content []byte
	Count   int
	// PatternCounts[i] is the number of accepted matches of pattern i.
	PatternCounts []int
}

// 🔄 Replace applies every pattern of the set to buf simultaneously and
// returns the rewritten bytes. buf is never modified.
func (ps *PatternSet) Replace(buf []byte, mode Mode) (*Result, error) {
	res := &Result{PatternCounts: make([]int, len(ps.patterns))}
	if len(buf) == 0 || len(ps.patterns) == 0 {
		res.Content = buf
		return res, nil
	}

	if mode == AtOnceMode {
		out, n, err := ps.replaceUnit(buf, res.PatternCounts)
		if err != nil {
			return nil, err
		}
		res.Content, res.Count = out, n
		return res, nil
	}

	out := make([]byte, 0, len(buf))
	for rest := buf; len(rest) > 0; {
		line := rest
		var nl bool
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line, rest, nl = rest[:i], rest[i+1:], true
		} else {
			rest = nil
		}

		replaced, n, err := ps.replaceUnit(line, res.PatternCounts)
		if err != nil {
			return nil, err
		}
		res.Count += n
		out = append(out, replaced...)
		if nl {
			out = append(out, '\n')
		}
	}
	res.Content = out
	return res, nil
}

// replaceUnit runs candidate collection, overlap resolution and
// substitution over one unit. When nothing matches, unit itself is
// returned.
func (ps *PatternSet) replaceUnit(unit []byte, counts []int) ([]byte, int, error) {
	var accepted []match
	for _, p := range ps.patterns {
		for _, loc := range p.matcher.FindAll(unit) {
			start, end := loc[0], loc[1]
			if start == end {
				continue
			}
			// accepted is sorted and disjoint, so ends are sorted too
			i := sort.Search(len(accepted), func(i int) bool { return accepted[i].end > start })
			if i < len(accepted) && accepted[i].start < end {
				continue
			}
			accepted = append(accepted, match{})
			copy(accepted[i+1:], accepted[i:])
			accepted[i] = match{start: start, end: end, pattern: p, groups: loc}
		}
	}

	if len(accepted) == 0 {
		return unit, 0, nil
	}

	out := make([]byte, 0, len(unit))
	last := 0
	for _, m := range accepted {
		out = append(out, unit[last:m.start]...)
		var err error
		out, err = m.expand(out, unit)
		if err != nil {
			return nil, 0, err
		}
		counts[m.pattern.Priority]++
		last = m.end
	}
	out = append(out, unit[last:]...)
	return out, len(accepted), nil
}

// expand appends the pattern's template for m to dst
func (m match) expand(dst, src []byte) ([]byte, error) {
	p := m.pattern
	for _, seg := range p.template {
		if seg.group < 0 {
			dst = append(dst, seg.literal...)
			continue
		}
		if seg.group > p.matcher.NumGroups() {
			return nil, &BackreferenceError{
				Line:     p.Line,
				Pattern:  p.From,
				Template: p.To,
				Group:    seg.group,
				Groups:   p.matcher.NumGroups(),
			}
		}
		s, e := m.groups[2*seg.group], m.groups[2*seg.group+1]
		if s >= 0 {
			dst = append(dst, src[s:e]...)
		}
	}
	return dst, nil
}

// 📊 ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of replacements made
	ReplacementCount int

	// PatternCounts holds the replacement count of each pattern
	PatternCounts []int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// 🔄 Replacer binds a PatternSet to a matching mode
type Replacer struct {
	patterns *PatternSet
	mode     Mode
}

// 🏭 NewReplacer creates a new Replacer
func NewReplacer(patterns *PatternSet, mode Mode) *Replacer {
	return &Replacer{patterns: patterns, mode: mode}
}

// Patterns returns the underlying PatternSet
func (r *Replacer) Patterns() *PatternSet {
	return r.patterns
}

// Mode returns the matching mode
func (r *Replacer) Mode() Mode {
	return r.mode
}

// ReplaceBytes applies the patterns to content
func (r *Replacer) ReplaceBytes(content []byte) (*ReplacementResult, error) {
	res, err := r.patterns.Replace(content, r.mode)
	if err != nil {
		return nil, err
	}
	return &ReplacementResult{
		WasModified:      res.Count > 0,
		ReplacementCount: res.Count,
		PatternCounts:    res.PatternCounts,
		OriginalContent:  content,
		ModifiedContent:  res.Content,
	}, nil
}

// ReplaceText reads all of content and applies the patterns to it
func (r *Replacer) ReplaceText(ctx context.Context, content io.Reader) (*ReplacementResult, error) {
	original, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("replacing text: %w", err)
	}
	return r.ReplaceBytes(original)
}
