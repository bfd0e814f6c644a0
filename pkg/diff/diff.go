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

// Package diff renders unified diffs for dry run previews.
package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"gitlab.com/tozd/go/errors"
)

// DefaultContext is the number of context lines around each hunk
const DefaultContext = 3

// Unified returns a unified diff turning a into b. It returns an empty
// string when the contents are equal.
func Unified(aName, bName string, a, b []byte, context int) (string, error) {
	if context <= 0 {
		context = DefaultContext
	}

	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(a),
		B:        splitLinesKeepNL(b),
		FromFile: aName,
		ToFile:   bName,
		Context:  context,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", errors.Errorf("building diff for %s: %w", aName, err)
	}
	return s, nil
}

// Rename returns the git style header for a moved file
func Rename(from, to string) string {
	return fmt.Sprintf("rename from %s\nrename to %s\n", from, to)
}

// splitLinesKeepNL splits into lines and keeps the newlines. A final line
// without one gets a marker so the hunk stays well formed.
func splitLinesKeepNL(b []byte) []string {
	if len(b) == 0 {
		return []string{}
	}
	lines := strings.SplitAfter(string(b), "\n")
	if last := lines[len(lines)-1]; last == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] = last + "\n\\ No newline at end of file\n"
	}
	return lines
}
