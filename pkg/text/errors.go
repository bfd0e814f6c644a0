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
)

// ❌ PatternSyntaxError reports a malformed pattern line or a regular
// expression the engine refused to compile. Line is 1-based; 0 means the
// pattern did not come from a pattern file.
type PatternSyntaxError struct {
	Line    int
	Pattern string
	Err     error
}

func (e *PatternSyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("pattern line %d: %q: %v", e.Line, e.Pattern, e.Err)
	}
	return fmt.Sprintf("pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternSyntaxError) Unwrap() error {
	return e.Err
}

// ❌ BackreferenceError reports a replacement template that refers to a
// capture group its pattern does not have.
type BackreferenceError struct {
	Line     int
	Pattern  string
	Template string
	Group    int
	Groups   int
}

func (e *BackreferenceError) Error() string {
	return fmt.Sprintf("replacement %q for pattern %q references group \\%d but pattern has %d group(s)",
		e.Template, e.Pattern, e.Group, e.Groups)
}
