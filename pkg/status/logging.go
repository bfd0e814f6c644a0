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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 35 // Base width for filename
	statusWidth  = 10 // Width for status text
	matchesWidth = 12 // Width for match count
)

// 🎯 FormatFileLine formats a file event as an aligned, colored console line
func FormatFileLine(info FileInfo) string {
	// Determine prefix symbol
	var prefix string
	switch info.Status {
	case StatusModified:
		prefix = color.YellowString("⟳")
	case StatusRenamed:
		prefix = color.BlueString("→")
	case StatusRestored:
		prefix = color.GreenString("✓")
	case StatusRemoved, StatusFailed:
		prefix = color.RedString("✗")
	default:
		prefix = color.HiBlackString("-")
	}

	statusText := info.Status.String()
	if info.DryRun && info.Status != StatusFailed {
		statusText += "?"
	}

	matches := ""
	if info.Matched {
		matches = fmt.Sprintf("%d matches", info.MatchCount)
		if info.MatchCount == 1 {
			matches = "1 match"
		}
	}

	// Format parts with padding
	namePart := fmt.Sprintf("%-*s", nameWidth, info.Path)
	statusPart := fmt.Sprintf("%-*s", statusWidth, statusText)
	matchesPart := fmt.Sprintf("%-*s", matchesWidth, matches)

	var tail []string
	if info.RenamedTo != "" {
		tail = append(tail, color.CyanString("-> %s", info.RenamedTo))
	}
	if info.BackupCreated {
		tail = append(tail, color.HiBlackString("(backup)"))
	}
	if info.Error != nil {
		tail = append(tail, color.RedString("%v", info.Error))
	}

	// Build final string with indentation
	line := fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		statusPart,
		matchesPart,
	)
	if len(tail) > 0 {
		line += " " + strings.Join(tail, " ")
	}
	return line
}
