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

package operation

import (
	"context"
	"io"
	"strings"

	"github.com/walteh/repren/pkg/status"
	"github.com/walteh/repren/pkg/text"
	"github.com/walteh/repren/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Mode selects what a transform touches
type Mode int

const (
	// ModeContents rewrites file contents only
	ModeContents Mode = iota
	// ModeRenames rewrites file paths only
	ModeRenames
	// ModeFull rewrites contents, then paths
	ModeFull
)

// String returns a string representation of Mode
func (m Mode) String() string {
	switch m {
	case ModeRenames:
		return "renames"
	case ModeFull:
		return "full"
	default:
		return "contents"
	}
}

// ParseMode parses a mode name; the empty string means ModeContents
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "contents":
		return ModeContents, nil
	case "renames":
		return ModeRenames, nil
	case "full":
		return ModeFull, nil
	}
	return ModeContents, errors.Errorf("unknown mode %q (want contents, renames or full)", s)
}

func (m Mode) contents() bool { return m == ModeContents || m == ModeFull }
func (m Mode) renames() bool  { return m == ModeRenames || m == ModeFull }

// 🎯 Operation is one pass over a list of walked files
type Operation interface {
	// Name identifies the operation in logs
	Name() string
	// Execute processes entries in order. Per-file failures are tracked,
	// not returned; only an interrupted run returns an error.
	Execute(ctx context.Context, entries []walk.Entry) error
}

// 🔧 Options contains configuration for an operation
type Options struct {
	// Patterns rewrite contents and paths; unused by undo and clean
	Patterns *text.PatternSet
	// TextMode is the matching mode for file contents. Paths are always
	// matched at once.
	TextMode text.Mode
	// Mode selects contents, renames or both
	Mode Mode
	// DryRun reports what would change without writing anything
	DryRun bool
	// Diff, when set, receives a unified diff of every change
	Diff io.Writer

	// Files performs all file system writes
	Files status.FileManager
	// Status receives one FileInfo per entry
	Status status.StatusReporter
}

// Validate checks that the required collaborators are set
func (o Options) Validate() error {
	if o.Files == nil {
		return errors.Errorf("file manager is required")
	}
	if o.Status == nil {
		return errors.Errorf("status reporter is required")
	}
	return nil
}

// 🧱 BaseOperation holds what every operation shares
type BaseOperation struct {
	Options
}

// 🏭 NewBaseOperation creates a new base operation
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{Options: opts}
}

// each runs fn for every entry with progress tracking, stopping between
// files when ctx is done. Entries the walk failed on are tracked as
// failures without calling fn.
func (op *BaseOperation) each(ctx context.Context, entries []walk.Entry, fn func(walk.Entry) status.FileInfo) error {
	op.Status.StartOperation(ctx, len(entries))
	defer op.Status.FinishOperation(ctx)

	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("stopped before %s: %w", e.Path, err)
		}
		var info status.FileInfo
		if e.Err != nil {
			// the walk could not read this path
			info = status.FileInfo{Path: e.Path, Status: status.StatusFailed, Error: e.Err}
		} else {
			info = fn(e)
		}
		info.DryRun = op.DryRun
		op.Status.TrackFile(ctx, info)
		op.Status.UpdateProgress(ctx, i+1)
	}
	return nil
}
