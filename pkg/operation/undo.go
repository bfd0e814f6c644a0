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
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/repren/pkg/status"
	"github.com/walteh/repren/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// ⏪ NewUndoOperation creates an operation that moves backups back over
// the files they were taken from
func NewUndoOperation(opts Options) (Operation, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &undoOperation{BaseOperation: NewBaseOperation(opts)}, nil
}

// ⏪ undoOperation implements the undo operation
type undoOperation struct {
	BaseOperation
	restored int
}

func (op *undoOperation) Name() string {
	return "undo"
}

// 🏃 Execute restores every backup in entries
func (op *undoOperation) Execute(ctx context.Context, entries []walk.Entry) error {
	zerolog.Ctx(ctx).Debug().Int("backups", len(entries)).Msg("restoring backups")

	suffix := op.Files.BackupSuffix()
	return op.each(ctx, entries, func(e walk.Entry) status.FileInfo {
		original := strings.TrimSuffix(e.Path, suffix)
		info := status.FileInfo{Path: original, Status: status.StatusRestored}

		if op.DryRun {
			op.restored++
			return info
		}

		restored, err := op.Files.RestoreFile(ctx, original)
		if err != nil {
			info.Status = status.StatusFailed
			info.Error = errors.Errorf("restoring %s: %w", original, err)
			return info
		}
		if !restored {
			info.Status = status.StatusUnchanged
			return info
		}
		op.restored++
		return info
	})
}

// Undo restores every backup in entries and returns how many were restored
func Undo(ctx context.Context, opts Options, entries []walk.Entry) (int, error) {
	op, err := NewUndoOperation(opts)
	if err != nil {
		return 0, err
	}
	err = op.Execute(ctx, entries)
	return op.(*undoOperation).restored, err
}
