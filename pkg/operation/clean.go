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

	"github.com/rs/zerolog"
	"github.com/walteh/repren/pkg/status"
	"github.com/walteh/repren/pkg/walk"
)

// 🧹 NewCleanOperation creates an operation that deletes backups
func NewCleanOperation(opts Options) (Operation, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &cleanOperation{BaseOperation: NewBaseOperation(opts)}, nil
}

// 🧹 cleanOperation implements the clean operation
type cleanOperation struct {
	BaseOperation
	removed int
}

func (op *cleanOperation) Name() string {
	return "clean"
}

// 🏃 Execute deletes every backup in entries
func (op *cleanOperation) Execute(ctx context.Context, entries []walk.Entry) error {
	zerolog.Ctx(ctx).Debug().Int("backups", len(entries)).Msg("removing backups")

	return op.each(ctx, entries, func(e walk.Entry) status.FileInfo {
		info := status.FileInfo{Path: e.Path, Status: status.StatusRemoved}
		if !op.DryRun {
			if err := op.Files.DeleteFile(ctx, e.Path); err != nil {
				info.Status = status.StatusFailed
				info.Error = err
				return info
			}
		}
		op.removed++
		return info
	})
}

// Clean deletes every backup in entries and returns how many were removed
func Clean(ctx context.Context, opts Options, entries []walk.Entry) (int, error) {
	op, err := NewCleanOperation(opts)
	if err != nil {
		return 0, err
	}
	err = op.Execute(ctx, entries)
	return op.(*cleanOperation).removed, err
}
