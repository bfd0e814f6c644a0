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
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/repren/pkg/diff"
	"github.com/walteh/repren/pkg/status"
	"github.com/walteh/repren/pkg/text"
	"github.com/walteh/repren/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🔄 NewTransformOperation creates a new content and path rewrite operation
func NewTransformOperation(opts Options) (Operation, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Patterns == nil {
		return nil, errors.Errorf("patterns are required")
	}
	return &transformOperation{
		BaseOperation: NewBaseOperation(opts),
		claims:        NewClaimSet(),
	}, nil
}

// 🔄 transformOperation implements the transform operation
type transformOperation struct {
	BaseOperation
	claims *ClaimSet
}

func (op *transformOperation) Name() string {
	return "transform"
}

// 🏃 Execute runs the transform operation
func (op *transformOperation) Execute(ctx context.Context, entries []walk.Entry) error {
	zerolog.Ctx(ctx).Debug().
		Str("mode", op.Mode.String()).
		Str("text_mode", op.TextMode.String()).
		Int("patterns", op.Patterns.Len()).
		Bool("dry_run", op.DryRun).
		Msg("transforming files")

	return op.each(ctx, entries, func(e walk.Entry) status.FileInfo {
		return op.processEntry(ctx, e)
	})
}

// 📄 processEntry rewrites the content of one file in place, then moves it
func (op *transformOperation) processEntry(ctx context.Context, e walk.Entry) status.FileInfo {
	info := status.FileInfo{Path: e.Path, Status: status.StatusUnchanged}

	if op.Mode.contents() {
		if err := op.rewriteContent(ctx, e, &info); err != nil {
			info.Status = status.StatusFailed
			info.Error = err
			return info
		}
	}

	if op.Mode.renames() {
		if err := op.rename(ctx, e, &info); err != nil {
			info.Status = status.StatusFailed
			info.Error = err
			return info
		}
	}

	switch {
	case info.MatchCount > 0:
		info.Status = status.StatusModified
	case info.RenamedTo != "":
		info.Status = status.StatusRenamed
	}
	return info
}

// ✏️ rewriteContent runs the patterns over the file and replaces it when
// anything matched
func (op *transformOperation) rewriteContent(ctx context.Context, e walk.Entry, info *status.FileInfo) error {
	content, perm, err := op.Files.ReadFile(ctx, e.Path)
	if err != nil {
		return err
	}

	res, err := op.Patterns.Replace(content, op.TextMode)
	if err != nil {
		return errors.Errorf("rewriting %s: %w", e.Path, err)
	}
	if res.Count == 0 {
		return nil
	}

	info.Matched = true
	info.MatchCount = res.Count
	op.logPatternCounts(ctx, e.Path, res.PatternCounts)

	if op.Diff != nil {
		patch, err := diff.Unified(e.Path, e.Path, content, res.Content, 0)
		if err != nil {
			return err
		}
		fmt.Fprint(op.Diff, patch)
	}

	if op.DryRun {
		return nil
	}

	created, err := op.Files.ReplaceFile(ctx, e.Path, content, res.Content, perm)
	info.BackupCreated = created
	if err != nil {
		return errors.Errorf("replacing %s: %w", e.Path, err)
	}
	return nil
}

// 🚚 rename moves the file to the path the patterns produce for it
func (op *transformOperation) rename(ctx context.Context, e walk.Entry, info *status.FileInfo) error {
	dst, ok, err := op.destination(e)
	if err != nil || !ok {
		return err
	}

	dst, err = op.claims.Resolve(ctx, op.Files, dst)
	if err != nil {
		return errors.Errorf("renaming %s: %w", e.Path, err)
	}
	op.claims.Claim(dst)
	info.RenamedTo = dst

	if op.Diff != nil {
		fmt.Fprint(op.Diff, diff.Rename(e.Path, dst))
	}

	if op.DryRun {
		return nil
	}
	if err := op.Files.MoveFile(ctx, e.Path, dst); err != nil {
		return errors.Errorf("renaming %s: %w", e.Path, err)
	}
	return nil
}

// destination rewrites the root-relative path of e. It reports false when
// the patterns leave the path alone.
func (op *transformOperation) destination(e walk.Entry) (string, bool, error) {
	res, err := op.Patterns.Replace([]byte(e.Rel), text.AtOnceMode)
	if err != nil {
		return "", false, errors.Errorf("renaming %s: %w", e.Path, err)
	}
	rel := string(res.Content)
	if res.Count == 0 || rel == e.Rel {
		return "", false, nil
	}

	cleaned := path.Clean(rel)
	if rel == "" || path.IsAbs(rel) || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") || strings.HasSuffix(rel, "/") {
		return "", false, errors.Errorf("renaming %s: invalid destination %q", e.Path, rel)
	}
	// undo and clean would take the moved file for a backup
	if suffix := op.Files.BackupSuffix(); suffix != "" && strings.HasSuffix(path.Base(cleaned), suffix) {
		return "", false, errors.Errorf("renaming %s: destination %q ends in the backup suffix %q", e.Path, rel, suffix)
	}
	return filepath.Join(e.Root, filepath.FromSlash(cleaned)), true, nil
}

func (op *transformOperation) logPatternCounts(ctx context.Context, path string, counts []int) {
	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() > zerolog.DebugLevel {
		return
	}
	patterns := op.Patterns.Patterns()
	for i, c := range counts {
		if c == 0 {
			continue
		}
		logger.Debug().
			Str("path", path).
			Str("pattern", patterns[i].String()).
			Int("line", patterns[i].Line).
			Int("matches", c).
			Msg("pattern applied")
	}
}
