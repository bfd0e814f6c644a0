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

// Package walk turns command line roots into an ordered list of files.
package walk

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/repren/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// DefaultExclude skips dot-files and dot-directories
var DefaultExclude = []string{".*"}

// 📄 Entry is one file found under a root. An entry with Err set is a
// path that could not be read; it is reported, not processed.
type Entry struct {
	Root string // directory the entry was found under
	Rel  string // slash-separated path relative to Root
	Path string // path as it should be opened
	Err  error  // why Path could not be walked
}

// Failed splits entries into the walkable ones and the failures
func Failed(entries []Entry) (ok, failed []Entry) {
	for _, e := range entries {
		if e.Err != nil {
			failed = append(failed, e)
		} else {
			ok = append(ok, e)
		}
	}
	return ok, failed
}

// 🔧 Options controls which files are returned
type Options struct {
	// Include globs; when set, a file must match one of them.
	Include []string
	// Exclude globs; matching files and directories are skipped.
	// A nil slice means DefaultExclude.
	Exclude []string
	// BackupSuffix names backups; they are never returned by Files.
	BackupSuffix string
}

func (o Options) excludes() []string {
	if o.Exclude == nil {
		return DefaultExclude
	}
	return o.Exclude
}

func (o Options) suffix() string {
	if o.BackupSuffix == "" {
		return status.DefaultBackupSuffix
	}
	return o.BackupSuffix
}

// Validate checks every glob
func (o Options) Validate() error {
	for _, p := range append(append([]string{}, o.Include...), o.excludes()...) {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid glob %q", p)
		}
	}
	return nil
}

// 🚶 Files returns the files to process under roots, in order. Roots keep
// their command line order; directories are walked in lexical order. A
// missing root or unreadable directory becomes an Entry with Err set and
// the walk moves on; only cancellation and bad globs return an error.
func Files(ctx context.Context, roots []string, opts Options) ([]Entry, error) {
	suffix := opts.suffix()
	return walk(ctx, roots, opts, func(e Entry) bool {
		base := filepath.Base(e.Path)
		if strings.HasSuffix(base, suffix) || strings.HasPrefix(base, status.TempPrefix) {
			return false
		}
		if len(opts.Include) == 0 {
			return true
		}
		return matchAny(opts.Include, e.Rel)
	})
}

// 💾 Backups returns the backup files under roots, in order
func Backups(ctx context.Context, roots []string, opts Options) ([]Entry, error) {
	suffix := opts.suffix()
	return walk(ctx, roots, opts, func(e Entry) bool {
		base := filepath.Base(e.Path)
		return len(base) > len(suffix) && strings.HasSuffix(base, suffix)
	})
}

func walk(ctx context.Context, roots []string, opts Options, keep func(Entry) bool) ([]Entry, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	excludes := opts.excludes()

	var entries []Entry
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			logger.Debug().Err(err).Str("root", root).Msg("skipping unreadable root")
			entries = append(entries, Entry{
				Root: filepath.Dir(root),
				Rel:  filepath.Base(root),
				Path: root,
				Err:  errors.Errorf("reading root %s: %w", root, err),
			})
			continue
		}

		// a file named on the command line is relative to its own directory
		if !info.IsDir() {
			e := Entry{Root: filepath.Dir(root), Rel: filepath.Base(root), Path: root}
			if info.Mode().IsRegular() && keep(e) {
				entries = append(entries, e)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}

			rel, rerr := filepath.Rel(root, path)
			if rerr != nil {
				return errors.Errorf("relativizing %s: %w", path, rerr)
			}
			rel = filepath.ToSlash(rel)

			// a directory that cannot be read is reported a second time with err
			if err != nil {
				logger.Debug().Err(err).Str("path", path).Msg("skipping unreadable path")
				entries = append(entries, Entry{Root: root, Rel: rel, Path: path, Err: errors.Errorf("walking %s: %w", path, err)})
				return nil
			}
			if path == root {
				return nil
			}

			if matchAny(excludes, rel) {
				logger.Trace().Str("path", path).Msg("excluded")
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}

			e := Entry{Root: root, Rel: rel, Path: path}
			if keep(e) {
				entries = append(entries, e)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Debug().Int("files", len(entries)).Strs("roots", roots).Msg("walk complete")
	return entries, nil
}

// matchAny reports whether rel or its basename matches one of patterns
func matchAny(patterns []string, rel string) bool {
	base := rel
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		base = rel[i+1:]
	}
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
