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

package walk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTree(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(f), 0644))
	}
	return dir
}

func rels(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Rel)
	}
	return out
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestFiles(t *testing.T) {
	tree := []string{
		"b.txt",
		"a.go",
		"sub/c.txt",
		"sub/deep/d.go",
		".hidden",
		".git/config",
		"a.go.orig",
		"sub/.repren-tmp-123",
	}

	tests := []struct {
		name    string
		opts    Options
		want    []string
		wantErr string
	}{
		{
			name: "defaults",
			want: []string{"a.go", "b.txt", "sub/c.txt", "sub/deep/d.go"},
		},
		{
			name: "include_basename",
			opts: Options{Include: []string{"*.go"}},
			want: []string{"a.go", "sub/deep/d.go"},
		},
		{
			name: "include_relative",
			opts: Options{Include: []string{"sub/**/*.go"}},
			want: []string{"sub/deep/d.go"},
		},
		{
			name: "exclude_directory",
			opts: Options{Exclude: []string{".*", "deep"}},
			want: []string{"a.go", "b.txt", "sub/c.txt"},
		},
		{
			name: "empty_exclude_shows_hidden",
			opts: Options{Exclude: []string{}},
			want: []string{".git/config", ".hidden", "a.go", "b.txt", "sub/c.txt", "sub/deep/d.go"},
		},
		{
			name: "custom_suffix",
			opts: Options{BackupSuffix: ".bak"},
			want: []string{"a.go", "a.go.orig", "b.txt", "sub/c.txt", "sub/deep/d.go"},
		},
		{
			name:    "invalid_glob",
			opts:    Options{Include: []string{"[a"}},
			wantErr: "invalid glob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupTree(t, tree...)
			entries, err := Files(testContext(t), []string{dir}, tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rels(entries))
			for _, e := range entries {
				assert.Equal(t, dir, e.Root)
				assert.Equal(t, filepath.Join(dir, filepath.FromSlash(e.Rel)), e.Path)
			}
		})
	}
}

func TestFilesRootOrder(t *testing.T) {
	dir := setupTree(t, "x/2.txt", "x/1.txt", "y/0.txt")
	file := filepath.Join(dir, "x", "2.txt")

	entries, err := Files(testContext(t), []string{filepath.Join(dir, "y"), file, filepath.Join(dir, "x")}, Options{})
	require.NoError(t, err)

	require.Len(t, entries, 4)
	assert.Equal(t, "0.txt", entries[0].Rel)
	assert.Equal(t, Entry{Root: filepath.Join(dir, "x"), Rel: "2.txt", Path: file}, entries[1], "a file root is relative to its directory")
	assert.Equal(t, []string{"1.txt", "2.txt"}, rels(entries[2:]))
}

func TestFilesBadPathsDoNotStopTheWalk(t *testing.T) {
	dir := setupTree(t, "good/a.txt", "good/b.txt")
	missing := filepath.Join(dir, "nope")

	entries, err := Files(testContext(t), []string{missing, filepath.Join(dir, "good")}, Options{})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, missing, entries[0].Path)
	require.Error(t, entries[0].Err)
	assert.Contains(t, entries[0].Err.Error(), "reading root")
	assert.ErrorIs(t, entries[0].Err, os.ErrNotExist)

	ok, failed := Failed(entries)
	assert.Equal(t, []string{"a.txt", "b.txt"}, rels(ok))
	assert.Equal(t, entries[:1], failed)
}

func TestFilesUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	dir := setupTree(t, "a.txt", "locked/b.txt", "z.txt")
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	entries, err := Files(testContext(t), []string{dir}, Options{})
	require.NoError(t, err)

	ok, failed := Failed(entries)
	assert.Equal(t, []string{"a.txt", "z.txt"}, rels(ok))
	require.Len(t, failed, 1)
	assert.Equal(t, "locked", failed[0].Rel)
	assert.Contains(t, failed[0].Err.Error(), "walking")
}

func TestFilesCancelled(t *testing.T) {
	dir := setupTree(t, "a.txt")
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	_, err := Files(ctx, []string{dir}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBackups(t *testing.T) {
	dir := setupTree(t, "a.txt", "a.txt.orig", "sub/b.txt.orig", ".git/c.orig", ".orig")

	entries, err := Backups(testContext(t), []string{dir}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt.orig", "sub/b.txt.orig"}, rels(entries))

	entries, err = Backups(testContext(t), []string{dir}, Options{BackupSuffix: ".bak"})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
