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
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultBackupSuffix is appended to a path to name its backup
	DefaultBackupSuffix = ".orig"

	// TempPrefix starts the name of every temporary file we create
	TempPrefix = ".repren-tmp-"
)

// 📊 FileStatus represents what happened to a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusUnchanged            // Nothing matched
	StatusModified             // Content rewritten (possibly renamed too)
	StatusRenamed              // Only the path changed
	StatusRestored             // Backup moved back over the original
	StatusRemoved              // Backup deleted
	StatusFailed               // An error stopped processing of this file
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusModified:
		return "modified"
	case StatusRenamed:
		return "renamed"
	case StatusRestored:
		return "restored"
	case StatusRemoved:
		return "removed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the status by name
func (s FileStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// 📄 FileInfo is the event reported for every processed path
type FileInfo struct {
	Path          string     `json:"path"`                 // Path as it was found
	Status        FileStatus `json:"status"`               // What happened
	Matched       bool       `json:"matched"`              // Content had at least one match
	MatchCount    int        `json:"match_count"`          // Accepted content matches
	RenamedTo     string     `json:"renamed_to,omitempty"` // New path, if moved
	BackupCreated bool       `json:"backup_created"`       // A backup was written for this path
	DryRun        bool       `json:"dry_run,omitempty"`    // Nothing was written
	Error         error      `json:"-"`                    // Any error associated with this file
}

// 💾 FileManager handles all file system operations
type FileManager interface {
	// Core operations
	ReadFile(ctx context.Context, path string) ([]byte, os.FileMode, error)
	DeleteFile(ctx context.Context, path string) error
	FileExists(ctx context.Context, path string) (bool, error)

	// Atomic operations
	WriteFileAtomic(ctx context.Context, path string, content []byte, perm os.FileMode) error
	ReplaceFile(ctx context.Context, path string, original, content []byte, perm os.FileMode) (bool, error)
	MoveFile(ctx context.Context, src, dst string) error

	// Backup operations
	BackupSuffix() string
	BackupPath(path string) string
	IsBackup(path string) bool
	BackupFile(ctx context.Context, path string, original []byte, perm os.FileMode) (bool, error)
	RestoreFile(ctx context.Context, path string) (bool, error)
}

// 📈 StatusReporter tracks file status and reports progress
type StatusReporter interface {
	// Status tracking
	TrackFile(ctx context.Context, info FileInfo)
	ListFiles(ctx context.Context) []FileInfo
	Summary(ctx context.Context) Summary

	// Progress reporting
	StartOperation(ctx context.Context, total int)
	UpdateProgress(ctx context.Context, processed int)
	FinishOperation(ctx context.Context)
}

// 👂 Listener receives every tracked FileInfo, in order
type Listener interface {
	OnFile(ctx context.Context, info FileInfo)
}

// 🧮 Summary aggregates the tracked files of a run
type Summary struct {
	Files    int `json:"files"`    // files tracked
	Matched  int `json:"matched"`  // files whose content matched
	Matches  int `json:"matches"`  // total content matches
	Modified int `json:"modified"` // files whose content was (or would be) rewritten
	Renamed  int `json:"renamed"`  // files that were (or would be) moved
	Backups  int `json:"backups"`  // backups created
	Restored int `json:"restored"` // backups restored
	Removed  int `json:"removed"`  // backups removed
	Failed   int `json:"failed"`   // files that failed
}

// 🔧 Manager implements both FileManager and StatusReporter
type Manager struct {
	backupSuffix string          // Appended to a path to name its backup
	logger       *zerolog.Logger // Logger for status updates
	formatter    FileFormatter   // Formatter for status messages
	listener     Listener        // Optional observer of tracked files

	// swapped in tests to simulate a crash before promotion
	rename func(oldpath, newpath string) error

	// Status tracking
	mu    sync.RWMutex
	files []FileInfo

	// Progress tracking
	total     int
	processed int
}

// 🏭 New creates a new status manager
func New(backupSuffix string, logger *zerolog.Logger) *Manager {
	if backupSuffix == "" {
		backupSuffix = DefaultBackupSuffix
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Manager{
		backupSuffix: backupSuffix,
		logger:       logger,
		formatter:    NewDefaultFileFormatter(),
		rename:       os.Rename,
	}
}

// WithListener sets the observer that receives every tracked file
func (m *Manager) WithListener(l Listener) *Manager {
	m.listener = l
	return m
}

// BackupSuffix returns the suffix used to name backups
func (m *Manager) BackupSuffix() string {
	return m.backupSuffix
}

// FileManager interface implementation

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, os.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, errors.Errorf("reading file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, 0, errors.Errorf("reading file: %s is not a regular file", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, errors.Errorf("reading file: %w", err)
	}
	return content, info.Mode().Perm(), nil
}

func (m *Manager) DeleteFile(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil {
		return errors.Errorf("deleting file: %w", err)
	}
	return nil
}

func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// writeTemp writes content to a new temp file next to path and returns
// its name. The temp file is synced and carries perm.
func (m *Manager) writeTemp(path string, content []byte, perm os.FileMode) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), TempPrefix+"*")
	if err != nil {
		return "", errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", errors.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return "", errors.Errorf("setting temp file permissions: %w", err)
	}
	return tmpPath, nil
}

func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte, perm os.FileMode) error {
	tmpPath, err := m.writeTemp(path, content, perm)
	if err != nil {
		return err
	}

	// Rename temp file to target (atomic operation)
	if err := m.rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// ReplaceFile rewrites path with content. The new bytes go to a temp
// sibling first, then original is saved as the backup unless one already
// exists, and only then is the temp file renamed over path. Any failure
// leaves path untouched. It reports whether a backup was created.
func (m *Manager) ReplaceFile(ctx context.Context, path string, original, content []byte, perm os.FileMode) (bool, error) {
	tmpPath, err := m.writeTemp(path, content, perm)
	if err != nil {
		return false, err
	}

	promoted := false
	defer func() {
		if !promoted {
			os.Remove(tmpPath)
		}
	}()

	created, err := m.BackupFile(ctx, path, original, perm)
	if err != nil {
		return false, errors.Errorf("creating backup: %w", err)
	}

	if err := m.rename(tmpPath, path); err != nil {
		return created, errors.Errorf("renaming temp file: %w", err)
	}
	promoted = true

	m.logger.Debug().Str("path", path).Bool("backup_created", created).Msg("replaced file")
	return created, nil
}

func (m *Manager) MoveFile(ctx context.Context, src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}
	if err := m.rename(src, dst); err != nil {
		return errors.Errorf("moving file: %w", err)
	}
	return nil
}

func (m *Manager) BackupPath(path string) string {
	return path + m.backupSuffix
}

func (m *Manager) IsBackup(path string) bool {
	return strings.HasSuffix(path, m.backupSuffix)
}

// BackupFile saves original as the backup of path unless a backup already
// exists, so a backup always holds the oldest known content.
func (m *Manager) BackupFile(ctx context.Context, path string, original []byte, perm os.FileMode) (bool, error) {
	backupPath := m.BackupPath(path)

	exists, err := m.FileExists(ctx, backupPath)
	if err != nil {
		return false, err
	}
	if exists {
		m.logger.Debug().Str("backup", backupPath).Msg("backup already exists, keeping it")
		return false, nil
	}

	if err := m.WriteFileAtomic(ctx, backupPath, original, perm); err != nil {
		return false, errors.Errorf("writing backup: %w", err)
	}
	return true, nil
}

// RestoreFile moves the backup of path back over path. A missing backup
// is not an error; it reports false.
func (m *Manager) RestoreFile(ctx context.Context, path string) (bool, error) {
	backupPath := m.BackupPath(path)

	exists, err := m.FileExists(ctx, backupPath)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := m.rename(backupPath, path); err != nil {
		return false, errors.Errorf("restoring from backup: %w", err)
	}
	return true, nil
}

// StatusReporter interface implementation

func (m *Manager) TrackFile(ctx context.Context, info FileInfo) {
	m.mu.Lock()
	m.files = append(m.files, info)
	m.mu.Unlock()

	if info.Error != nil {
		// the console listener reports failures to the user
		m.logger.Debug().
			Err(info.Error).
			Str("path", info.Path).
			Str("status", info.Status.String()).
			Msg(m.formatter.FormatError(info.Error))
	} else {
		msg := m.formatter.FormatFileInfo(info)
		m.logger.Debug().
			Str("path", info.Path).
			Str("status", info.Status.String()).
			Int("matches", info.MatchCount).
			Str("renamed_to", info.RenamedTo).
			Bool("backup_created", info.BackupCreated).
			Msg(msg)
	}

	if m.listener != nil {
		m.listener.OnFile(ctx, info)
	}
}

func (m *Manager) ListFiles(ctx context.Context) []FileInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, len(m.files))
	copy(files, m.files)
	return files
}

func (m *Manager) Summary(ctx context.Context) Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s Summary
	for _, f := range m.files {
		s.Files++
		if f.Matched {
			s.Matched++
			s.Matches += f.MatchCount
		}
		if f.BackupCreated {
			s.Backups++
		}
		if f.RenamedTo != "" {
			s.Renamed++
		}
		switch f.Status {
		case StatusModified:
			s.Modified++
		case StatusRestored:
			s.Restored++
		case StatusRemoved:
			s.Removed++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.processed = 0
	msg := m.formatter.FormatProgress(0, total)
	m.logger.Debug().Int("total", total).Msg(msg)
}

func (m *Manager) UpdateProgress(ctx context.Context, processed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed = processed
	msg := m.formatter.FormatProgress(processed, m.total)
	m.logger.Trace().
		Int("processed", processed).
		Int("total", m.total).
		Msg(msg)
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg := m.formatter.FormatProgress(m.processed, m.total)
	m.logger.Debug().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(msg)
}
