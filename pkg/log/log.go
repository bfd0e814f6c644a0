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

package log

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/repren/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🖨️ Format selects how per-file events are printed
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name; the empty string means FormatText
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return FormatText, errors.Errorf("unknown format %q (want text or json)", s)
}

// 🔧 Options controls console output
type Options struct {
	Format Format // text or json lines
	Quiet  bool   // suppress per-file lines
	Color  bool   // colorize text output
}

// 🎯 Logger prints file events to the console and mirrors them to zerolog
type Logger struct {
	console io.Writer
	opts    Options
	mu      sync.Mutex
	enc     *json.Encoder
}

// 🏭 New creates a new console logger
func New(console io.Writer, opts Options) *Logger {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if !opts.Color {
		color.NoColor = true
		pterm.DisableColor()
	}
	return &Logger{
		console: console,
		opts:    opts,
		enc:     json.NewEncoder(console),
	}
}

// 🎨 ColorEnabled reports whether w is a terminal that should get color
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// 📝 OnFile prints one file event
func (l *Logger) OnFile(ctx context.Context, info status.FileInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	zerolog.Ctx(ctx).Trace().Str("path", info.Path).Str("status", info.Status.String()).Msg("console event")

	if l.opts.Format == FormatJSON {
		l.writeJSON(ctx, info)
		return
	}
	if l.opts.Quiet && info.Status != status.StatusFailed {
		return
	}
	if info.Status == status.StatusUnchanged {
		return
	}
	fmt.Fprintln(l.console, status.FormatFileLine(info))
}

// jsonEvent is the wire form of a file event
type jsonEvent struct {
	status.FileInfo
	Error string `json:"error,omitempty"`
}

func (l *Logger) writeJSON(ctx context.Context, info status.FileInfo) {
	ev := jsonEvent{FileInfo: info}
	if info.Error != nil {
		ev.Error = info.Error.Error()
	}
	if err := l.enc.Encode(ev); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("writing json event")
	}
}

// 📊 Summary prints the end of run table. JSON output gets a final
// summary object instead.
func (l *Logger) Summary(ctx context.Context, s status.Summary, dryRun bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	zerolog.Ctx(ctx).Debug().
		Int("files", s.Files).
		Int("matched", s.Matched).
		Int("matches", s.Matches).
		Int("modified", s.Modified).
		Int("renamed", s.Renamed).
		Int("backups", s.Backups).
		Int("restored", s.Restored).
		Int("removed", s.Removed).
		Int("failed", s.Failed).
		Bool("dry_run", dryRun).
		Msg("run summary")

	if l.opts.Format == FormatJSON {
		if err := l.enc.Encode(map[string]any{"summary": s, "dry_run": dryRun}); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("writing json summary")
		}
		return
	}

	title := "summary"
	if dryRun {
		title = "summary (dry run, nothing written)"
	}

	data := pterm.TableData{{"files", "matched", "matches", "modified", "renamed", "backups", "restored", "removed", "failed"}}
	data = append(data, []string{
		strconv.Itoa(s.Files),
		strconv.Itoa(s.Matched),
		strconv.Itoa(s.Matches),
		strconv.Itoa(s.Modified),
		strconv.Itoa(s.Renamed),
		strconv.Itoa(s.Backups),
		strconv.Itoa(s.Restored),
		strconv.Itoa(s.Removed),
		strconv.Itoa(s.Failed),
	})

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("rendering summary")
		return
	}
	fmt.Fprintf(l.console, "\n%s\n%s\n", color.New(color.Bold).Sprint(title), table)
}

// 📝 Success prints a success message
func (l *Logger) Success(msg string) {
	l.print(pterm.Success.Sprintln(msg))
}

// 📝 Warning prints a warning message
func (l *Logger) Warning(msg string) {
	l.print(pterm.Warning.Sprintln(msg))
}

// 📝 Error prints an error message
func (l *Logger) Error(msg string) {
	l.print(pterm.Error.Sprintln(msg))
}

// 📝 Errorf prints a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Warningf prints a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

func (l *Logger) print(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.opts.Format == FormatJSON {
		return
	}
	fmt.Fprint(l.console, s)
}
