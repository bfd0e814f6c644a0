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

package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/repren/pkg/config"
	"github.com/walteh/repren/pkg/log"
	"github.com/walteh/repren/pkg/operation"
	"github.com/walteh/repren/pkg/status"
	"github.com/walteh/repren/pkg/text"
	"github.com/walteh/repren/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// runRoot is the body of the root command
func runRoot(cmd *cobra.Command, opts *rootOpts, args []string) error {
	format, err := log.ParseFormat(opts.format)
	if err != nil {
		return &usageError{err: err}
	}
	if err := checkFlags(cmd, opts, format); err != nil {
		return err
	}

	colorOn := !opts.noColor && log.ColorEnabled(opts.stdout)
	logger := setupLogging(opts, format, colorOn)
	ctx := logger.WithContext(cmd.Context())

	cfg, err := loadConfig(ctx, cmd, opts)
	if err != nil {
		return &usageError{err: err}
	}
	logger.Debug().Str("config", cfg.String()).Str("location", cfg.Location()).Msg("configuration ready")

	walkOpts := walk.Options{
		Include:      cfg.Include,
		Exclude:      cfg.Exclude,
		BackupSuffix: cfg.BackupSuffix,
	}
	if err := walkOpts.Validate(); err != nil {
		return &usageError{err: err}
	}

	console := log.New(opts.stdout, log.Options{Format: format, Quiet: opts.quiet, Color: colorOn})
	mgr := status.New(cfg.BackupSuffix, &logger).WithListener(console)
	dryRun := opts.dryRun || opts.diff

	if opts.undo || opts.cleanBackups {
		if len(args) == 0 {
			return usagef("--undo and --clean-backups need at least one path")
		}
		entries, err := walk.Backups(ctx, args, walkOpts)
		if err != nil {
			return err
		}
		if opts.walkOnly {
			return printEntries(opts, format, entries)
		}

		base := operation.Options{DryRun: dryRun, Files: mgr, Status: mgr}
		var op operation.Operation
		if opts.undo {
			op, err = operation.NewUndoOperation(base)
		} else {
			op, err = operation.NewCleanOperation(base)
		}
		if err != nil {
			return err
		}
		summary, err := execute(ctx, op, entries, mgr, console, dryRun)
		if err != nil && !errors.Is(err, errFilesFailed) {
			return err
		}
		verb := "would "
		if !dryRun {
			verb = ""
		}
		if opts.undo {
			console.Success(fmt.Sprintf("%srestore %d of %d backups", verb, summary.Restored, len(entries)))
		} else {
			console.Success(fmt.Sprintf("%sremove %d of %d backups", verb, summary.Removed, len(entries)))
		}
		return err
	}

	pairs, err := patternPairs(cmd, opts, cfg)
	if err != nil {
		return err
	}
	patterns, err := text.Compile(pairs, cfg.TextFlags())
	if err != nil {
		return err
	}
	for _, p := range patterns.Patterns() {
		logger.Debug().Int("priority", p.Priority).Int("line", p.Line).Str("pattern", p.String()).Msg("compiled pattern")
	}

	if len(args) == 0 {
		if opts.walkOnly {
			return usagef("--walk-only needs at least one path")
		}
		if cfg.OperationMode() != operation.ModeContents {
			return usagef("renaming needs at least one path")
		}
		return filterStdin(ctx, opts, patterns, cfg.TextMode())
	}

	entries, err := walk.Files(ctx, args, walkOpts)
	if err != nil {
		return err
	}
	if opts.walkOnly {
		return printEntries(opts, format, entries)
	}

	var diffOut io.Writer
	if opts.diff {
		diffOut = opts.stdout
	}
	op, err := operation.NewTransformOperation(operation.Options{
		Patterns: patterns,
		TextMode: cfg.TextMode(),
		Mode:     cfg.OperationMode(),
		DryRun:   dryRun,
		Diff:     diffOut,
		Files:    mgr,
		Status:   mgr,
	})
	if err != nil {
		return err
	}
	_, err = execute(ctx, op, entries, mgr, console, dryRun)
	return err
}

// checkFlags rejects flag combinations that make no sense
func checkFlags(cmd *cobra.Command, opts *rootOpts, format log.Format) error {
	flags := cmd.Flags()
	switch {
	case opts.full && opts.renames:
		return usagef("--full and --renames are mutually exclusive")
	case opts.undo && opts.cleanBackups:
		return usagef("--undo and --clean-backups are mutually exclusive")
	case flags.Changed("from") != flags.Changed("to"):
		return usagef("--from and --to must be given together")
	case opts.diff && format == log.FormatJSON:
		return usagef("--diff cannot be combined with --format json")
	}
	return nil
}

// setupLogging builds the diagnostic logger; it writes to stderr so stdout
// stays clean for results
func setupLogging(opts *rootOpts, format log.Format, colorOn bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if opts.debug {
		level = zerolog.DebugLevel
	}

	var out io.Writer = opts.stderr
	if format == log.FormatText {
		out = zerolog.ConsoleWriter{Out: opts.stderr, NoColor: !colorOn}
	}

	return zerolog.New(out).Level(level).With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}

// loadConfig reads the config file, if any, and lays the flags over it
func loadConfig(ctx context.Context, cmd *cobra.Command, opts *rootOpts) (*config.Config, error) {
	cfg := &config.Config{}

	path := opts.configFile
	if path == "" {
		if found, ok := config.Discover("."); ok {
			path = found
		}
	}
	if path != "" {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	overrideBool := func(name string, dst *bool, v bool) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	overrideBool("literal", &cfg.Flags.Literal, opts.literal)
	overrideBool("insensitive", &cfg.Flags.Insensitive, opts.insensitive)
	overrideBool("word-breaks", &cfg.Flags.WordBreaks, opts.wordBreaks)
	overrideBool("dotall", &cfg.Flags.DotAll, opts.dotAll)
	overrideBool("preserve-case", &cfg.Flags.PreserveCase, opts.preserveCase)
	overrideBool("at-once", &cfg.Flags.AtOnce, opts.atOnce)

	switch {
	case opts.full:
		cfg.Mode = operation.ModeFull.String()
	case opts.renames:
		cfg.Mode = operation.ModeRenames.String()
	}
	if flags.Changed("backup-suffix") {
		cfg.BackupSuffix = opts.backupSuffix
	}
	if flags.Changed("include") {
		cfg.Include = opts.include
	}
	if flags.Changed("exclude") {
		cfg.Exclude = opts.exclude
	}
	if flags.Changed("patterns") {
		abs, err := filepath.Abs(opts.patternFile)
		if err != nil {
			return nil, errors.Errorf("resolving pattern file: %w", err)
		}
		cfg.PatternFile = abs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// patternPairs collects --from/--to followed by the configured patterns
func patternPairs(cmd *cobra.Command, opts *rootOpts, cfg *config.Config) ([]text.Pair, error) {
	var pairs []text.Pair
	if cmd.Flags().Changed("from") {
		pairs = append(pairs, text.Pair{From: opts.from, To: opts.to})
	}

	configured, err := cfg.Pairs()
	if err != nil {
		var syntax *text.PatternSyntaxError
		if errors.As(err, &syntax) {
			return nil, err
		}
		return nil, &usageError{err: err}
	}
	pairs = append(pairs, configured...)

	if len(pairs) == 0 {
		return nil, usagef("no patterns given: use --from/--to, --patterns or a config file")
	}
	return pairs, nil
}

// filterStdin rewrites stdin to stdout; nothing on disk is touched
func filterStdin(ctx context.Context, opts *rootOpts, patterns *text.PatternSet, mode text.Mode) error {
	res, err := text.NewReplacer(patterns, mode).ReplaceText(ctx, opts.stdin)
	if err != nil {
		return err
	}
	if _, err := opts.stdout.Write(res.ModifiedContent); err != nil {
		return errors.Errorf("writing stdout: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Int("matches", res.ReplacementCount).Msg("filtered stdin")
	return nil
}

// execute runs op and prints the summary
func execute(ctx context.Context, op operation.Operation, entries []walk.Entry, mgr *status.Manager, console *log.Logger, dryRun bool) (status.Summary, error) {
	if len(entries) == 0 {
		console.Warning("no files to process")
	}

	err := operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, op, entries)

	summary := mgr.Summary(ctx)
	console.Summary(ctx, summary, dryRun)

	if err != nil {
		return summary, err
	}
	if summary.Failed > 0 {
		console.Errorf("%d of %d files failed", summary.Failed, summary.Files)
		return summary, errFilesFailed
	}
	return summary, nil
}

// printEntries lists the walkable entries on stdout and warns about the
// rest on stderr
func printEntries(opts *rootOpts, format log.Format, entries []walk.Entry) error {
	ok, failed := walk.Failed(entries)
	for _, e := range ok {
		if _, err := fmt.Fprintln(opts.stdout, e.Path); err != nil {
			return errors.Errorf("writing stdout: %w", err)
		}
	}
	if len(failed) == 0 {
		return nil
	}

	warn := log.New(opts.stderr, log.Options{Format: format, Color: !opts.noColor && log.ColorEnabled(opts.stderr)})
	for _, e := range failed {
		warn.Warningf("skipping %v", e.Err)
	}
	return errFilesFailed
}
