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
	"io"

	"github.com/spf13/cobra"
)

// rootOpts holds every flag of the root command
type rootOpts struct {
	from, to     string
	patternFile  string
	configFile   string
	full         bool
	renames      bool
	literal      bool
	insensitive  bool
	wordBreaks   bool
	dotAll       bool
	preserveCase bool
	atOnce       bool
	dryRun       bool
	diff         bool
	backupSuffix string
	undo         bool
	cleanBackups bool
	include      []string
	exclude      []string
	walkOnly     bool
	quiet        bool
	format       string
	noColor      bool
	debug        bool

	stdin          io.Reader
	stdout, stderr io.Writer
}

// newRootCmd creates the repren command
func newRootCmd(opts *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repren [flags] [path ...]",
		Short: "Rewrite file contents and names with many patterns at once",
		Long: `repren applies a set of regular expression replacements to file contents
and, optionally, to file and directory names. All patterns are matched in a
single pass, so they can swap or rotate identifiers.

Patterns come from --from/--to, from a pattern file (-p) holding one
"<regex><TAB><replacement>" pair per line, or from a .reprenrc config file.
Replacements may use \1 through \9 to refer to capture groups.

Every rewritten file keeps its original content next to it with the backup
suffix (.orig by default). Use --undo to restore those backups and
--clean-backups to delete them.

With no paths, repren filters stdin to stdout.`,
		Example: `  repren --from foo --to bar src/
  repren -p patterns.tsv --full --word-breaks .
  repren --from old_name --to new_name --preserve-case -n --diff .
  repren --undo .`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
	}
	cmd.SetFlagErrorFunc(flagErrorFunc)

	addRootFlags(cmd, opts)
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// addRootFlags adds the flags of the root command
func addRootFlags(cmd *cobra.Command, opts *rootOpts) {
	f := cmd.Flags()

	// patterns
	f.StringVar(&opts.from, "from", "", "pattern to replace (use with --to)")
	f.StringVar(&opts.to, "to", "", "replacement for --from")
	f.StringVarP(&opts.patternFile, "patterns", "p", "", "file of tab separated pattern pairs")
	f.StringVarP(&opts.configFile, "config", "c", "", "config file (default: .reprenrc.{yaml,yml,hcl,json} if present)")

	// compiler flags
	f.BoolVar(&opts.literal, "literal", false, "treat patterns as literal strings")
	f.BoolVarP(&opts.insensitive, "insensitive", "i", false, "match case-insensitively")
	f.BoolVarP(&opts.wordBreaks, "word-breaks", "b", false, "only match whole words")
	f.BoolVar(&opts.dotAll, "dotall", false, "let . match newlines (with --at-once)")
	f.BoolVar(&opts.preserveCase, "preserve-case", false, "also replace camelCase, UpperCamel and UPPER_UNDERSCORE variants")
	f.BoolVar(&opts.atOnce, "at-once", false, "match whole files instead of line by line")

	// what to change
	f.BoolVar(&opts.full, "full", false, "rewrite contents and rename files")
	f.BoolVar(&opts.renames, "renames", false, "rename files only")
	f.BoolVar(&opts.undo, "undo", false, "restore files from their backups")
	f.BoolVar(&opts.cleanBackups, "clean-backups", false, "delete backups")
	f.StringVar(&opts.backupSuffix, "backup-suffix", "", "suffix for backup files (default .orig)")

	// which files
	f.StringSliceVar(&opts.include, "include", nil, "only process files matching these globs")
	f.StringSliceVar(&opts.exclude, "exclude", nil, "skip files and directories matching these globs (default .*)")
	f.BoolVar(&opts.walkOnly, "walk-only", false, "print the files that would be processed and exit")

	// output
	f.BoolVarP(&opts.dryRun, "dry-run", "n", false, "show what would change without writing")
	f.BoolVar(&opts.diff, "diff", false, "print a unified diff of every change (implies --dry-run)")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "only print failures and the summary")
	f.StringVar(&opts.format, "format", "text", "output format: text or json")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	f.BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
}
