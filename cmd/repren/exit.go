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

	"github.com/spf13/cobra"
	"github.com/walteh/repren/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// Exit codes
const (
	exitOK     = 0
	exitFailed = 1 // at least one file could not be processed
	exitUsage  = 2 // bad flags, bad config or bad patterns
)

// errFilesFailed is returned when the run finished but some files failed
var errFilesFailed = errors.Base("one or more files failed")

// usageError marks errors caused by how repren was invoked
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: errors.Errorf(format, args...)}
}

// run executes the command line and returns the process exit code
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := &rootOpts{stdin: stdin, stdout: stdout, stderr: stderr}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	code := exitCode(err)
	if err != nil && !errors.Is(err, errFilesFailed) {
		fmt.Fprintf(stderr, "repren: %v\n", err)
		if code == exitUsage {
			fmt.Fprintln(stderr, "run 'repren --help' for usage")
		}
	}
	return code
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var usage *usageError
	var syntax *text.PatternSyntaxError
	if errors.As(err, &usage) || errors.As(err, &syntax) {
		return exitUsage
	}
	return exitFailed
}

// flagErrorFunc marks flag parsing failures as usage errors
func flagErrorFunc(cmd *cobra.Command, err error) error {
	return &usageError{err: err}
}
