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
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/repren/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🏃 OperationRunner executes operations
type OperationRunner struct {
	logger *zerolog.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger) *OperationRunner {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &OperationRunner{
		logger: logger,
	}
}

// 🏃 Run executes an operation over entries, one file at a time. The
// runner's logger is attached to ctx unless ctx already carries one.
func (r *OperationRunner) Run(ctx context.Context, op Operation, entries []walk.Entry) error {
	if zerolog.Ctx(ctx).GetLevel() == zerolog.Disabled {
		ctx = r.logger.WithContext(ctx)
	}
	logger := zerolog.Ctx(ctx).With().Str("operation", op.Name()).Logger()
	ctx = logger.WithContext(ctx)

	start := time.Now()
	logger.Debug().Int("files", len(entries)).Msg("starting operation")

	if err := op.Execute(ctx, entries); err != nil {
		logger.Debug().Err(err).Dur("elapsed", time.Since(start)).Msg("operation stopped")
		return errors.Errorf("running %s: %w", op.Name(), err)
	}

	logger.Debug().Dur("elapsed", time.Since(start)).Msg("operation complete")
	return nil
}
