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

package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/repren/pkg/config"
)

func ExampleLoad() {
	dir, err := os.MkdirTemp("", "reprenrc")
	if err != nil {
		fmt.Printf("Error creating dir: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, ".reprenrc.yaml")
	content := "patterns:\n  - from: foo\n    to: bar\nflags:\n  preserve_case: true\nmode: full\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err := config.Load(context.Background(), path)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Println(cfg)
	fmt.Println(cfg.Flags.PreserveCase)
	// Output:
	// 1 patterns (mode=full, backup=.orig)
	// true
}
