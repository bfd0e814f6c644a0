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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/repren/pkg/operation"
	"github.com/walteh/repren/pkg/text"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{name: "yaml_file", filename: ".reprenrc.yaml", want: &YAMLParser{}},
		{name: "yml_file", filename: ".reprenrc.yml", want: &YAMLParser{}},
		{name: "hcl_file", filename: ".reprenrc.hcl", want: &HCLParser{}},
		{name: "json_file", filename: ".reprenrc.json", want: &JSONParser{}},
		{name: "json_any_name", filename: "conf/Repren.JSON", want: &JSONParser{}},
		{name: "json_prefix_only", filename: "json", want: nil},
		{name: "unknown_file", filename: ".reprenrc.toml", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "should not find parser")
				return
			}
			assert.IsType(t, tt.want, got, "should get correct parser type")
		})
	}
}

// 🧪 TestLoad tests loading every supported format
func TestLoad(t *testing.T) {
	want := &Config{
		Patterns: []Pattern{
			{From: "foo", To: "bar"},
			{From: `figure ([0-9]+)`, To: `Figure \1`},
		},
		Flags:        Flags{WordBreaks: true, AtOnce: true},
		Mode:         "full",
		BackupSuffix: ".bak",
		Include:      []string{"*.go"},
		Exclude:      []string{".*", "vendor"},
	}

	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{
			name:     "yaml",
			filename: ".reprenrc.yaml",
			content: `
patterns:
  - from: foo
    to: bar
  - from: 'figure ([0-9]+)'
    to: 'Figure \1'
flags:
  word_breaks: true
  at_once: true
mode: full
backup_suffix: .bak
include: ["*.go"]
exclude: [".*", vendor]
`,
		},
		{
			name:     "hcl",
			filename: ".reprenrc.hcl",
			content: `
pattern {
  from = "foo"
  to   = "bar"
}
pattern {
  from = "figure ([0-9]+)"
  to   = "Figure \\1"
}
flags {
  word_breaks = true
  at_once     = true
}
mode          = "full"
backup_suffix = ".bak"
include       = ["*.go"]
exclude       = [".*", "vendor"]
`,
		},
		{
			name:     "json",
			filename: ".reprenrc.json",
			content: `{
  "patterns": [
    {"from": "foo", "to": "bar"},
    {"from": "figure ([0-9]+)", "to": "Figure \\1"}
  ],
  "flags": {"word_breaks": true, "at_once": true},
  "mode": "full",
  "backup_suffix": ".bak",
  "include": ["*.go"],
  "exclude": [".*", "vendor"]
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.filename, tt.content)

			cfg, err := Load(testContext(t), path)
			require.NoError(t, err)

			assert.Equal(t, path, cfg.Location())
			cfg.location = ""
			assert.Equal(t, want, cfg)
			assert.Equal(t, operation.ModeFull, cfg.OperationMode())
			assert.Equal(t, text.AtOnceMode, cfg.TextMode())
			assert.Equal(t, text.Flags{WordBreaks: true}, cfg.TextFlags())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		content     string
		errContains string
	}{
		{
			name:        "yaml_unknown_field",
			filename:    "c.yaml",
			content:     "patterns: []\nrepositories: []\n",
			errContains: "parsing YAML",
		},
		{
			name:        "json_unknown_field",
			filename:    "c.json",
			content:     `{"copies": []}`,
			errContains: "parsing JSON",
		},
		{
			name:        "json_syntax_line",
			filename:    "c.json",
			content:     "{\n  \"mode\": \"full\",\n  \"flags\": {,}\n}",
			errContains: "parsing JSON at line 3",
		},
		{
			name:        "json_wrong_type",
			filename:    "c.json",
			content:     "{\n\"patterns\": \"foo\"}",
			errContains: "at line 2",
		},
		{
			name:        "json_trailing_data",
			filename:    "c.json",
			content:     `{"mode": "full"} {"mode": "renames"}`,
			errContains: "unexpected data after the config object",
		},
		{
			name:        "hcl_syntax",
			filename:    "c.hcl",
			content:     "pattern {",
			errContains: "parsing HCL",
		},
		{
			name:        "hcl_missing_attribute",
			filename:    "c.hcl",
			content:     "pattern {\n  from = \"a\"\n}\n",
			errContains: "decoding HCL",
		},
		{
			name:        "unknown_mode",
			filename:    "c.yaml",
			content:     "mode: everything\n",
			errContains: "unknown mode",
		},
		{
			name:        "empty_from",
			filename:    "c.yaml",
			content:     "patterns:\n  - to: x\n",
			errContains: "patterns[0].from is required",
		},
		{
			name:        "suffix_with_separator",
			filename:    "c.yaml",
			content:     "backup_suffix: /tmp/x\n",
			errContains: "path separator",
		},
		{
			name:        "no_parser",
			filename:    "c.toml",
			content:     "",
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.filename, tt.content)
			_, err := Load(testContext(t), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "contents", cfg.Mode)
	assert.Equal(t, ".orig", cfg.BackupSuffix)
	assert.Equal(t, operation.ModeContents, cfg.OperationMode())
	assert.Equal(t, text.LineMode, cfg.TextMode())
}

func TestLoadEmpty(t *testing.T) {
	for _, name := range []string{".reprenrc.yaml", ".reprenrc.json"} {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), name, "")
			cfg, err := Load(testContext(t), path)
			require.NoError(t, err)
			assert.Empty(t, cfg.Patterns)
			assert.Equal(t, "contents", cfg.Mode)
		})
	}
}

func TestHCLVariables(t *testing.T) {
	path := writeConfig(t, t.TempDir(), ".reprenrc.hcl", `backup_suffix = "${default_backup_suffix}.1"`)
	cfg, err := Load(testContext(t), path)
	require.NoError(t, err)
	assert.Equal(t, ".orig.1", cfg.BackupSuffix)
}

func TestPairsWithPatternFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "patterns.tsv", "# comment\nalpha\tbeta\n\ngamma\tdelta\\n\n")
	path := writeConfig(t, dir, ".reprenrc.yaml", "patterns:\n  - from: one\n    to: two\npattern_file: patterns.tsv\n")

	cfg, err := Load(testContext(t), path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "patterns.tsv"), cfg.PatternFile, "pattern file should resolve against the config")

	pairs, err := cfg.Pairs()
	require.NoError(t, err)
	assert.Equal(t, []text.Pair{
		{From: "one", To: "two"},
		{From: "alpha", To: "beta", Line: 2},
		{From: "gamma", To: "delta\n", Line: 4},
	}, pairs)
}

func TestPatternFileRelativeToNestedConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	writeConfig(t, filepath.Join(dir, "sub"), "p.tsv", "foo\tbar\n")
	writeConfig(t, filepath.Join(dir, "sub"), ".reprenrc.yaml", "pattern_file: p.tsv\n")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load(testContext(t), filepath.Join("sub", ".reprenrc.yaml"))
	require.NoError(t, err)

	want, err := filepath.Abs(filepath.Join("sub", "p.tsv"))
	require.NoError(t, err)
	assert.Equal(t, want, cfg.PatternFile)

	// validating again must not move the path
	require.NoError(t, cfg.Validate())
	assert.Equal(t, want, cfg.PatternFile)

	pairs, err := cfg.Pairs()
	require.NoError(t, err)
	assert.Equal(t, []text.Pair{{From: "foo", To: "bar", Line: 1}}, pairs)
}

func TestPairsMissingPatternFile(t *testing.T) {
	cfg := &Config{PatternFile: filepath.Join(t.TempDir(), "nope.tsv")}
	_, err := cfg.Pairs()
	require.Error(t, err)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	_, ok := Discover(dir)
	assert.False(t, ok)

	writeConfig(t, dir, ".reprenrc.json", "{}")
	writeConfig(t, dir, ".reprenrc.hcl", "")

	path, ok := Discover(dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, ".reprenrc.hcl"), path, "hcl comes before json")
}
