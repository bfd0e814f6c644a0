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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/repren/pkg/operation"
	"github.com/walteh/repren/pkg/status"
	"github.com/walteh/repren/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// DefaultNames are the file names Discover looks for, in order
var DefaultNames = []string{
	".reprenrc.yaml",
	".reprenrc.yml",
	".reprenrc.hcl",
	".reprenrc.json",
}

// 🔄 Pattern is one from/to pair
type Pattern struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// 🚩 Flags mirror the pattern compiler options
type Flags struct {
	Insensitive  bool `json:"insensitive,omitempty" yaml:"insensitive,omitempty"`
	Literal      bool `json:"literal,omitempty" yaml:"literal,omitempty"`
	WordBreaks   bool `json:"word_breaks,omitempty" yaml:"word_breaks,omitempty"`
	DotAll       bool `json:"dotall,omitempty" yaml:"dotall,omitempty"`
	PreserveCase bool `json:"preserve_case,omitempty" yaml:"preserve_case,omitempty"`
	AtOnce       bool `json:"at_once,omitempty" yaml:"at_once,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Patterns     []Pattern `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	PatternFile  string    `json:"pattern_file,omitempty" yaml:"pattern_file,omitempty"`
	Flags        Flags     `json:"flags,omitempty" yaml:"flags,omitempty"`
	Mode         string    `json:"mode,omitempty" yaml:"mode,omitempty"`
	BackupSuffix string    `json:"backup_suffix,omitempty" yaml:"backup_suffix,omitempty"`
	Include      []string  `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude      []string  `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	location string
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config %s: %w", path, err)
	}
	cfg.location = path

	if cfg.PatternFile != "" && !filepath.IsAbs(cfg.PatternFile) {
		abs, err := filepath.Abs(filepath.Join(filepath.Dir(path), cfg.PatternFile))
		if err != nil {
			return nil, errors.Errorf("resolving pattern_file: %w", err)
		}
		cfg.PatternFile = abs
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// 🔍 Discover returns the first DefaultNames file present in dir
func Discover(dir string) (string, bool) {
	for _, name := range DefaultNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// 🔍 Validate fills defaults and checks the configuration
func (cfg *Config) Validate() error {
	if cfg.Mode == "" {
		cfg.Mode = operation.ModeContents.String()
	}
	mode, err := operation.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	cfg.Mode = mode.String()

	if cfg.BackupSuffix == "" {
		cfg.BackupSuffix = status.DefaultBackupSuffix
	}
	if strings.ContainsAny(cfg.BackupSuffix, `/\`) {
		return errors.Errorf("backup_suffix %q must not contain a path separator", cfg.BackupSuffix)
	}

	for i, p := range cfg.Patterns {
		if p.From == "" {
			return errors.Errorf("patterns[%d].from is required", i)
		}
	}

	return nil
}

// Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔄 Pairs returns the inline patterns followed by those of PatternFile
func (cfg *Config) Pairs() ([]text.Pair, error) {
	pairs := make([]text.Pair, 0, len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		pairs = append(pairs, text.Pair{From: p.From, To: p.To})
	}
	if cfg.PatternFile != "" {
		fromFile, err := text.LoadPatternFile(cfg.PatternFile)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, fromFile...)
	}
	return pairs, nil
}

// TextFlags returns the pattern compiler flags
func (cfg *Config) TextFlags() text.Flags {
	return text.Flags{
		Insensitive:  cfg.Flags.Insensitive,
		Literal:      cfg.Flags.Literal,
		WordBreaks:   cfg.Flags.WordBreaks,
		DotAll:       cfg.Flags.DotAll,
		PreserveCase: cfg.Flags.PreserveCase,
	}
}

// TextMode returns the content matching mode
func (cfg *Config) TextMode() text.Mode {
	if cfg.Flags.AtOnce {
		return text.AtOnceMode
	}
	return text.LineMode
}

// OperationMode returns the parsed mode; Validate must have succeeded
func (cfg *Config) OperationMode() operation.Mode {
	mode, _ := operation.ParseMode(cfg.Mode)
	return mode
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	src := fmt.Sprintf("%d patterns", len(cfg.Patterns))
	if cfg.PatternFile != "" {
		src += " + " + cfg.PatternFile
	}
	return fmt.Sprintf("%s (mode=%s, backup=%s)", src, cfg.Mode, cfg.BackupSuffix)
}
