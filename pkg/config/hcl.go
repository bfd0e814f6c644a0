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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/repren/pkg/status"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default_backup_suffix": cty.StringVal(status.DefaultBackupSuffix),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		Patterns []struct {
			From string `hcl:"from"`
			To   string `hcl:"to"`
		} `hcl:"pattern,block"`
		PatternFile string `hcl:"pattern_file,optional"`
		Flags       *struct {
			Insensitive  bool `hcl:"insensitive,optional"`
			Literal      bool `hcl:"literal,optional"`
			WordBreaks   bool `hcl:"word_breaks,optional"`
			DotAll       bool `hcl:"dotall,optional"`
			PreserveCase bool `hcl:"preserve_case,optional"`
			AtOnce       bool `hcl:"at_once,optional"`
		} `hcl:"flags,block"`
		Mode         string   `hcl:"mode,optional"`
		BackupSuffix string   `hcl:"backup_suffix,optional"`
		Include      []string `hcl:"include,optional"`
		Exclude      []string `hcl:"exclude,optional"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		PatternFile:  hclCfg.PatternFile,
		Mode:         hclCfg.Mode,
		BackupSuffix: hclCfg.BackupSuffix,
		Include:      hclCfg.Include,
		Exclude:      hclCfg.Exclude,
	}
	for _, p := range hclCfg.Patterns {
		cfg.Patterns = append(cfg.Patterns, Pattern{From: p.From, To: p.To})
	}
	if hclCfg.Flags != nil {
		cfg.Flags = Flags{
			Insensitive:  hclCfg.Flags.Insensitive,
			Literal:      hclCfg.Flags.Literal,
			WordBreaks:   hclCfg.Flags.WordBreaks,
			DotAll:       hclCfg.Flags.DotAll,
			PreserveCase: hclCfg.Flags.PreserveCase,
			AtOnce:       hclCfg.Flags.AtOnce,
		}
	}

	return cfg, nil
}
