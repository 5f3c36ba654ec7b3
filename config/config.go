/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for rexaudit.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"bennypowers.dev/rexaudit/report"
)

// Keys shared by flags, environment variables and the config file.
const (
	KeyOutputDir   = "output-dir"
	KeyMaxExamples = "max-examples"
	KeyTruncate    = "truncate"
)

// EnvPrefix prefixes environment overrides, e.g. REXAUDIT_OUTPUT_DIR.
const EnvPrefix = "REXAUDIT"

// Config represents the rexaudit configuration.
type Config struct {
	// OutputDir is where audit reports are written. Empty means the
	// current directory.
	OutputDir string `yaml:"outputDir" json:"outputDir"`

	// MaxExamples caps the examples shown per engine in the summary.
	MaxExamples int `yaml:"maxExamples" json:"maxExamples"`

	// Truncate is the display width of an example pattern.
	Truncate int `yaml:"truncate" json:"truncate"`

	// Files are query files (paths or globs) read by the usage command
	// when none are given on the command line.
	Files []string `yaml:"files" json:"files"`
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		MaxExamples: report.DefaultMaxExamples,
		Truncate:    report.DefaultTruncate,
	}
}

// Validate rejects values no run could use.
func (c *Config) Validate() error {
	if c.MaxExamples < 0 {
		return fmt.Errorf("maxExamples must not be negative, got %d", c.MaxExamples)
	}
	if c.Truncate < 0 {
		return fmt.Errorf("truncate must not be negative, got %d", c.Truncate)
	}
	return nil
}

// SetDefaults registers the config values as viper defaults, so that flags
// and environment variables take precedence over them.
func (c *Config) SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutputDir, c.OutputDir)
	v.SetDefault(KeyMaxExamples, c.MaxExamples)
	v.SetDefault(KeyTruncate, c.Truncate)
}
