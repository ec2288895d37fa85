// Package config loads the file-based configuration for the posterior CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI's settings. Zero values fall back to the defaults
// from Default.
type Config struct {
	// Correlation annotation threshold (strict >).
	Threshold float64 `yaml:"correlation_threshold"`

	// Feature subset for reports; empty means all coefficients.
	Features []string `yaml:"features"`

	// Unknown feature names are errors when true, silent drops otherwise.
	Strict *bool `yaml:"strict_features"`

	// Summary table layout: "auto", "positional", or "named".
	Layout string `yaml:"layout"`

	// Report output format: "text", "csv", "tsv", "markdown", "json", or
	// "html".
	Format string `yaml:"format"`

	// Plot geometry in pixels; zero height sizes to the report.
	PlotWidth  int `yaml:"plot_width"`
	PlotHeight int `yaml:"plot_height"`

	// Path of the cohort cache database.
	CachePath string `yaml:"cache_path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	strict := true
	return &Config{
		Threshold: 0.5,
		Strict:    &strict,
		Layout:    "auto",
		Format:    "text",
		PlotWidth: 800,
	}
}

// Load reads a YAML config file and fills unset fields with defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	def := Default()
	if cfg.Threshold == 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.Strict == nil {
		cfg.Strict = def.Strict
	}
	if cfg.Layout == "" {
		cfg.Layout = def.Layout
	}
	if cfg.Format == "" {
		cfg.Format = def.Format
	}
	if cfg.PlotWidth == 0 {
		cfg.PlotWidth = def.PlotWidth
	}
	return cfg, nil
}

// StrictFeatures reports whether unknown feature names should fail.
func (c *Config) StrictFeatures() bool {
	return c.Strict == nil || *c.Strict
}
