package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "posterior.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Threshold != 0.5 {
		t.Errorf("default threshold = %v, want 0.5", cfg.Threshold)
	}
	if !cfg.StrictFeatures() {
		t.Error("default should be strict")
	}
	if cfg.Format != "text" || cfg.Layout != "auto" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
correlation_threshold: 0.7
features: [TP53, KRAS]
strict_features: false
format: csv
plot_width: 640
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Threshold != 0.7 {
		t.Errorf("threshold = %v, want 0.7", cfg.Threshold)
	}
	if len(cfg.Features) != 2 || cfg.Features[0] != "TP53" {
		t.Errorf("features = %v", cfg.Features)
	}
	if cfg.StrictFeatures() {
		t.Error("strict_features: false not applied")
	}
	if cfg.Format != "csv" || cfg.PlotWidth != 640 {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset fields fall back to defaults.
	if cfg.Layout != "auto" {
		t.Errorf("layout default = %q", cfg.Layout)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "format: markdown\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "markdown" {
		t.Errorf("format = %q", cfg.Format)
	}
	if cfg.Threshold != 0.5 || !cfg.StrictFeatures() {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "format: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
