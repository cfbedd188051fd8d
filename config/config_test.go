package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "iai-callgrind.yaml")
	contents := `
fail_fast: true
output_dir: bench-output
memory_limit_bytes: 134217728
regression:
  Ir: 5.0
  cycles: 10.0
summary:
  enabled: true
  pretty: true
  path: summary.json
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.FailFast {
		t.Error("expected FailFast=true")
	}
	if cfg.OutputDir != "bench-output" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "bench-output")
	}
	if v, ok := cfg.Limit("Ir"); !ok || v != 5.0 {
		t.Errorf("Limit(Ir) = (%v, %v), want (5.0, true)", v, ok)
	}
	if !cfg.Summary.Enabled || !cfg.Summary.Pretty {
		t.Error("expected summary enabled and pretty")
	}
	if cfg.MemoryLimitBytes != 134217728 {
		t.Errorf("MemoryLimitBytes = %d, want 134217728", cfg.MemoryLimitBytes)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/iai-callgrind.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefaultHasNoRegressionLimits(t *testing.T) {
	cfg := Default()
	if _, ok := cfg.Limit("Ir"); ok {
		t.Error("expected no regression limits by default")
	}
}

func TestLimitNilConfig(t *testing.T) {
	var cfg *Config
	if _, ok := cfg.Limit("Ir"); ok {
		t.Error("expected ok=false on nil config")
	}
}
