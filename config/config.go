// Package config loads the runner's own regression-gating configuration
// from a YAML file — the ambient config layer, distinct from the harness's
// benchmark description.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the runner's on-disk configuration: per-event regression
// thresholds and the fail-fast policy.
type Config struct {
	// FailFast aborts the run as soon as a regression is detected, rather
	// than accumulating all results and reporting at the end.
	FailFast bool `yaml:"fail_fast"`

	// Regression maps a cost-model metric name ("Ir", "l1_hits",
	// "l3_hits", "ram_hits", "total_rw" or "cycles") to the maximum
	// allowed percent increase before it is reported as a regression.
	Regression map[string]float64 `yaml:"regression"`

	// OutputDir is the base directory benchmark output files are written
	// under.
	OutputDir string `yaml:"output_dir"`

	// MemoryLimitBytes, when non-zero, caps each profiled child's memory
	// via a cgroup v2 memory.max write (Linux only).
	MemoryLimitBytes int64 `yaml:"memory_limit_bytes"`

	// Summary configures machine-readable summary emission.
	Summary SummaryConfig `yaml:"summary"`
}

// SummaryConfig controls the optional JSON summary file.
type SummaryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Pretty  bool   `yaml:"pretty"`
	Path    string `yaml:"path"`
}

// Default returns the zero-configuration baseline: no regression
// thresholds configured, fail-fast disabled, summary emission disabled.
func Default() *Config {
	return &Config{
		OutputDir: "target/iai",
	}
}

// Load reads and parses a YAML configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, nil
}

// Limit returns the configured regression threshold for eventKind, and
// whether one is configured at all.
func (c *Config) Limit(eventKind string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	v, ok := c.Regression[eventKind]
	return v, ok
}
