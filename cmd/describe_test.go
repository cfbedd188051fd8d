package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"iaicallgrind-go/orchestrator"
)

const sampleRunJSON = `{
  "harness_version": "0.4.0",
  "harness_binary": "./target/release/my_mod_bench",
  "before": {"module": "my_mod", "function": "my_mod::before_all"},
  "benchmarks": [
    {
      "module": "my_mod",
      "id": "bench_a",
      "kind": "function",
      "function": "my_mod::bench_a",
      "setup": {"module": "my_mod", "function": "my_mod::setup", "benched": true},
      "exit_code": 0
    },
    {
      "module": "my_mod",
      "id": "bench_bin",
      "kind": "binary",
      "command": ["./target/release/my_bin", "--flag"],
      "env_clear": true,
      "expect_failure": true
    }
  ]
}`

func TestLoadRunDescriptionParsesBenchmarks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	if err := os.WriteFile(path, []byte(sampleRunJSON), 0644); err != nil {
		t.Fatal(err)
	}

	run, err := loadRunDescription(path)
	if err != nil {
		t.Fatalf("loadRunDescription() error = %v", err)
	}

	if run.HarnessVers != "0.4.0" {
		t.Errorf("HarnessVers = %q, want 0.4.0", run.HarnessVers)
	}
	if run.HarnessBinary != "./target/release/my_mod_bench" {
		t.Errorf("HarnessBinary = %q, want ./target/release/my_mod_bench", run.HarnessBinary)
	}
	if run.Before == nil || run.Before.Kind != orchestrator.HookBefore {
		t.Errorf("Before = %+v, want a HookBefore spec", run.Before)
	}
	if len(run.Benchmarks) != 2 {
		t.Fatalf("len(Benchmarks) = %d, want 2", len(run.Benchmarks))
	}

	fn := run.Benchmarks[0]
	if fn.Kind != orchestrator.BenchKindFunction || fn.Function != "my_mod::bench_a" {
		t.Errorf("Benchmarks[0] = %+v, want function bench_a", fn)
	}
	if fn.Setup == nil || !fn.Setup.Benched {
		t.Errorf("Benchmarks[0].Setup = %+v, want benched setup", fn.Setup)
	}
	if fn.Options.ExitWith == nil || fn.Options.ExitWith.Code == nil || *fn.Options.ExitWith.Code != 0 {
		t.Errorf("Benchmarks[0].Options.ExitWith = %+v, want Code=0", fn.Options.ExitWith)
	}

	bin := run.Benchmarks[1]
	if bin.Kind != orchestrator.BenchKindBinary || len(bin.Command) != 2 {
		t.Errorf("Benchmarks[1] = %+v, want binary with 2-element command", bin)
	}
	if !bin.Options.EnvClear {
		t.Error("Benchmarks[1].Options.EnvClear = false, want true")
	}
	if bin.Options.ExitWith == nil || !bin.Options.ExitWith.ExpectFailure {
		t.Errorf("Benchmarks[1].Options.ExitWith = %+v, want ExpectFailure=true", bin.Options.ExitWith)
	}
}

func TestLoadRunDescriptionMissingFile(t *testing.T) {
	if _, err := loadRunDescription("/nonexistent/run.json"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRunDescriptionInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadRunDescription(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
