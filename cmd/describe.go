package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"iaicallgrind-go/callgrind"
	"iaicallgrind-go/orchestrator"
)

// runFile is the on-disk JSON shape of a run description, as produced by a
// harness for local/manual invocation of the runner binary. Decoding the
// wire protocol a real harness library uses to talk to this binary is out
// of scope here; this is a convenience format for driving the orchestrator
// directly from the command line.
type runFile struct {
	HarnessVersion string          `json:"harness_version"`
	HarnessBinary  string          `json:"harness_binary"`
	Before         *hookFile       `json:"before,omitempty"`
	After          *hookFile       `json:"after,omitempty"`
	Benchmarks     []benchmarkFile `json:"benchmarks"`
}

type hookFile struct {
	Module   string `json:"module"`
	Function string `json:"function"`
	Benched  bool   `json:"benched"`
}

type benchmarkFile struct {
	Module     string            `json:"module"`
	ID         string            `json:"id"`
	Kind       string            `json:"kind"` // "function" or "binary"
	Function   string            `json:"function,omitempty"`
	EntryPoint *string           `json:"entry_point,omitempty"`
	Command    []string          `json:"command,omitempty"`
	EnvClear   bool              `json:"env_clear"`
	Envs       map[string]string `json:"envs,omitempty"`
	CurrentDir string            `json:"current_dir,omitempty"`
	ExitCode   *int              `json:"exit_code,omitempty"`
	ExpectFail bool              `json:"expect_failure"`
	RawArgs    []string          `json:"raw_args,omitempty"`
	Setup      *hookFile         `json:"setup,omitempty"`
	Teardown   *hookFile         `json:"teardown,omitempty"`
}

// loadRunDescription reads and decodes a run description file at path.
func loadRunDescription(path string) (orchestrator.RunDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return orchestrator.RunDescription{}, fmt.Errorf("read run description: %w", err)
	}

	var rf runFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return orchestrator.RunDescription{}, fmt.Errorf("parse run description: %w", err)
	}

	benches := make([]orchestrator.BenchmarkDescription, 0, len(rf.Benchmarks))
	for _, b := range rf.Benchmarks {
		bench, err := toBenchmarkDescription(b)
		if err != nil {
			return orchestrator.RunDescription{}, err
		}
		benches = append(benches, bench)
	}

	return orchestrator.RunDescription{
		Before:        toHookSpec(rf.Before, orchestrator.HookBefore),
		After:         toHookSpec(rf.After, orchestrator.HookAfter),
		Benchmarks:    benches,
		HarnessBinary: rf.HarnessBinary,
		HarnessVers:   rf.HarnessVersion,
	}, nil
}

func toHookSpec(h *hookFile, kind orchestrator.HookKind) *orchestrator.HookSpec {
	if h == nil {
		return nil
	}
	return &orchestrator.HookSpec{
		Kind:     kind,
		Module:   h.Module,
		Function: h.Function,
		Benched:  h.Benched,
	}
}

func toBenchmarkDescription(b benchmarkFile) (orchestrator.BenchmarkDescription, error) {
	kind := orchestrator.BenchKindFunction
	if b.Kind == "binary" {
		kind = orchestrator.BenchKindBinary
	}

	var exitWith *callgrind.ExitPolicy
	if b.ExitCode != nil || b.ExpectFail {
		exitWith = &callgrind.ExitPolicy{Code: b.ExitCode, ExpectFailure: b.ExpectFail}
	}

	return orchestrator.BenchmarkDescription{
		Module:     b.Module,
		ID:         b.ID,
		Kind:       kind,
		Function:   b.Function,
		EntryPoint: b.EntryPoint,
		Command:    b.Command,
		Options: orchestrator.BenchOptions{
			EnvClear:   b.EnvClear,
			Envs:       b.Envs,
			CurrentDir: b.CurrentDir,
			ExitWith:   exitWith,
			RawArgs:    b.RawArgs,
		},
		Setup:    toHookSpec(b.Setup, orchestrator.HookSetup),
		Teardown: toHookSpec(b.Teardown, orchestrator.HookTeardown),
	}, nil
}
