// Package orchestrator drives the full benchmark run: rotating output
// files, invoking the profiler, parsing its output, diffing against the
// prior baseline, and printing or persisting the result.
package orchestrator

import (
	"iaicallgrind-go/callgrind"
	"iaicallgrind-go/model"
)

// BenchKind distinguishes a function benchmark (measured via a sentinel-
// anchored CallgrindParser) from a binary benchmark (measured via the
// whole-process SummaryParser).
type BenchKind int

const (
	// BenchKindFunction measures a single function by sentinel anchor.
	BenchKindFunction BenchKind = iota
	// BenchKindBinary measures an entire external binary's run via the
	// summary:/totals: line, with no sentinel to anchor on.
	BenchKindBinary
)

// HookKind distinguishes the four lifecycle hook slots.
type HookKind int

const (
	HookBefore HookKind = iota
	HookSetup
	HookTeardown
	HookAfter
)

// HookSpec describes one lifecycle hook. A hook is either plain (run once,
// output discarded unless log level admits it) or benched (itself profiled
// under its own sentinel toggle). Setup and teardown are never benched,
// regardless of Benched, since they run between measured benches and must
// not perturb the profile.
type HookSpec struct {
	Kind     HookKind
	Module   string
	Function string
	Benched  bool
}

// sentinelString returns the "module::function" identity of this hook.
func (h HookSpec) sentinelString() string {
	return h.Module + "::" + h.Function
}

// selector returns the "--iai-run" argument identifying this hook's kind to
// the re-invoked harness binary.
func (h HookSpec) selector() string {
	switch h.Kind {
	case HookSetup:
		return "setup"
	case HookTeardown:
		return "teardown"
	case HookBefore:
		return "before"
	case HookAfter:
		return "after"
	default:
		return "before"
	}
}

// effectiveBenched reports whether this hook actually runs under the
// profiler: setup/teardown are forced to plain execution.
func (h HookSpec) effectiveBenched() bool {
	if h.Kind == HookSetup || h.Kind == HookTeardown {
		return false
	}
	return h.Benched
}

// BenchmarkDescription identifies one benchmark as decoded from the
// harness, independent of the transport that shipped it.
type BenchmarkDescription struct {
	Module   string
	ID       string
	Kind     BenchKind
	Function string // fully-qualified function name, for BenchKindFunction

	// EntryPoint overrides collect-atstart behavior: when set, collection
	// starts disabled and a toggle-collect is injected for this pattern.
	EntryPoint *string

	// Command is the benchmark binary and its arguments, for
	// BenchKindBinary.
	Command []string

	// Options carries the per-benchmark CallgrindCommand knobs (exit
	// policy, environment, working directory, raw callgrind arguments).
	Options BenchOptions

	// Setup and Teardown run once around this benchmark only.
	Setup    *HookSpec
	Teardown *HookSpec
}

// BenchOptions configures one benchmark's invocation. ASLR suppression is
// not among these: it is a process-global read once from IAI_ALLOW_ASLR at
// startup, not a per-benchmark override.
type BenchOptions struct {
	EnvClear   bool
	Envs       map[string]string
	CurrentDir string
	ExitWith   *callgrind.ExitPolicy
	RawArgs    []string
}

// RunDescription is the full decoded harness payload: the before/after
// hooks and the ordered list of benchmarks. The output directory is not
// part of this payload: it is runner-side configuration, supplied once to
// Orchestrator.New.
//
// HarnessBinary is the compiled binary containing the functions under
// measurement. Function benchmarks and hooks are not directly executable;
// they are re-invoked as "<HarnessBinary> --iai-run <selector> <name>",
// mirroring the re-invocation protocol a real harness library uses to ask
// its own binary to run exactly one sentinel function under the profiler.
type RunDescription struct {
	Before        *HookSpec
	After         *HookSpec
	Benchmarks    []BenchmarkDescription
	HarnessBinary string
	HarnessVers   string
}

// CostsSummary maps an event kind tag to its diff against the baseline.
type CostsSummary map[string]model.Diff

// CallgrindRunSummary is the result of one sub-invocation (the benchmark
// itself, or a benched hook run under its own sentinel).
type CallgrindRunSummary struct {
	Command string
	Costs   model.CostsDiff
}

// CallgrindSummary carries every sub-invocation recorded for one benchmark.
// Orchestrator.Run records only the benchmark's own invocation here; benched
// hook runs are not recorded.
type CallgrindSummary struct {
	Runs []CallgrindRunSummary
}

// BenchmarkSummary identifies one benchmark and carries its full result.
type BenchmarkSummary struct {
	Module      string
	ID          string
	Callgrind   CallgrindSummary
	Regressions []RegressionRecord
}

// RegressionRecord names one exceeded regression threshold.
type RegressionRecord struct {
	EventKind string
	DiffPct   float64
	Limit     float64
}
