package orchestrator

import (
	"testing"

	"iaicallgrind-go/config"
	"iaicallgrind-go/model"
)

func f64(v float64) *float64 { return &v }

func TestCheckRegressionsExceedsLimit(t *testing.T) {
	o := &Orchestrator{Cfg: &config.Config{Regression: map[string]float64{"cycles": 5.0}}}

	diff := model.CostsDiff{
		Cycles: model.Diff{DiffPct: f64(10.0)},
	}

	records := o.checkRegressions(diff)
	if len(records) != 1 {
		t.Fatalf("checkRegressions() = %v, want 1 record", records)
	}
	if records[0].EventKind != "cycles" || records[0].DiffPct != 10.0 || records[0].Limit != 5.0 {
		t.Errorf("record = %+v, want {cycles 10 5}", records[0])
	}
}

func TestCheckRegressionsWithinLimit(t *testing.T) {
	o := &Orchestrator{Cfg: &config.Config{Regression: map[string]float64{"cycles": 20.0}}}

	diff := model.CostsDiff{
		Cycles: model.Diff{DiffPct: f64(10.0)},
	}

	if records := o.checkRegressions(diff); len(records) != 0 {
		t.Errorf("checkRegressions() = %v, want no records", records)
	}
}

func TestCheckRegressionsNoLimitConfigured(t *testing.T) {
	o := &Orchestrator{Cfg: config.Default()}

	diff := model.CostsDiff{
		Cycles: model.Diff{DiffPct: f64(1000.0)},
	}

	if records := o.checkRegressions(diff); len(records) != 0 {
		t.Errorf("checkRegressions() = %v, want no records without configured limits", records)
	}
}

func TestDescribeCommandBinary(t *testing.T) {
	bench := BenchmarkDescription{Kind: BenchKindBinary, Command: []string{"./bin", "--flag"}}
	if got, want := describeCommand(bench), "./bin --flag"; got != want {
		t.Errorf("describeCommand() = %q, want %q", got, want)
	}
}

func TestDescribeCommandFunction(t *testing.T) {
	bench := BenchmarkDescription{Kind: BenchKindFunction, Module: "my_mod", Function: "my_mod::bench_a"}
	if got, want := describeCommand(bench), "my_mod::bench_a"; got != want {
		t.Errorf("describeCommand() = %q, want %q", got, want)
	}
}

func TestBenchmarkInvocationBinaryUsesOwnCommand(t *testing.T) {
	bench := BenchmarkDescription{Kind: BenchKindBinary, Command: []string{"./target/release/my_bin", "--flag"}}
	exe, args := benchmarkInvocation("/path/to/harness", bench)
	if exe != "./target/release/my_bin" || len(args) != 1 || args[0] != "--flag" {
		t.Errorf("benchmarkInvocation() = (%q, %v), want (\"./target/release/my_bin\", [\"--flag\"])", exe, args)
	}
}

func TestBenchmarkInvocationFunctionReinvokesHarness(t *testing.T) {
	bench := BenchmarkDescription{Kind: BenchKindFunction, Module: "my_mod", Function: "my_mod::bench_a"}
	exe, args := benchmarkInvocation("/path/to/harness", bench)
	want := []string{"--iai-run", "bench", "my_mod::bench_a"}
	if exe != "/path/to/harness" || len(args) != len(want) {
		t.Fatalf("benchmarkInvocation() = (%q, %v), want (%q, %v)", exe, args, "/path/to/harness", want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestHookSpecSelector(t *testing.T) {
	tests := []struct {
		kind HookKind
		want string
	}{
		{HookSetup, "setup"},
		{HookTeardown, "teardown"},
		{HookBefore, "before"},
		{HookAfter, "after"},
	}
	for _, tt := range tests {
		h := HookSpec{Kind: tt.kind}
		if got := h.selector(); got != tt.want {
			t.Errorf("selector() for kind %v = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestHookSpecEffectiveBenchedForcesSetupTeardown(t *testing.T) {
	setup := HookSpec{Kind: HookSetup, Benched: true}
	if setup.effectiveBenched() {
		t.Error("setup hook must never be benched even if Benched=true")
	}

	teardown := HookSpec{Kind: HookTeardown, Benched: true}
	if teardown.effectiveBenched() {
		t.Error("teardown hook must never be benched even if Benched=true")
	}

	before := HookSpec{Kind: HookBefore, Benched: true}
	if !before.effectiveBenched() {
		t.Error("before hook should respect Benched=true")
	}
}
