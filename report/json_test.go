package report

import (
	"encoding/json"
	"strings"
	"testing"

	"iaicallgrind-go/model"
	"iaicallgrind-go/orchestrator"
)

func u64(v uint64) *uint64      { return &v }
func f64ptr(v float64) *float64 { return &v }

func sampleSummary() *orchestrator.BenchmarkSummary {
	return &orchestrator.BenchmarkSummary{
		Module: "my_mod",
		ID:     "bench_a",
		Callgrind: orchestrator.CallgrindSummary{
			Runs: []orchestrator.CallgrindRunSummary{
				{
					Command: "my_mod::bench_a",
					Costs: model.CostsDiff{
						Cycles: model.Diff{
							New:     u64(200),
							Old:     u64(100),
							DiffPct: f64ptr(100.0),
							Factor:  f64ptr(2.0),
						},
					},
				},
			},
		},
		Regressions: []orchestrator.RegressionRecord{
			{EventKind: "cycles", DiffPct: 100.0, Limit: 5.0},
		},
	}
}

func TestEncodeProducesValidJSON(t *testing.T) {
	data, err := Encode(sampleSummary(), false)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, data)
	}
	if decoded["module"] != "my_mod" || decoded["id"] != "bench_a" {
		t.Errorf("decoded = %+v, want module=my_mod id=bench_a", decoded)
	}
}

func TestEncodeNotCompactIndents(t *testing.T) {
	data, err := Encode(sampleSummary(), false)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("non-compact output should contain indented lines")
	}
}

func TestEncodeCompactIsSingleLine(t *testing.T) {
	data, err := Encode(sampleSummary(), true)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if strings.Contains(string(data), "\n") {
		t.Errorf("compact output should be a single line, got %q", data)
	}
}

func TestToCostsDiffRoundTripsFields(t *testing.T) {
	diff := model.CostsDiff{
		Cycles: model.Diff{New: u64(50), Old: u64(50), DiffPct: f64ptr(0), NoChange: true},
	}
	got := toCostsDiff(diff)
	if got.Cycles.NoChange != true || *got.Cycles.New != 50 {
		t.Errorf("toCostsDiff() = %+v", got)
	}
}

func TestRegressionsOmittedWhenEmpty(t *testing.T) {
	s := sampleSummary()
	s.Regressions = nil

	data, err := Encode(s, true)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if strings.Contains(string(data), "regressions") {
		t.Errorf("expected regressions field to be omitted, got %s", data)
	}
}
