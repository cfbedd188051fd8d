// Package report encodes a BenchmarkSummary as the machine-readable JSON
// companion to the console output.
//
// It is built directly on the standard library's encoding/json rather than
// a third-party package: a one-shot struct-to-JSON marshal of a summary
// that's already fully computed gains nothing from a streaming or
// reflection-avoiding encoder,
// and none of the serialization libraries pulled in elsewhere in this
// module fit the job any better than the standard library does.
package report

import (
	"encoding/json"

	"iaicallgrind-go/model"
	"iaicallgrind-go/orchestrator"
)

// eventDiff is the JSON shape of a single model.Diff.
type eventDiff struct {
	New      *uint64  `json:"new,omitempty"`
	Old      *uint64  `json:"old,omitempty"`
	DiffPct  *float64 `json:"diff_pct,omitempty"`
	Factor   *float64 `json:"factor,omitempty"`
	NoChange bool     `json:"no_change"`
}

// costsDiff is the JSON shape of model.CostsDiff.
type costsDiff struct {
	Instructions eventDiff `json:"instructions"`
	L1Hits       eventDiff `json:"l1_hits"`
	L3Hits       eventDiff `json:"l3_hits"`
	RAMHits      eventDiff `json:"ram_hits"`
	TotalRW      eventDiff `json:"total_rw"`
	Cycles       eventDiff `json:"cycles"`
}

// runSummary is the JSON shape of one CallgrindRunSummary.
type runSummary struct {
	Command string    `json:"command"`
	Costs   costsDiff `json:"costs"`
}

// regression is the JSON shape of one RegressionRecord.
type regression struct {
	EventKind string  `json:"event_kind"`
	DiffPct   float64 `json:"diff_pct"`
	Limit     float64 `json:"limit"`
}

// summary is the top-level JSON shape of one BenchmarkSummary.
type summary struct {
	Module      string       `json:"module"`
	ID          string       `json:"id"`
	Runs        []runSummary `json:"runs"`
	Regressions []regression `json:"regressions,omitempty"`
}

// Encode renders one BenchmarkSummary as JSON. When compact is true the
// result is a single line with no extraneous whitespace, suitable for
// appending to a log stream; otherwise it is indented for a standalone
// summary file.
func Encode(s *orchestrator.BenchmarkSummary, compact bool) ([]byte, error) {
	out := toJSON(*s)
	if compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSON(s orchestrator.BenchmarkSummary) summary {
	runs := make([]runSummary, 0, len(s.Callgrind.Runs))
	for _, r := range s.Callgrind.Runs {
		runs = append(runs, runSummary{
			Command: r.Command,
			Costs:   toCostsDiff(r.Costs),
		})
	}

	regressions := make([]regression, 0, len(s.Regressions))
	for _, r := range s.Regressions {
		regressions = append(regressions, regression{
			EventKind: r.EventKind,
			DiffPct:   r.DiffPct,
			Limit:     r.Limit,
		})
	}

	return summary{
		Module:      s.Module,
		ID:          s.ID,
		Runs:        runs,
		Regressions: regressions,
	}
}

func toCostsDiff(c model.CostsDiff) costsDiff {
	return costsDiff{
		Instructions: toEventDiff(c.Instructions),
		L1Hits:       toEventDiff(c.L1Hits),
		L3Hits:       toEventDiff(c.L3Hits),
		RAMHits:      toEventDiff(c.RAMHits),
		TotalRW:      toEventDiff(c.TotalRW),
		Cycles:       toEventDiff(c.Cycles),
	}
}

func toEventDiff(d model.Diff) eventDiff {
	return eventDiff{
		New:      d.New,
		Old:      d.Old,
		DiffPct:  d.DiffPct,
		Factor:   d.Factor,
		NoChange: d.NoChange,
	}
}
