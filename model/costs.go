// Package model computes the derived cost model from a raw CostVector and
// produces percent/factor diffs against a prior baseline.
package model

import (
	"fmt"

	"iaicallgrind-go/costs"
)

// Costs holds the derived quantities used for the console summary and the
// regression check, computed from a raw CostVector per the cache-simulation
// cost model.
type Costs struct {
	Instructions uint64
	RAMHits      uint64
	L1Miss       uint64
	L3Hits       uint64
	TotalRW      uint64
	L1Hits       uint64
	Cycles       uint64
}

// FromVector derives Costs from v, applying the Turner-Trauring cycle
// estimator:
//
//	ram_hits = ILmr + DLmr + DLmw
//	l1_miss  = I1mr + D1mr + D1mw
//	l3_hits  = l1_miss - ram_hits
//	total_rw = Ir + Dr + Dw
//	l1_hits  = total_rw - l3_hits - ram_hits
//	cycles   = l1_hits + 5*l3_hits + 35*ram_hits
//
// FromVector returns an error if total_rw != l1_hits+l3_hits+ram_hits,
// which can only happen here via underflow on a malformed vector — the
// identity otherwise holds by construction.
func FromVector(v *costs.Vector) (Costs, error) {
	ramHits := v.MustGet(costs.ILmr) + v.MustGet(costs.DLmr) + v.MustGet(costs.DLmw)
	l1Miss := v.MustGet(costs.I1mr) + v.MustGet(costs.D1mr) + v.MustGet(costs.D1mw)

	var l3Hits uint64
	if l1Miss >= ramHits {
		l3Hits = l1Miss - ramHits
	}

	totalRW := v.MustGet(costs.Ir) + v.MustGet(costs.Dr) + v.MustGet(costs.Dw)

	var l1Hits uint64
	if totalRW >= l3Hits+ramHits {
		l1Hits = totalRW - l3Hits - ramHits
	}

	cycles := l1Hits + 5*l3Hits + 35*ramHits

	c := Costs{
		Instructions: v.MustGet(costs.Ir),
		RAMHits:      ramHits,
		L1Miss:       l1Miss,
		L3Hits:       l3Hits,
		TotalRW:      totalRW,
		L1Hits:       l1Hits,
		Cycles:       cycles,
	}

	if l1Hits+l3Hits+ramHits != totalRW {
		return c, fmt.Errorf("model: cost invariant violated: l1_hits(%d)+l3_hits(%d)+ram_hits(%d) != total_rw(%d)",
			l1Hits, l3Hits, ramHits, totalRW)
	}

	return c, nil
}
