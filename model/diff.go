package model

// Diff is a per-metric comparison between a new and an old measurement. At
// least one of New/Old is present; if both are, DiffPct is present, and
// Factor is present only when Old is non-zero.
type Diff struct {
	New      *uint64
	Old      *uint64
	DiffPct  *float64
	Factor   *float64
	NoChange bool
}

// DiffUint64 compares newVal against oldVal, both optional. When both are
// present, DiffPct = (new-old)/old*100, and Factor = new/old when old != 0.
// Equal values produce a zero DiffPct and NoChange=true.
func DiffUint64(newVal, oldVal *uint64) Diff {
	d := Diff{New: newVal, Old: oldVal}

	if newVal == nil || oldVal == nil {
		return d
	}

	n, o := *newVal, *oldVal
	if n == o {
		d.NoChange = true
		zero := 0.0
		d.DiffPct = &zero
		if o != 0 {
			one := 1.0
			d.Factor = &one
		}
		return d
	}

	pct := (float64(n) - float64(o)) / float64(o) * 100
	d.DiffPct = &pct

	if o != 0 {
		factor := float64(n) / float64(o)
		d.Factor = &factor
	}

	return d
}

// CostsDiff holds a Diff for each of the six derived cost-model metrics.
type CostsDiff struct {
	Instructions Diff
	L1Hits       Diff
	L3Hits       Diff
	RAMHits      Diff
	TotalRW      Diff
	Cycles       Diff
}

// DiffCosts compares newC against a prior baseline oldC. oldC is nil when
// there is no prior run to compare against, in which case every Diff in the
// result carries New only.
func DiffCosts(newC Costs, oldC *Costs) CostsDiff {
	pair := func(n, o uint64, haveOld bool) Diff {
		np := n
		if !haveOld {
			return DiffUint64(&np, nil)
		}
		op := o
		return DiffUint64(&np, &op)
	}

	haveOld := oldC != nil
	var old Costs
	if haveOld {
		old = *oldC
	}

	return CostsDiff{
		Instructions: pair(newC.Instructions, old.Instructions, haveOld),
		L1Hits:       pair(newC.L1Hits, old.L1Hits, haveOld),
		L3Hits:       pair(newC.L3Hits, old.L3Hits, haveOld),
		RAMHits:      pair(newC.RAMHits, old.RAMHits, haveOld),
		TotalRW:      pair(newC.TotalRW, old.TotalRW, haveOld),
		Cycles:       pair(newC.Cycles, old.Cycles, haveOld),
	}
}
