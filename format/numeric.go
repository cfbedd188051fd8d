// Package format renders benchmark results for the console: a colored
// title line and six labeled rows with magnitude-adaptive delta formatting.
package format

import (
	"fmt"
	"math"
)

// precisionFor returns the number of fractional digits to render for a
// percentage of the given absolute magnitude: finer precision for small
// changes, coarser for large ones.
func precisionFor(absValue float64) int {
	switch {
	case absValue < 10:
		return 6
	case absValue < 100:
		return 5
	case absValue < 1000:
		return 4
	case absValue < 10000:
		return 3
	case absValue < 100000:
		return 2
	case absValue < 1000000:
		return 1
	default:
		return 0
	}
}

// SignedPercent renders pct with a magnitude-adaptive fractional-digit
// count and an always-present leading sign.
func SignedPercent(pct float64) string {
	prec := precisionFor(math.Abs(pct))
	return fmt.Sprintf("%+.*f%%", prec, pct)
}

// Factor renders a factor (new/old) with the same adaptive precision rule
// applied to its magnitude.
func Factor(factor float64) string {
	prec := precisionFor(math.Abs(factor))
	return fmt.Sprintf("%.*fx", prec, factor)
}
