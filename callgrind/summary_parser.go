package callgrind

import (
	"bufio"
	"io"
	"strings"

	"iaicallgrind-go/bmerrors"
	"iaicallgrind-go/costs"
)

// canonicalSummarySchema is the fixed event order SummaryParser produces,
// independent of whatever events: header preceded the summary/totals line.
var canonicalSummarySchema = []costs.EventKind{
	costs.Ir, costs.Dr, costs.Dw,
	costs.I1mr, costs.D1mr, costs.D1mw,
	costs.ILmr, costs.DLmr, costs.DLmw,
}

const maxSummaryFields = 9

// SummaryParser extracts whole-process totals from a line starting with
// "summary:" or "totals:", used for binary benchmarks that have no single
// sentinel to anchor on.
type SummaryParser struct{}

// NewSummaryParser returns a SummaryParser.
func NewSummaryParser() *SummaryParser {
	return &SummaryParser{}
}

// Parse scans r for the first "summary:" or "totals:" line and returns its
// counters as a CostVector in canonical Ir/Dr/Dw/I1mr/D1mr/D1mw/ILmr/DLmr/DLmw
// order, truncated to at most 9 fields.
func (s *SummaryParser) Parse(r io.Reader) (*costs.Vector, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		var rest string
		switch {
		case strings.HasPrefix(line, "summary:"):
			rest = strings.TrimPrefix(line, "summary:")
		case strings.HasPrefix(line, "totals:"):
			rest = strings.TrimPrefix(line, "totals:")
		default:
			continue
		}

		fields := strings.Fields(rest)
		if len(fields) > maxSummaryFields {
			fields = fields[:maxSummaryFields]
		}

		v, err := costs.NewVector(canonicalSummarySchema[:len(fields)])
		if err != nil {
			return nil, bmerrors.Wrap(err, bmerrors.KindParseError, "build summary vector")
		}
		if err := v.AddRow(fields); err != nil {
			return nil, bmerrors.Wrap(err, bmerrors.KindParseError, "parse summary counters")
		}
		return v, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, bmerrors.Wrap(err, bmerrors.KindParseError, "read callgrind output")
	}

	return nil, bmerrors.NewParseError("", "missing summary: or totals: line")
}
