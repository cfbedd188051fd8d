package callgrind

import (
	"bufio"
	"io"
	"log/slog"
	"strings"

	"iaicallgrind-go/bmerrors"
	"iaicallgrind-go/costs"
	"iaicallgrind-go/logging"
	"iaicallgrind-go/sentinel"
)

// parserState is the explicit state of the sentinel-rooted cost-extraction
// state machine, kept as a tagged enum rather than a cluster of booleans so
// each transition is testable in isolation.
type parserState int

const (
	stateScan parserState = iota
	stateInFn
	stateSawCfn
	stateCounting
)

// positionColumns is the number of leading columns to skip on a cost line,
// derived from the "positions:" header.
type positionColumns int

const (
	posOneColumn positionColumns = 1
	posTwoColumn positionColumns = 2
)

func parsePositionColumns(header string) positionColumns {
	fields := strings.Fields(strings.TrimPrefix(header, "positions:"))
	if len(fields) >= 2 {
		return posTwoColumn
	}
	return posOneColumn
}

// Parser extracts the CostVector attributed to a Sentinel function (and its
// callees) from callgrind's text-format output.
type Parser struct {
	sent sentinel.Sentinel
}

// NewParser returns a Parser anchored on sent.
func NewParser(sent sentinel.Sentinel) *Parser {
	return &Parser{sent: sent}
}

// Parse reads a full callgrind output stream and returns the CostVector
// accumulated under the parser's sentinel. A sentinel that never appears
// yields an all-zero CostVector, not an error.
func (p *Parser) Parse(r io.Reader) (*costs.Vector, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var schema []costs.EventKind
	var cols positionColumns = posOneColumn

	firstNonEmptySeen := false

	state := stateScan
	var vec *costs.Vector

	for scanner.Scan() {
		line := scanner.Text()

		if !firstNonEmptySeen && strings.TrimSpace(line) != "" {
			firstNonEmptySeen = true
			if !strings.Contains(line, "callgrind format") {
				logging.WithSentinel(slog.Default(), p.sent.String()).Warn("callgrind output missing format header", "line", line)
			}
		}

		switch {
		case strings.HasPrefix(line, "positions:"):
			cols = parsePositionColumns(line)
		case strings.HasPrefix(line, "events:") && vec == nil:
			schema = costs.ParseSchema(line)
			v, err := costs.NewVector(schema)
			if err != nil {
				return nil, bmerrors.Wrap(err, bmerrors.KindParseError, "parse events header")
			}
			vec = v
		}

		state = p.step(state, line, cols, vec)
	}
	if err := scanner.Err(); err != nil {
		return nil, bmerrors.Wrap(err, bmerrors.KindParseError, "read callgrind output")
	}

	if vec == nil {
		return nil, bmerrors.NewParseError("", "missing events: header")
	}
	return vec, nil
}

// step advances the state machine by one line, mutating vec in place when a
// cost line is counted. Counters are added to vec as each cost line is
// read, so EOF needs no extra step: a record cut off at EOF has already
// contributed its lines, just as one ended by a blank line has.
func (p *Parser) step(state parserState, line string, cols positionColumns, vec *costs.Vector) parserState {
	trimmed := strings.TrimSpace(line)

	if trimmed == "" {
		return stateScan
	}

	switch state {
	case stateScan:
		if line == p.sent.FnLine() {
			return stateInFn
		}
		return stateScan

	case stateInFn:
		if strings.HasPrefix(line, "cfn=") {
			return stateSawCfn
		}
		return stateInFn

	case stateSawCfn:
		if strings.HasPrefix(line, "calls=") {
			return stateCounting
		}
		return stateInFn

	case stateCounting:
		if strings.HasPrefix(line, "cfn=") {
			return stateSawCfn
		}
		if isDigitLine(line) {
			p.countLine(line, cols, vec)
			return stateCounting
		}
		return stateInFn
	}

	return state
}

func isDigitLine(line string) bool {
	if line == "" {
		return false
	}
	c := line[0]
	return c >= '0' && c <= '9'
}

// countLine accumulates a cost line's counters into vec, skipping the
// leading position column(s).
func (p *Parser) countLine(line string, cols positionColumns, vec *costs.Vector) {
	if vec == nil {
		return
	}
	fields := strings.Fields(line)
	skip := int(cols)
	if skip > len(fields) {
		skip = len(fields)
	}
	_ = vec.AddRow(fields[skip:])
}
