package callgrind

import (
	"strings"
	"testing"

	"iaicallgrind-go/costs"
)

func TestSummaryParserSummaryLine(t *testing.T) {
	input := "events: Ir Dr Dw I1mr D1mr D1mw ILmr DLmr DLmw\nsummary: 100 20 5 1 0 0 0 0 0\n"
	v, err := NewSummaryParser().Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got, _ := v.Get(costs.Ir); got != 100 {
		t.Errorf("Ir = %d, want 100", got)
	}
	if got, _ := v.Get(costs.Dw); got != 5 {
		t.Errorf("Dw = %d, want 5", got)
	}
}

func TestSummaryParserTotalsLine(t *testing.T) {
	input := "totals:  50 10 2\n"
	v, err := NewSummaryParser().Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got, _ := v.Get(costs.Ir); got != 50 {
		t.Errorf("Ir = %d, want 50", got)
	}
	if len(v.Schema()) != 3 {
		t.Errorf("schema length = %d, want 3", len(v.Schema()))
	}
}

func TestSummaryParserTruncatesToNineFields(t *testing.T) {
	input := "summary: 1 2 3 4 5 6 7 8 9 10 11\n"
	v, err := NewSummaryParser().Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(v.Schema()) != maxSummaryFields {
		t.Errorf("schema length = %d, want %d", len(v.Schema()), maxSummaryFields)
	}
}

func TestSummaryParserMissingLineErrors(t *testing.T) {
	_, err := NewSummaryParser().Parse(strings.NewReader("events: Ir Dr Dw\nfn=x\n"))
	if err == nil {
		t.Fatal("expected error when no summary:/totals: line present")
	}
}
