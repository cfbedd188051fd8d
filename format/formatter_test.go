package format

import (
	"bytes"
	"strings"
	"testing"

	"iaicallgrind-go/model"
)

func disabled() *bool {
	b := false
	return &b
}

func TestPrintTitleNoColorFallback(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Colorize: disabled()}
	f.PrintTitle(&buf, "my_mod", "bench_a", "valgrind --tool=callgrind ...")

	out := buf.String()
	if !strings.Contains(out, "my_mod::bench_a") {
		t.Errorf("output missing module::id, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no ANSI escapes with color disabled, got %q", out)
	}
}

func TestPrintSummaryNoChange(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Colorize: disabled()}

	same := u64(100)
	diffs := model.CostsDiff{
		Instructions: model.DiffUint64(same, same),
		Cycles:       model.DiffUint64(same, same),
	}
	f.PrintSummary(&buf, diffs)

	out := buf.String()
	if !strings.Contains(out, "No Change") {
		t.Errorf("expected No Change label, got %q", out)
	}
}

func TestPrintSummaryDelta(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Colorize: disabled()}

	diffs := model.CostsDiff{
		Cycles: model.DiffUint64(u64(110), u64(100)),
	}
	f.PrintSummary(&buf, diffs)

	out := buf.String()
	if !strings.Contains(out, "+10.00000%") {
		t.Errorf("expected +10.00000%% delta, got %q", out)
	}
}

func u64(n uint64) *uint64 { return &n }
