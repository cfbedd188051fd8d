package format

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"iaicallgrind-go/model"
)

// row describes one labeled line of the console summary.
type row struct {
	label string
	diff  model.Diff
}

// Formatter prints a BenchmarkSummary-shaped set of diffs as a colored
// console block: a title line followed by six labeled, right-aligned rows.
type Formatter struct {
	// Colorize forces (or disables) ANSI color regardless of terminal
	// detection. Zero value means "auto-detect".
	Colorize *bool
}

// NewFormatter returns a Formatter that auto-detects whether w is a
// terminal.
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) colorEnabled(w io.Writer) bool {
	if f.Colorize != nil {
		return *f.Colorize
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// PrintTitle writes the colored "<module>::<id>: <command>" banner line.
func (f *Formatter) PrintTitle(w io.Writer, module, id, command string) {
	enabled := f.colorEnabled(w)
	c := color.New(color.FgCyan, color.Bold)
	c.EnableColor()
	if !enabled {
		c.DisableColor()
	}
	fmt.Fprintf(w, "%s: %s\n", c.Sprintf("%s::%s", module, id), command)
}

// PrintSummary writes the six labeled rows for diffs: Instructions, L1
// Hits, L2 Hits (historical label for L3 in this model), RAM Hits, Total
// read+write, and Estimated Cycles, each right-aligned to width 15 with an
// optional colored parenthesized delta.
func (f *Formatter) PrintSummary(w io.Writer, diffs model.CostsDiff) {
	rows := []row{
		{"Instructions", diffs.Instructions},
		{"L1 Hits", diffs.L1Hits},
		{"L2 Hits", diffs.L3Hits},
		{"RAM Hits", diffs.RAMHits},
		{"Total read+write", diffs.TotalRW},
		{"Estimated Cycles", diffs.Cycles},
	}

	enabled := f.colorEnabled(w)
	for _, r := range rows {
		f.printRow(w, r, enabled)
	}
}

func (f *Formatter) printRow(w io.Writer, r row, colorEnabled bool) {
	var newVal uint64
	if r.diff.New != nil {
		newVal = *r.diff.New
	}

	line := fmt.Sprintf("%-20s%15d", r.label+":", newVal)

	delta := f.renderDelta(r.diff, colorEnabled)
	if delta != "" {
		line += " " + delta
	}
	fmt.Fprintln(w, line)
}

func (f *Formatter) renderDelta(d model.Diff, colorEnabled bool) string {
	if d.Old == nil || d.New == nil {
		return ""
	}

	if d.NoChange {
		return paint(colorEnabled, color.Faint, "(No Change)")
	}

	if d.DiffPct == nil {
		return ""
	}

	text := "(" + SignedPercent(*d.DiffPct)
	if d.Factor != nil {
		text += ", " + Factor(*d.Factor)
	}
	text += ")"

	if *d.DiffPct < 0 {
		return paint(colorEnabled, color.FgGreen, text)
	}
	return paint(colorEnabled, color.FgRed, text)
}

func paint(enabled bool, attr color.Attribute, text string) string {
	c := color.New(attr)
	c.EnableColor()
	if !enabled {
		c.DisableColor()
	}
	return c.Sprint(text)
}
