// Package callgrind assembles and invokes the callgrind profiler and parses
// its text-format output.
package callgrind

import (
	"log/slog"
	"strings"
)

// CacheSpec is a single cache-geometry triple: size, associativity, line
// size, as passed to --I1=/--D1=/--LL=.
type CacheSpec struct {
	Size     int
	Assoc    int
	LineSize int
}

// String renders the cache spec in the "<size>,<assoc>,<line>" form
// callgrind expects.
func (c CacheSpec) String() string {
	return itoa(c.Size) + "," + itoa(c.Assoc) + "," + itoa(c.LineSize)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Default cache geometries, matching callgrind's own defaults.
var (
	DefaultI1 = CacheSpec{Size: 32768, Assoc: 8, LineSize: 64}
	DefaultD1 = CacheSpec{Size: 32768, Assoc: 8, LineSize: 64}
	DefaultLL = CacheSpec{Size: 8388608, Assoc: 16, LineSize: 64}
)

// Args is a canonicalized set of callgrind command-line options. It is built
// via FromArgs plus the mutator methods and becomes immutable once
// SetOutputFile and InsertToggleCollect have been called for a given
// invocation.
type Args struct {
	I1 CacheSpec
	D1 CacheSpec
	LL CacheSpec

	CacheSim        bool
	CompressPos     bool
	CompressStrings bool
	CollectAtStart  bool

	// Toggles holds --toggle-collect=<pattern> values in the order they
	// should appear on the command line: orchestrator-inserted entries
	// first, then any user-supplied ones.
	Toggles []string

	// OutputFile is the --callgrind-out-file=<path> value, if set.
	OutputFile string

	// Other is the catch-all list of pass-through options that did not
	// match a recognized prefix.
	Other []string
}

// NewDefaultArgs returns the baseline Args before any user overrides are
// applied: default cache geometry, cache simulation on, positions/strings
// uncompressed, collection running from process start.
func NewDefaultArgs() *Args {
	return &Args{
		I1:              DefaultI1,
		D1:              DefaultD1,
		LL:              DefaultLL,
		CacheSim:        true,
		CompressPos:     false,
		CompressStrings: false,
		CollectAtStart:  true,
	}
}

// prefixField identifies which field a recognized --flag=value argument
// maps to.
type prefixField int

const (
	fieldNone prefixField = iota
	fieldI1
	fieldD1
	fieldLL
	fieldCollectAtStart
	fieldCompressStrings
	fieldCompressPos
	fieldToggleCollect
	fieldRejected
)

func classify(arg string) (prefixField, string) {
	switch {
	case strings.HasPrefix(arg, "--I1="):
		return fieldI1, arg[len("--I1="):]
	case strings.HasPrefix(arg, "--D1="):
		return fieldD1, arg[len("--D1="):]
	case strings.HasPrefix(arg, "--LL="):
		return fieldLL, arg[len("--LL="):]
	case strings.HasPrefix(arg, "--collect-atstart="):
		return fieldCollectAtStart, arg[len("--collect-atstart="):]
	case strings.HasPrefix(arg, "--compress-strings="):
		return fieldCompressStrings, arg[len("--compress-strings="):]
	case strings.HasPrefix(arg, "--compress-pos="):
		return fieldCompressPos, arg[len("--compress-pos="):]
	case strings.HasPrefix(arg, "--toggle-collect="):
		return fieldToggleCollect, arg[len("--toggle-collect="):]
	case strings.HasPrefix(arg, "--cache-sim="), strings.HasPrefix(arg, "--callgrind-out-file="):
		return fieldRejected, arg
	default:
		return fieldNone, arg
	}
}

func parseBoolFlag(s string) bool {
	return s == "yes" || s == "true" || s == "1"
}

func parseCacheSpec(s string) (CacheSpec, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return CacheSpec{}, false
	}
	vals := make([]int, 3)
	for i, p := range parts {
		n := 0
		for _, r := range p {
			if r < '0' || r > '9' {
				return CacheSpec{}, false
			}
			n = n*10 + int(r-'0')
		}
		vals[i] = n
	}
	return CacheSpec{Size: vals[0], Assoc: vals[1], LineSize: vals[2]}, true
}

// FromArgs applies a list of raw argument strings on top of the default
// Args, per the canonicalization rules: single-valued recognized flags are
// last-writer-wins, --toggle-collect accumulates, --cache-sim and
// --callgrind-out-file are rejected with a logged warning since the runner
// controls them, a trailing "--bench" sentinel is stripped, and everything
// else passes through verbatim.
func FromArgs(raw []string) *Args {
	a := NewDefaultArgs()

	args := raw
	if n := len(args); n > 0 && args[n-1] == "--bench" {
		args = args[:n-1]
	}

	for _, arg := range args {
		field, value := classify(arg)
		switch field {
		case fieldI1:
			if spec, ok := parseCacheSpec(value); ok {
				a.I1 = spec
			}
		case fieldD1:
			if spec, ok := parseCacheSpec(value); ok {
				a.D1 = spec
			}
		case fieldLL:
			if spec, ok := parseCacheSpec(value); ok {
				a.LL = spec
			}
		case fieldCollectAtStart:
			a.CollectAtStart = parseBoolFlag(value)
		case fieldCompressStrings:
			a.CompressStrings = parseBoolFlag(value)
		case fieldCompressPos:
			a.CompressPos = parseBoolFlag(value)
		case fieldToggleCollect:
			a.Toggles = append(a.Toggles, value)
		case fieldRejected:
			slog.Warn("ignoring option controlled by runner", "option", value)
		default:
			a.Other = append(a.Other, arg)
		}
	}

	return a
}

// InsertToggleCollect prepends pattern to the toggles list, ahead of any
// user-supplied toggles already present. The orchestrator calls this once
// per benchmark to establish the sentinel's own collection window.
func (a *Args) InsertToggleCollect(pattern string) {
	a.Toggles = append([]string{pattern}, a.Toggles...)
}

// SetOutputFile sets the --callgrind-out-file option, overriding any prior
// value.
func (a *Args) SetOutputFile(path string) {
	a.OutputFile = path
}

// ConfigureCollection resolves the entry-point coupling described in the
// argument canonicalization design: when entryPoint is non-nil, collection
// starts disabled and a toggle is registered for that pattern; otherwise
// collection runs from process start and no toggle is injected. It returns
// the resolved collectAtStart flag and the toggle list to install, and does
// not mutate any Args.
func ConfigureCollection(entryPoint *string, userToggles []string) (collectAtStart bool, toggles []string) {
	if entryPoint == nil {
		return true, userToggles
	}
	return false, append([]string{*entryPoint}, userToggles...)
}

// ToArgv emits the final argument list in callgrind's expected order: cache
// sizes, cache-sim, collect-atstart, compress options, pass-through others,
// the output-file option, then toggles (orchestrator-inserted entries
// first, as already ordered in a.Toggles).
func (a *Args) ToArgv() []string {
	argv := []string{
		"--I1=" + a.I1.String(),
		"--D1=" + a.D1.String(),
		"--LL=" + a.LL.String(),
		"--cache-sim=yes",
		"--collect-atstart=" + yesNo(a.CollectAtStart),
		"--compress-strings=" + yesNo(a.CompressStrings),
		"--compress-pos=" + yesNo(a.CompressPos),
	}
	argv = append(argv, a.Other...)
	if a.OutputFile != "" {
		argv = append(argv, "--callgrind-out-file="+a.OutputFile)
	}
	for _, t := range a.Toggles {
		argv = append(argv, "--toggle-collect="+t)
	}
	return argv
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
