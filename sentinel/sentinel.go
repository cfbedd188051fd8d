// Package sentinel identifies the function a callgrind parse run is
// anchored on.
package sentinel

import (
	"strings"
)

// Sentinel is the fully-qualified name of the function under measurement,
// used as a scan anchor in the callgrind output file. It is immutable once
// constructed.
type Sentinel struct {
	name string
}

// New wraps an already-qualified name (e.g. "my_mod::bench_a").
func New(name string) Sentinel {
	return Sentinel{name: name}
}

// FromParts joins a module path and function name with "::", matching the
// callgrind "fn=" convention.
func FromParts(module, function string) Sentinel {
	return Sentinel{name: module + "::" + function}
}

// String returns the fully-qualified name.
func (s Sentinel) String() string {
	return s.name
}

// Matches reports whether line begins with this sentinel's name. A line
// that starts with a key such as "fn=" or "fl=" does not match; the parser
// compares whole lines against FnLine instead.
func (s Sentinel) Matches(line string) bool {
	return strings.HasPrefix(line, s.name)
}

// FnLine returns the exact "fn=<sentinel>" string the parser searches for
// to transition out of SCAN.
func (s Sentinel) FnLine() string {
	return "fn=" + s.name
}
