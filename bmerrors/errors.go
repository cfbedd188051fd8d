// Package bmerrors provides typed error handling for the benchmark runner.
//
// It defines one domain error, BenchmarkError, classified by an ErrorKind
// enum so callers can branch on failure category without string matching.
// All errors support the standard errors.Is()/errors.As() functions.
package bmerrors

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a BenchmarkError. This is exactly the taxonomy from
// the error handling design: version mismatch, subprocess launch failure,
// a launched subprocess whose exit status didn't match policy, a malformed
// output file, a regression threshold violation, or an unclassified error.
type ErrorKind int

const (
	// KindVersionMismatch indicates the harness-reported library version
	// differs from the runner's own version string.
	KindVersionMismatch ErrorKind = iota
	// KindLaunchError indicates the profiler (or its ASLR wrapper)
	// failed to spawn.
	KindLaunchError
	// KindBenchmarkLaunchError indicates the profiled process spawned
	// but its exit status did not match the configured policy.
	KindBenchmarkLaunchError
	// KindParseError indicates the output file was missing, unreadable,
	// or malformed in a way that prevented sentinel discovery.
	KindParseError
	// KindRegressionError indicates a configured regression threshold
	// was exceeded.
	KindRegressionError
	// KindOther is a fall-through for free-form failures.
	KindOther
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindVersionMismatch:
		return "version mismatch"
	case KindLaunchError:
		return "launch error"
	case KindBenchmarkLaunchError:
		return "benchmark launch error"
	case KindParseError:
		return "parse error"
	case KindRegressionError:
		return "regression error"
	case KindOther:
		return "error"
	default:
		return "unknown error"
	}
}

// BenchmarkError represents an error encountered running or evaluating one
// benchmark.
type BenchmarkError struct {
	// Op is the operation that failed, e.g. "run", "parse", "diff".
	Op string
	// Benchmark identifies the benchmark by "module::id", if applicable.
	Benchmark string
	// Err is the underlying error, if any.
	Err error
	// Kind is the error classification.
	Kind ErrorKind
	// Detail provides additional context about the error.
	Detail string

	// Path is the output file a ParseError was raised against.
	Path string

	// Stdout and Stderr are the captured subprocess output for a
	// BenchmarkLaunchError, kept for post-mortem diagnosis.
	Stdout []byte
	Stderr []byte

	// Regression carries the offending event, old/new counters, computed
	// diff, and configured limit for a RegressionError.
	Regression *RegressionDetail
}

// RegressionDetail describes a single exceeded regression threshold.
type RegressionDetail struct {
	EventKind string
	Old       uint64
	New       uint64
	DiffPct   float64
	Limit     float64
}

// Error returns the error message.
func (e *BenchmarkError) Error() string {
	if e == nil {
		return "<nil>"
	}

	var msg string
	if e.Benchmark != "" {
		msg = fmt.Sprintf("benchmark %s: ", e.Benchmark)
	}
	if e.Op != "" {
		msg += fmt.Sprintf("%s: ", e.Op)
	}
	if e.Detail != "" {
		msg += e.Detail
	} else {
		msg += e.Kind.String()
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *BenchmarkError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether the error matches the target. It matches if target is
// a *BenchmarkError with the same Kind, or if the underlying error matches.
func (e *BenchmarkError) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	if t, ok := target.(*BenchmarkError); ok {
		return e.Kind == t.Kind
	}
	return false
}

// New creates a new BenchmarkError with the given kind.
func New(kind ErrorKind, op, detail string) *BenchmarkError {
	return &BenchmarkError{Op: op, Kind: kind, Detail: detail}
}

// Wrap wraps an error with an operation and kind.
func Wrap(err error, kind ErrorKind, op string) *BenchmarkError {
	return &BenchmarkError{Op: op, Err: err, Kind: kind}
}

// WrapWithBenchmark wraps an error with benchmark context.
func WrapWithBenchmark(err error, kind ErrorKind, op, benchmark string) *BenchmarkError {
	return &BenchmarkError{Op: op, Benchmark: benchmark, Err: err, Kind: kind}
}

// WrapWithDetail wraps an error with additional detail.
func WrapWithDetail(err error, kind ErrorKind, op, detail string) *BenchmarkError {
	return &BenchmarkError{Op: op, Err: err, Kind: kind, Detail: detail}
}

// NewParseError builds a KindParseError carrying the offending path.
func NewParseError(path, reason string) *BenchmarkError {
	return &BenchmarkError{Op: "parse", Kind: KindParseError, Detail: reason, Path: path}
}

// NewBenchmarkLaunchError builds a KindBenchmarkLaunchError carrying the
// captured subprocess output.
func NewBenchmarkLaunchError(detail string, stdout, stderr []byte) *BenchmarkError {
	return &BenchmarkError{Op: "run", Kind: KindBenchmarkLaunchError, Detail: detail, Stdout: stdout, Stderr: stderr}
}

// NewRegressionError builds a KindRegressionError carrying the offending
// measurement.
func NewRegressionError(benchmark string, detail RegressionDetail) *BenchmarkError {
	return &BenchmarkError{
		Op:         "regression-check",
		Kind:       KindRegressionError,
		Benchmark:  benchmark,
		Detail:     fmt.Sprintf("%s exceeded regression limit of %.4f%% (actual %.4f%%)", detail.EventKind, detail.Limit, detail.DiffPct),
		Regression: &detail,
	}
}

// IsKind checks if an error is of a specific kind.
func IsKind(err error, kind ErrorKind) bool {
	var berr *BenchmarkError
	if errors.As(err, &berr) {
		return berr.Kind == kind
	}
	return false
}

// GetKind returns the error kind if the error is a BenchmarkError.
func GetKind(err error) (ErrorKind, bool) {
	var berr *BenchmarkError
	if errors.As(err, &berr) {
		return berr.Kind, true
	}
	return 0, false
}

// Re-export standard library functions for convenience, matching the
// teacher's errors package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)
