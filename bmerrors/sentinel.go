package bmerrors

// Predeclared sentinel errors for common failure cases, usable with
// errors.Is.
var (
	// ErrVersionMismatch indicates the harness library version and the
	// runner version disagree.
	ErrVersionMismatch = &BenchmarkError{
		Kind:   KindVersionMismatch,
		Detail: "harness library version does not match runner version",
	}

	// ErrProfilerNotFound indicates valgrind (or its ASLR wrapper)
	// could not be resolved on PATH.
	ErrProfilerNotFound = &BenchmarkError{
		Kind:   KindLaunchError,
		Detail: "profiler executable not found",
	}

	// ErrExecutableNotFound indicates the benchmark executable could
	// not be resolved on PATH.
	ErrExecutableNotFound = &BenchmarkError{
		Kind:   KindLaunchError,
		Detail: "benchmark executable not found",
	}

	// ErrExitStatusMismatch indicates the profiled process exited with
	// a status that did not match the configured exit policy.
	ErrExitStatusMismatch = &BenchmarkError{
		Kind:   KindBenchmarkLaunchError,
		Detail: "exit status did not match configured policy",
	}

	// ErrMissingOutputFile indicates the expected output file does not
	// exist after the profiler run.
	ErrMissingOutputFile = &BenchmarkError{
		Kind:   KindParseError,
		Detail: "output file does not exist",
	}

	// ErrEmptyOutputFile indicates the output file contains no lines.
	ErrEmptyOutputFile = &BenchmarkError{
		Kind:   KindParseError,
		Detail: "output file is empty",
	}

	// ErrNoPositionsHeader indicates the parser could not locate a
	// "positions:" declaration before running out of header lines.
	ErrNoPositionsHeader = &BenchmarkError{
		Kind:   KindParseError,
		Detail: "missing positions: header",
	}

	// ErrRegressionExceeded indicates at least one configured
	// regression threshold was exceeded.
	ErrRegressionExceeded = &BenchmarkError{
		Kind:   KindRegressionError,
		Detail: "regression threshold exceeded",
	}
)
