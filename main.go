// Command iai-callgrind-runner drives the Valgrind tool suite against a
// harness-supplied benchmark description, comparing results against the
// prior run and reporting regressions.
//
// Commands:
//
//	run      - Run a benchmark description against the profiler
//	version  - Print version information
package main

import (
	"fmt"
	"os"

	"iaicallgrind-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
