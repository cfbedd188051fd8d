// Package cmd implements the CLI commands for the benchmark runner.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"iaicallgrind-go/logging"
)

// Version information set at build time.
var (
	Version   = "0.1.0"
	SpecVer   = "0.4.0"
	BuildTime = "unknown"
)

// Global flags.
var (
	globalOutputDir string
	globalLog       string
	globalLogFormat string
	globalConfig    string
	globalDebug     bool
)

// rootCmd is the base command for the runner.
var rootCmd = &cobra.Command{
	Use:   "iai-callgrind-runner",
	Short: "Profiler-backed benchmark runner",
	Long: `iai-callgrind-runner drives the Valgrind tool suite (primarily callgrind)
against a harness-supplied set of benchmarks, comparing results against the
prior run and reporting regressions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetContext returns a context that cancels on SIGINT/SIGTERM.
func GetContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return ctx
}

// GetOutputDir returns the base directory benchmark output files are
// rotated under, honoring --output-dir over the loaded config.
func GetOutputDir(fallback string) string {
	if globalOutputDir != "" {
		return globalOutputDir
	}
	return fallback
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOutputDir, "output-dir", "", "base directory for benchmark output files (default: config's output_dir, or target/iai)")
	rootCmd.PersistentFlags().StringVar(&globalLog, "log", "", "set the log file path")
	rootCmd.PersistentFlags().StringVar(&globalLogFormat, "log-format", "text", "set the format for log output (text or json)")
	rootCmd.PersistentFlags().StringVar(&globalConfig, "config", "", "path to the regression-gating YAML config")
	rootCmd.PersistentFlags().BoolVar(&globalDebug, "debug", false, "enable debug logging")
}

func setupLogging() {
	logOutput := os.Stderr
	if globalLog != "" {
		f, err := os.OpenFile(globalLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err == nil {
			logOutput = f
		}
	}

	logLevel := slog.LevelInfo
	if globalDebug {
		logLevel = slog.LevelDebug
	}

	logger := logging.NewLogger(logging.Config{
		Level:  logLevel,
		Format: globalLogFormat,
		Output: logOutput,
	})
	logging.SetDefault(logger)
	slog.SetDefault(logger)
}
