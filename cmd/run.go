package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"iaicallgrind-go/config"
	"iaicallgrind-go/logging"
	"iaicallgrind-go/orchestrator"
	"iaicallgrind-go/report"
)

var runCmd = &cobra.Command{
	Use:   "run <run-description.json>",
	Short: "Run a benchmark description against the profiler",
	Long: `Run decodes a run description (the before/after hooks and the ordered
list of benchmarks) and drives each one through setup, profiled invocation,
parsing, diffing, and teardown.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

var (
	runRequireVersion string
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runRequireVersion, "require-harness-version", "", "fail unless the run description's harness_version matches exactly")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := GetContext()
	logger := logging.Default()

	run, err := loadRunDescription(args[0])
	if err != nil {
		return err
	}

	if runRequireVersion != "" {
		if err := orchestrator.CheckVersion(run.HarnessVers, runRequireVersion); err != nil {
			return fmt.Errorf("version handshake: %w", err)
		}
	}

	cfg := config.Default()
	if globalConfig != "" {
		cfg, err = config.Load(globalConfig)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	baseDir := GetOutputDir(cfg.OutputDir)

	allowASLR := os.Getenv("IAI_ALLOW_ASLR") != ""
	o := orchestrator.New(baseDir, cfg, logger, allowASLR)

	result, err := o.Run(ctx, run)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if cfg.Summary.Enabled {
		if err := writeSummaries(cfg, result.Summaries); err != nil {
			logger.Warn("failed to write machine-readable summaries", "error", err)
		}
	}

	if result.Failed {
		os.Exit(1)
	}
	return nil
}

// writeSummaries encodes each benchmark summary as its own JSON file under
// the configured summary path, named after the benchmark's module and ID.
func writeSummaries(cfg *config.Config, summaries []orchestrator.BenchmarkSummary) error {
	dir := cfg.Summary.Path
	if dir == "" {
		dir = filepath.Join(cfg.OutputDir, "summary")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create summary directory: %w", err)
	}

	for i := range summaries {
		s := &summaries[i]
		data, err := report.Encode(s, !cfg.Summary.Pretty)
		if err != nil {
			return fmt.Errorf("encode summary for %s::%s: %w", s.Module, s.ID, err)
		}

		path := filepath.Join(dir, s.Module+"_"+s.ID+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write summary for %s::%s: %w", s.Module, s.ID, err)
		}
	}
	return nil
}
