package orchestrator

import (
	"context"
	"io"
	"log/slog"
	"os"

	"iaicallgrind-go/bmerrors"
	"iaicallgrind-go/callgrind"
	"iaicallgrind-go/config"
	"iaicallgrind-go/costs"
	"iaicallgrind-go/format"
	"iaicallgrind-go/logging"
	"iaicallgrind-go/model"
	"iaicallgrind-go/sentinel"
)

// Orchestrator drives a full run: before → (setup → bench → teardown)* →
// after, strictly sequential, aborting on the first unrecoverable error.
type Orchestrator struct {
	BaseDir   string
	Cfg       *config.Config
	Logger    *slog.Logger
	Formatter *format.Formatter

	command *callgrind.Command
}

// New returns an Orchestrator configured from cfg. allowASLR is read once
// from the IAI_ALLOW_ASLR environment variable at process startup by the
// caller and passed in here.
func New(baseDir string, cfg *config.Config, logger *slog.Logger, allowASLR bool) *Orchestrator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Orchestrator{
		BaseDir:   baseDir,
		Cfg:       cfg,
		Logger:    logger,
		Formatter: format.NewFormatter(),
		command:   callgrind.NewCommand(allowASLR),
	}
}

// Result is the accumulated outcome of a full run.
type Result struct {
	Summaries []BenchmarkSummary
	Failed    bool
}

// Run executes run.Before, each benchmark (setup → invoke → teardown), and
// run.After, in strict sequence. Under fail-fast, a RegressionError aborts
// immediately; otherwise regressions are accumulated into the result and
// Result.Failed is set, with a nil error returned so callers can continue
// to emit the accumulated summary before exiting non-zero.
func (o *Orchestrator) Run(ctx context.Context, run RunDescription) (*Result, error) {
	result := &Result{}

	if err := runHook(ctx, o.Logger, o.command, run.HarnessBinary, run.Before, BenchOptions{}); err != nil {
		return result, bmerrors.Wrap(err, bmerrors.KindOther, "before hook")
	}

	for _, bench := range run.Benchmarks {
		summary, err := o.runOne(ctx, run.HarnessBinary, bench)
		if err != nil {
			return result, err
		}

		result.Summaries = append(result.Summaries, *summary)
		if len(summary.Regressions) > 0 {
			result.Failed = true
			if o.Cfg.FailFast {
				return result, bmerrors.NewRegressionError(summary.Module+"::"+summary.ID, bmerrors.RegressionDetail{
					EventKind: summary.Regressions[0].EventKind,
					DiffPct:   summary.Regressions[0].DiffPct,
					Limit:     summary.Regressions[0].Limit,
				})
			}
		}
	}

	if err := runHook(ctx, o.Logger, o.command, run.HarnessBinary, run.After, BenchOptions{}); err != nil {
		return result, bmerrors.Wrap(err, bmerrors.KindOther, "after hook")
	}

	return result, nil
}

// runOne runs a single benchmark's full setup → invoke → parse → diff →
// print → teardown cycle.
func (o *Orchestrator) runOne(ctx context.Context, harnessBinary string, bench BenchmarkDescription) (*BenchmarkSummary, error) {
	id := bench.Module + "::" + bench.ID
	logger := logging.WithBenchmark(o.Logger, id)

	if err := runHook(ctx, logger, o.command, harnessBinary, bench.Setup, bench.Options); err != nil {
		return nil, bmerrors.WrapWithBenchmark(err, bmerrors.KindOther, "setup hook", id)
	}

	outPath, err := callgrind.Create(o.BaseDir, "callgrind", bench.Module, bench.ID)
	if err != nil {
		return nil, err
	}
	hadBaseline := outPath.HasBaseline()

	args := callgrind.FromArgs(bench.Options.RawArgs)
	collectAtStart, toggles := callgrind.ConfigureCollection(bench.EntryPoint, args.Toggles)
	args.CollectAtStart = collectAtStart
	args.Toggles = toggles
	if bench.EntryPoint == nil && bench.Kind == BenchKindFunction {
		args.InsertToggleCollect(bench.Function)
	}
	args.SetOutputFile(outPath.String())

	executable, execArgs := benchmarkInvocation(harnessBinary, bench)
	runErr := o.command.Run(ctx, callgrind.RunOptions{
		Args:             args,
		Executable:       executable,
		ExecArgs:         execArgs,
		Envs:             bench.Options.Envs,
		EnvClear:         bench.Options.EnvClear,
		CurrentDir:       bench.Options.CurrentDir,
		ExitWith:         bench.Options.ExitWith,
		MemoryLimitBytes: o.Cfg.MemoryLimitBytes,
		MemoryLimitName:  bench.Module + "_" + bench.ID,
	})
	if runErr != nil {
		return nil, bmerrors.WrapWithBenchmark(runErr, bmerrors.KindBenchmarkLaunchError, "run benchmark", id)
	}

	newCosts, err := o.parseCosts(outPath.Open, bench)
	if err != nil {
		return nil, bmerrors.WrapWithBenchmark(err, bmerrors.KindParseError, "parse output", id)
	}

	var oldCostsPtr *model.Costs
	if hadBaseline {
		if oldCosts, err := o.parseCosts(outPath.OpenBaseline, bench); err == nil {
			oldCostsPtr = oldCosts
		} else {
			logger.Warn("failed to parse baseline output, diffing against nothing", "error", err)
		}
	}

	diff := model.DiffCosts(*newCosts, oldCostsPtr)
	regressions := o.checkRegressions(diff)

	o.Formatter.PrintTitle(os.Stdout, bench.Module, bench.ID, describeCommand(bench))
	o.Formatter.PrintSummary(os.Stdout, diff)

	summary := &BenchmarkSummary{
		Module: bench.Module,
		ID:     bench.ID,
		Callgrind: CallgrindSummary{
			Runs: []CallgrindRunSummary{{Command: describeCommand(bench), Costs: diff}},
		},
		Regressions: regressions,
	}

	if err := runHook(ctx, logger, o.command, harnessBinary, bench.Teardown, bench.Options); err != nil {
		return nil, bmerrors.WrapWithBenchmark(err, bmerrors.KindOther, "teardown hook", id)
	}

	return summary, nil
}

// parseCosts opens a readable output file via open, parses it per the
// benchmark's kind, and derives Costs from the resulting CostVector.
func (o *Orchestrator) parseCosts(open func() (io.ReadCloser, error), bench BenchmarkDescription) (*model.Costs, error) {
	r, err := open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	vec, err := o.parseVector(r, bench)
	if err != nil {
		return nil, err
	}

	c, err := model.FromVector(vec)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (o *Orchestrator) parseVector(r io.Reader, bench BenchmarkDescription) (*costs.Vector, error) {
	if bench.Kind == BenchKindBinary {
		return callgrind.NewSummaryParser().Parse(r)
	}
	sent := sentinel.New(bench.Function)
	return callgrind.NewParser(sent).Parse(r)
}

// checkRegressions compares diff against the configured per-metric
// thresholds, returning one RegressionRecord per exceeded limit.
func (o *Orchestrator) checkRegressions(diff model.CostsDiff) []RegressionRecord {
	var records []RegressionRecord

	check := func(tag string, d model.Diff) {
		limit, ok := o.Cfg.Limit(tag)
		if !ok || d.DiffPct == nil {
			return
		}
		if *d.DiffPct > limit {
			records = append(records, RegressionRecord{EventKind: tag, DiffPct: *d.DiffPct, Limit: limit})
		}
	}

	check("Ir", diff.Instructions)
	check("l1_hits", diff.L1Hits)
	check("l3_hits", diff.L3Hits)
	check("ram_hits", diff.RAMHits)
	check("total_rw", diff.TotalRW)
	check("cycles", diff.Cycles)

	return records
}

// benchmarkInvocation resolves the program and arguments a benchmark is
// actually launched with. A binary benchmark runs its own command line
// directly; a function benchmark re-invokes harnessBinary with
// "--iai-run bench <module::function>" so the harness binary executes only
// the one sentinel function under the profiler.
func benchmarkInvocation(harnessBinary string, bench BenchmarkDescription) (executable string, execArgs []string) {
	if bench.Kind == BenchKindBinary {
		return firstOrEmpty(bench.Command), restOrEmpty(bench.Command)
	}
	return harnessBinary, []string{"--iai-run", "bench", bench.Function}
}

func describeCommand(bench BenchmarkDescription) string {
	if bench.Kind == BenchKindBinary {
		return joinCommand(bench.Command)
	}
	return bench.Function
}

func joinCommand(parts []string) string {
	s := ""
	for i, p := range parts {
		if i > 0 {
			s += " "
		}
		s += p
	}
	return s
}

func firstOrEmpty(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

func restOrEmpty(s []string) []string {
	if len(s) <= 1 {
		return nil
	}
	return s[1:]
}
