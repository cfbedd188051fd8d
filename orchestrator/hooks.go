package orchestrator

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"

	"iaicallgrind-go/bmerrors"
	"iaicallgrind-go/callgrind"
)

// runPlainHook re-invokes harnessBinary with "--iai-run <selector> <name>",
// discarding its output unless debug logging is enabled, matching the
// "plain" hook semantics: invoked once, not profiled.
func runPlainHook(ctx context.Context, logger *slog.Logger, harnessBinary string, hook HookSpec) error {
	cmd := exec.CommandContext(ctx, harnessBinary, "--iai-run", hook.selector(), hook.sentinelString())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		logger.Info("hook output", "stdout", stdout.String(), "stderr", stderr.String())
		return bmerrors.Wrap(err, bmerrors.KindLaunchError, "run hook")
	}

	logger.Debug("hook completed", "hook", hook.sentinelString(), "stdout", stdout.String(), "stderr", stderr.String())
	return nil
}

// runBenchedHook runs a hook under the profiler with a toggle-collect
// scoped to the hook's own sentinel, reusing the same CallgrindCommand path
// as a regular benchmark. Setup and teardown hooks never take this path;
// see HookSpec.effectiveBenched.
func runBenchedHook(ctx context.Context, cmd *callgrind.Command, harnessBinary string, hook HookSpec, opts BenchOptions) (*callgrind.Args, error) {
	args := callgrind.FromArgs(opts.RawArgs)
	args.InsertToggleCollect(hook.sentinelString())

	runErr := cmd.Run(ctx, callgrind.RunOptions{
		Args:       args,
		Executable: harnessBinary,
		ExecArgs:   []string{"--iai-run", hook.selector(), hook.sentinelString()},
		Envs:       opts.Envs,
		EnvClear:   opts.EnvClear,
		CurrentDir: opts.CurrentDir,
		ExitWith:   opts.ExitWith,
	})
	return args, runErr
}

// runHook dispatches to the plain or benched execution path per the
// hook's effective semantics.
func runHook(ctx context.Context, logger *slog.Logger, cmd *callgrind.Command, harnessBinary string, hook *HookSpec, opts BenchOptions) error {
	if hook == nil {
		return nil
	}
	if hook.effectiveBenched() {
		_, err := runBenchedHook(ctx, cmd, harnessBinary, *hook, opts)
		return err
	}
	return runPlainHook(ctx, logger, harnessBinary, *hook)
}
