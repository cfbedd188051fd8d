package callgrind

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"iaicallgrind-go/bmerrors"
	"iaicallgrind-go/logging"
)

// ExitPolicy describes the exit-status reconciliation the orchestrator
// expects from a profiled subprocess.
type ExitPolicy struct {
	// Code, when non-nil, requires the subprocess to exit with exactly
	// this status.
	Code *int
	// ExpectFailure requires a non-zero exit when true, and a zero exit
	// when false. Only consulted when Code is nil.
	ExpectFailure bool
}

// unconditionalEnvWhitelist and memcheckEnvWhitelist list the environment
// variables preserved through env_clear: LD_PRELOAD and LD_LIBRARY_PATH for
// every tool, and PATH, HOME and DEBUGINFOD_URLS for Memcheck only.
var unconditionalEnvWhitelist = []string{"LD_PRELOAD", "LD_LIBRARY_PATH"}
var memcheckEnvWhitelist = []string{"PATH", "HOME", "DEBUGINFOD_URLS"}

// Command assembles and invokes the profiler subprocess.
type Command struct {
	// AllowASLR disables the ASLR-suppression wrapper when true.
	AllowASLR bool
	// ToolID selects the Valgrind tool; "callgrind" unless overridden for
	// a Memcheck-style run.
	ToolID string
}

// NewCommand returns a Command configured per the IAI_ALLOW_ASLR process
// global, read once by the caller at startup.
func NewCommand(allowASLR bool) *Command {
	return &Command{AllowASLR: allowASLR, ToolID: "callgrind"}
}

// baseProgram resolves the program name and any ASLR-suppression wrapper
// prefix to invoke valgrind through.
func (c *Command) baseProgram() (program string, prefixArgs []string) {
	if c.AllowASLR {
		return "valgrind", nil
	}

	if !supportsASLRSuppression {
		slog.Info("ASLR suppression unsupported on this platform, running valgrind directly")
		return "valgrind", nil
	}

	arch, err := hostArch()
	if err != nil {
		slog.Warn("failed to resolve host architecture, running valgrind directly", "error", err)
		return "valgrind", nil
	}

	wrapper := aslrWrapper(arch)
	if len(wrapper) == 0 {
		return "valgrind", nil
	}
	return wrapper[0], append(wrapper[1:], "valgrind")
}

// RunOptions configures one invocation.
type RunOptions struct {
	Args       *Args
	Executable string
	ExecArgs   []string
	Envs       map[string]string
	EnvClear   bool
	CurrentDir string
	ExitWith   *ExitPolicy

	// MemoryLimitBytes, when non-zero, caps the profiled child's memory via
	// a cgroup v2 memory.max write (Linux only; ignored elsewhere).
	MemoryLimitBytes int64
	// MemoryLimitName identifies the cgroup to create; defaults to ToolID
	// when empty.
	MemoryLimitName string
}

// Run launches valgrind --tool=<ToolID> with the canonicalized Args,
// followed by the resolved executable and its arguments, then reconciles
// the child's exit status against opts.ExitWith. Stdout/stderr are always
// captured and are attached to the returned error when the exit status does
// not match; failures before the child starts carry no captured output.
func (c *Command) Run(ctx context.Context, opts RunOptions) error {
	program, prefixArgs := c.baseProgram()

	toolID := c.ToolID
	if toolID == "" {
		toolID = "callgrind"
	}

	argv := append([]string{}, prefixArgs...)
	argv = append(argv, "--tool="+toolID)
	argv = append(argv, opts.Args.ToArgv()...)

	executable, err := resolveExecutable(opts.Executable)
	if err != nil {
		return bmerrors.Wrap(err, bmerrors.KindLaunchError, "resolve benchmark executable")
	}
	argv = append(argv, executable)
	argv = append(argv, opts.ExecArgs...)

	cmd := exec.CommandContext(ctx, program, argv...)
	cmd.Env = buildEnv(opts.Envs, opts.EnvClear, toolID)
	if opts.CurrentDir != "" {
		cmd.Dir = opts.CurrentDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	var limit *MemoryLimit
	if opts.MemoryLimitBytes > 0 {
		name := opts.MemoryLimitName
		if name == "" {
			name = toolID
		}
		var err error
		limit, err = NewMemoryLimit(name, opts.MemoryLimitBytes)
		if err != nil {
			return bmerrors.Wrap(err, bmerrors.KindOther, "create memory limit")
		}
		defer limit.Close()
	}

	if err := cmd.Start(); err != nil {
		return bmerrors.Wrap(err, bmerrors.KindLaunchError, "start profiler")
	}
	if limit != nil {
		if err := limit.AddProcess(cmd.Process.Pid); err != nil {
			slog.Warn("failed to place profiler subprocess under memory limit", "error", err)
		}
	}
	runErr := cmd.Wait()

	toolLogger := logging.WithTool(slog.Default(), toolID)
	if cmd.Process != nil {
		toolLogger = logging.WithPID(toolLogger, cmd.Process.Pid)
	}
	toolLogger.Info("profiler subprocess finished", "program", program, "args", argv, "stderr_bytes", stderr.Len())

	if err := reconcileExit(runErr, opts.ExitWith); err != nil {
		return bmerrors.NewBenchmarkLaunchError(err.Error(), stdout.Bytes(), stderr.Bytes())
	}

	return nil
}

// resolveExecutable resolves a name without a path separator through PATH,
// returning the underlying lookup or stat error if it cannot be found.
func resolveExecutable(path string) (string, error) {
	if strings.ContainsRune(path, os.PathSeparator) {
		if _, err := os.Stat(path); err != nil {
			return "", err
		}
		return path, nil
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", err
	}
	return resolved, nil
}

// buildEnv applies env_clear semantics: when clear is requested, only the
// unconditional whitelist (plus the Memcheck-specific whitelist when
// toolID is "memcheck") survives from the parent environment, merged with
// the caller-supplied overrides. When clear is false, overrides are simply
// appended to the full inherited environment.
func buildEnv(overrides map[string]string, clear bool, toolID string) []string {
	var env []string

	if clear {
		whitelist := append([]string{}, unconditionalEnvWhitelist...)
		if toolID == "memcheck" {
			whitelist = append(whitelist, memcheckEnvWhitelist...)
		}
		for _, name := range whitelist {
			if v, ok := os.LookupEnv(name); ok {
				env = append(env, name+"="+v)
			}
		}
	} else {
		env = append(env, os.Environ()...)
	}

	for k, v := range overrides {
		env = append(env, k+"="+v)
	}
	return env
}

// reconcileExit checks the subprocess's outcome against policy. A nil
// policy expects a clean exit (status 0).
func reconcileExit(runErr error, policy *ExitPolicy) error {
	exitCode := 0
	if runErr != nil {
		exitErr, ok := runErr.(*exec.ExitError)
		if !ok {
			return runErr
		}
		exitCode = exitErr.ExitCode()
	}

	if policy == nil {
		if exitCode != 0 {
			return bmerrors.New(bmerrors.KindBenchmarkLaunchError, "exit status", "expected exit 0, got "+itoa(exitCode))
		}
		return nil
	}

	if policy.Code != nil {
		if exitCode != *policy.Code {
			return bmerrors.New(bmerrors.KindBenchmarkLaunchError, "exit status", "expected exit "+itoa(*policy.Code)+", got "+itoa(exitCode))
		}
		return nil
	}

	if policy.ExpectFailure && exitCode == 0 {
		return bmerrors.New(bmerrors.KindBenchmarkLaunchError, "exit status", "expected non-zero exit, got 0")
	}
	if !policy.ExpectFailure && exitCode != 0 {
		return bmerrors.New(bmerrors.KindBenchmarkLaunchError, "exit status", "expected exit 0, got "+itoa(exitCode))
	}
	return nil
}
