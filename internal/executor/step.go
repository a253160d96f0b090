package executor

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/outfitterhq/outfitter/internal/formula"
)

// StepResult reports one step's outcome. Optional steps that fail keep
// Success true with the failure recorded in Error.
type StepResult struct {
	Step     formula.Step
	Success  bool
	Output   string
	Error    string
	Duration time.Duration
}

// StepExecutor runs install steps as child processes.
type StepExecutor struct {
	Runner Runner

	// Platform overrides the detected platform, for tests and dry
	// inspection. Values are normalized GOOS names.
	Platform string

	// Vars holds the formula's variable mapping, expanded into step
	// fields before execution.
	Vars map[string]string
}

// NewStepExecutor returns an executor that spawns real processes on the
// current platform.
func NewStepExecutor() *StepExecutor {
	return &StepExecutor{Runner: ExecRunner{}}
}

func (e *StepExecutor) platform() string {
	if e.Platform != "" {
		return e.Platform
	}
	return runtime.GOOS
}

// Execute runs one step and reports its outcome. A platform mismatch is
// a successful skip, never a failure, and spawns nothing. Post-install
// commands run only after the primary command succeeds and share its
// environment and working directory; their failures are the step's
// failure. An optional step's failure is recorded but does not fail the
// step.
func (e *StepExecutor) Execute(ctx context.Context, step formula.Step) StepResult {
	platform := e.platform()

	if !StepApplies(step, platform) {
		return StepResult{
			Step:    step,
			Success: true,
			Output:  fmt.Sprintf("skipped: not applicable on %s", platform),
		}
	}

	step = ExpandStep(step, e.Vars)

	start := time.Now()
	result := e.run(ctx, step, platform)
	result.Duration = time.Since(start)

	if !result.Success && step.Optional {
		result.Success = true
	}
	return result
}

func (e *StepExecutor) run(ctx context.Context, step formula.Step, platform string) StepResult {
	result := StepResult{Step: step}

	cmd, err := BuildCommand(step, platform)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	cmd.Env = envPairs(step.Env)
	cmd.Dir = step.WorkingDir

	out, err := e.Runner.Run(ctx, cmd)
	result.Output = out.Stdout
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if out.ExitCode != 0 {
		result.Error = failureMessage(out)
		return result
	}

	for _, post := range step.PostInstall {
		postCmd := ShellCommand(post, platform)
		postCmd.Env = cmd.Env
		postCmd.Dir = cmd.Dir

		postOut, err := e.Runner.Run(ctx, postCmd)
		if err != nil {
			result.Error = fmt.Sprintf("post-install %q: %v", post, err)
			return result
		}
		if postOut.ExitCode != 0 {
			result.Error = fmt.Sprintf("post-install %q: %s", post, failureMessage(postOut))
			return result
		}
	}

	result.Success = true
	return result
}

// failureMessage prefers captured stderr over a bare exit code.
func failureMessage(out Output) string {
	if s := strings.TrimSpace(out.Stderr); s != "" {
		return s
	}
	return fmt.Sprintf("exit code %d", out.ExitCode)
}

// envPairs flattens a step's env overrides into KEY=VALUE pairs in
// sorted key order.
func envPairs(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(env))
	for _, k := range keys {
		pairs = append(pairs, k+"="+env[k])
	}
	return pairs
}
