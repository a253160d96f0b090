// Package executor turns install steps into external commands and runs
// them as child processes with deterministic success, failure, and skip
// semantics.
package executor

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Command is one external invocation: an executable, its arguments, and
// the context it runs in.
type Command struct {
	Name string
	Args []string
	// Env holds extra KEY=VALUE pairs appended to the process
	// environment, overriding inherited values of the same key.
	Env []string
	Dir string
	// Timeout bounds the run; zero means no limit.
	Timeout time.Duration
}

// String renders the command the way a shell prompt would show it.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Output is a finished command's observable outcome.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner runs external commands. A non-zero exit is reported through
// Output, not the error; the error is reserved for spawn-level failures
// (binary not found, permission denied, cancellation).
type Runner interface {
	Run(ctx context.Context, cmd Command) (Output, error)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct{}

// Run executes cmd, capturing stdout and stderr separately.
func (ExecRunner) Run(ctx context.Context, c Command) (Output, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	// Environment precedence: extra pairs override inherited values of
	// the same key because later entries win.
	cmd.Env = append(os.Environ(), c.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, ctxErr
		}
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		return out, err
	}
	return out, nil
}
