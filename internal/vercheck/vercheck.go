// Package vercheck decides whether an installed tool already satisfies
// a formula's version constraint. It is the idempotence mechanism:
// there is no installation ledger, so re-runs converge by re-asking
// every tool for its version.
package vercheck

import (
	"context"
	"fmt"
	"regexp"
	"runtime"
	"time"

	"github.com/outfitterhq/outfitter/internal/executor"
	"github.com/outfitterhq/outfitter/internal/formula"
	"github.com/outfitterhq/outfitter/internal/version"
)

// defaultTimeout bounds a version-check command. A tool that takes
// longer to report its version is treated as not installed.
const defaultTimeout = 10 * time.Second

// defaultPattern matches the first version-looking token in command
// output when a task defines no extraction regex.
var defaultPattern = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?)`)

// Result reports one task's version state.
type Result struct {
	Installed      bool
	CurrentVersion string
	NeedsUpdate    bool
	Message        string
}

// Checker runs version-check commands and matches the reported version
// against constraints.
type Checker struct {
	Runner executor.Runner

	// Timeout bounds each check command; zero means defaultTimeout.
	Timeout time.Duration

	// Platform picks the shell used for check commands; empty means
	// the current platform.
	Platform string
}

// New returns a checker that spawns real processes.
func New() *Checker {
	return &Checker{Runner: executor.ExecRunner{}}
}

func (c *Checker) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return defaultTimeout
}

func (c *Checker) platform() string {
	if c.Platform != "" {
		return c.Platform
	}
	return runtime.GOOS
}

// Check runs task's version command and decides whether the installed
// tool satisfies constraint. An empty constraint means "latest". A task
// without a version command cannot be verified and is treated as not
// installed; so is a check command that fails or times out. A check
// that succeeds but reports nothing parseable counts as installed and
// up to date.
func (c *Checker) Check(ctx context.Context, task *formula.Task, constraint string) Result {
	if task.VersionCommand == "" {
		return Result{
			NeedsUpdate: true,
			Message:     "no version check command; assuming not installed",
		}
	}

	cmd := executor.ShellCommand(task.VersionCommand, c.platform())
	cmd.Timeout = c.timeout()

	out, err := c.Runner.Run(ctx, cmd)
	if err != nil {
		return Result{
			NeedsUpdate: true,
			Message:     fmt.Sprintf("version check failed: %v", err),
		}
	}
	if out.ExitCode != 0 {
		return Result{
			NeedsUpdate: true,
			Message:     fmt.Sprintf("version check exited with code %d", out.ExitCode),
		}
	}

	// Some tools report their version on stderr.
	current := ExtractVersion(out.Stdout, task.VersionRegex)
	if current == "" {
		current = ExtractVersion(out.Stderr, task.VersionRegex)
	}
	if current == "" {
		return Result{
			Installed: true,
			Message:   "installed, version unknown",
		}
	}

	if constraint == "" {
		constraint = "latest"
	}
	if version.Satisfies(current, constraint) {
		return Result{
			Installed:      true,
			CurrentVersion: current,
			Message:        fmt.Sprintf("%s already satisfies %q", current, constraint),
		}
	}
	return Result{
		Installed:      true,
		CurrentVersion: current,
		NeedsUpdate:    true,
		Message:        fmt.Sprintf("%s does not satisfy %q", current, constraint),
	}
}

// ExtractVersion pulls a version string out of command output. With a
// pattern, the first capture group wins; an invalid or group-less
// pattern falls back to the default numeric token.
func ExtractVersion(output, pattern string) string {
	re := defaultPattern
	if pattern != "" {
		if custom, err := regexp.Compile(pattern); err == nil && custom.NumSubexp() >= 1 {
			re = custom
		}
	}

	matches := re.FindStringSubmatch(output)
	if len(matches) < 2 {
		return ""
	}
	return matches[1]
}
