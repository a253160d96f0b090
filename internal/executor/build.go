package executor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/outfitterhq/outfitter/internal/formula"
	"github.com/outfitterhq/outfitter/internal/pkgmgr"
)

// euid is overridable in tests to simulate root and non-root runs.
var euid = os.Geteuid

// BuildCommand maps a step onto the external command that implements it
// on the given platform. Package-manager steps that need elevation get
// a sudo prefix unless the process already runs as root.
func BuildCommand(step formula.Step, platform string) (Command, error) {
	switch step.Type {
	case formula.StepShell:
		cmdStr := step.Command
		if len(step.Args) > 0 {
			cmdStr += " " + strings.Join(step.Args, " ")
		}
		return ShellCommand(cmdStr, platform), nil

	case formula.StepDownload:
		return downloadCommand(step, platform), nil

	case formula.StepGitClone:
		args := append([]string{"clone", step.Command}, step.Args...)
		return Command{Name: "git", Args: args}, nil

	default:
		mgr, ok := pkgmgr.Get(step.Type)
		if !ok {
			return Command{}, fmt.Errorf("unknown step type %q", step.Type)
		}
		argv := mgr.InstallArgv(step.Command, step.Args)
		if mgr.RequiresSudo && platform != "windows" && euid() != 0 {
			argv = append([]string{"sudo"}, argv...)
		}
		return Command{Name: argv[0], Args: argv[1:]}, nil
	}
}

// ShellCommand wraps a command string in the platform shell. On Windows
// the full PowerShell path is used so PATH shims cannot intercept it.
func ShellCommand(cmdStr, platform string) Command {
	if platform == "windows" {
		return Command{
			Name: powershellPath(),
			Args: []string{"-NoProfile", "-NonInteractive", "-Command", cmdStr},
		}
	}
	return Command{Name: "sh", Args: []string{"-c", cmdStr}}
}

// downloadCommand builds a download-and-run invocation: fetch the URL
// in step.Command and pipe it into a shell. Step arguments are passed
// to the downloaded script.
func downloadCommand(step formula.Step, platform string) Command {
	if platform == "windows" {
		ps := fmt.Sprintf("irm %s | iex", step.Command)
		return Command{
			Name: powershellPath(),
			Args: []string{"-NoProfile", "-NonInteractive", "-Command", ps},
		}
	}

	// pipefail makes a failed download fail the step instead of feeding
	// an empty script to sh.
	script := fmt.Sprintf("set -o pipefail; curl -fsSL %s | sh", step.Command)
	if len(step.Args) > 0 {
		script = fmt.Sprintf("set -o pipefail; curl -fsSL %s | sh -s -- %s", step.Command, strings.Join(step.Args, " "))
	}
	return Command{Name: "bash", Args: []string{"-c", script}}
}

// powershellPath returns the absolute PowerShell path, falling back to
// the conventional system root when SYSTEMROOT is unset.
func powershellPath() string {
	systemRoot := os.Getenv("SYSTEMROOT")
	if systemRoot == "" {
		systemRoot = `C:\Windows`
	}
	return filepath.Join(systemRoot, "System32", "WindowsPowerShell", "v1.0", "powershell.exe")
}
