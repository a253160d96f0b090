package executor

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"
)

// requireUnixShell skips process-spawning tests where sh is not a
// given.
func requireUnixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecRunner_CapturesStdout(t *testing.T) {
	requireUnixShell(t)

	out, err := ExecRunner{}.Run(context.Background(), Command{
		Name: "sh", Args: []string{"-c", "echo hello"},
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", out.ExitCode)
	}
	if out.Stdout != "hello\n" {
		t.Errorf("Stdout = %q, want %q", out.Stdout, "hello\n")
	}
}

func TestExecRunner_CapturesStderrAndExitCode(t *testing.T) {
	requireUnixShell(t)

	out, err := ExecRunner{}.Run(context.Background(), Command{
		Name: "sh", Args: []string{"-c", "echo oops >&2; exit 7"},
	})
	if err != nil {
		t.Fatalf("Run() error: %v, want nil for a non-zero exit", err)
	}
	if out.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", out.ExitCode)
	}
	if out.Stderr != "oops\n" {
		t.Errorf("Stderr = %q, want %q", out.Stderr, "oops\n")
	}
}

func TestExecRunner_SpawnFailure(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), Command{
		Name: "outfitter-test-binary-that-does-not-exist",
	})
	if err == nil {
		t.Error("Run() error = nil, want a spawn failure")
	}
}

func TestExecRunner_ExtraEnv(t *testing.T) {
	requireUnixShell(t)

	out, err := ExecRunner{}.Run(context.Background(), Command{
		Name: "sh", Args: []string{"-c", "echo $OUTFITTER_TEST_VALUE"},
		Env: []string{"OUTFITTER_TEST_VALUE=present"},
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if strings.TrimSpace(out.Stdout) != "present" {
		t.Errorf("Stdout = %q, want the extra env visible", out.Stdout)
	}
}

func TestExecRunner_WorkingDir(t *testing.T) {
	requireUnixShell(t)

	dir := t.TempDir()
	out, err := ExecRunner{}.Run(context.Background(), Command{
		Name: "sh", Args: []string{"-c", "pwd"},
		Dir: dir,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	// TempDir may sit behind a symlink (macOS /tmp), so compare the
	// trailing component only.
	if !strings.Contains(out.Stdout, lastPathComponent(dir)) {
		t.Errorf("pwd = %q, want it under %q", out.Stdout, dir)
	}
}

func lastPathComponent(path string) string {
	parts := strings.Split(strings.TrimRight(path, "/"), "/")
	return parts[len(parts)-1]
}

func TestExecRunner_Timeout(t *testing.T) {
	requireUnixShell(t)

	start := time.Now()
	_, err := ExecRunner{}.Run(context.Background(), Command{
		Name: "sh", Args: []string{"-c", "sleep 10"},
		Timeout: 100 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("Run() error = nil, want a timeout error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Run() took %v, want the timeout to cut it short", elapsed)
	}
}
