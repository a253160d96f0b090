package testhelper

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/outfitterhq/outfitter/internal/executor"
)

func TestFakeRunner_ZeroValueSucceeds(t *testing.T) {
	t.Parallel()

	var r FakeRunner
	out, err := r.Run(context.Background(), executor.Command{Name: "anything"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", out.ExitCode)
	}
	if r.CallCount() != 1 {
		t.Errorf("CallCount() = %d, want 1", r.CallCount())
	}
}

func TestFakeRunner_Stub(t *testing.T) {
	t.Parallel()

	r := (&FakeRunner{}).
		Stub("git --version", Ok("git version 2.40.1\n")).
		Stub("broken install", Fail(1, "no such package"))

	out, err := r.Run(context.Background(), executor.Command{Name: "git", Args: []string{"--version"}})
	if err != nil || out.Stdout != "git version 2.40.1\n" {
		t.Errorf("Run(git --version) = %+v, %v", out, err)
	}

	out, err = r.Run(context.Background(), executor.Command{Name: "broken", Args: []string{"install"}})
	if err != nil || out.ExitCode != 1 || out.Stderr != "no such package" {
		t.Errorf("Run(broken install) = %+v, %v", out, err)
	}
}

func TestFakeRunner_StubShell(t *testing.T) {
	t.Parallel()

	r := (&FakeRunner{}).StubShell("node --version", Ok("v20.11.0\n"))

	cmd := executor.ShellCommand("node --version", "linux")
	out, err := r.Run(context.Background(), cmd)
	if err != nil || out.Stdout != "v20.11.0\n" {
		t.Errorf("Run() = %+v, %v, want the shell stub hit", out, err)
	}
}

func TestFakeRunner_SpawnError(t *testing.T) {
	t.Parallel()

	want := stderrors.New("exec: not found")
	r := &FakeRunner{Default: SpawnError(want)}

	_, err := r.Run(context.Background(), executor.Command{Name: "missing"})
	if !stderrors.Is(err, want) {
		t.Errorf("Run() error = %v, want %v", err, want)
	}
}

func TestFakeRunner_CallStrings(t *testing.T) {
	t.Parallel()

	r := &FakeRunner{}
	r.Run(context.Background(), executor.Command{Name: "a", Args: []string{"1"}})
	r.Run(context.Background(), executor.Command{Name: "b"})

	got := r.CallStrings()
	if len(got) != 2 || got[0] != "a 1" || got[1] != "b" {
		t.Errorf("CallStrings() = %v, want [a 1, b]", got)
	}
}
