// Package testhelper provides fakes for exercising the engine without
// spawning processes or touching the network.
package testhelper

import (
	"context"
	"sync"

	"github.com/outfitterhq/outfitter/internal/executor"
)

// Response is one scripted command outcome.
type Response struct {
	Output executor.Output
	Err    error
}

// Ok scripts a zero-exit command with the given stdout.
func Ok(stdout string) Response {
	return Response{Output: executor.Output{Stdout: stdout}}
}

// Fail scripts a non-zero exit with the given stderr.
func Fail(exitCode int, stderr string) Response {
	return Response{Output: executor.Output{ExitCode: exitCode, Stderr: stderr}}
}

// SpawnError scripts a spawn-level failure.
func SpawnError(err error) Response {
	return Response{Err: err}
}

// FakeRunner implements executor.Runner with scripted responses keyed
// by the rendered command string, recording every call. The zero value
// answers every command with a silent success.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []executor.Command

	// Default answers commands with no scripted response.
	Default Response
}

// Stub scripts the response for a command string as rendered by
// CommandString ("name arg1 arg2 ...").
func (r *FakeRunner) Stub(cmd string, resp Response) *FakeRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.responses == nil {
		r.responses = make(map[string]Response)
	}
	r.responses[cmd] = resp
	return r
}

// StubShell scripts the response for a unix shell invocation of cmdStr.
func (r *FakeRunner) StubShell(cmdStr string, resp Response) *FakeRunner {
	return r.Stub(CommandString(executor.ShellCommand(cmdStr, "linux")), resp)
}

// Run returns the scripted response for cmd, or Default.
func (r *FakeRunner) Run(_ context.Context, cmd executor.Command) (executor.Output, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, cmd)
	if resp, ok := r.responses[CommandString(cmd)]; ok {
		return resp.Output, resp.Err
	}
	return r.Default.Output, r.Default.Err
}

// Calls returns a copy of every command run so far.
func (r *FakeRunner) Calls() []executor.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]executor.Command(nil), r.calls...)
}

// CallStrings returns the rendered command strings run so far.
func (r *FakeRunner) CallStrings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, cmd := range r.calls {
		out[i] = CommandString(cmd)
	}
	return out
}

// CallCount returns how many commands have been run.
func (r *FakeRunner) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// CommandString renders a command as "name arg1 arg2 ...".
func CommandString(cmd executor.Command) string {
	return cmd.String()
}
