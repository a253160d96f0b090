package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/outfitterhq/outfitter/internal/errors"
	"github.com/outfitterhq/outfitter/internal/formula"
)

const showTestDoc = `name: dev-machine
version: 1.0.0
description: workstation baseline
categories:
  - tools
  - essentials
tasks:
  - id: gh
    category: tools
  - id: git
    category: essentials
    version: '>=2.40'
`

func withShowFormat(t *testing.T, format string) {
	t.Helper()
	old := showFormat
	showFormat = format
	t.Cleanup(func() { showFormat = old })
}

func TestRunShow_Text(t *testing.T) {
	stdout, _ := swapOut(t)
	withShowFormat(t, "text")
	showCmd.SetContext(context.Background())

	path := writeInstallFixture(t, showTestDoc)
	if err := runShow(showCmd, []string{path}); err != nil {
		t.Fatalf("runShow() error: %v", err)
	}

	got := stdout.String()
	for _, want := range []string{
		"dev-machine 1.0.0",
		"workstation baseline",
		"Tools",
		"gh (2 steps), needs git",
		"Essentials",
		"git >=2.40 (3 steps)",
		"Install Order",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	// git is gh's dependency, so it installs first.
	if gitAt, ghAt := strings.Index(got, "1. git"), strings.Index(got, "2. gh"); gitAt < 0 || ghAt < 0 || gitAt > ghAt {
		t.Errorf("install order wrong:\n%s", got)
	}
}

func TestRunShow_Markdown(t *testing.T) {
	stdout, _ := swapOut(t)
	withShowFormat(t, "markdown")
	showCmd.SetContext(context.Background())

	path := writeInstallFixture(t, showTestDoc)
	if err := runShow(showCmd, []string{path}); err != nil {
		t.Fatalf("runShow() error: %v", err)
	}

	got := stdout.String()
	for _, want := range []string{
		"# dev-machine 1.0.0",
		"## Tools",
		"- gh (2 steps), needs git",
		"## Install Order",
		"1. git",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunShow_UnknownFormat(t *testing.T) {
	swapOut(t)
	withShowFormat(t, "yaml")
	showCmd.SetContext(context.Background())

	path := writeInstallFixture(t, showTestDoc)
	err := runShow(showCmd, []string{path})
	if err == nil {
		t.Fatal("runShow() expected an error for an unknown format")
	}
	if !strings.Contains(err.Error(), `"yaml"`) {
		t.Errorf("error = %q", err)
	}
	if got := errors.GetExitCode(err); got != errors.ExitConfigError {
		t.Errorf("GetExitCode() = %d, want %d", got, errors.ExitConfigError)
	}
}

func TestTaskPlanLine(t *testing.T) {
	tests := []struct {
		name string
		task formula.ResolvedTask
		want string
	}{
		{
			name: "bare task",
			task: formula.ResolvedTask{
				Task: formula.Task{ID: "jq", Steps: []formula.Step{{Name: "a"}}},
			},
			want: "jq (1 step)",
		},
		{
			name: "constraint and dependencies",
			task: formula.ResolvedTask{
				Task: formula.Task{
					ID:           "gh",
					Dependencies: []string{"git", "curl"},
					Steps:        []formula.Step{{Name: "a"}, {Name: "b"}},
				},
				Constraint: "^2.0",
			},
			want: "gh ^2.0 (2 steps), needs git, curl",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := taskPlanLine(tt.task); got != tt.want {
				t.Errorf("taskPlanLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCategoriesInOrder(t *testing.T) {
	tasks := []formula.ResolvedTask{
		{Task: formula.Task{ID: "a"}, Category: "tools"},
		{Task: formula.Task{ID: "b"}, Category: "essentials"},
		{Task: formula.Task{ID: "c"}, Category: "tools"},
	}
	got := categoriesInOrder(tasks)
	if len(got) != 2 || got[0] != "tools" || got[1] != "essentials" {
		t.Errorf("categoriesInOrder() = %v", got)
	}
}
