package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/outfitterhq/outfitter/internal/errors"
)

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestRunValidate_ValidFormula(t *testing.T) {
	stdout, _ := swapOut(t)
	path := writeDoc(t, "outfitter.yaml", `name: dev
version: 1.0.0
tasks:
  - id: git
    category: essentials
`)

	if err := runValidate(validateCmd, []string{path}); err != nil {
		t.Fatalf("runValidate failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "is valid") {
		t.Errorf("stdout = %q, want an is-valid line", stdout.String())
	}
}

func TestRunValidate_ValidTaskDocument(t *testing.T) {
	stdout, _ := swapOut(t)
	path := writeDoc(t, "ripgrep.yaml", `id: ripgrep
name: ripgrep
steps:
  - name: install ripgrep
    type: brew
    command: ripgrep
`)

	if err := runValidate(validateCmd, []string{path}); err != nil {
		t.Fatalf("runValidate failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "is valid") {
		t.Errorf("stdout = %q, want an is-valid line", stdout.String())
	}
}

func TestRunValidate_MissingVersion(t *testing.T) {
	stdout, _ := swapOut(t)
	path := writeDoc(t, "outfitter.yaml", `name: dev
tasks:
  - id: git
    category: essentials
`)

	err := runValidate(validateCmd, []string{path})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if got := errors.GetExitCode(err); got != errors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", got, errors.ExitConfigError)
	}
	if !strings.Contains(stdout.String(), "version") {
		t.Errorf("failure line %q does not name the missing field", stdout.String())
	}
}

func TestRunValidate_UnknownFieldWarns(t *testing.T) {
	stdout, stderr := swapOut(t)
	path := writeDoc(t, "outfitter.yaml", `name: dev
version: 1.0.0
colour: green
tasks:
  - id: git
    category: essentials
`)

	// Unknown fields warn but never fail.
	if err := runValidate(validateCmd, []string{path}); err != nil {
		t.Fatalf("runValidate failed: %v", err)
	}
	if !strings.Contains(stderr.String(), "colour") {
		t.Errorf("stderr = %q, want a warning naming the unknown field", stderr.String())
	}
	if !strings.Contains(stdout.String(), "is valid") {
		t.Errorf("stdout = %q, want an is-valid line", stdout.String())
	}
}

func TestRunValidate_MixedResults(t *testing.T) {
	swapOut(t)
	good := writeDoc(t, "good.yaml", `name: dev
version: 1.0.0
tasks:
  - id: git
    category: essentials
`)
	bad := writeDoc(t, "bad.yaml", `name: dev
version: 1.0.0
tasks:
  - id: git
`)

	err := runValidate(validateCmd, []string{good, bad})
	if err == nil {
		t.Fatal("expected an error when any document fails")
	}
	if !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("error = %q, want a 1-of-2 count", err)
	}
}
