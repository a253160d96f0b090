package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/outfitterhq/outfitter/internal/output"
)

// swapOut replaces the package writer with buffers for one test.
func swapOut(t *testing.T) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	old := out
	out = output.NewWithWriters(stdout, stderr, false)
	t.Cleanup(func() { out = old })
	return stdout, stderr
}

// chdir moves into dir for the test and back afterwards.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldWD) })
}
