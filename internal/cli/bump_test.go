package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/outfitterhq/outfitter/internal/formula"
)

const bumpTestDoc = `name: dev-machine
version: 1.2.3
description: workstation baseline
author: platform team
updated: "2025-01-01"
categories:
  - essentials
variables:
  CHANNEL: stable
tasks:
  - id: git
    category: essentials
    version: ">=2.40"
  - id: curl
    category: essentials
`

func writeBumpFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dev.formula.yaml")
	if err := os.WriteFile(path, []byte(bumpTestDoc), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func fixTime(t *testing.T, fixed time.Time) {
	t.Helper()
	oldTimeNow := timeNowFunc
	timeNowFunc = func() time.Time { return fixed }
	t.Cleanup(func() { timeNowFunc = oldTimeNow })
}

func TestRunBump_DefaultsToPatch(t *testing.T) {
	swapOut(t)
	path := writeBumpFixture(t)
	fixTime(t, time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC))

	if err := runBump(bumpCmd, []string{path}); err != nil {
		t.Fatalf("runBump failed: %v", err)
	}

	f, warnings, err := formula.LoadFormula(path)
	if err != nil {
		t.Fatalf("reloading bumped formula: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings after rewrite: %v", warnings)
	}
	if f.Version != "1.2.4" {
		t.Errorf("Version = %q, want %q", f.Version, "1.2.4")
	}
	if f.Updated != "2026-08-26" {
		t.Errorf("Updated = %q, want %q", f.Updated, "2026-08-26")
	}
}

func TestRunBump_RoundTripKeepsFields(t *testing.T) {
	swapOut(t)
	path := writeBumpFixture(t)
	fixTime(t, time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC))

	if err := runBump(bumpCmd, []string{path, "minor"}); err != nil {
		t.Fatalf("runBump failed: %v", err)
	}

	f, _, err := formula.LoadFormula(path)
	if err != nil {
		t.Fatalf("reloading bumped formula: %v", err)
	}

	// Everything except version and updated survives the rewrite.
	if f.Version != "1.3.0" {
		t.Errorf("Version = %q, want %q", f.Version, "1.3.0")
	}
	if f.Name != "dev-machine" {
		t.Errorf("Name = %q", f.Name)
	}
	if f.Description != "workstation baseline" {
		t.Errorf("Description = %q", f.Description)
	}
	if f.Author != "platform team" {
		t.Errorf("Author = %q", f.Author)
	}
	if f.Variables["CHANNEL"] != "stable" {
		t.Errorf("Variables = %v", f.Variables)
	}
	if len(f.Tasks) != 2 {
		t.Fatalf("Tasks = %v", f.Tasks)
	}
	if f.Tasks[0].ID != "git" || f.Tasks[0].Version != ">=2.40" {
		t.Errorf("Tasks[0] = %+v", f.Tasks[0])
	}
	if f.Tasks[1].ID != "curl" || f.Tasks[1].Category != "essentials" {
		t.Errorf("Tasks[1] = %+v", f.Tasks[1])
	}
}

func TestRunBump_PartAsOnlyArgument(t *testing.T) {
	swapOut(t)
	path := writeBumpFixture(t)
	fixTime(t, time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC))

	// "major" alone means: discover the formula, bump its major part.
	chdir(t, filepath.Dir(path))

	if err := runBump(bumpCmd, []string{"major"}); err != nil {
		t.Fatalf("runBump failed: %v", err)
	}

	f, _, err := formula.LoadFormula(path)
	if err != nil {
		t.Fatalf("reloading bumped formula: %v", err)
	}
	if f.Version != "2.0.0" {
		t.Errorf("Version = %q, want %q", f.Version, "2.0.0")
	}
}

func TestRunBump_UnknownPart(t *testing.T) {
	swapOut(t)
	path := writeBumpFixture(t)

	err := runBump(bumpCmd, []string{path, "huge"})
	if err == nil {
		t.Fatal("expected an error for unknown part")
	}

	// The file must be untouched on failure.
	f, _, loadErr := formula.LoadFormula(path)
	if loadErr != nil {
		t.Fatalf("reloading formula: %v", loadErr)
	}
	if f.Version != "1.2.3" {
		t.Errorf("Version = %q, want untouched %q", f.Version, "1.2.3")
	}
}
