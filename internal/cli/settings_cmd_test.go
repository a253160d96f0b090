package cli

import (
	"strings"
	"testing"

	"github.com/outfitterhq/outfitter/internal/errors"
	"github.com/outfitterhq/outfitter/internal/settings"
)

// withSavedSettings captures what runSettingsSet writes instead of
// touching the config directory.
func withSavedSettings(t *testing.T) *[]*settings.Settings {
	t.Helper()
	var saved []*settings.Settings
	oldSave := saveSettingsFunc
	saveSettingsFunc = func(s *settings.Settings) error {
		saved = append(saved, s)
		return nil
	}
	t.Cleanup(func() { saveSettingsFunc = oldSave })
	return &saved
}

func TestRunSettingsGet_All(t *testing.T) {
	stdout, _ := swapOut(t)
	withSettings(t, &settings.Settings{DefaultFormula: "/team/base.formula.yaml"})

	if err := runSettingsGet(settingsGetCmd, nil); err != nil {
		t.Fatalf("runSettingsGet() error: %v", err)
	}

	got := stdout.String()
	for _, want := range []string{"update-check", "true", "default-formula", "/team/base.formula.yaml"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunSettingsGet_SingleKey(t *testing.T) {
	stdout, _ := swapOut(t)
	disabled := false
	withSettings(t, &settings.Settings{UpdateCheck: &disabled})

	if err := runSettingsGet(settingsGetCmd, []string{"update-check"}); err != nil {
		t.Fatalf("runSettingsGet() error: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "false" {
		t.Errorf("output = %q, want %q", got, "false")
	}
}

func TestRunSettingsGet_UnknownKey(t *testing.T) {
	swapOut(t)
	withSettings(t, &settings.Settings{})

	err := runSettingsGet(settingsGetCmd, []string{"colour-scheme"})
	if err == nil {
		t.Fatal("runSettingsGet() expected an error for an unknown key")
	}
	if !strings.Contains(err.Error(), "colour-scheme") {
		t.Errorf("error = %q, want the key named", err)
	}
	if got := errors.GetExitCode(err); got != errors.ExitConfigError {
		t.Errorf("GetExitCode() = %d, want %d", got, errors.ExitConfigError)
	}
}

func TestRunSettingsSet_UpdateCheck(t *testing.T) {
	stdout, _ := swapOut(t)
	withSettings(t, &settings.Settings{})
	saved := withSavedSettings(t)

	if err := runSettingsSet(settingsSetCmd, []string{"update-check", "false"}); err != nil {
		t.Fatalf("runSettingsSet() error: %v", err)
	}

	if len(*saved) != 1 {
		t.Fatalf("Save called %d times, want 1", len(*saved))
	}
	s := (*saved)[0]
	if s.UpdateCheck == nil || *s.UpdateCheck {
		t.Errorf("UpdateCheck = %v, want false", s.UpdateCheck)
	}
	if !strings.Contains(stdout.String(), "update-check = false") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestRunSettingsSet_DefaultFormula(t *testing.T) {
	swapOut(t)
	withSettings(t, &settings.Settings{})
	saved := withSavedSettings(t)

	if err := runSettingsSet(settingsSetCmd, []string{"default-formula", "/home/me/dev.formula.yaml"}); err != nil {
		t.Fatalf("runSettingsSet() error: %v", err)
	}
	if len(*saved) != 1 {
		t.Fatalf("Save called %d times, want 1", len(*saved))
	}
	if got := (*saved)[0].DefaultFormula; got != "/home/me/dev.formula.yaml" {
		t.Errorf("DefaultFormula = %q", got)
	}
}

func TestRunSettingsSet_BadBool(t *testing.T) {
	swapOut(t)
	withSettings(t, &settings.Settings{})
	saved := withSavedSettings(t)

	err := runSettingsSet(settingsSetCmd, []string{"update-check", "maybe"})
	if err == nil {
		t.Fatal("runSettingsSet() expected an error for a non-boolean value")
	}
	if !strings.Contains(err.Error(), `"maybe"`) {
		t.Errorf("error = %q", err)
	}
	if len(*saved) != 0 {
		t.Errorf("Save called %d times, want 0", len(*saved))
	}
}

func TestRequireSubcommand(t *testing.T) {
	err := requireSubcommand(settingsCmd, nil)
	if err == nil {
		t.Fatal("requireSubcommand() expected an error with no arguments")
	}
	if !strings.Contains(err.Error(), "requires a subcommand") {
		t.Errorf("error = %q", err)
	}

	err = requireSubcommand(settingsCmd, []string{"frobnicate"})
	if err == nil {
		t.Fatal("requireSubcommand() expected an error for an unknown subcommand")
	}
	if !strings.Contains(err.Error(), `"frobnicate"`) {
		t.Errorf("error = %q", err)
	}
}
