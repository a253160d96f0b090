// Package settings stores user-level CLI preferences in a small JSON
// file under the platform config directory. Loading is lenient: a
// missing or unreadable file behaves like an empty one, so settings
// are never the reason a run fails.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	dirName  = "outfitter"
	fileName = "settings.json"
)

// basePath overrides the config directory for testing. When empty
// (default), os.UserConfigDir is used.
var basePath string

// Settings holds user-level preferences that apply across formulas and
// persist between runs.
type Settings struct {
	// UpdateCheck controls whether the CLI checks for new releases.
	// nil = enabled (default), false = disabled.
	UpdateCheck *bool `json:"update_check,omitempty"`

	// DefaultFormula is the formula path used when no argument is
	// given and discovery finds nothing.
	DefaultFormula string `json:"default_formula,omitempty"`
}

// Path returns the location of the settings file.
func Path() (string, error) {
	base := basePath
	if base == "" {
		var err error
		base, err = os.UserConfigDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(base, dirName, fileName), nil
}

// Load reads the settings file. A missing or unparseable file yields
// empty settings.
func Load() *Settings {
	path, err := Path()
	if err != nil {
		return &Settings{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return &Settings{}
	}

	return &s
}

// Save writes the settings file, creating the config directory when
// needed.
func Save(s *Settings) error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// IsUpdateCheckEnabled reports whether the update check may run.
// Enabled unless explicitly turned off.
func (s *Settings) IsUpdateCheckEnabled() bool {
	if s.UpdateCheck == nil {
		return true
	}
	return *s.UpdateCheck
}
