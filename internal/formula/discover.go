package formula

import (
	"os"
	"path/filepath"

	"github.com/outfitterhq/outfitter/internal/errors"
)

// Discovery candidates, tried in order in each directory. Named files win
// over the *.formula.* globs.
var (
	formulaNames = []string{"outfitter.yaml", "outfitter.yml"}
	formulaGlobs = []string{"*.formula.yaml", "*.formula.yml", "*.formula.toml"}
)

// ErrNoFormula is returned when no formula file exists in the start
// directory or any parent.
var ErrNoFormula = errors.NotFound("formula file", "outfitter.yaml, outfitter.yml, or *.formula.{yaml,yml,toml} (searched up to the filesystem root)")

// Discover walks up from the current working directory until it finds a
// formula file.
func Discover() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return DiscoverFrom(cwd)
}

// DiscoverFrom walks up from the given directory until it finds a formula
// file. Glob matches within one directory are taken in lexical order.
func DiscoverFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if path, ok := formulaInDir(dir); ok {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNoFormula
		}
		dir = parent
	}
}

func formulaInDir(dir string) (string, bool) {
	for _, name := range formulaNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	for _, pattern := range formulaGlobs {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err == nil && len(matches) > 0 {
			return matches[0], true
		}
	}
	return "", false
}
