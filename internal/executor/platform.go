package executor

import (
	"runtime"
	"strings"

	"github.com/outfitterhq/outfitter/internal/formula"
)

// NormalizePlatform maps common platform spellings onto GOOS names, so
// formulas written with "win32" or "macos" still match.
func NormalizePlatform(platform string) string {
	switch strings.ToLower(platform) {
	case "win32", "win64", "windows":
		return "windows"
	case "macos", "osx", "darwin":
		return "darwin"
	default:
		return strings.ToLower(platform)
	}
}

// CurrentPlatform returns the running platform's GOOS name.
func CurrentPlatform() string {
	return runtime.GOOS
}

// StepApplies reports whether a step runs on the given platform. An
// empty platform list means the step applies everywhere.
func StepApplies(step formula.Step, platform string) bool {
	if len(step.Platforms) == 0 {
		return true
	}
	for _, p := range step.Platforms {
		if NormalizePlatform(p) == platform {
			return true
		}
	}
	return false
}
