package outfitter_test

import (
	"testing"

	"github.com/outfitterhq/outfitter/internal/errors"
	"github.com/outfitterhq/outfitter/pkg/outfitter"
)

func TestExitCodeValues(t *testing.T) {
	tests := []struct {
		name     string
		constant int
		expected int
	}{
		{"ExitSuccess", outfitter.ExitSuccess, 0},
		{"ExitFailure", outfitter.ExitFailure, 1},
		{"ExitConfigError", outfitter.ExitConfigError, 2},
		{"ExitEnvError", outfitter.ExitEnvError, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("outfitter.%s = %d, want %d", tt.name, tt.constant, tt.expected)
			}
		})
	}
}

// TestExitCodeConsistency pins the public constants to the internal
// errors package so the two cannot drift.
func TestExitCodeConsistency(t *testing.T) {
	tests := []struct {
		name     string
		public   int
		internal int
	}{
		{"Success", outfitter.ExitSuccess, errors.ExitSuccess},
		{"Failure/RuntimeError", outfitter.ExitFailure, errors.ExitRuntimeError},
		{"ConfigError", outfitter.ExitConfigError, errors.ExitConfigError},
		{"EnvError/EnvironmentError", outfitter.ExitEnvError, errors.ExitEnvironmentError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.public != tt.internal {
				t.Errorf("exit code mismatch: outfitter constant = %d, errors constant = %d",
					tt.public, tt.internal)
			}
		})
	}
}
