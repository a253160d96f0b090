// Package outfitter holds the public constants external tools need to
// integrate with the outfitter CLI.
package outfitter

// Exit codes returned by the outfitter CLI.
const (
	// ExitSuccess: the command completed.
	ExitSuccess = 0

	// ExitFailure: a runtime failure, such as a failed install step.
	ExitFailure = 1

	// ExitConfigError: a formula or task document error, such as a
	// validation failure or an unresolved task reference.
	ExitConfigError = 2

	// ExitEnvError: an environment error, such as another install
	// holding the run lock or a missing package manager.
	ExitEnvError = 3
)
