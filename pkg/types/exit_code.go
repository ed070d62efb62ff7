// SPDX-License-Identifier: MPL-2.0

package types

const (
	// ExitSuccess is returned when every source was searched without error.
	// Finding no matching line is still a success.
	ExitSuccess ExitCode = 0
	// ExitFailure is returned for fatal configuration errors and when at least
	// one source could not be resolved, opened or read.
	ExitFailure ExitCode = 1
)

// ExitCode represents a process exit status code.
// The zero value (0) means success.
type ExitCode int
