// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
)

// StdinSentinel is the path argument that stands for standard input.
const StdinSentinel SourcePath = "-"

// ErrInvalidSourcePath is the sentinel error wrapped by InvalidSourcePathError.
var ErrInvalidSourcePath = errors.New("invalid source path")

type (
	// SourcePath identifies a readable source: either StdinSentinel or a
	// filesystem path to a regular file.
	SourcePath string

	// InvalidSourcePathError is returned when a SourcePath is empty.
	InvalidSourcePathError struct {
		Value SourcePath
	}
)

// String returns the string representation of the SourcePath.
func (p SourcePath) String() string { return string(p) }

// IsStdin reports whether p is the stdin sentinel.
func (p SourcePath) IsStdin() bool { return p == StdinSentinel }

// IsValid returns whether the SourcePath is valid.
// Only the empty string is rejected; whitespace is a legal file name.
func (p SourcePath) IsValid() (bool, []error) {
	if p == "" {
		return false, []error{&InvalidSourcePathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSourcePathError.
func (e *InvalidSourcePathError) Error() string {
	return fmt.Sprintf("invalid source path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidSourcePath for errors.Is() compatibility.
func (e *InvalidSourcePathError) Unwrap() error { return ErrInvalidSourcePath }
