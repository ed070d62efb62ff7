// SPDX-License-Identifier: MPL-2.0

package search

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrInvalidPattern is the sentinel error wrapped by ConfigError.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrIsDirectory is reported for a directory argument when recursion is off.
	ErrIsDirectory = errors.New("is a directory")
	// ErrEntriesFailed is the sentinel error wrapped by RunError.
	ErrEntriesFailed = errors.New("one or more entries failed")
)

type (
	// ConfigError is returned by NewSearchConfig when the pattern or an
	// exclude glob cannot be compiled. It is fatal for the run.
	ConfigError struct {
		// Field names the offending input ("pattern" or "exclude-dir").
		Field string
		Value string
		Err   error
	}

	// ResolveError reports a path argument or traversal entry that could not
	// be classified.
	ResolveError struct {
		Path string
		Err  error
	}

	// OpenError reports a resolved source that could not be opened.
	OpenError struct {
		Path string
		Err  error
	}

	// ScanError reports a read failure in the middle of a source. Lines
	// already printed for that source remain valid.
	ScanError struct {
		Path string
		Err  error
	}

	// WriteError reports output that could not be written. It ends the run
	// because no later entry can be printed either.
	WriteError struct {
		Err error
	}

	// RunError summarizes a run where at least one entry failed.
	RunError struct {
		Failed int
		Total  int
		// Errs holds the per-entry errors in report order.
		Errs []error
	}
)

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns both ErrInvalidPattern and the compile error.
func (e *ConfigError) Unwrap() []error { return []error{ErrInvalidPattern, e.Err} }

// Error implements the error interface for ResolveError.
func (e *ResolveError) Error() string {
	if e.Path == "" {
		return cause(e.Err).Error()
	}
	if errors.Is(e.Err, ErrIsDirectory) {
		return e.Path + " is a directory"
	}
	return e.Path + ": " + cause(e.Err).Error()
}

// Unwrap returns the underlying error.
func (e *ResolveError) Unwrap() error { return e.Err }

// Error implements the error interface for OpenError.
func (e *OpenError) Error() string { return e.Path + ": " + cause(e.Err).Error() }

// Unwrap returns the underlying error.
func (e *OpenError) Unwrap() error { return e.Err }

// Error implements the error interface for ScanError.
func (e *ScanError) Error() string { return e.Path + ": " + cause(e.Err).Error() }

// Unwrap returns the underlying error.
func (e *ScanError) Unwrap() error { return e.Err }

// Error implements the error interface for WriteError.
func (e *WriteError) Error() string { return "write output: " + e.Err.Error() }

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error { return e.Err }

// Error implements the error interface for RunError.
func (e *RunError) Error() string {
	return fmt.Sprintf("%d of %d entries failed", e.Failed, e.Total)
}

// Unwrap returns ErrEntriesFailed followed by every per-entry error.
func (e *RunError) Unwrap() []error {
	return append([]error{ErrEntriesFailed}, e.Errs...)
}

// cause strips the *fs.PathError layer so messages read "<path>: <cause>"
// instead of repeating the operation and path.
func cause(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
