// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config holds the default values of the search flags.
	Config struct {
		// IgnoreCase matches case-insensitively.
		IgnoreCase bool `json:"ignore_case" mapstructure:"ignore_case"`
		// Recursive descends into directory arguments.
		Recursive bool `json:"recursive" mapstructure:"recursive"`
		// Count prints per-source match counts instead of lines.
		Count bool `json:"count" mapstructure:"count"`
		// InvertMatch selects non-matching lines.
		InvertMatch bool `json:"invert_match" mapstructure:"invert_match"`
		// ExcludeDirs holds directory base-name globs skipped while recursing.
		ExcludeDirs []string `json:"exclude_dirs" mapstructure:"exclude_dirs"`
		// UI configures diagnostics.
		UI UIConfig `json:"ui" mapstructure:"ui"`

		// Source is the config file the values were read from, empty when
		// only defaults and environment variables applied.
		Source string `json:"-" mapstructure:"-"`
	}

	// UIConfig configures diagnostics.
	UIConfig struct {
		// Verbose enables debug logging and issue hints.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the built-in defaults: every flag off, no exclusions.
func DefaultConfig() *Config {
	return &Config{ExcludeDirs: []string{}}
}

// Validate checks fields that the file schemas cannot express.
func (c *Config) Validate() error {
	var errs []error
	for i, glob := range c.ExcludeDirs {
		if strings.TrimSpace(glob) == "" {
			errs = append(errs, fmt.Errorf("exclude_dirs[%d]: empty glob", i))
			continue
		}
		if _, err := filepath.Match(glob, ""); err != nil {
			errs = append(errs, fmt.Errorf("exclude_dirs[%d]: %q: %w", i, glob, err))
		}
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
