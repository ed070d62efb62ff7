// SPDX-License-Identifier: MPL-2.0

package search

import (
	"path/filepath"
	"regexp"
	"slices"

	"github.com/grepr/grepr/pkg/types"
)

type (
	// Options is the raw input of a search, as collected by the CLI.
	Options struct {
		Pattern     string
		IgnoreCase  bool
		Paths       []string
		Recursive   bool
		CountOnly   bool
		InvertMatch bool
		// ExcludeDirs holds filepath.Match globs tested against directory
		// base names during recursive traversal.
		ExcludeDirs []string
	}

	// SearchConfig is the validated, immutable configuration of one run.
	SearchConfig struct {
		pattern     *regexp.Regexp
		paths       []string
		recursive   bool
		countOnly   bool
		invertMatch bool
		excludeDirs []string
	}
)

// NewSearchConfig compiles the pattern (case-insensitive when requested) and
// validates the exclude globs. With no paths the config reads stdin.
func NewSearchConfig(opts Options) (SearchConfig, error) {
	expr := opts.Pattern
	if opts.IgnoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return SearchConfig{}, &ConfigError{Field: "pattern", Value: opts.Pattern, Err: err}
	}

	for _, glob := range opts.ExcludeDirs {
		if _, err := filepath.Match(glob, ""); err != nil {
			return SearchConfig{}, &ConfigError{Field: "exclude-dir", Value: glob, Err: err}
		}
	}

	paths := slices.Clone(opts.Paths)
	if len(paths) == 0 {
		paths = []string{types.StdinSentinel.String()}
	}

	return SearchConfig{
		pattern:     re,
		paths:       paths,
		recursive:   opts.Recursive,
		countOnly:   opts.CountOnly,
		invertMatch: opts.InvertMatch,
		excludeDirs: slices.Clone(opts.ExcludeDirs),
	}, nil
}

// Pattern returns the compiled matcher.
func (c SearchConfig) Pattern() *regexp.Regexp { return c.pattern }

// Paths returns a copy of the path arguments.
func (c SearchConfig) Paths() []string { return slices.Clone(c.paths) }

// Recursive reports whether directories are descended into.
func (c SearchConfig) Recursive() bool { return c.recursive }

// CountOnly reports whether per-source counts are printed instead of lines.
func (c SearchConfig) CountOnly() bool { return c.countOnly }

// InvertMatch reports whether non-matching lines are selected.
func (c SearchConfig) InvertMatch() bool { return c.invertMatch }

// ExcludeDirs returns a copy of the directory exclusion globs.
func (c SearchConfig) ExcludeDirs() []string { return slices.Clone(c.excludeDirs) }
