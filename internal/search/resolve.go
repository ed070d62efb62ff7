// SPDX-License-Identifier: MPL-2.0

package search

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/grepr/grepr/pkg/types"
)

type (
	// ResolvedEntry is one discovered source, or the error that prevented
	// its discovery.
	ResolvedEntry struct {
		Path types.SourcePath
		Err  error
	}

	// ResolveOption customizes Resolve.
	ResolveOption func(*resolveOptions)

	resolveOptions struct {
		excludeDirs []string
	}
)

// Ok reports whether the entry resolved to a readable source.
func (e ResolvedEntry) Ok() bool { return e.Err == nil }

// WithExcludeDirs skips directories whose base name matches one of globs
// during recursive traversal. Path arguments themselves are never excluded.
func WithExcludeDirs(globs ...string) ResolveOption {
	return func(o *resolveOptions) {
		o.excludeDirs = append(o.excludeDirs, globs...)
	}
}

// Resolve expands path arguments into an ordered list of entries.
//
// The stdin sentinel "-" always resolves to itself without touching the
// filesystem. Without recursion every argument yields exactly one entry and a
// directory yields an ErrIsDirectory error. With recursion directories are
// walked depth-first in lexical order and only regular files are emitted
// (symlinks are followed to files, never into directories); each traversal
// failure becomes an error entry at the point it occurred.
// Entries are not deduplicated.
func Resolve(paths []string, recursive bool, opts ...ResolveOption) []ResolvedEntry {
	var o resolveOptions
	for _, opt := range opts {
		opt(&o)
	}

	entries := make([]ResolvedEntry, 0, len(paths))
	for _, path := range paths {
		if types.SourcePath(path).IsStdin() {
			entries = append(entries, ResolvedEntry{Path: types.StdinSentinel})
			continue
		}
		if valid, errs := types.SourcePath(path).IsValid(); !valid {
			entries = append(entries, failed(path, errors.Join(errs...)))
			continue
		}

		info, err := os.Stat(path)
		switch {
		case err != nil:
			entries = append(entries, failed(path, err))
		case !info.IsDir():
			entries = append(entries, ResolvedEntry{Path: types.SourcePath(path)})
		case !recursive:
			entries = append(entries, failed(path, ErrIsDirectory))
		default:
			entries = walk(entries, path, o)
		}
	}

	return entries
}

// walk appends the regular files found under root.
func walk(entries []ResolvedEntry, root string, o resolveOptions) []ResolvedEntry {
	// WalkDir does not follow a symlinked root; a trailing separator makes
	// the OS resolve it.
	if linfo, err := os.Lstat(root); err == nil && linfo.Mode()&fs.ModeSymlink != 0 {
		root += string(filepath.Separator)
	}

	//nolint:errcheck // the callback never returns an error
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			entries = append(entries, failed(path, err))
			return nil
		}

		if d.IsDir() {
			if path != root && excluded(d.Name(), o.excludeDirs) {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case d.Type().IsRegular():
			entries = append(entries, ResolvedEntry{Path: types.SourcePath(path)})
		case d.Type()&fs.ModeSymlink != 0:
			entries = appendSymlink(entries, path)
		}
		return nil
	})

	return entries
}

// appendSymlink follows a link found during traversal. Links to regular files
// are emitted, dangling links are reported, and links to directories are not
// descended so the walk cannot cycle.
func appendSymlink(entries []ResolvedEntry, path string) []ResolvedEntry {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return append(entries, failed(path, err))
	case info.Mode().IsRegular():
		return append(entries, ResolvedEntry{Path: types.SourcePath(path)})
	default:
		return entries
	}
}

func excluded(name string, globs []string) bool {
	for _, glob := range globs {
		if ok, _ := filepath.Match(glob, name); ok {
			return true
		}
	}
	return false
}

func failed(path string, err error) ResolvedEntry {
	return ResolvedEntry{Path: types.SourcePath(path), Err: &ResolveError{Path: path, Err: err}}
}
