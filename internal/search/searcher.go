// SPDX-License-Identifier: MPL-2.0

package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/grepr/grepr/internal/logging"
	"github.com/grepr/grepr/pkg/types"
)

type (
	// Searcher runs one search over every entry of a SearchConfig.
	Searcher struct {
		cfg    SearchConfig
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
		logger *log.Logger
	}

	// Option customizes a Searcher.
	Option func(*Searcher)
)

// WithStdin sets the reader used for the "-" source.
func WithStdin(r io.Reader) Option {
	return func(s *Searcher) { s.stdin = r }
}

// WithStdout sets the writer for matched lines and counts.
func WithStdout(w io.Writer) Option {
	return func(s *Searcher) { s.stdout = w }
}

// WithStderr sets the writer for per-entry error lines.
func WithStderr(w io.Writer) Option {
	return func(s *Searcher) { s.stderr = w }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Searcher) { s.logger = l }
}

// NewSearcher creates a Searcher bound to the process streams unless
// overridden by opts.
func NewSearcher(cfg SearchConfig, opts ...Option) *Searcher {
	s := &Searcher{
		cfg:    cfg,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run searches every resolved entry in order.
//
// Each failing entry is reported on stderr as a single line and the run moves
// on. Run returns a *RunError when at least one entry failed. A *WriteError
// or the context error, when interrupted between entries, ends the run early.
func (s *Searcher) Run(ctx context.Context) error {
	entries := Resolve(s.cfg.Paths(), s.cfg.Recursive(), WithExcludeDirs(s.cfg.ExcludeDirs()...))
	single := len(entries) == 1
	s.logger.Debug("resolved paths", "entries", len(entries), "single_source", single)

	out := NewFormatter(s.stdout, single)
	var errs []error
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("search interrupted: %w", err)
		}
		if err := s.searchEntry(out, entry); err != nil {
			var writeErr *WriteError
			if errors.As(err, &writeErr) {
				return err
			}
			fmt.Fprintln(s.stderr, err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return &RunError{Failed: len(errs), Total: len(entries), Errs: errs}
	}
	return nil
}

// searchEntry opens, scans and renders one entry. The file handle is closed
// on every path; a close failure is reported only if nothing else failed.
func (s *Searcher) searchEntry(out *Formatter, entry ResolvedEntry) (err error) {
	if !entry.Ok() {
		return entry.Err
	}

	r, closeFn, err := s.open(entry.Path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeFn(); closeErr != nil && err == nil {
			err = &ScanError{Path: entry.Path.String(), Err: closeErr}
		}
	}()

	re := s.cfg.Pattern()
	invert := s.cfg.InvertMatch()

	if s.cfg.CountOnly() {
		n, countErr := Count(r, re, invert)
		if countErr != nil {
			return &ScanError{Path: entry.Path.String(), Err: countErr}
		}
		s.logger.Debug("scanned source", "path", entry.Path, "matches", n)
		if writeErr := out.Count(entry.Path, n); writeErr != nil {
			return &WriteError{Err: writeErr}
		}
		return nil
	}

	n := 0
	err = Scan(r, re, invert, func(line string) error {
		n++
		if writeErr := out.Line(entry.Path, line); writeErr != nil {
			return &WriteError{Err: writeErr}
		}
		return nil
	})
	var writeErr *WriteError
	if errors.As(err, &writeErr) {
		return err
	}
	if err != nil {
		return &ScanError{Path: entry.Path.String(), Err: err}
	}
	s.logger.Debug("scanned source", "path", entry.Path, "matches", n)
	return nil
}

// open returns a reader for path. Stdin is never closed by the searcher.
func (s *Searcher) open(path types.SourcePath) (io.Reader, func() error, error) {
	if path.IsStdin() {
		return s.stdin, func() error { return nil }, nil
	}

	f, err := os.Open(path.String())
	if err != nil {
		return nil, nil, &OpenError{Path: path.String(), Err: err}
	}
	s.logger.Debug("opened source", "path", path)
	return f, f.Close, nil
}
