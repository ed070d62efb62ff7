// SPDX-License-Identifier: MPL-2.0

// Package logging builds the diagnostic logger shared by grepr commands.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every diagnostic line.
const Prefix = "grepr"

// New returns a logger writing to w. Verbose mode enables debug output;
// otherwise only warnings and errors are emitted.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           level,
		ReportTimestamp: false,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
