// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the grepr command line.
//
// The root command parses flags, merges them over the user configuration,
// and hands the resulting search to internal/search. Per-path failures are
// printed as plain lines and only affect the exit code; fatal errors (an
// invalid pattern, bad usage) go through fang's error handling.
package cmd
