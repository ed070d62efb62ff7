// SPDX-License-Identifier: MPL-2.0

// Package search implements grepr's line search.
//
// A run flows through four steps:
//
//   - Resolve turns path arguments into an ordered []ResolvedEntry, one per
//     discovered file, the stdin sentinel "-" or a per-path error.
//   - Searcher.Run decides once whether the run is single-source (exactly one
//     entry, errors included), then opens each entry in order.
//   - Scan streams a source line by line and hands accepted lines to a
//     callback; Count reduces the same stream to a number.
//   - Formatter prints lines or counts, prefixed with "<file>: " unless the
//     run is single-source or the source is stdin.
//
// Failures of one entry are printed to stderr and never stop the others.
package search
