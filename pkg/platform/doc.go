// SPDX-License-Identifier: MPL-2.0

// Package platform centralizes operating-system conventions: GOOS names and
// the per-platform location of user configuration.
package platform
