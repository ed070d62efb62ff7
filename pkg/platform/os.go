// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// UserConfigBase returns the directory under which applications keep their
// configuration: %APPDATA% on Windows, ~/Library/Application Support on
// macOS and $XDG_CONFIG_HOME (defaulting to ~/.config) elsewhere.
func UserConfigBase() (string, error) {
	return userConfigBase(runtime.GOOS, os.Getenv, os.UserHomeDir)
}

func userConfigBase(goos string, getenv func(string) string, home func() (string, error)) (string, error) {
	switch goos {
	case Windows:
		if dir := getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return filepath.Join(getenv("USERPROFILE"), "AppData", "Roaming"), nil
	case Darwin:
		h, err := home()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(h, "Library", "Application Support"), nil
	default: // Linux and others
		if dir := getenv("XDG_CONFIG_HOME"); dir != "" {
			return dir, nil
		}
		h, err := home()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(h, ".config"), nil
	}
}
