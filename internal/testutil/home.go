// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"

	"github.com/grepr/grepr/pkg/platform"
)

// SetHomeDir points the platform home variable at dir (USERPROFILE on
// Windows, HOME elsewhere) and returns a cleanup restoring the old value.
//
//	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	if runtime.GOOS == platform.Windows {
		return MustSetenv(t, "USERPROFILE", dir)
	}
	return MustSetenv(t, "HOME", dir)
}

// SetConfigHome isolates user configuration lookups under dir by setting
// XDG_CONFIG_HOME (APPDATA on Windows) and the home directory together.
func SetConfigHome(t testing.TB, dir string) {
	t.Helper()

	t.Cleanup(SetHomeDir(t, dir))
	if runtime.GOOS == platform.Windows {
		t.Cleanup(MustSetenv(t, "APPDATA", dir))
		return
	}
	t.Cleanup(MustSetenv(t, "XDG_CONFIG_HOME", dir))
}
