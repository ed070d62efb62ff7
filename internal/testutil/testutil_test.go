// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTree(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	paths := WriteTree(t, root, map[string]string{
		"a.txt":         "alpha\n",
		"nested/b.txt":  "beta\n",
		"nested/x/c.md": "",
	})

	for rel, want := range map[string]string{"a.txt": "alpha\n", "nested/b.txt": "beta\n", "nested/x/c.md": ""} {
		path := paths[rel]
		if path != filepath.Join(root, filepath.FromSlash(rel)) {
			t.Errorf("paths[%q] = %q", rel, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%q) error: %v", path, err)
		}
		if string(data) != want {
			t.Errorf("content of %q = %q, want %q", rel, data, want)
		}
	}
}

func TestMustChdir(t *testing.T) {
	dir := t.TempDir()
	original, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	restore := MustChdir(t, dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if wd != resolved && wd != dir {
		t.Errorf("Getwd() = %q, want %q", wd, dir)
	}

	restore()
	if wd, _ := os.Getwd(); wd != original {
		t.Errorf("after restore Getwd() = %q, want %q", wd, original)
	}
}

func TestMustSetenv_RestoresUnset(t *testing.T) {
	const key = "GREPR_TESTUTIL_PROBE"
	t.Cleanup(MustUnsetenv(t, key))

	restore := MustSetenv(t, key, "1")
	if got := os.Getenv(key); got != "1" {
		t.Errorf("Getenv(%q) = %q, want 1", key, got)
	}
	restore()
	if _, ok := os.LookupEnv(key); ok {
		t.Errorf("%s still set after restore", key)
	}
}
