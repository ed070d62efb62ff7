// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/grepr/grepr/internal/issue"
	"github.com/grepr/grepr/internal/testutil"
	"github.com/grepr/grepr/pkg/platform"
)

// isolated returns LoadOptions whose user and project directories are empty
// temporary directories.
func isolated(t *testing.T) (LoadOptions, string, string) {
	t.Helper()
	cfgDir := t.TempDir()
	baseDir := t.TempDir()
	return LoadOptions{ConfigDirPath: cfgDir, BaseDir: baseDir}, cfgDir, baseDir
}

func load(t *testing.T, opts LoadOptions) *Config {
	t.Helper()
	cfg, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.IgnoreCase || cfg.Recursive || cfg.Count || cfg.InvertMatch || cfg.UI.Verbose {
		t.Errorf("all flags should default to false: %+v", cfg)
	}
	if cfg.ExcludeDirs == nil || len(cfg.ExcludeDirs) != 0 {
		t.Errorf("ExcludeDirs = %#v, want empty non-nil slice", cfg.ExcludeDirs)
	}
}

func TestConfigDir(t *testing.T) {
	dir := t.TempDir()
	testutil.SetConfigHome(t, dir)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}

	want := filepath.Join(dir, AppName)
	if runtime.GOOS == platform.Darwin {
		want = filepath.Join(dir, "Library", "Application Support", AppName)
	}
	if got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Parallel()

	opts, _, _ := isolated(t)
	cfg := load(t, opts)
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if cfg.Recursive || cfg.IgnoreCase || len(cfg.ExcludeDirs) != 0 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_UserCUEFile(t *testing.T) {
	t.Parallel()

	opts, cfgDir, _ := isolated(t)
	path := testutil.MustWriteFile(t, filepath.Join(cfgDir, "config.cue"), `
ignore_case: true
recursive:   true
exclude_dirs: [".git", "node_modules"]
ui: verbose: true
`)

	cfg := load(t, opts)
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
	if !cfg.IgnoreCase || !cfg.Recursive || !cfg.UI.Verbose {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Count || cfg.InvertMatch {
		t.Errorf("unset keys should keep defaults: %+v", cfg)
	}
	if want := []string{".git", "node_modules"}; !slices.Equal(cfg.ExcludeDirs, want) {
		t.Errorf("ExcludeDirs = %v, want %v", cfg.ExcludeDirs, want)
	}
}

func TestLoad_UserTOMLFile(t *testing.T) {
	t.Parallel()

	opts, cfgDir, _ := isolated(t)
	testutil.MustWriteFile(t, filepath.Join(cfgDir, "config.toml"), `
count = true
invert_match = true
exclude_dirs = ["vendor"]

[ui]
verbose = true
`)

	cfg := load(t, opts)
	if !cfg.Count || !cfg.InvertMatch || !cfg.UI.Verbose {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if want := []string{"vendor"}; !slices.Equal(cfg.ExcludeDirs, want) {
		t.Errorf("ExcludeDirs = %v, want %v", cfg.ExcludeDirs, want)
	}
}

func TestLoad_CUEPreferredOverTOML(t *testing.T) {
	t.Parallel()

	opts, cfgDir, _ := isolated(t)
	cuePath := testutil.MustWriteFile(t, filepath.Join(cfgDir, "config.cue"), "recursive: true\n")
	testutil.MustWriteFile(t, filepath.Join(cfgDir, "config.toml"), "count = true\n")

	cfg := load(t, opts)
	if cfg.Source != cuePath || !cfg.Recursive || cfg.Count {
		t.Errorf("expected only the CUE file to load, got %+v", cfg)
	}
}

func TestLoad_ProjectFileFallback(t *testing.T) {
	t.Parallel()

	opts, _, baseDir := isolated(t)
	path := testutil.MustWriteFile(t, filepath.Join(baseDir, "grepr.toml"), "recursive = true\n")

	cfg := load(t, opts)
	if cfg.Source != path || !cfg.Recursive {
		t.Errorf("expected project file to load, got %+v", cfg)
	}
}

func TestLoad_UserFileShadowsProjectFile(t *testing.T) {
	t.Parallel()

	opts, cfgDir, baseDir := isolated(t)
	userPath := testutil.MustWriteFile(t, filepath.Join(cfgDir, "config.toml"), "count = true\n")
	testutil.MustWriteFile(t, filepath.Join(baseDir, "grepr.cue"), "recursive: true\n")

	cfg := load(t, opts)
	if cfg.Source != userPath || cfg.Recursive {
		t.Errorf("expected user file only, got %+v", cfg)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	opts, cfgDir, _ := isolated(t)
	testutil.MustWriteFile(t, filepath.Join(cfgDir, "config.cue"), "recursive: true\n")
	explicit := testutil.MustWriteFile(t, filepath.Join(t.TempDir(), "custom.cue"), "invert_match: true\n")
	opts.ConfigFilePath = explicit

	cfg := load(t, opts)
	if cfg.Source != explicit || !cfg.InvertMatch || cfg.Recursive {
		t.Errorf("expected the explicit file only, got %+v", cfg)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	opts, _, _ := isolated(t)
	opts.ConfigFilePath = filepath.Join(t.TempDir(), "absent.cue")

	_, err := NewProvider().Load(context.Background(), opts)
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
	var actionable *issue.ActionableError
	if !errors.As(err, &actionable) {
		t.Fatalf("error should be *issue.ActionableError, got %T", err)
	}
	if actionable.Issue != issue.ConfigLoadFailedId {
		t.Errorf("Issue = %v, want ConfigLoadFailedId", actionable.Issue)
	}
	if !strings.Contains(err.Error(), "absent.cue") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestLoad_InvalidFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		wantMsg string
	}{
		{"cue unknown field", "config.cue", "colour: \"red\"\n", "colour"},
		{"cue wrong type", "config.cue", "recursive: \"yes\"\n", "recursive"},
		{"cue syntax", "config.cue", "recursive: {\n", "config.cue"},
		{"cue empty glob", "config.cue", "exclude_dirs: [\"\"]\n", "exclude_dirs"},
		{"toml unknown key", "config.toml", "colour = \"red\"\n", "colour"},
		{"toml wrong type", "config.toml", "recursive = \"yes\"\n", "config.toml"},
		{"toml syntax", "config.toml", "recursive = \n", "config.toml"},
		{"bad glob", "config.toml", "exclude_dirs = [\"[\"]\n", "exclude_dirs[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts, cfgDir, _ := isolated(t)
			testutil.MustWriteFile(t, filepath.Join(cfgDir, tt.file), tt.content)

			_, err := NewProvider().Load(context.Background(), opts)
			if err == nil {
				t.Fatal("expected error")
			}
			var actionable *issue.ActionableError
			if !errors.As(err, &actionable) {
				t.Fatalf("error should be *issue.ActionableError, got %T: %v", err, err)
			}
			if full := actionable.Format(true); !strings.Contains(full, tt.wantMsg) {
				t.Errorf("error should mention %q:\n%s", tt.wantMsg, full)
			}
		})
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts, _, _ := isolated(t)
	if _, err := NewProvider().Load(ctx, opts); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	opts, cfgDir, _ := isolated(t)
	testutil.MustWriteFile(t, filepath.Join(cfgDir, "config.cue"), "recursive: true\ncount: true\n")

	t.Cleanup(testutil.MustSetenv(t, "GREPR_RECURSIVE", "false"))
	t.Cleanup(testutil.MustSetenv(t, "GREPR_IGNORE_CASE", "1"))
	t.Cleanup(testutil.MustSetenv(t, "GREPR_VERBOSE", "true"))
	t.Cleanup(testutil.MustSetenv(t, "GREPR_EXCLUDE_DIRS", ".git,target"))

	cfg := load(t, opts)
	if cfg.Recursive {
		t.Error("GREPR_RECURSIVE=false should override the file")
	}
	if !cfg.Count {
		t.Error("count from file should survive")
	}
	if !cfg.IgnoreCase {
		t.Error("GREPR_IGNORE_CASE=1 should enable ignore_case")
	}
	if !cfg.UI.Verbose {
		t.Error("GREPR_VERBOSE should enable ui.verbose")
	}
	if want := []string{".git", "target"}; !slices.Equal(cfg.ExcludeDirs, want) {
		t.Errorf("ExcludeDirs = %v, want %v", cfg.ExcludeDirs, want)
	}
}

func TestLoad_UserConfigDirFromEnvironment(t *testing.T) {
	home := t.TempDir()
	testutil.SetConfigHome(t, home)

	cfgDir, err := ConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	path := testutil.MustWriteFile(t, filepath.Join(cfgDir, "config.cue"), "invert_match: true\n")

	cfg := load(t, LoadOptions{BaseDir: t.TempDir()})
	if cfg.Source != path || !cfg.InvertMatch {
		t.Errorf("expected %s to load, got %+v", path, cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := &Config{ExcludeDirs: []string{".git", "node_*", "[abc]"}}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}

	invalid := &Config{ExcludeDirs: []string{"ok", " ", "bad["}}
	err := invalid.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error should wrap ErrInvalidConfig, got %v", err)
	}
	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error should be *InvalidConfigError, got %T", err)
	}
	if len(cfgErr.FieldErrors) != 2 {
		t.Errorf("FieldErrors = %v, want 2 entries", cfgErr.FieldErrors)
	}
}
