// SPDX-License-Identifier: MPL-2.0

package config

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/grepr/grepr/internal/issue"
	"github.com/grepr/grepr/pkg/cueutil"
	"github.com/grepr/grepr/pkg/platform"
)

const (
	// AppName is the application name.
	AppName = "grepr"
	// ConfigFileName is the name of the user config file (without extension).
	ConfigFileName = "config"
	// LocalConfigFileName is the name of the project config file (without extension).
	LocalConfigFileName = AppName
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "GREPR"

	extCUE  = ".cue"
	extTOML = ".toml"
)

//go:embed config_schema.cue
var configSchema string

// fileExts lists supported config formats in lookup order.
var fileExts = []string{extCUE, extTOML}

// tomlConfig mirrors config_schema.cue for strict TOML decoding.
type tomlConfig struct {
	IgnoreCase  *bool    `toml:"ignore_case"`
	Recursive   *bool    `toml:"recursive"`
	Count       *bool    `toml:"count"`
	InvertMatch *bool    `toml:"invert_match"`
	ExcludeDirs []string `toml:"exclude_dirs"`
	UI          *struct {
		Verbose *bool `toml:"verbose"`
	} `toml:"ui"`
}

// ConfigDir returns the grepr configuration directory under the platform
// user config base (see platform.UserConfigBase).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	base, err := platform.UserConfigBase()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()

	resolvedPath, err := resolveConfigFile(opts)
	if err != nil {
		return nil, "", err
	}

	if resolvedPath != "" {
		if err := loadFileIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Check that the file contains valid CUE or TOML syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				Wrap(err).
				BuildError()
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("exclude_dirs entries must be valid filepath.Match globs").
			Wrap(err).
			BuildError()
	}

	return cfg, resolvedPath, nil
}

// newViper returns a Viper instance holding the defaults and the GREPR_*
// environment bindings. Every key needs a default so that AutomaticEnv
// overrides are visible to Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("ignore_case", defaults.IgnoreCase)
	v.SetDefault("recursive", defaults.Recursive)
	v.SetDefault("count", defaults.Count)
	v.SetDefault("invert_match", defaults.InvertMatch)
	v.SetDefault("exclude_dirs", defaults.ExcludeDirs)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// GREPR_VERBOSE mirrors the --verbose flag name.
	_ = v.BindEnv("ui.verbose", EnvPrefix+"_VERBOSE", EnvPrefix+"_UI_VERBOSE") //nolint:errcheck // only fails without a key

	return v
}

// resolveConfigFile picks the file to load: the explicit path, then the user
// config directory, then the project directory. An empty result means no file.
func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return "", err
		}
		cfgDir = dir
	}

	if path := firstExisting(cfgDir, ConfigFileName); path != "" {
		return path, nil
	}
	return firstExisting(opts.BaseDir, LocalConfigFileName), nil
}

func firstExisting(dir, name string) string {
	for _, ext := range fileExts {
		path := filepath.Join(dir, name+ext)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// loadFileIntoViper decodes a CUE or TOML config file and merges its
// contents into Viper, preserving defaults and environment overrides.
func loadFileIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var configMap map[string]any
	if strings.EqualFold(filepath.Ext(path), extTOML) {
		configMap, err = decodeTOML(data, path)
	} else {
		configMap, err = cueutil.DecodeMap(configSchema, data, "#Config", path)
	}
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// decodeTOML validates data against tomlConfig, rejecting unknown keys and
// mistyped values, then decodes it into a generic map for Viper.
func decodeTOML(data []byte, path string) (map[string]any, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var strict tomlConfig
	if err := dec.Decode(&strict); err != nil {
		return nil, formatTOMLError(err, path)
	}

	var configMap map[string]any
	if err := toml.Unmarshal(data, &configMap); err != nil {
		return nil, formatTOMLError(err, path)
	}
	return configMap, nil
}

// formatTOMLError adds file and position context to go-toml errors.
func formatTOMLError(err error, path string) error {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Errorf("%s:%d:%d: %w", path, row, col, err)
	}
	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) {
		return fmt.Errorf("%s: unknown configuration keys:\n%s", path, strictErr.String())
	}
	return fmt.Errorf("%s: %w", path, err)
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
