// SPDX-License-Identifier: MPL-2.0

// Package config loads default search options using Viper.
//
// Defaults come from, in increasing priority: built-in values, a config file,
// and GREPR_* environment variables. The config file is the one passed with
// --config, otherwise config.cue or config.toml in the user config directory
// (XDG_CONFIG_HOME/grepr on Linux, ~/Library/Application Support/grepr on
// macOS, %APPDATA%\grepr on Windows), otherwise grepr.cue or grepr.toml in the
// working directory. CUE files are validated against config_schema.cue; TOML
// files are decoded strictly with go-toml.
package config
