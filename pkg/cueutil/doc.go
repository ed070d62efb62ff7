// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the CUE validation steps used by the grepr config
// loader:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with a schema definition
//  3. Validate (non-concrete, all fields optional) and decode to a Go map
//
// # Usage
//
//	//go:embed config_schema.cue
//	var configSchema string
//
//	values, err := cueutil.DecodeMap(configSchema, data, "#Config", "config.cue")
//	if err != nil {
//	    return err // error carries "<file>: <cue path>: <message>"
//	}
//	return v.MergeConfigMap(values)
package cueutil
