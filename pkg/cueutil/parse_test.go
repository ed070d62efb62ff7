// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Config: {
	recursive?: bool
	exclude_dirs?: [...string]
	ui?: {
		verbose?: bool
	}
}
`

func TestDecodeMap(t *testing.T) {
	t.Parallel()

	values, err := DecodeMap(testSchema, []byte(`
recursive: true
exclude_dirs: [".git", "vendor"]
ui: verbose: true
`), "#Config", "config.cue")
	if err != nil {
		t.Fatalf("DecodeMap() error = %v", err)
	}

	if values["recursive"] != true {
		t.Errorf("recursive = %v, want true", values["recursive"])
	}
	dirs, ok := values["exclude_dirs"].([]any)
	if !ok || len(dirs) != 2 {
		t.Fatalf("exclude_dirs = %#v, want two entries", values["exclude_dirs"])
	}
	ui, ok := values["ui"].(map[string]any)
	if !ok || ui["verbose"] != true {
		t.Errorf("ui = %#v, want verbose true", values["ui"])
	}
}

func TestDecodeMap_SchemaViolation(t *testing.T) {
	t.Parallel()

	_, err := DecodeMap(testSchema, []byte(`recursive: "yes"`), "#Config", "config.cue")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "config.cue") {
		t.Errorf("error should name the file, got: %v", err)
	}
	if !strings.Contains(err.Error(), "recursive") {
		t.Errorf("error should name the field, got: %v", err)
	}
}

func TestDecodeMap_UnknownField(t *testing.T) {
	t.Parallel()

	if _, err := DecodeMap(testSchema, []byte(`colour: "red"`), "#Config", "config.cue"); err == nil {
		t.Fatal("expected error for field not allowed by closed definition")
	}
}

func TestDecodeMap_SyntaxError(t *testing.T) {
	t.Parallel()

	if _, err := DecodeMap(testSchema, []byte(`recursive: {`), "#Config", "config.cue"); err == nil {
		t.Fatal("expected syntax error")
	}
}
