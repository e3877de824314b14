// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

package schemaref

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigYAML(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, t.TempDir(), "schemaref.yaml", `
input_dir: schemas
output_dir: docs/reference
continue_on_error: true
generate_examples: true
example_mode: required
example_format: yaml
front_matter:
  parent: Schemas
log:
  level: debug
`)

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := DefaultConfig()
	want.InputDir = "schemas"
	want.OutputDir = "docs/reference"
	want.ContinueOnError = true
	want.GenerateExamples = true
	want.ExampleMode = ExampleModeRequired
	want.ExampleFormat = ExampleFormatYAML
	want.FrontMatter = FrontMatter{Layout: "default", NavOrder: 1, Parent: "Schemas"}
	want.Log.Level = "debug"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigTOML(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, t.TempDir(), "schemaref.toml", `
input_dir = "schemas"
pattern = "*.schema.json"
max_ref_depth = 8
allow_path_traversal = true

[front_matter]
layout = "page"
nav_order = 3
`)

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := DefaultConfig()
	want.InputDir = "schemas"
	want.Pattern = "*.schema.json"
	want.MaxRefDepth = 8
	want.AllowPathTraversal = true
	want.FrontMatter = FrontMatter{Layout: "page", NavOrder: 3, Parent: "Reference"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigEmptyFileUsesDefaults(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, t.TempDir(), "empty.yml", "")
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if got.InputDir != DefaultInputDir || got.OutputDir != DefaultOutputDir || got.Pattern != DefaultPattern {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for name, content := range map[string]string{
		"bad.yaml": "input_directory: x\n",
		"bad.toml": "input_directory = \"x\"\n",
	} {
		path := writeTestFile(t, dir, name, content)
		if _, err := LoadConfig(path); !errors.Is(err, ErrLoadConfig) {
			t.Fatalf("%s: expected ErrLoadConfig, got %v", name, err)
		}
	}
}

func TestNormalizeRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	cases := map[string]func(*Config){
		"example mode":   func(c *Config) { c.ExampleMode = "some" },
		"example format": func(c *Config) { c.ExampleFormat = "xml" },
		"log format":     func(c *Config) { c.Log.Format = "xml" },
		"pattern":        func(c *Config) { c.Pattern = "[" },
	}

	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		if _, err := cfg.Normalize(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestConfigSchemaUsesYAMLNames(t *testing.T) {
	t.Parallel()

	schema := ConfigSchema()
	for _, key := range []string{"input_dir", "output_dir", "continue_on_error", "front_matter", "log"} {
		if _, ok := schema.Properties.Get(key); !ok {
			t.Fatalf("config schema misses %q", key)
		}
	}
}
