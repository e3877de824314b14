// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

package schemaref

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func testGenerateConfig(root string) Config {
	cfg := DefaultConfig()
	cfg.InputDir = filepath.Join(root, "schemas")
	cfg.OutputDir = filepath.Join(root, "out")
	return cfg
}

func TestGenerateWritesOneDocumentPerSchema(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfg := testGenerateConfig(root)
	writeTestFile(t, cfg.InputDir, "b.json", `{"title":"Beta","properties":{"x":{"type":"string"}}}`)
	writeTestFile(t, cfg.InputDir, "a.json", widgetSchema)
	writeTestFile(t, cfg.InputDir, "notes.txt", `not a schema`)

	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)
	logger.SetFormatter(&logrus.JSONFormatter{})

	report, err := Generate(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := []string{
		filepath.Join(cfg.OutputDir, "Widget.md"),
		filepath.Join(cfg.OutputDir, "Beta.md"),
	}
	if diff := cmp.Diff(want, report.Generated); diff != "" {
		t.Fatalf("generated mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	assertContains(t, string(data), "name | string |  Required. Name. | \n")
	assertContains(t, logs.String(), `"title":"Widget"`)
	assertContains(t, logs.String(), `"rows":1`)
}

func TestGenerateOverwritesExistingDocument(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfg := testGenerateConfig(root)
	writeTestFile(t, cfg.InputDir, "a.json", widgetSchema)
	writeTestFile(t, cfg.OutputDir, "Widget.md", "stale")

	if _, err := Generate(context.Background(), cfg, nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "Widget.md"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	assertNotContains(t, string(data), "stale")
}

func TestGenerateAbortsOnFirstFailure(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfg := testGenerateConfig(root)
	writeTestFile(t, cfg.InputDir, "a.json", `{"title":"A","properties":{"x":{"$ref":"#/definitions/missing"}}}`)
	writeTestFile(t, cfg.InputDir, "b.json", widgetSchema)

	report, err := Generate(context.Background(), cfg, nil)

	var fileErr *FileError
	if !errors.As(err, &fileErr) {
		t.Fatalf("expected *FileError, got %v", err)
	}

	if fileErr.Stage != StageResolve || filepath.Base(fileErr.Path) != "a.json" {
		t.Fatalf("unexpected failure: %+v", fileErr)
	}

	if len(report.Generated) != 0 {
		t.Fatalf("no document expected after abort, got %v", report.Generated)
	}

	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "Widget.md")); !os.IsNotExist(err) {
		t.Fatalf("later schema must not be processed, stat err = %v", err)
	}
}

func TestGenerateContinueOnErrorCollectsFailures(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfg := testGenerateConfig(root)
	cfg.ContinueOnError = true
	writeTestFile(t, cfg.InputDir, "a.json", `{"title":"A","properties":{"x":{"$ref":"#/definitions/missing"}}}`)
	writeTestFile(t, cfg.InputDir, "b.json", widgetSchema)
	writeTestFile(t, cfg.InputDir, "c.json", `{"properties":{"x":{"type":"string"}}}`)
	writeTestFile(t, cfg.InputDir, "d.json", `{"title":"../escape","properties":{}}`)

	report, err := Generate(context.Background(), cfg, nil)

	var batchErr *BatchError
	if !errors.As(err, &batchErr) {
		t.Fatalf("expected *BatchError, got %v", err)
	}

	if len(batchErr.Failures) != 3 {
		t.Fatalf("expected 3 failures, got %d: %v", len(batchErr.Failures), batchErr)
	}

	if !errors.Is(err, ErrUnresolvableReference) || !errors.Is(err, ErrMissingTitle) || !errors.Is(err, ErrInvalidTitle) {
		t.Fatalf("batch error must expose every cause: %v", err)
	}

	assertContains(t, err.Error(), "3 schema file(s) failed:\n- ")
	if len(report.Generated) != 1 || filepath.Base(report.Generated[0]) != "Widget.md" {
		t.Fatalf("unexpected generated: %v", report.Generated)
	}

	if len(report.Skipped) != 3 {
		t.Fatalf("unexpected skipped: %v", report.Skipped)
	}
}

func TestGenerateCrossFileReferences(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfg := testGenerateConfig(root)
	cfg.Pattern = "*.schema.json"
	writeTestFile(t, cfg.InputDir, "shared/owner.json", `{"type":"object","properties":{"email":{"type":"string"}}}`)
	writeTestFile(t, cfg.InputDir, "pet.schema.json", `{"title":"Pet","properties":{"owner":{"$ref":"shared/owner.json"}}}`)

	report, err := Generate(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(report.Generated) != 1 {
		t.Fatalf("unexpected generated: %v", report.Generated)
	}

	data, err := os.ReadFile(report.Generated[0])
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	assertContains(t, string(data), "owner | object |  Optional.  | \nowner.email | string |  Optional.  | \n")
}

func TestGenerateRecursiveDefinitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		schema string
		want   string
	}{
		{
			name:   "unused definition",
			schema: `{"title":"Tree","definitions":{"node":{"type":"object","properties":{"children":{"type":"array","items":{"$ref":"#/definitions/node"}}}}},"properties":{"name":{"type":"string"}}}`,
			want:   "name | string |  Optional.  | \n",
		},
		{
			name:   "recursion under items",
			schema: `{"title":"Tree","definitions":{"node":{"type":"object","properties":{"children":{"type":"array","items":{"$ref":"#/definitions/node"}}}}},"properties":{"root":{"$ref":"#/definitions/node"}}}`,
			want:   "root | object |  Optional.  | \nroot.children | array |  Optional.  | \n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := testGenerateConfig(t.TempDir())
			writeTestFile(t, cfg.InputDir, "tree.json", tc.schema)

			report, err := Generate(context.Background(), cfg, nil)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}

			if len(report.Generated) != 1 {
				t.Fatalf("unexpected generated: %v", report.Generated)
			}

			data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "Tree.md"))
			if err != nil {
				t.Fatalf("read output: %v", err)
			}

			assertContains(t, string(data), tc.want)
		})
	}
}

func TestGenerateRecursivePropertyFails(t *testing.T) {
	t.Parallel()

	cfg := testGenerateConfig(t.TempDir())
	writeTestFile(t, cfg.InputDir, "list.json", `{"title":"List","definitions":{"node":{"type":"object","properties":{"next":{"$ref":"#/definitions/node"}}}},"properties":{"head":{"$ref":"#/definitions/node"}}}`)

	_, err := Generate(context.Background(), cfg, nil)
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Fatalf("expected ErrUnresolvedReference, got %v", err)
	}
}

func TestGenerateMissingInputDir(t *testing.T) {
	t.Parallel()

	cfg := testGenerateConfig(t.TempDir())
	if _, err := Generate(context.Background(), cfg, nil); !errors.Is(err, ErrListSchemaDir) {
		t.Fatalf("expected ErrListSchemaDir, got %v", err)
	}
}

func TestGenerateHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfg := testGenerateConfig(root)
	writeTestFile(t, cfg.InputDir, "a.json", widgetSchema)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Generate(ctx, cfg, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDocumentFileName(t *testing.T) {
	t.Parallel()

	name, err := documentFileName("Widget Config")
	if err != nil || name != "Widget Config.md" {
		t.Fatalf("documentFileName = %q, %v", name, err)
	}

	for _, title := range []string{"..", "a/b", `a\b`, "a\x00b"} {
		if _, err := documentFileName(title); !errors.Is(err, ErrInvalidTitle) {
			t.Fatalf("title %q: expected ErrInvalidTitle, got %v", title, err)
		}
	}
}
