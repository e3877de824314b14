// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

package schemaref

import (
	"errors"
	"testing"
)

const exampleSchemaFixture = `{
  "title": "Service",
  "required": ["name", "settings"],
  "properties": {
    "name": {"type": "string", "default": "demo", "description": "Human-readable service name."},
    "mode": {"type": "string", "examples": ["safe"]},
    "level": {"type": "string", "enum": ["low", "high"]},
    "count": {"type": "integer"},
    "ratio": {"type": ["null", "number"]},
    "features": {"type": "array", "items": {"type": "string"}},
    "choice": {"anyOf": [{"type": "null"}, {"type": "boolean"}]},
    "free": {},
    "settings": {
      "type": "object",
      "required": ["enabled"],
      "properties": {
        "enabled": {"type": "boolean", "default": true},
        "note": {"type": "string"}
      }
    }
  }
}`

func TestGenerateExampleAllMode(t *testing.T) {
	t.Parallel()

	doc := buildTestDocument(t, exampleSchemaFixture)
	example, err := GenerateExample(doc, ExampleModeAll)
	if err != nil {
		t.Fatalf("GenerateExample: %v", err)
	}

	want := `{"name":"demo","mode":"safe","level":"low","count":0,"ratio":0,"features":[],"choice":false,` +
		`"free":null,"settings":{"enabled":true,"note":"<string>"}}`
	if got := example.Compact(); got != want {
		t.Fatalf("all mode mismatch\ngot:  %s\nwant: %s", got, want)
	}
}

func TestGenerateExampleRequiredMode(t *testing.T) {
	t.Parallel()

	doc := buildTestDocument(t, exampleSchemaFixture)
	example, err := GenerateExample(doc, ExampleModeRequired)
	if err != nil {
		t.Fatalf("GenerateExample: %v", err)
	}

	if got := example.Compact(); got != `{"name":"demo","settings":{"enabled":true}}` {
		t.Fatalf("required mode mismatch: %s", got)
	}
}

func TestGenerateExampleDoesNotAliasSchemaValues(t *testing.T) {
	t.Parallel()

	doc := buildTestDocument(t, exampleSchemaFixture)
	example, err := GenerateExample(doc, ExampleModeRequired)
	if err != nil {
		t.Fatalf("GenerateExample: %v", err)
	}

	example.Set("name", &Value{Kind: KindString, Text: "changed"})
	field, _ := doc.Shape.Lookup("name")
	if got := field.Meta().Default.Text; got != "demo" {
		t.Fatalf("schema default changed to %q", got)
	}
}

func TestGenerateExampleModeValidation(t *testing.T) {
	t.Parallel()

	doc := buildTestDocument(t, exampleSchemaFixture)
	if _, err := GenerateExample(doc, "broken"); !errors.Is(err, ErrUnknownExampleMode) {
		t.Fatalf("expected ErrUnknownExampleMode, got: %v", err)
	}
}

func TestEncodeExampleYAMLKeepsOrder(t *testing.T) {
	t.Parallel()

	value, err := DecodeValue([]byte(`{"zeta":"z","alpha":{"n":1.5,"list":[true,null]},"count":3}`))
	if err != nil {
		t.Fatalf("DecodeValue: %v", err)
	}

	got, err := encodeExample(value, ExampleFormatYAML)
	if err != nil {
		t.Fatalf("encodeExample: %v", err)
	}

	want := "zeta: z\n" +
		"alpha:\n" +
		"  n: 1.5\n" +
		"  list:\n" +
		"    - true\n" +
		"    - null\n" +
		"count: 3"
	if got != want {
		t.Fatalf("yaml mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}
