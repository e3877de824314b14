// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

package schemaref

import (
	"testing"
)

func TestDecodeValueKeepsMemberOrder(t *testing.T) {
	t.Parallel()

	value, err := DecodeValue([]byte(`{"zeta":1,"alpha":{"b":true,"a":null},"mid":["x",2.50]}`))
	if err != nil {
		t.Fatalf("DecodeValue: %v", err)
	}

	if got := value.Compact(); got != `{"zeta":1,"alpha":{"b":true,"a":null},"mid":["x",2.50]}` {
		t.Fatalf("compact = %s", got)
	}

	keys := make([]string, 0, len(value.Members))
	for _, member := range value.Members {
		keys = append(keys, member.Key)
	}

	if len(keys) != 3 || keys[0] != "zeta" || keys[1] != "alpha" || keys[2] != "mid" {
		t.Fatalf("member order = %v", keys)
	}
}

func TestDecodeValueDuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	t.Parallel()

	value, err := DecodeValue([]byte(`{"a":1,"b":2,"a":3}`))
	if err != nil {
		t.Fatalf("DecodeValue: %v", err)
	}

	if got := value.Compact(); got != `{"a":3,"b":2}` {
		t.Fatalf("compact = %s", got)
	}
}

func TestDecodeValueRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	for _, input := range []string{``, `{"a":`, `{"a":1} {}`} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			if _, err := DecodeValue([]byte(input)); err == nil {
				t.Fatalf("expected error for %q", input)
			}
		})
	}
}

func TestValuePrettyUsesTwoSpacesWithoutHTMLEscaping(t *testing.T) {
	t.Parallel()

	value, err := DecodeValue([]byte(`{"name":"<foo> & bar","list":[1,{"k":"v"}],"empty":{}}`))
	if err != nil {
		t.Fatalf("DecodeValue: %v", err)
	}

	got, err := value.Pretty()
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}

	want := "{\n" +
		"  \"name\": \"<foo> & bar\",\n" +
		"  \"list\": [\n" +
		"    1,\n" +
		"    {\n" +
		"      \"k\": \"v\"\n" +
		"    }\n" +
		"  ],\n" +
		"  \"empty\": {}\n" +
		"}"
	if got != want {
		t.Fatalf("pretty mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestValueScalarText(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		`"plain"`:   "plain",
		`42`:        "42",
		`1e3`:       "1e3",
		`true`:      "true",
		`null`:      "null",
		`[1,"a"]`:   `[1,"a"]`,
		`{"k":"v"}`: `{"k":"v"}`,
	}

	for input, want := range cases {
		value, err := DecodeValue([]byte(input))
		if err != nil {
			t.Fatalf("DecodeValue(%s): %v", input, err)
		}

		if got := value.ScalarText(); got != want {
			t.Fatalf("ScalarText(%s) = %q, want %q", input, got, want)
		}
	}
}

func TestValueCloneIsDeep(t *testing.T) {
	t.Parallel()

	value, err := DecodeValue([]byte(`{"a":{"b":[1]}}`))
	if err != nil {
		t.Fatalf("DecodeValue: %v", err)
	}

	clone := value.Clone()
	inner, _ := clone.Get("a")
	inner.Set("c", &Value{Kind: KindBool, Bool: true})

	if got := value.Compact(); got != `{"a":{"b":[1]}}` {
		t.Fatalf("original changed: %s", got)
	}

	if got := clone.Compact(); got != `{"a":{"b":[1],"c":true}}` {
		t.Fatalf("clone = %s", got)
	}
}
