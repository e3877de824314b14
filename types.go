// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

package schemaref

import (
	"slices"
	"strings"
)

// unionLabelPrefix opens multi-type labels.
const unionLabelPrefix = "One of"

// TypeLabel is the derived display type of a field.
type TypeLabel struct {
	Types []string
}

// Unknown reports whether no type could be derived.
func (l TypeLabel) Unknown() bool {
	return len(l.Types) == 0
}

// String renders label as a single name or a "One of" list, one name per line.
func (l TypeLabel) String() string {
	switch len(l.Types) {
	case 0:
		return ""
	case 1:
		return l.Types[0]
	}

	var out strings.Builder
	out.WriteString(unionLabelPrefix)
	for _, name := range l.Types {
		out.WriteString("\n- ")
		out.WriteString(name)
	}

	return out.String()
}

// DeriveType computes display type from field schema.
// Array item types are not inspected.
func DeriveType(field Field) TypeLabel {
	switch typed := field.(type) {
	case *TypedField:
		return TypeLabel{Types: distinctNames(nil, typed.Types)}
	case *UnionField:
		var names []string
		for _, alternative := range typed.Alternatives {
			if typedAlternative, ok := alternative.(*TypedField); ok {
				names = distinctNames(names, typedAlternative.Types)
			}
		}

		return TypeLabel{Types: names}
	default:
		return TypeLabel{}
	}
}

// distinctNames appends names not yet present, keeping first-seen order.
func distinctNames(out, names []string) []string {
	for _, name := range names {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}

	return out
}
