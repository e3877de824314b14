// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

package schemaref

import (
	"fmt"
	"strings"
)

const (
	requiredPrefix      = "Required. "
	optionalPrefix      = "Optional. "
	acceptedValuesLabel = "Accepted values: "
	generatedUUIDLabel  = "Generated UUID"
	dynamicDefaultUUID  = "uuid"
)

// FieldRow is one flattened, display-ready field.
type FieldRow struct {
	Name        string
	Type        string
	Description string
	Default     string
}

// FlattenFields returns rows for all document properties, nested fields right after their parent.
func FlattenFields(doc *Document) []FieldRow {
	if doc == nil || doc.Shape == nil {
		return nil
	}

	rows := make([]FieldRow, 0, len(doc.Shape.Properties))
	for _, prop := range doc.Shape.Properties {
		rows = appendFieldRows(rows, doc.Shape, prop, "")
	}

	return rows
}

// FlattenField returns rows for one property of shape and its nested fields.
func FlattenField(shape *ObjectShape, fieldName, pathPrefix string) ([]FieldRow, error) {
	field, ok := shape.Lookup(fieldName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, appendPath(pathPrefix, fieldName))
	}

	return appendFieldRows(nil, shape, Property{Name: fieldName, Field: field}, pathPrefix), nil
}

// appendFieldRows appends row for prop and recurses into its nested properties.
func appendFieldRows(rows []FieldRow, shape *ObjectShape, prop Property, pathPrefix string) []FieldRow {
	name := appendPath(pathPrefix, prop.Name)
	meta := prop.Field.Meta()

	rows = append(rows, FieldRow{
		Name:        name,
		Type:        DeriveType(prop.Field).String(),
		Description: fieldDescription(shape, prop.Name, meta),
		Default:     fieldDefault(shape, prop.Name, meta),
	})

	if meta.Object != nil {
		for _, child := range meta.Object.Properties {
			rows = appendFieldRows(rows, meta.Object, child, name)
		}
	}

	return rows
}

// fieldDescription prefixes description with required marker and appends enum clause.
func fieldDescription(shape *ObjectShape, name string, meta *FieldMeta) string {
	prefix := optionalPrefix
	if shape.IsRequired(name) {
		prefix = requiredPrefix
	}

	description := prefix + meta.Description
	if len(meta.Enum) == 0 {
		return description
	}

	values := make([]string, 0, len(meta.Enum))
	for _, value := range meta.Enum {
		values = append(values, value.ScalarText())
	}

	return description + "\n\n" + acceptedValuesLabel + inlineCode(strings.Join(values, "`, `"))
}

// fieldDefault renders default column.
// JSON null is treated like an object, matching how the generator always rendered it.
func fieldDefault(shape *ObjectShape, name string, meta *FieldMeta) string {
	value := meta.Default

	switch {
	case value != nil && (value.Kind == KindObject || value.Kind == KindNull):
		return inlineCode(value.Compact())
	case value != nil && value.Kind == KindArray:
		return inlineCode(value.Compact())
	case shape.DynamicDefault(name) == dynamicDefaultUUID:
		return generatedUUIDLabel
	case value == nil:
		return ""
	default:
		return inlineCode(value.ScalarText())
	}
}

// inlineCode wraps text in backticks.
func inlineCode(text string) string {
	return "`" + text + "`"
}
