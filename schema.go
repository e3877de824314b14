// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

package schemaref

import (
	"fmt"
	"slices"
)

// Document is one dereferenced schema prepared for documentation.
type Document struct {
	Shape       *ObjectShape
	Source      string
	Title       string
	Description string
	Examples    []*Value
}

// ObjectShape describes properties of an object schema.
type ObjectShape struct {
	DynamicDefaults map[string]string
	Properties      []Property
	Required        []string
}

// Property is one named field in declaration order.
type Property struct {
	Field Field
	Name  string
}

// FieldMeta holds keywords shared by every field variant.
type FieldMeta struct {
	// Default is nil when the keyword is absent; JSON null is KindNull.
	Default *Value
	// Object is set when the field declares nested properties.
	Object      *ObjectShape
	Description string
	Enum        []*Value
	Examples    []*Value
}

// Meta returns common field keywords.
func (m *FieldMeta) Meta() *FieldMeta {
	return m
}

// Field is a property schema: *TypedField, *UnionField or *UntypedField.
type Field interface {
	Meta() *FieldMeta
	isField()
}

// TypedField declares "type" as a name or a list of names.
type TypedField struct {
	FieldMeta
	Types []string
}

// UnionField declares alternatives with anyOf or oneOf.
type UnionField struct {
	Keyword      string
	Alternatives []Field
	FieldMeta
}

// UntypedField declares neither type nor alternatives.
type UntypedField struct {
	FieldMeta
}

func (*TypedField) isField()   {}
func (*UnionField) isField()   {}
func (*UntypedField) isField() {}

// Lookup returns field schema by property name.
func (s *ObjectShape) Lookup(name string) (Field, bool) {
	if s == nil {
		return nil, false
	}

	for _, prop := range s.Properties {
		if prop.Name == name {
			return prop.Field, true
		}
	}

	return nil, false
}

// IsRequired reports whether property is listed in required.
func (s *ObjectShape) IsRequired(name string) bool {
	if s == nil {
		return false
	}

	return slices.Contains(s.Required, name)
}

// DynamicDefault returns generator tag declared for property.
func (s *ObjectShape) DynamicDefault(name string) string {
	if s == nil {
		return ""
	}

	return s.DynamicDefaults[name]
}

// BuildDocument converts dereferenced schema tree into typed document.
func BuildDocument(root *Value, source string) (*Document, error) {
	if root == nil || root.Kind != KindObject {
		return nil, ErrSchemaRootType
	}

	doc := &Document{Source: source}
	if title, ok := root.Get("title"); ok {
		doc.Title, _ = title.StringValue()
	}

	if description, ok := root.Get("description"); ok {
		doc.Description, _ = description.StringValue()
	}

	if examples, ok := root.Get("examples"); ok && examples.Kind == KindArray {
		doc.Examples = examples.Items
	}

	properties, ok := root.Get("properties")
	if !ok || properties.Kind != KindObject {
		return nil, ErrNoProperties
	}

	shape, err := buildObjectShape(root, "")
	if err != nil {
		return nil, err
	}

	doc.Shape = shape
	return doc, nil
}

// buildObjectShape reads properties, required and dynamicDefaults of object schema.
func buildObjectShape(object *Value, path string) (*ObjectShape, error) {
	shape := &ObjectShape{}

	if required, ok := object.Get("required"); ok && required.Kind == KindArray {
		for _, item := range required.Items {
			name, ok := item.StringValue()
			if !ok {
				continue
			}

			shape.Required = append(shape.Required, name)
		}
	}

	if dynamic, ok := object.Get("dynamicDefaults"); ok && dynamic.Kind == KindObject {
		shape.DynamicDefaults = make(map[string]string, len(dynamic.Members))
		for _, member := range dynamic.Members {
			if tag, ok := member.Value.StringValue(); ok {
				shape.DynamicDefaults[member.Key] = tag
			}
		}
	}

	properties, _ := object.Get("properties")
	shape.Properties = make([]Property, 0, len(properties.Members))
	for _, member := range properties.Members {
		field, err := buildField(member.Value, appendPath(path, member.Key))
		if err != nil {
			return nil, err
		}

		shape.Properties = append(shape.Properties, Property{Name: member.Key, Field: field})
	}

	return shape, nil
}

// buildField selects field variant from schema keywords.
func buildField(node *Value, path string) (Field, error) {
	switch node.Kind {
	case KindBool:
		return &UntypedField{}, nil
	case KindObject:
	default:
		return nil, fmt.Errorf("%w at %q", ErrFieldSchemaType, path)
	}

	if ref, ok := node.Get(refKeyword); ok {
		text, _ := ref.StringValue()
		return nil, fmt.Errorf("%w %q at %q", ErrUnresolvedReference, text, path)
	}

	meta, err := buildFieldMeta(node, path)
	if err != nil {
		return nil, err
	}

	if typeValue, ok := node.Get("type"); ok {
		if types := typeNames(typeValue); len(types) > 0 {
			return &TypedField{FieldMeta: meta, Types: types}, nil
		}
	}

	for _, keyword := range []string{"anyOf", "oneOf"} {
		list, ok := node.Get(keyword)
		if !ok || list.Kind != KindArray {
			continue
		}

		union := &UnionField{FieldMeta: meta, Keyword: keyword, Alternatives: make([]Field, 0, len(list.Items))}
		for index, item := range list.Items {
			alternative, err := buildField(item, fmt.Sprintf("%s/%s/%d", path, keyword, index))
			if err != nil {
				return nil, err
			}

			union.Alternatives = append(union.Alternatives, alternative)
		}

		return union, nil
	}

	return &UntypedField{FieldMeta: meta}, nil
}

// buildFieldMeta reads description, default, enum, examples and nested properties.
func buildFieldMeta(node *Value, path string) (FieldMeta, error) {
	var meta FieldMeta

	if description, ok := node.Get("description"); ok {
		meta.Description, _ = description.StringValue()
	}

	if value, ok := node.Get("default"); ok {
		meta.Default = value
	}

	if enum, ok := node.Get("enum"); ok && enum.Kind == KindArray {
		meta.Enum = enum.Items
	}

	if examples, ok := node.Get("examples"); ok && examples.Kind == KindArray {
		meta.Examples = examples.Items
	}

	if properties, ok := node.Get("properties"); ok && properties.Kind == KindObject {
		shape, err := buildObjectShape(node, path)
		if err != nil {
			return FieldMeta{}, err
		}

		meta.Object = shape
	}

	return meta, nil
}

// typeNames reads "type" keyword as string or list of strings.
func typeNames(value *Value) []string {
	if name, ok := value.StringValue(); ok {
		return []string{name}
	}

	if value.Kind != KindArray {
		return nil
	}

	names := make([]string, 0, len(value.Items))
	for _, item := range value.Items {
		if name, ok := item.StringValue(); ok {
			names = append(names, name)
		}
	}

	return names
}

// appendPath joins path segments with a dot. Empty base is the document root.
func appendPath(base, segment string) string {
	if base == "" {
		return segment
	}

	return base + "." + segment
}
