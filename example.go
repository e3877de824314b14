// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

package schemaref

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ExampleModeAll builds example with all declared properties.
	ExampleModeAll ExampleMode = "all"
	// ExampleModeRequired builds example with required properties only.
	ExampleModeRequired ExampleMode = "required"
)

// ExampleMode configures example generation property coverage.
type ExampleMode string

const (
	// ExampleFormatJSON encodes example payload as JSON.
	ExampleFormatJSON ExampleFormat = "json"
	// ExampleFormatYAML encodes example payload as YAML.
	ExampleFormatYAML ExampleFormat = "yaml"
)

// ExampleFormat configures output format for example blocks.
type ExampleFormat string

// exampleScalarPlaceholders provides fallback values for scalar schema types.
var exampleScalarPlaceholders = map[string]*Value{
	"string":  {Kind: KindString, Text: "<string>"},
	"number":  {Kind: KindNumber, Text: "0"},
	"integer": {Kind: KindNumber, Text: "0"},
	"boolean": {Kind: KindBool},
	"null":    {Kind: KindNull},
	"array":   {Kind: KindArray, Items: []*Value{}},
	"object":  {Kind: KindObject},
}

// exampleBuilder converts typed document fields into example values.
type exampleBuilder struct {
	mode ExampleMode
}

// GenerateExample synthesizes one example payload from document fields.
func GenerateExample(doc *Document, mode ExampleMode) (*Value, error) {
	mode, err := normalizeExampleMode(mode)
	if err != nil {
		return nil, err
	}

	builder := exampleBuilder{mode: mode}
	return builder.buildObject(doc.Shape), nil
}

// normalizeExampleMode validates and normalizes caller mode value.
func normalizeExampleMode(mode ExampleMode) (ExampleMode, error) {
	normalized := ExampleMode(strings.ToLower(strings.TrimSpace(string(mode))))
	switch normalized {
	case ExampleModeAll, ExampleModeRequired:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleMode, mode)
	}
}

// normalizeExampleFormat validates format and falls back to JSON.
func normalizeExampleFormat(format ExampleFormat) (ExampleFormat, error) {
	normalized := ExampleFormat(strings.ToLower(strings.TrimSpace(string(format))))
	switch normalized {
	case "":
		return ExampleFormatJSON, nil
	case ExampleFormatJSON, ExampleFormatYAML:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleFormat, format)
	}
}

// buildObject materializes object value from property shape.
func (builder exampleBuilder) buildObject(shape *ObjectShape) *Value {
	out := &Value{Kind: KindObject, Members: []Member{}}
	if shape == nil {
		return out
	}

	for _, prop := range shape.Properties {
		if builder.mode == ExampleModeRequired && !shape.IsRequired(prop.Name) {
			continue
		}

		out.Members = append(out.Members, Member{Key: prop.Name, Value: builder.buildField(prop.Field)})
	}

	return out
}

// buildField picks explicit value, nested object or type placeholder for field.
func (builder exampleBuilder) buildField(field Field) *Value {
	meta := field.Meta()
	if meta.Default != nil {
		return meta.Default.Clone()
	}

	if len(meta.Examples) > 0 {
		return meta.Examples[0].Clone()
	}

	if len(meta.Enum) > 0 {
		return meta.Enum[0].Clone()
	}

	if meta.Object != nil {
		return builder.buildObject(meta.Object)
	}

	switch typed := field.(type) {
	case *TypedField:
		return typePlaceholder(typed.Types)
	case *UnionField:
		for _, alternative := range typed.Alternatives {
			if value := builder.buildField(alternative); value.Kind != KindNull {
				return value
			}
		}
	}

	return &Value{Kind: KindNull}
}

// typePlaceholder returns placeholder of first non-null type.
func typePlaceholder(types []string) *Value {
	for _, name := range types {
		if name == "null" {
			continue
		}

		if value, ok := exampleScalarPlaceholders[name]; ok {
			return value.Clone()
		}
	}

	return &Value{Kind: KindNull}
}

// encodeExample renders example body for fenced block.
func encodeExample(value *Value, format ExampleFormat) (string, error) {
	switch format {
	case ExampleFormatYAML:
		data, err := marshalExampleYAMLNode(yamlNodeForValue(value))
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrEncodeExample, err)
		}

		return strings.TrimRight(string(data), "\n"), nil
	default:
		body, err := value.Pretty()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrEncodeExample, err)
		}

		return body, nil
	}
}

// marshalExampleYAMLNode serializes example payload as YAML.
func marshalExampleYAMLNode(node *yaml.Node) ([]byte, error) {
	document := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{node},
	}

	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)

	if err := encoder.Encode(document); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// yamlNodeForValue builds yaml.Node tree keeping object member order.
func yamlNodeForValue(value *Value) *yaml.Node {
	switch value.Kind {
	case KindBool:
		return yamlScalarNode("!!bool", strconv.FormatBool(value.Bool))
	case KindString:
		return yamlScalarNode("!!str", value.Text)
	case KindNumber:
		if _, err := strconv.ParseInt(value.Text, 10, 64); err == nil {
			return yamlScalarNode("!!int", value.Text)
		}

		return yamlScalarNode("!!float", value.Text)
	case KindObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, member := range value.Members {
			node.Content = append(node.Content, yamlScalarNode("!!str", member.Key), yamlNodeForValue(member.Value))
		}

		return node
	case KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range value.Items {
			node.Content = append(node.Content, yamlNodeForValue(item))
		}

		return node
	default:
		return yamlScalarNode("!!null", "null")
	}
}

// yamlScalarNode creates one scalar yaml.Node with explicit tag.
func yamlScalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   tag,
		Value: value,
	}
}
