// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

package schemaref

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
)

// Kind identifies JSON value type.
type Kind uint8

const (
	// KindNull is JSON null.
	KindNull Kind = iota
	// KindBool is JSON true or false.
	KindBool
	// KindNumber is JSON number kept as literal text.
	KindNumber
	// KindString is JSON string.
	KindString
	// KindArray is JSON array.
	KindArray
	// KindObject is JSON object with members in declaration order.
	KindObject
)

// Member is one object key/value pair.
type Member struct {
	Key   string
	Value *Value
}

// Value is a decoded JSON value that keeps object member order.
type Value struct {
	// Text holds number literal or string content.
	Text    string
	Items   []*Value
	Members []Member
	Kind    Kind
	Bool    bool
}

// DecodeValue decodes one JSON document into ordered value tree.
func DecodeValue(data []byte) (*Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	value, err := decodeValue(decoder)
	if err != nil {
		return nil, err
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}

	return value, nil
}

// decodeValue reads one value from decoder token stream.
func decodeValue(decoder *json.Decoder) (*Value, error) {
	token, err := decoder.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}

		return nil, err
	}

	switch typed := token.(type) {
	case json.Delim:
		switch typed {
		case '{':
			return decodeObject(decoder)
		case '[':
			return decodeArray(decoder)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(typed))
		}
	case nil:
		return &Value{Kind: KindNull}, nil
	case bool:
		return &Value{Kind: KindBool, Bool: typed}, nil
	case json.Number:
		return &Value{Kind: KindNumber, Text: typed.String()}, nil
	case string:
		return &Value{Kind: KindString, Text: typed}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", token)
	}
}

// decodeObject reads object members until closing brace.
func decodeObject(decoder *json.Decoder) (*Value, error) {
	object := &Value{Kind: KindObject}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be string, got %v", token)
		}

		value, err := decodeValue(decoder)
		if err != nil {
			return nil, err
		}

		object.Set(key, value)
	}

	if _, err := decoder.Token(); err != nil {
		return nil, err
	}

	return object, nil
}

// decodeArray reads array items until closing bracket.
func decodeArray(decoder *json.Decoder) (*Value, error) {
	array := &Value{Kind: KindArray, Items: []*Value{}}
	for decoder.More() {
		value, err := decodeValue(decoder)
		if err != nil {
			return nil, err
		}

		array.Items = append(array.Items, value)
	}

	if _, err := decoder.Token(); err != nil {
		return nil, err
	}

	return array, nil
}

// Get returns object member value by key.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.Kind != KindObject {
		return nil, false
	}

	for _, member := range v.Members {
		if member.Key == key {
			return member.Value, true
		}
	}

	return nil, false
}

// Set replaces existing member in place or appends a new one.
// Duplicate keys keep their first position and the last value.
func (v *Value) Set(key string, value *Value) {
	for index := range v.Members {
		if v.Members[index].Key == key {
			v.Members[index].Value = value
			return
		}
	}

	v.Members = append(v.Members, Member{Key: key, Value: value})
}

// StringValue returns string content when value is JSON string.
func (v *Value) StringValue() (string, bool) {
	if v == nil || v.Kind != KindString {
		return "", false
	}

	return v.Text, true
}

// Clone deep-copies value tree.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}

	out := &Value{Kind: v.Kind, Bool: v.Bool, Text: v.Text}
	if v.Items != nil {
		out.Items = make([]*Value, 0, len(v.Items))
		for _, item := range v.Items {
			out.Items = append(out.Items, item.Clone())
		}
	}

	if v.Members != nil {
		out.Members = make([]Member, 0, len(v.Members))
		for _, member := range v.Members {
			out.Members = append(out.Members, Member{Key: member.Key, Value: member.Value.Clone()})
		}
	}

	return out
}

// MarshalJSON encodes value as compact JSON preserving member order.
func (v *Value) MarshalJSON() ([]byte, error) {
	var out bytes.Buffer
	if err := v.encode(&out); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// Compact returns single-line JSON text.
func (v *Value) Compact() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return ""
	}

	return string(data)
}

// Pretty returns JSON text indented with two spaces.
func (v *Value) Pretty() (string, error) {
	data, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return "", err
	}

	return out.String(), nil
}

// ScalarText renders scalar values the way template interpolation shows them.
func (v *Value) ScalarText() string {
	switch v.Kind {
	case KindString, KindNumber:
		return v.Text
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Compact()
	}
}

// encode writes compact JSON for value tree.
func (v *Value) encode(out *bytes.Buffer) error {
	if v == nil {
		out.WriteString("null")
		return nil
	}

	switch v.Kind {
	case KindNull:
		out.WriteString("null")
	case KindBool:
		out.WriteString(strconv.FormatBool(v.Bool))
	case KindNumber:
		out.WriteString(v.Text)
	case KindString:
		return encodeString(out, v.Text)
	case KindArray:
		out.WriteByte('[')
		for index, item := range v.Items {
			if index > 0 {
				out.WriteByte(',')
			}

			if err := item.encode(out); err != nil {
				return err
			}
		}

		out.WriteByte(']')
	case KindObject:
		out.WriteByte('{')
		for index, member := range v.Members {
			if index > 0 {
				out.WriteByte(',')
			}

			if err := encodeString(out, member.Key); err != nil {
				return err
			}

			out.WriteByte(':')
			if err := member.Value.encode(out); err != nil {
				return err
			}
		}

		out.WriteByte('}')
	default:
		return fmt.Errorf("unknown value kind %d", v.Kind)
	}

	return nil
}

// encodeString writes JSON string literal without HTML escaping.
func encodeString(out *bytes.Buffer, text string) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(text); err != nil {
		return err
	}

	out.Write(bytes.TrimRight(buf.Bytes(), "\n"))
	return nil
}
