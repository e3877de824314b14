// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

package schemaref

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrReadSchemaFile is returned when schema file loading fails.
	ErrReadSchemaFile = errors.New("read schema file")
	// ErrListSchemaDir is returned when input directory cannot be listed.
	ErrListSchemaDir = errors.New("list schema directory")
	// ErrDecodeSchema is returned when schema JSON decoding fails.
	ErrDecodeSchema = errors.New("decode schema")
	// ErrSchemaRootType is returned when schema root is not an object.
	ErrSchemaRootType = errors.New("schema root must be object")
	// ErrFieldSchemaType is returned when property schema is neither object nor boolean.
	ErrFieldSchemaType = errors.New("field schema must be object or boolean")
	// ErrNoProperties is returned when schema document declares no properties object.
	ErrNoProperties = errors.New("schema has no properties")
	// ErrFieldNotFound is returned when flattening requests a field absent from properties.
	ErrFieldNotFound = errors.New("field not found in properties")
	// ErrUnresolvedReference is returned when a $ref survives dereferencing.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrUnresolvableReference is returned when a $ref target cannot be found.
	ErrUnresolvableReference = errors.New("unresolvable reference")
	// ErrRefDepthExceeded is returned when $ref chain is deeper than allowed.
	ErrRefDepthExceeded = errors.New("reference depth exceeded")
	// ErrRefEscapesRoot is returned when $ref points outside schema directory.
	ErrRefEscapesRoot = errors.New("reference escapes schema directory")
	// ErrMissingTitle is returned when schema has no title to name the output document.
	ErrMissingTitle = errors.New("schema has no title")
	// ErrInvalidTitle is returned when schema title cannot be used as file name.
	ErrInvalidTitle = errors.New("schema title is not a valid file name")
	// ErrWriteDocument is returned when generated markdown cannot be written.
	ErrWriteDocument = errors.New("write document")
	// ErrExecuteMarkdownTemplate is returned when markdown template execution fails.
	ErrExecuteMarkdownTemplate = errors.New("execute markdown template")
	// ErrEncodeFrontMatter is returned when front matter YAML encoding fails.
	ErrEncodeFrontMatter = errors.New("encode front matter")
	// ErrUnknownBuiltinTemplate is returned when requested built-in template name is not registered.
	ErrUnknownBuiltinTemplate = errors.New("unknown built-in template")
	// ErrReadBuiltinTemplate is returned when built-in template file loading fails.
	ErrReadBuiltinTemplate = errors.New("read built-in template")
	// ErrParseBuiltinTemplate is returned when built-in template parsing fails.
	ErrParseBuiltinTemplate = errors.New("parse built-in template")
	// ErrParseCustomTemplate is returned when caller template text cannot be parsed.
	ErrParseCustomTemplate = errors.New("parse custom template")
	// ErrUnknownExampleMode is returned when example generation mode is not supported.
	ErrUnknownExampleMode = errors.New("unknown example mode")
	// ErrUnknownExampleFormat is returned when example format is not supported.
	ErrUnknownExampleFormat = errors.New("unknown example format")
	// ErrEncodeExample is returned when example payload encoding fails.
	ErrEncodeExample = errors.New("encode example")
	// ErrLoadConfig is returned when configuration file cannot be loaded.
	ErrLoadConfig = errors.New("load config")
	// ErrInvalidConfig is returned when configuration values are invalid.
	ErrInvalidConfig = errors.New("invalid config")
)

// Stage names the pipeline step a file failed in.
type Stage string

const (
	StageRead    Stage = "read"
	StageDecode  Stage = "decode"
	StageResolve Stage = "resolve"
	StageBuild   Stage = "build"
	StageRender  Stage = "render"
	StageWrite   Stage = "write"
)

// FileError reports failure of one schema file.
type FileError struct {
	Err   error
	Path  string
	Stage Stage
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Stage, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FileError) Unwrap() error {
	return e.Err
}

// BatchError summarizes failures collected when generation continues past errors.
type BatchError struct {
	Failures []*FileError
}

// Error implements the error interface.
func (e *BatchError) Error() string {
	lines := make([]string, 0, len(e.Failures)+1)
	lines = append(lines, fmt.Sprintf("%d schema file(s) failed:", len(e.Failures)))
	for _, failure := range e.Failures {
		lines = append(lines, "- "+failure.Error())
	}

	return strings.Join(lines, "\n")
}

// Unwrap exposes every file failure to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	out := make([]error, 0, len(e.Failures))
	for _, failure := range e.Failures {
		out = append(out, failure)
	}

	return out
}
