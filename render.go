// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

package schemaref

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
)

const (
	// defaultTemplateName is used when caller does not provide template name.
	defaultTemplateName = templateReferenceName
	// defaultLayout is the front matter layout marker.
	defaultLayout = "default"
	// defaultNavOrder is the front matter navigation order.
	defaultNavOrder = 1
	// defaultParent is the front matter parent page label.
	defaultParent = "Reference"
)

const templateReferenceName = "reference"

// FrontMatter holds fixed front matter keys written above every document.
type FrontMatter struct {
	Layout   string `yaml:"layout" toml:"layout" json:"layout,omitempty" jsonschema:"description=Page layout marker"`
	Parent   string `yaml:"parent" toml:"parent" json:"parent,omitempty" jsonschema:"description=Parent navigation label"`
	NavOrder int    `yaml:"nav_order" toml:"nav_order" json:"nav_order,omitempty" jsonschema:"description=Navigation order"`
}

// Options configures markdown rendering.
type Options struct {
	// FrontMatter overrides layout, nav_order and parent; zero values use defaults.
	FrontMatter FrontMatter
	// TemplateName selects built-in template.
	TemplateName string
	// TemplateText is custom template text and wins over TemplateName.
	TemplateText string
	// ExampleMode synthesizes one example when schema has none; empty disables it.
	ExampleMode ExampleMode
	// ExampleFormat selects example block encoding, json by default.
	ExampleFormat ExampleFormat
}

// RenderFile loads schema file, resolves references and renders markdown.
func RenderFile(ctx context.Context, path string, opt Options) (string, error) {
	doc, err := LoadDocument(ctx, path, ResolveOptions{})
	if err != nil {
		return "", err
	}

	return RenderDocument(doc, opt)
}

// LoadDocument reads schema file, rewrites relative refs to the file directory,
// dereferences it and builds typed document.
func LoadDocument(ctx context.Context, path string, resolveOpt ResolveOptions) (*Document, error) {
	doc, _, err := loadDocument(ctx, path, NewResolver(resolveOpt))
	return doc, err
}

// loadDocument runs read/decode/resolve/build steps and reports failed stage.
func loadDocument(ctx context.Context, path string, resolver *Resolver) (*Document, Stage, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, StageRead, fmt.Errorf("%w: %w", ErrReadSchemaFile, err)
	}

	data, err := resolver.loader.Load(ctx, absPath)
	if err != nil {
		return nil, StageRead, fmt.Errorf("%w: %w", ErrReadSchemaFile, err)
	}

	root, err := DecodeValue(data)
	if err != nil {
		return nil, StageDecode, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
	}

	RewriteRefs(root, filepath.Dir(absPath))

	resolved, err := resolver.Dereference(ctx, absPath, root)
	if err != nil {
		return nil, StageResolve, err
	}

	doc, err := BuildDocument(resolved, path)
	if err != nil {
		return nil, StageBuild, err
	}

	return doc, "", nil
}

// RenderDocument flattens document fields and renders markdown.
func RenderDocument(doc *Document, opt Options) (string, error) {
	return Render(doc, FlattenFields(doc), opt)
}

// Render assembles front matter, heading, field table and examples.
func Render(doc *Document, rows []FieldRow, opt Options) (string, error) {
	view, err := buildRenderView(doc, rows, opt)
	if err != nil {
		return "", err
	}

	name, text, parseErr := "custom", opt.TemplateText, ErrParseCustomTemplate
	if strings.TrimSpace(text) == "" {
		name = normalizeTemplateName(opt.TemplateName)
		if name == "" {
			name = defaultTemplateName
		}

		text, err = BuiltinTemplate(name)
		if err != nil {
			return "", err
		}

		parseErr = ErrParseBuiltinTemplate
	}

	markdownTemplate, err := template.New(name).Funcs(templateFuncs).Parse(text)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", parseErr, name, err)
	}

	var out strings.Builder
	if err := markdownTemplate.Execute(&out, view); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecuteMarkdownTemplate, err)
	}

	return ensureTrailingNewline(normalizeLineEndings(out.String())), nil
}

