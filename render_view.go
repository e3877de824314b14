// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

package schemaref

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// renderView is the root view model passed to markdown templates.
type renderView struct {
	FrontMatter string
	Title       string
	Description string
	Rows        []rowView
	Examples    []exampleView
}

// rowView is one field table row with cells ready for markdown.
type rowView struct {
	Name        string
	Type        string
	Description string
	Default     string
}

// exampleView is one fenced example block.
type exampleView struct {
	Format string
	Body   string
}

// frontMatterView fixes front matter key order.
type frontMatterView struct {
	Title    string `yaml:"title"`
	Layout   string `yaml:"layout"`
	NavOrder int    `yaml:"nav_order"`
	Parent   string `yaml:"parent"`
}

// buildRenderView prepares data for markdown template rendering.
func buildRenderView(doc *Document, rows []FieldRow, opt Options) (renderView, error) {
	frontMatter, err := encodeFrontMatter(doc.Title, opt.FrontMatter)
	if err != nil {
		return renderView{}, err
	}

	view := renderView{
		FrontMatter: frontMatter,
		Title:       doc.Title,
		Description: doc.Description,
		Rows:        make([]rowView, 0, len(rows)),
	}

	for _, row := range rows {
		view.Rows = append(view.Rows, rowView{
			Name:        tableCell(row.Name),
			Type:        tableCell(row.Type),
			Description: tableCell(row.Description),
			Default:     tableCell(row.Default),
		})
	}

	examples, err := buildExampleViews(doc, opt)
	if err != nil {
		return renderView{}, err
	}

	view.Examples = examples
	return view, nil
}

// encodeFrontMatter renders front matter body between the --- markers.
func encodeFrontMatter(title string, fm FrontMatter) (string, error) {
	fm = fm.withDefaults()

	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)

	if err := encoder.Encode(frontMatterView{
		Title:    title,
		Layout:   fm.Layout,
		NavOrder: fm.NavOrder,
		Parent:   fm.Parent,
	}); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeFrontMatter, err)
	}

	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeFrontMatter, err)
	}

	return out.String(), nil
}

// withDefaults fills zero front matter values.
func (fm FrontMatter) withDefaults() FrontMatter {
	if fm.Layout == "" {
		fm.Layout = defaultLayout
	}

	if fm.NavOrder == 0 {
		fm.NavOrder = defaultNavOrder
	}

	if fm.Parent == "" {
		fm.Parent = defaultParent
	}

	return fm
}

// buildExampleViews encodes declared examples or a synthesized one.
func buildExampleViews(doc *Document, opt Options) ([]exampleView, error) {
	format, err := normalizeExampleFormat(opt.ExampleFormat)
	if err != nil {
		return nil, err
	}

	examples := doc.Examples
	if len(examples) == 0 && opt.ExampleMode != "" {
		generated, err := GenerateExample(doc, opt.ExampleMode)
		if err != nil {
			return nil, err
		}

		examples = []*Value{generated}
	}

	out := make([]exampleView, 0, len(examples))
	for _, example := range examples {
		body, err := encodeExample(example, format)
		if err != nil {
			return nil, err
		}

		out = append(out, exampleView{Format: string(format), Body: body})
	}

	return out, nil
}
