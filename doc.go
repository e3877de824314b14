// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

/*
Package schemaref generates markdown reference pages from JSON Schema files.

Every schema in the input directory becomes one page named after its title.
A page carries front matter, the schema description, a field table with
nested properties flattened into dotted names, and the schema examples.
References ($ref) to local definitions and to sibling files are resolved
before the table is built.

Generate a whole directory:

	cfg := schemaref.DefaultConfig()
	cfg.InputDir = "_includes/schemas"
	cfg.OutputDir = "reference/schemas"

	report, err := schemaref.Generate(ctx, cfg, logrus.StandardLogger())
	if err != nil {
		return err
	}

	fmt.Println(len(report.Generated))

Render one file:

	md, err := schemaref.RenderFile(ctx, "_includes/schemas/widget.json", schemaref.Options{})
	if err != nil {
		return err
	}

	fmt.Print(md)

Work with flattened rows directly:

	doc, err := schemaref.LoadDocument(ctx, "widget.json", schemaref.ResolveOptions{})
	if err != nil {
		return err
	}

	for _, row := range schemaref.FlattenFields(doc) {
		fmt.Println(row.Name, row.Type)
	}

Synthesize an example for schemas that declare none:

	md, err := schemaref.RenderDocument(doc, schemaref.Options{
		ExampleMode:   schemaref.ExampleModeRequired,
		ExampleFormat: schemaref.ExampleFormatYAML,
	})
*/
package schemaref
