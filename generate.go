// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

package schemaref

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// markdownExt is appended to schema title to form output file name.
const markdownExt = ".md"

// Report lists results of one generation run.
type Report struct {
	// Generated holds written document paths in processing order.
	Generated []string
	// Skipped holds schema paths that failed when errors are collected.
	Skipped []string
}

// Generate renders every matching schema of cfg.InputDir into cfg.OutputDir.
// The first failure aborts the run unless cfg.ContinueOnError is set, in which
// case remaining files are processed and a *BatchError summarizes failures.
func Generate(ctx context.Context, cfg Config, log logrus.FieldLogger) (Report, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return Report{}, err
	}

	if log == nil {
		log = discardLogger()
	}

	files, err := listSchemaFiles(cfg.InputDir, cfg.Pattern)
	if err != nil {
		return Report{}, err
	}

	rootDir, err := filepath.Abs(cfg.InputDir)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrListSchemaDir, err)
	}

	resolver := NewResolver(ResolveOptions{
		RootDir:            rootDir,
		MaxRefDepth:        cfg.MaxRefDepth,
		AllowPathTraversal: cfg.AllowPathTraversal,
	})

	opt, err := cfg.renderOptions()
	if err != nil {
		return Report{}, err
	}

	log.WithField("files", len(files)).Debugf("processing schemas from %s", cfg.InputDir)

	var (
		report   Report
		failures []*FileError
	)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		fileLog := log.WithField("file", path)
		written, fileErr := generateFile(ctx, path, cfg.OutputDir, resolver, opt, fileLog)
		if fileErr == nil {
			report.Generated = append(report.Generated, written)
			continue
		}

		if !cfg.ContinueOnError {
			return report, fileErr
		}

		fileLog.WithField("stage", fileErr.Stage).Warnf("skip schema: %v", fileErr.Err)
		report.Skipped = append(report.Skipped, path)
		failures = append(failures, fileErr)
	}

	if len(failures) > 0 {
		return report, &BatchError{Failures: failures}
	}

	return report, nil
}

// generateFile runs full pipeline for one schema and returns written path.
func generateFile(
	ctx context.Context,
	path, outputDir string,
	resolver *Resolver,
	opt Options,
	log logrus.FieldLogger,
) (string, *FileError) {
	fail := func(stage Stage, err error) (string, *FileError) {
		return "", &FileError{Path: path, Stage: stage, Err: err}
	}

	doc, stage, err := loadDocument(ctx, path, resolver)
	if err != nil {
		return fail(stage, err)
	}

	fileName, err := documentFileName(doc.Title)
	if err != nil {
		return fail(StageBuild, err)
	}

	rows := FlattenFields(doc)
	for _, row := range rows {
		if row.Type == "" {
			log.WithField("field", row.Name).Debug("field type is unknown")
		}
	}

	content, err := Render(doc, rows, opt)
	if err != nil {
		return fail(StageRender, err)
	}

	written, err := writeDocument(outputDir, fileName, content)
	if err != nil {
		return fail(StageWrite, err)
	}

	log.WithFields(logrus.Fields{
		"title": doc.Title,
		"rows":  len(rows),
	}).Infof("generated %s", written)

	return written, nil
}

// listSchemaFiles returns regular files of dir matching pattern in name order.
func listSchemaFiles(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrListSchemaDir, dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		matched, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalidConfig, pattern, err)
		}

		if matched {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// documentFileName maps schema title to output file name.
func documentFileName(title string) (string, error) {
	if title == "" {
		return "", ErrMissingTitle
	}

	if title == "." || title == ".." || strings.ContainsAny(title, "/\\\x00") {
		return "", fmt.Errorf("%w: %q", ErrInvalidTitle, title)
	}

	return title + markdownExt, nil
}

// writeDocument creates output directory and writes content, replacing existing file.
func writeDocument(outputDir, fileName, content string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteDocument, err)
	}

	path := filepath.Join(outputDir, fileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrWriteDocument, path, err)
	}

	return path, nil
}

// discardLogger returns logger that drops every entry.
func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
