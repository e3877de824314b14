// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// loggerOption configures CLI logger.
type loggerOption func(*logrus.Logger)

// withOutput sets logger output.
func withOutput(w io.Writer) loggerOption {
	return func(l *logrus.Logger) {
		l.SetOutput(w)
	}
}

// withLevel sets log level.
func withLevel(level logrus.Level) loggerOption {
	return func(l *logrus.Logger) {
		l.SetLevel(level)
	}
}

// withFormatter sets log formatter.
func withFormatter(formatter logrus.Formatter) loggerOption {
	return func(l *logrus.Logger) {
		l.SetFormatter(formatter)
	}
}

// newLogger creates logger writing to stderr with options applied.
func newLogger(opts ...loggerOption) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	for _, opt := range opts {
		opt(logger)
	}

	return logger
}

// loggerOptions maps level and format names onto logger options.
func loggerOptions(output io.Writer, levelName, format string) ([]loggerOption, error) {
	level, err := logrus.ParseLevel(strings.TrimSpace(levelName))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	opts := []loggerOption{withOutput(output), withLevel(level)}
	switch format {
	case "json":
		opts = append(opts, withFormatter(&logrus.JSONFormatter{}))
	default:
		opts = append(opts, withFormatter(&logrus.TextFormatter{
			DisableColors:    !isTerminal(output),
			DisableTimestamp: true,
		}))
	}

	return opts, nil
}

// isTerminal reports whether output is an interactive terminal.
func isTerminal(output io.Writer) bool {
	file, ok := output.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
