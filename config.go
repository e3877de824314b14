// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

package schemaref

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultInputDir is the schema directory read when nothing else is configured.
	DefaultInputDir = "_includes/schemas"
	// DefaultOutputDir is the directory generated documents are written to.
	DefaultOutputDir = "reference/schemas"
	// DefaultPattern selects schema files inside input directory.
	DefaultPattern = "*.json"
)

// Config configures one generation run.
type Config struct {
	// InputDir is the directory with JSON Schema files.
	InputDir string `yaml:"input_dir" toml:"input_dir" json:"input_dir,omitempty"`
	// OutputDir receives one markdown file per schema, named after schema title.
	OutputDir string `yaml:"output_dir" toml:"output_dir" json:"output_dir,omitempty"`
	// Pattern is a glob matched against file names in InputDir.
	Pattern string `yaml:"pattern" toml:"pattern" json:"pattern,omitempty"`
	// TemplateFile is an optional custom markdown template replacing the built-in one.
	TemplateFile string `yaml:"template_file" toml:"template_file" json:"template_file,omitempty"`
	// ExampleMode controls synthesized examples: "all" or "required".
	ExampleMode ExampleMode `yaml:"example_mode" toml:"example_mode" json:"example_mode,omitempty" jsonschema:"enum=all,enum=required"`
	// ExampleFormat selects example block encoding: "json" or "yaml".
	ExampleFormat ExampleFormat `yaml:"example_format" toml:"example_format" json:"example_format,omitempty" jsonschema:"enum=json,enum=yaml"`
	// Log configures diagnostics output.
	Log LogConfig `yaml:"log" toml:"log" json:"log,omitempty"`
	// FrontMatter overrides fixed front matter keys.
	FrontMatter FrontMatter `yaml:"front_matter" toml:"front_matter" json:"front_matter,omitempty"`
	// MaxRefDepth caps nested $ref chains.
	MaxRefDepth int `yaml:"max_ref_depth" toml:"max_ref_depth" json:"max_ref_depth,omitempty"`
	// ContinueOnError keeps processing remaining files and reports a summary of failures.
	ContinueOnError bool `yaml:"continue_on_error" toml:"continue_on_error" json:"continue_on_error,omitempty"`
	// GenerateExamples synthesizes one example for schemas that declare none.
	GenerateExamples bool `yaml:"generate_examples" toml:"generate_examples" json:"generate_examples,omitempty"`
	// AllowPathTraversal permits $ref targets outside InputDir.
	AllowPathTraversal bool `yaml:"allow_path_traversal" toml:"allow_path_traversal" json:"allow_path_traversal,omitempty"`
}

// LogConfig configures logger level and format.
type LogConfig struct {
	// Level is one of logrus level names.
	Level string `yaml:"level" toml:"level" json:"level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	// Format is "text" or "json".
	Format string `yaml:"format" toml:"format" json:"format,omitempty" jsonschema:"enum=text,enum=json"`
}

// DefaultConfig returns configuration used when no file or flags are given.
func DefaultConfig() Config {
	return Config{
		InputDir:      DefaultInputDir,
		OutputDir:     DefaultOutputDir,
		Pattern:       DefaultPattern,
		ExampleMode:   ExampleModeAll,
		ExampleFormat: ExampleFormatJSON,
		MaxRefDepth:   defaultMaxRefDepth,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads YAML or TOML config on top of defaults, chosen by file extension.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w %q: %w", ErrLoadConfig, path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("%w %q: %w", ErrLoadConfig, path, err)
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("%w %q: %w", ErrLoadConfig, path, err)
		}
	}

	return cfg.Normalize()
}

// Normalize fills empty values with defaults and validates enum-like fields.
func (c Config) Normalize() (Config, error) {
	defaults := DefaultConfig()

	if strings.TrimSpace(c.InputDir) == "" {
		c.InputDir = defaults.InputDir
	}

	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = defaults.OutputDir
	}

	if strings.TrimSpace(c.Pattern) == "" {
		c.Pattern = defaults.Pattern
	}

	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return Config{}, fmt.Errorf("%w: pattern %q: %w", ErrInvalidConfig, c.Pattern, err)
	}

	if c.MaxRefDepth <= 0 {
		c.MaxRefDepth = defaults.MaxRefDepth
	}

	if c.ExampleMode == "" {
		c.ExampleMode = defaults.ExampleMode
	}

	mode, err := normalizeExampleMode(c.ExampleMode)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	c.ExampleMode = mode

	format, err := normalizeExampleFormat(c.ExampleFormat)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	c.ExampleFormat = format

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}

	switch c.Log.Format {
	case "":
		c.Log.Format = defaults.Log.Format
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.Log.Format)
	}

	c.FrontMatter = c.FrontMatter.withDefaults()
	return c, nil
}

// renderOptions maps configuration onto markdown render options.
func (c Config) renderOptions() (Options, error) {
	opt := Options{
		FrontMatter:   c.FrontMatter,
		ExampleFormat: c.ExampleFormat,
	}

	if c.GenerateExamples {
		opt.ExampleMode = c.ExampleMode
	}

	if c.TemplateFile != "" {
		data, err := os.ReadFile(c.TemplateFile)
		if err != nil {
			return Options{}, fmt.Errorf("%w: template file %q: %w", ErrInvalidConfig, c.TemplateFile, err)
		}

		opt.TemplateText = string(data)
	}

	return opt, nil
}

// ConfigSchema returns JSON Schema describing the configuration file.
func ConfigSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "yaml",
	}

	schema := reflector.Reflect(&Config{})
	schema.Title = "schemaref configuration"
	schema.Description = "Configuration file for schemaref reference generation."
	return schema
}
