// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

// schemaref generates markdown reference pages from JSON Schema files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/schemaref"
)

// generatedMessage is printed after a successful generation run.
const generatedMessage = "Documents generated."

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/schemaref"
	_buildTime string
)

// cliOptions describes schemaref CLI flags and subcommands.
type cliOptions struct {
	Version      versionCommand      `command:"version" description:"Print version information"`
	Generate     generateCommand     `command:"generate" description:"Generate markdown reference pages from schema directory"`
	Template     templateCommand     `command:"template" description:"Print built-in markdown template"`
	ConfigSchema configSchemaCommand `command:"config-schema" description:"Print JSON Schema of configuration file"`
}

// generateFlags groups generation flags; empty values keep config file or defaults.
type generateFlags struct {
	ConfigPath      string `short:"c" long:"config" description:"Path to YAML or TOML configuration file"`
	InputDir        string `short:"i" long:"input" description:"Directory with JSON Schema files (default: _includes/schemas)"`
	OutputDir       string `short:"o" long:"output" description:"Directory for generated markdown (default: reference/schemas)"`
	TemplatePath    string `short:"f" long:"template-file" description:"Path to custom markdown template (.gotmpl)"`
	ExampleFormat   string `long:"example-format" description:"Encoding of example blocks" choice:"json" choice:"yaml"`
	LogFormat       string `long:"log-format" description:"Log output format" choice:"text" choice:"json"`
	ContinueOnError bool   `short:"k" long:"continue-on-error" description:"Process remaining schemas after a failure and report all failures"`
	GenExamples     bool   `short:"e" long:"generate-examples" description:"Synthesize an example for schemas without examples"`
	Verbose         bool   `short:"v" long:"verbose" description:"Enable debug logging"`
}

// generateCommand renders every schema of input directory.
type generateCommand struct {
	runner *cliRunner
	Flags  generateFlags `group:"Generate"`
}

// Execute runs generate subcommand.
func (command *generateCommand) Execute(_ []string) error {
	return command.runner.runGenerate(command.Flags)
}

// templateSelectFlags groups built-in template selection flags.
type templateSelectFlags struct {
	TemplateName string `short:"t" long:"template" description:"Built-in template name" choice:"reference" default:"reference"`
}

// templateCommand exports built-in markdown template.
type templateCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output template file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	TemplateFlags templateSelectFlags `group:"Template Select"`
}

// Execute runs template subcommand.
func (command *templateCommand) Execute(_ []string) error {
	return command.runner.runTemplate(command.TemplateFlags.TemplateName, command.Args.Output)
}

// configSchemaCommand exports configuration JSON Schema.
type configSchemaCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output schema file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`
}

// Execute runs config-schema subcommand.
func (command *configSchemaCommand) Execute(_ []string) error {
	return command.runner.runConfigSchema(command.Args.Output)
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	printVersionInfo(command.runner.stdout)
	return nil
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdout      io.Writer
	stderr      io.Writer
	programName string
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "schemaref"
	}

	runner := cliRunner{
		programName: filepath.Base(programName),
		stdout:      stdout,
		stderr:      stderr,
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// runGenerate loads configuration, applies flag overrides and generates documents.
func (runner *cliRunner) runGenerate(opts generateFlags) error {
	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if opts.Verbose {
		level = "debug"
	}

	loggerOpts, err := loggerOptions(runner.stderr, level, cfg.Log.Format)
	if err != nil {
		return err
	}

	logger := newLogger(loggerOpts...)

	if _, err := schemaref.Generate(context.Background(), cfg, logger); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(runner.stdout, generatedMessage); err != nil {
		return fmt.Errorf("write status to stdout: %w", err)
	}

	return nil
}

// buildConfig merges defaults, optional config file and flags.
func buildConfig(opts generateFlags) (schemaref.Config, error) {
	cfg := schemaref.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := schemaref.LoadConfig(path)
		if err != nil {
			return schemaref.Config{}, err
		}

		cfg = loaded
	}

	if opts.InputDir != "" {
		cfg.InputDir = opts.InputDir
	}

	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}

	if opts.TemplatePath != "" {
		cfg.TemplateFile = opts.TemplatePath
	}

	if opts.ExampleFormat != "" {
		cfg.ExampleFormat = schemaref.ExampleFormat(opts.ExampleFormat)
	}

	if opts.LogFormat != "" {
		cfg.Log.Format = opts.LogFormat
	}

	if opts.ContinueOnError {
		cfg.ContinueOnError = true
	}

	if opts.GenExamples {
		cfg.GenerateExamples = true
	}

	return cfg.Normalize()
}

// runTemplate writes selected built-in template to stdout or file.
func (runner *cliRunner) runTemplate(templateName, outputPath string) error {
	tpl, err := schemaref.BuiltinTemplate(templateName)
	if err != nil {
		return fmt.Errorf("load built-in template %q: %w", templateName, err)
	}

	return runner.writeOutput(outputPath, []byte(tpl), "template")
}

// runConfigSchema writes configuration JSON Schema to stdout or file.
func (runner *cliRunner) runConfigSchema(outputPath string) error {
	data, err := json.MarshalIndent(schemaref.ConfigSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config schema: %w", err)
	}

	data = append(data, '\n')
	return runner.writeOutput(outputPath, data, "config schema")
}

// writeOutput writes data to file path or stdout when path is empty.
func (runner *cliRunner) writeOutput(outputPath string, data []byte, what string) error {
	if strings.TrimSpace(outputPath) == "" {
		if _, err := runner.stdout.Write(data); err != nil {
			return fmt.Errorf("write %s to stdout: %w", what, err)
		}

		return nil
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("write %s file %q: %w", what, outputPath, err)
	}

	return nil
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
// Without a subcommand the generate flow runs with default settings.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Version.runner = runner
	options.Generate.runner = runner
	options.Template.runner = runner
	options.ConfigSchema.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	parser.SubcommandsOptional = true
	applyCommandLongDescriptions(parser, runner.programName)

	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	if parser.Active == nil {
		return runner.runGenerate(generateFlags{})
	}

	return nil
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"generate": strings.TrimSpace(fmt.Sprintf(`
Render every *.json schema of input directory into one markdown page named after schema title.
Relative $ref values resolve against input directory; cross-file references are supported.
Running without a command is the same as "generate" with defaults.

Examples:
> $ %s
> $ %s generate -i schemas -o docs/reference -k
> $ %s generate -c schemaref.yaml -e --example-format yaml
`, programName, programName, programName)),
		"template": strings.TrimSpace(fmt.Sprintf(`
Print built-in markdown template text.
Use it as a starting point for a custom template file.

Examples:
> $ %s template > reference.gotmpl
> $ %s template templates/reference.gotmpl
`, programName, programName)),
		"config-schema": strings.TrimSpace(fmt.Sprintf(`
Print JSON Schema describing the YAML/TOML configuration file.

Examples:
> $ %s config-schema > schemaref.schema.json
`, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

func printVersionInfo(output io.Writer) {
	_, _ = fmt.Fprintf(output, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
}
