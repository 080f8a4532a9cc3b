// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli implements the apispec command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"

	"rivaas.dev/apispec/internal/manifest"
	"rivaas.dev/apispec/spec"
)

// Version is set at build time with -ldflags "-X rivaas.dev/apispec/internal/cli.Version=...".
var Version = ""

var (
	// ErrUnknownOutputFormat is returned for a --format other than json or yaml.
	ErrUnknownOutputFormat = errors.New("unknown output format")

	// ErrUnknownLogFormat is returned for a --log-format other than text or json.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// HandlerType selects the slog handler of the command's logger.
type HandlerType string

const (
	// TextHandler writes key=value lines.
	TextHandler HandlerType = "text"
	// JSONHandler writes one JSON object per line.
	JSONHandler HandlerType = "json"
)

// Execute runs the command line with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// NewRootCommand builds the apispec command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "apispec",
		Short:         "Generate OpenAPI documents from route manifests",
		Long:          "apispec builds an OpenAPI document from the routes of a manifest and the YAML blocks in their handlers' doc comments.",
		Version:       version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the OpenAPI document for a manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifestPath, _ := cmd.Flags().GetString("manifest")
			output, _ := cmd.Flags().GetString("output")
			format, _ := cmd.Flags().GetString("format")
			validate, _ := cmd.Flags().GetBool("validate")
			verbose, _ := cmd.Flags().GetBool("verbose")
			logFormat, _ := cmd.Flags().GetString("log-format")

			return generate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), generateOptions{
				manifest: manifestPath,
				output:   output,
				format:   format,
				validate: validate,
				verbose:  verbose,
				logType:  HandlerType(logFormat),
			})
		},
	}
	generateCmd.Flags().StringP("manifest", "m", "apispec.yaml", "manifest file (yaml, toml or json)")
	generateCmd.Flags().StringP("output", "o", "", "output file; stdout when empty")
	generateCmd.Flags().StringP("format", "f", "", "output format: json or yaml; taken from the output file extension when empty")
	generateCmd.Flags().Bool("validate", false, "validate the document before writing it")
	generateCmd.Flags().BoolP("verbose", "v", false, "log debug messages to stderr")
	generateCmd.Flags().String("log-format", string(TextHandler), "log format: text or json")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "apispec", version())
		},
	}

	routesCmd := &cobra.Command{
		Use:   "routes",
		Short: "List the routes of a manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifestPath, _ := cmd.Flags().GetString("manifest")
			color, _ := cmd.Flags().GetBool("color")

			m, err := manifest.Load(manifestPath)
			if err != nil {
				return err
			}
			r, err := manifest.NewRouter(m, nil)
			if err != nil {
				return err
			}

			renderRoutes(colorWriter(cmd.OutOrStdout(), color), r.Routes())

			return nil
		},
	}
	routesCmd.Flags().StringP("manifest", "m", "apispec.yaml", "manifest file (yaml, toml or json)")
	routesCmd.Flags().Bool("color", true, "color methods when the terminal supports it")

	rootCmd.AddCommand(generateCmd, routesCmd, versionCmd)

	return rootCmd
}

type generateOptions struct {
	manifest string
	output   string
	format   string
	validate bool
	verbose  bool
	logType  HandlerType
}

func generate(ctx context.Context, out, errOut io.Writer, opts generateOptions) error {
	logger, err := newLogger(errOut, opts.logType, opts.verbose)
	if err != nil {
		return err
	}

	format, err := outputFormat(opts.format, opts.output)
	if err != nil {
		return err
	}

	m, err := manifest.Load(opts.manifest)
	if err != nil {
		return err
	}

	doc, err := manifest.Build(ctx, m, logger)
	if err != nil {
		return err
	}

	if opts.validate {
		if err = doc.Validate(ctx); err != nil {
			return err
		}
		logger.Debug("document is valid")
	}

	body, err := render(doc, format)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = out.Write(body)
		return err
	}

	if err = os.WriteFile(opts.output, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.output, err)
	}
	logger.Info("wrote OpenAPI document", "path", opts.output, "paths", len(doc.Paths()), "etag", spec.ETag(body))

	return nil
}

func newLogger(w io.Writer, t HandlerType, verbose bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	switch t {
	case TextHandler, "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case JSONHandler:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLogFormat, t)
	}
}

func outputFormat(format, output string) (string, error) {
	if format == "" {
		switch filepath.Ext(output) {
		case ".yaml", ".yml":
			return "yaml", nil
		default:
			return "json", nil
		}
	}

	switch format {
	case "json", "yaml":
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOutputFormat, format)
	}
}

func render(doc *spec.Document, format string) ([]byte, error) {
	if format == "yaml" {
		return doc.YAML()
	}

	body, err := doc.JSON()
	if err != nil {
		return nil, err
	}

	return append(body, '\n'), nil
}

func version() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "dev"
}
