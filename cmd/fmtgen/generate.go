// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fmtgen/fmtgen/internal/artifact"
	"github.com/fmtgen/fmtgen/internal/compiler"
	"github.com/fmtgen/fmtgen/internal/config"
	"github.com/fmtgen/fmtgen/internal/watch"
)

// errOutDirWithoutAll is returned when --out-dir is given without --all.
var errOutDirWithoutAll = errors.New("--out-dir requires --all")

// generateFlagValues holds the flags of the generate command.
type generateFlagValues struct {
	header   bool
	enums    bool
	all      bool
	output   string
	outDir   string
	enumPath string
	watch    bool
}

func newGenerateCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &generateFlagValues{}

	cmd := &cobra.Command{
		Use:   "generate [flags] CATALOG...",
		Short: "Generate the C format table, header or alias header",
		Long: `Compile one or more format catalogs into C artifacts.

Without a mode switch the descriptor table source is produced. --header
selects the declaration header and --enums the byte-order alias header.
--all writes the three artifacts into --out-dir using the file names from
the configuration.

Catalog arguments may be doublestar patterns such as 'formats/**/*.cue'.
Nothing is written unless every catalog loads and every artifact renders.`,
		Example: `  fmtgen generate formats.cue > u_format_table.c
  fmtgen generate --header -o u_format_pack.h formats.cue
  fmtgen generate --enum u_formats.cue --all --out-dir gen 'formats/*.yaml'
  fmtgen generate --watch --all --out-dir gen formats.cue`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, app, rootFlags, flags, args)
		},
	}

	cmd.Flags().BoolVar(&flags.header, "header", false, "emit the routine declaration header")
	cmd.Flags().BoolVar(&flags.enums, "enums", false, "emit the byte-order alias header")
	cmd.Flags().BoolVar(&flags.all, "all", false, "emit all three artifacts into --out-dir")
	cmd.Flags().StringVarP(&flags.output, "output", "o", artifact.StdoutPath, "output file ('-' for stdout)")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", ".", "output directory for --all")
	cmd.Flags().StringVar(&flags.enumPath, "enum", "", "format identifier enum file (default: derived from the catalog)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "regenerate whenever a catalog file changes")

	cmd.MarkFlagsMutuallyExclusive("header", "enums", "all")
	cmd.MarkFlagsMutuallyExclusive("output", "all")
	_ = cmd.MarkFlagFilename("output")
	_ = cmd.MarkFlagFilename("enum", "cue", "json", "yaml", "yml", "toml")
	_ = cmd.MarkFlagDirname("out-dir")

	return cmd
}

// mode returns the artifact selected by the mode switches.
func (f *generateFlagValues) mode() artifact.Mode {
	switch {
	case f.header:
		return artifact.ModeHeader
	case f.enums:
		return artifact.ModeAliases
	default:
		return artifact.ModeTable
	}
}

// targets returns the publication targets for one run.
func (f *generateFlagValues) targets(out config.OutputConfig) []artifact.Target {
	if !f.all {
		return []artifact.Target{{Mode: f.mode(), Path: f.output}}
	}
	return []artifact.Target{
		{Mode: artifact.ModeTable, Path: filepath.Join(f.outDir, out.Table)},
		{Mode: artifact.ModeHeader, Path: filepath.Join(f.outDir, out.Header)},
		{Mode: artifact.ModeAliases, Path: filepath.Join(f.outDir, out.Aliases)},
	}
}

func runGenerate(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *generateFlagValues, args []string) error {
	if cmd.Flags().Changed("out-dir") && !flags.all {
		return reportError(cmd, app.stderr, errOutDirWithoutAll, rootFlags.verbose)
	}

	cfg, logger, err := app.setup(cmd, rootFlags)
	if err != nil {
		return err
	}

	g := &generator{
		compiler: compiler.New(compiler.Options{Emit: cfg.EmitOptions(), Logger: logger}),
		request:  compiler.Request{Catalogs: args, EnumPath: flags.enumPath},
		targets:  flags.targets(cfg.Output),
		app:      app,
		logger:   logger,
	}

	if !flags.watch {
		return reportError(cmd, app.stderr, g.run(cmd.Context()), rootFlags.verbose)
	}
	return runGenerateWatch(cmd, app, rootFlags, cfg, g)
}

// generator runs one compilation and publishes its artifacts.
type generator struct {
	compiler *compiler.Compiler
	request  compiler.Request
	targets  []artifact.Target
	app      *App
	logger   *log.Logger
}

func (g *generator) run(ctx context.Context) error {
	res, err := g.compiler.Compile(ctx, g.request)
	if err != nil {
		return actionable(err, "compile format catalog", strings.Join(g.request.Catalogs, ", "))
	}

	if err := res.Publish(g.app.stdout, g.targets...); err != nil {
		return actionable(err, "write artifacts", targetPaths(g.targets))
	}

	for _, t := range g.targets {
		if !t.IsStdout() {
			g.logger.Debug("wrote artifact", "mode", t.Mode, "path", t.Path)
		}
	}
	return nil
}

// runGenerateWatch compiles once, then recompiles on every catalog change
// until the command context is canceled.
func runGenerateWatch(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, cfg *config.Config, g *generator) error {
	patterns, err := watch.PatternsFor(".", g.watchedPaths())
	if err != nil {
		return reportError(cmd, app.stderr, err, rootFlags.verbose)
	}

	if runErr := g.run(cmd.Context()); runErr != nil {
		// The user may fix the catalog and save again.
		fmt.Fprintf(app.stderr, "%s %s\n", WarningStyle.Render("!"), formatErrorForDisplay(runErr, rootFlags.verbose))
	}

	w, err := watch.New(watch.Config{
		Patterns: patterns,
		Debounce: cfg.Watch.Debounce(),
		Logger:   g.logger,
		Stdout:   app.stderr,
		OnChange: func(ctx context.Context, changed []string) error {
			g.logger.Info("regenerating", "changed", len(changed))
			return g.run(ctx)
		},
	})
	if err != nil {
		return reportError(cmd, app.stderr, fmt.Errorf("failed to start watcher: %w", err), rootFlags.verbose)
	}

	g.logger.Info("watching for changes (Ctrl+C to stop)", "patterns", strings.Join(patterns, " "))
	if err := w.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return reportError(cmd, app.stderr, err, rootFlags.verbose)
	}
	return nil
}

// watchedPaths returns the catalog arguments plus the enum file.
func (g *generator) watchedPaths() []string {
	paths := append([]string(nil), g.request.Catalogs...)
	if g.request.EnumPath != "" {
		paths = append(paths, g.request.EnumPath)
	}
	return paths
}

func targetPaths(targets []artifact.Target) string {
	paths := make([]string, 0, len(targets))
	for _, t := range targets {
		if t.IsStdout() {
			paths = append(paths, "<stdout>")
			continue
		}
		paths = append(paths, t.Path)
	}
	return strings.Join(paths, ", ")
}
