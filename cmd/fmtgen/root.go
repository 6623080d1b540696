// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fmtgen/fmtgen/internal/config"
	"github.com/fmtgen/fmtgen/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "fmtgen",
		Short: "A pixel-format descriptor compiler",
		Long: TitleStyle.Render("fmtgen") + SubtitleStyle.Render(" - A pixel-format descriptor compiler") + `

fmtgen reads declarative pixel-format catalogs (CUE, YAML, JSON or TOML),
classifies every format, decides which pack, unpack and fetch routines
exist for it, and emits the C descriptor table, its declaration header
and the byte-order alias header.

` + SubtitleStyle.Render("Examples:") + `
  fmtgen generate formats.cue              Print the descriptor table source
  fmtgen generate --header formats.cue     Print the declaration header
  fmtgen generate --all --out-dir gen 'formats/**/*.yaml'
  fmtgen list formats.cue                  Tabulate the catalog
  fmtgen describe R8G8B8A8_UNORM formats.cue`,
		SilenceUsage: true,
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is ./fmtgen.cue, then the user config dir)")

	rootCmd.AddCommand(
		newGenerateCommand(app, flags),
		newListCommand(app, flags),
		newDescribeCommand(app, flags),
		newModtreeCommand(app, flags),
		newConfigCommand(app, flags),
		newCompletionCommand(),
	)

	return rootCmd
}

// Execute runs the CLI and exits with the status of the failed command.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// setup loads the configuration and builds the logger for one command run.
func (a *App) setup(cmd *cobra.Command, flags *rootFlagValues) (*config.Config, *log.Logger, error) {
	cfg, path, err := a.loadConfig(cmd.Context(), flags)
	if err != nil {
		return nil, nil, reportError(cmd, a.stderr, err, flags.verbose)
	}

	logger := a.logger(flags)
	if path != "" {
		logger.Debug("loaded configuration", "path", path)
	} else {
		logger.Debug("using default configuration")
	}
	return cfg, logger, nil
}
