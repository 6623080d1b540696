// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fmtgen/fmtgen/internal/config"
)

// newConfigCommand creates the `fmtgen config` command tree.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage fmtgen configuration",
		Long: `Manage fmtgen configuration.

Configuration is read from the first of:
  - the file given with --config
  - ./fmtgen.cue
  - the user config directory (Linux: ~/.config/fmtgen/config.cue)

Every key can be overridden from the environment with the FMTGEN_ prefix,
for example FMTGEN_IDENTIFIER_PREFIX=MY_FORMAT_.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := app.loadConfig(cmd.Context(), rootFlags)
			if err != nil {
				return reportError(cmd, app.stderr, err, rootFlags.verbose)
			}
			showConfig(app.stdout, cfg, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := app.loadConfig(cmd.Context(), rootFlags)
			if err != nil {
				return reportError(cmd, app.stderr, err, rootFlags.verbose)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := config.ConfigFilePath()
			if err != nil {
				return reportError(cmd, app.stderr, err, rootFlags.verbose)
			}
			fmt.Fprintf(app.stdout, "Config file: %s\n", cfgPath)
			fmt.Fprintf(app.stdout, "Local config file: %s\n", config.LocalConfigFile)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig()
			if err != nil {
				return reportError(cmd, app.stderr, fmt.Errorf("failed to create config: %w", err), rootFlags.verbose)
			}
			fmt.Fprintf(app.stdout, "%s Default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Config, path string) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	none := SubtitleStyle.Render("(none)")

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("identifier"))
	fmt.Fprintf(w, "  prefix: %s\n", valueStyle.Render(cfg.Identifier.Prefix.String()))
	fmt.Fprintf(w, "  count: %s\n", valueStyle.Render(cfg.Identifier.Count.String()))
	fmt.Fprintf(w, "  enum_type: %s\n", valueStyle.Render(cfg.Identifier.EnumType))

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("symbol"))
	fmt.Fprintf(w, "  prefix: %s\n", valueStyle.Render(cfg.Symbol.Prefix.String()))

	writeList := func(key string, values []string) {
		fmt.Fprintf(w, "%s:\n", keyStyle.Render(key))
		if len(values) == 0 {
			fmt.Fprintf(w, "  %s\n", none)
			return
		}
		for _, v := range values {
			fmt.Fprintf(w, "  - %s\n", valueStyle.Render(v))
		}
	}
	writeList("includes", cfg.Includes)
	writeList("header_includes", cfg.HeaderIncludes)

	fmt.Fprintf(w, "%s: ", keyStyle.Render("copyright"))
	if cfg.Copyright == "" {
		fmt.Fprintln(w, none)
	} else {
		fmt.Fprintln(w, valueStyle.Render(strings.SplitN(cfg.Copyright, "\n", 2)[0]))
	}

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("output"))
	fmt.Fprintf(w, "  table: %s\n", valueStyle.Render(cfg.Output.Table))
	fmt.Fprintf(w, "  header: %s\n", valueStyle.Render(cfg.Output.Header))
	fmt.Fprintf(w, "  aliases: %s\n", valueStyle.Render(cfg.Output.Aliases))

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("watch"))
	fmt.Fprintf(w, "  debounce_ms: %s\n", valueStyle.Render(fmt.Sprint(cfg.Watch.DebounceMS)))

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprint(cfg.UI.Verbose)))
}
