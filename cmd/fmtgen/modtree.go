// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/fmtgen/fmtgen/internal/artifact"
	"github.com/fmtgen/fmtgen/internal/modtree"
)

func newModtreeCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	var (
		prefix string
		output string
		header string
	)

	cmd := &cobra.Command{
		Use:   "modtree [flags] FILE|DIR...",
		Short: "Generate a Rust crate root from flat module file names",
		Long: `Turn flat, underscore-delimited module files such as nvh_hw_ampere_cls.rs
into a crate root: one 'mod' line per file followed by nested 'pub mod'
blocks that re-export each file under its path (nvh::hw::ampere::cls).

Directory arguments contribute every *.rs file starting with the prefix.`,
		Example: `  fmtgen modtree src/
  fmtgen modtree --prefix nvh -o src/lib.rs src/nvh_*.rs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := moduleFiles(prefix, args)
			if err != nil {
				return reportError(cmd, app.stderr, err, rootFlags.verbose)
			}

			tree, err := modtree.Build(prefix, files)
			if err != nil {
				return reportError(cmd, app.stderr, actionable(err, "build module tree", prefix), rootFlags.verbose)
			}

			if err := artifact.WriteFile(app.stdout, output, tree.Render(header)); err != nil {
				return reportError(cmd, app.stderr, actionable(err, "write module tree", output), rootFlags.verbose)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", modtree.DefaultPrefix, "module file name prefix")
	cmd.Flags().StringVarP(&output, "output", "o", artifact.StdoutPath, "output file ('-' for stdout)")
	cmd.Flags().StringVar(&header, "header", "", "text emitted as a comment block at the top")

	return cmd
}

// moduleFiles expands directory arguments into their <prefix>_*.rs files.
// File arguments are kept as given so invalid names are reported.
func moduleFiles(prefix string, args []string) ([]string, error) {
	if prefix == "" {
		prefix = modtree.DefaultPrefix
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("module source %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		matches, err := doublestar.Glob(os.DirFS(arg), prefix+"_*.rs")
		if err != nil {
			return nil, fmt.Errorf("module source %s: %w", arg, err)
		}
		for _, m := range matches {
			files = append(files, filepath.Join(arg, m))
		}
	}
	slices.Sort(files)
	return files, nil
}
