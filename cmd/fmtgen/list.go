// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/fmtgen/fmtgen/internal/compiler"
)

var listHeaders = []string{"ID", "NAME", "LAYOUT", "COLORSPACE", "BLOCK", "FLAGS", "ACCESS"}

func newListCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	var (
		enumPath string
		plain    bool
	)

	cmd := &cobra.Command{
		Use:   "list [flags] CATALOG...",
		Short: "List the formats of a catalog with their classification",
		Long: `List every format defined by the catalogs, ordered by identifier.

Each row shows the identifier, layout, colorspace, block geometry
(width x height x depth / bits), the classification predicates that hold
and whether accessor routines exist.`,
		Example: `  fmtgen list formats.cue
  fmtgen list --plain 'formats/**/*.yaml' | grep compressed`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := compileForInspection(cmd, app, rootFlags, enumPath, args)
			if err != nil {
				return err
			}
			rows := listRows(res)
			if plain {
				for _, row := range rows {
					fmt.Fprintln(app.stdout, strings.Join(row, "\t"))
				}
				return nil
			}
			fmt.Fprintln(app.stdout, renderListTable(rows))
			fmt.Fprintln(app.stdout, SubtitleStyle.Render(fmt.Sprintf("%d formats, %d identifiers",
				res.Catalog.Len(), res.Table.Len())))
			return nil
		},
	}

	cmd.Flags().StringVar(&enumPath, "enum", "", "format identifier enum file (default: derived from the catalog)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print tab-separated rows without styling")

	return cmd
}

// listRows returns one row per present identifier.
func listRows(res *compiler.Result) [][]string {
	ids := res.Table.PresentIDs()
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		e := res.Table.Entry(id)
		d := e.Descriptor
		rows = append(rows, []string{
			strconv.Itoa(int(id)),
			d.Name,
			d.Layout.String(),
			d.Colorspace.String(),
			blockString(d.Block),
			strings.Join(classFlags(e.Class), ","),
			d.Coverage.String(),
		})
	}
	return rows
}

func renderListTable(rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 1 {
				return tableCellStyle.Foreground(ColorHighlight)
			}
			return tableCellStyle
		}).
		Headers(listHeaders...).
		Rows(rows...).
		String()
}
