// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/fmtgen/fmtgen/internal/table"
)

// renderMarkdown is the markdown renderer used by describe, swappable in tests.
var renderMarkdown = glamour.Render

func newDescribeCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	var (
		enumPath string
		raw      bool
	)

	cmd := &cobra.Command{
		Use:   "describe [flags] FORMAT CATALOG...",
		Short: "Describe one format: descriptor, classification and routines",
		Long: `Print a report on one format: its identifier, block geometry, channel
and swizzle layout for both byte orders, gamma links, aliases, the derived
classification and every populated pack, unpack and fetch slot.`,
		Example: `  fmtgen describe R8G8B8A8_UNORM formats.cue
  fmtgen describe --raw Z24_UNORM_S8_UINT 'formats/*.yaml' > z24s8.md`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.ToUpper(args[0])
			res, cfg, err := compileForInspection(cmd, app, rootFlags, enumPath, args[1:])
			if err != nil {
				return err
			}

			id, ok := res.Table.Lookup(name)
			if !ok || !res.Table.Entry(id).Present() {
				err := actionable(fmt.Errorf("%w: %s", ErrFormatNotFound, name), "describe format", name)
				return reportError(cmd, app.stderr, err, rootFlags.verbose)
			}

			md := describeMarkdown(id, res.Table.Entry(id))
			if raw {
				fmt.Fprint(app.stdout, md)
				return nil
			}

			out, err := renderMarkdown(md, cfg.UI.ColorScheme.String())
			if err != nil {
				return reportError(cmd, app.stderr, fmt.Errorf("render report: %w", err), rootFlags.verbose)
			}
			fmt.Fprint(app.stdout, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&enumPath, "enum", "", "format identifier enum file (default: derived from the catalog)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the markdown source instead of rendering it")

	return cmd
}

// describeMarkdown builds the markdown report for one table entry.
func describeMarkdown(id table.ID, e table.Entry) string {
	d := e.Descriptor
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", d.Name)
	sb.WriteString("| Property | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Identifier | %d |\n", id)
	switch {
	case d.Layout.IsCompressed():
		fmt.Fprintf(&sb, "| Layout | %s (block compressed) |\n", d.Layout)
	case d.Layout.IsYUV():
		fmt.Fprintf(&sb, "| Layout | %s (video) |\n", d.Layout)
	default:
		fmt.Fprintf(&sb, "| Layout | %s |\n", d.Layout)
	}
	fmt.Fprintf(&sb, "| Colorspace | %s |\n", d.Colorspace)
	fmt.Fprintf(&sb, "| Block | %dx%dx%d (%d texels), %d bits (%d bytes) |\n",
		d.Block.Width, d.Block.Height, d.Block.Depth, d.Block.Texels(), d.Block.Bits, d.Block.Bytes())
	fmt.Fprintf(&sb, "| Coverage | %s |\n", d.Coverage)
	if d.SRGBEquivalent != "" {
		fmt.Fprintf(&sb, "| sRGB equivalent | %s |\n", d.SRGBEquivalent)
	}
	if d.LinearEquivalent != "" {
		fmt.Fprintf(&sb, "| Linear equivalent | %s |\n", d.LinearEquivalent)
	}
	if d.LEAlias != "" {
		fmt.Fprintf(&sb, "| Little-endian alias | %s |\n", d.LEAlias)
	}
	if d.BEAlias != "" {
		fmt.Fprintf(&sb, "| Big-endian alias | %s |\n", d.BEAlias)
	}
	if d.Source != "" {
		fmt.Fprintf(&sb, "| Source | `%s` |\n", d.Source)
	}

	sb.WriteString("\n## Channels\n\n")
	sb.WriteString("| Slot | Little endian | Shift | Big endian | Shift | Name |\n|---|---|---|---|---|---|\n")
	for i := range d.Channels {
		le, be := d.Channels[i], d.BEChannels[i]
		fmt.Fprintf(&sb, "| %d | %s | %d | %s | %d | %s |\n",
			i, slotSpec(le.Spec(), le.IsEmpty()), le.Shift, slotSpec(be.Spec(), be.IsEmpty()), be.Shift, orDash(le.Name))
	}
	fmt.Fprintf(&sb, "\nSwizzle: `%s`", swizzleString(d.Swizzles))
	if d.EndianDiffers() {
		fmt.Fprintf(&sb, ", big endian `%s`", swizzleString(d.BESwizzles))
	}
	sb.WriteString("\n")

	sb.WriteString("\n## Classification\n\n")
	fmt.Fprintf(&sb, "- channels: %d\n", e.Class.Channels)
	for _, f := range classFlags(e.Class) {
		fmt.Fprintf(&sb, "- %s\n", f)
	}

	sb.WriteString("\n## Routines\n\n")
	routines := e.Slots.Routines()
	if len(routines) == 0 {
		sb.WriteString("No accessor routines.\n")
		return sb.String()
	}
	sb.WriteString("| Slot | Symbol |\n|---|---|\n")
	for _, f := range e.Slots.Pack.Fields() {
		fmt.Fprintf(&sb, "| %s | `%s` |\n", f.Name, f.Routine.Symbol)
	}
	for _, f := range e.Slots.Unpack.Fields() {
		fmt.Fprintf(&sb, "| %s | `%s` |\n", f.Name, f.Routine.Symbol)
	}
	if !e.Slots.Fetch.IsZero() {
		fmt.Fprintf(&sb, "| fetch_rgba | `%s` |\n", e.Slots.Fetch.Symbol)
	}
	return sb.String()
}

func slotSpec(spec string, empty bool) string {
	if empty {
		return "-"
	}
	return spec
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
