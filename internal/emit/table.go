// SPDX-License-Identifier: MPL-2.0

package emit

import (
	"fmt"
	"strings"

	"github.com/fmtgen/fmtgen/internal/access"
	"github.com/fmtgen/fmtgen/internal/table"
	"github.com/fmtgen/fmtgen/pkg/format"
)

// swizzleComments are the per-position names printed next to swizzles.
var swizzleComments = map[format.Colorspace][]string{
	format.ColorspaceRGB:  {"r", "g", "b", "a"},
	format.ColorspaceSRGB: {"sr", "sg", "sb", "a"},
	format.ColorspaceZS:   {"z", "s"},
	format.ColorspaceYUV:  {"y", "u", "v"},
}

// RenderTable renders the table source artifact.
func (c *C) RenderTable(t *table.Table) string {
	var sb strings.Builder

	c.writeBanner(&sb, t)
	for _, inc := range c.opts.Includes {
		fmt.Fprintf(&sb, "#include \"%s\"\n", inc)
	}
	sb.WriteString("\n")

	ids := t.PresentIDs()
	p := c.opts.SymbolPrefix

	fmt.Fprintf(&sb, "static const struct %sdescription\n", p)
	fmt.Fprintf(&sb, "%sdescriptions[%s] = {\n", p, c.opts.CountName)
	for _, id := range ids {
		c.writeDescription(&sb, t.Entry(id))
	}
	sb.WriteString("};\n\n")
	c.writeTableGetter(&sb, "")

	fmt.Fprintf(&sb, "static const struct %spack_description\n", p)
	fmt.Fprintf(&sb, "%spack_descriptions[%s] = {\n", p, c.opts.CountName)
	for _, id := range ids {
		e := t.Entry(id)
		c.writeSlots(&sb, e.Descriptor, e.Slots.Pack.Fields())
		if e.Descriptor.HasAccess() {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("};\n\n")
	c.writeTableGetter(&sb, "pack_")

	fmt.Fprintf(&sb, "static const struct %sunpack_description\n", p)
	fmt.Fprintf(&sb, "%sunpack_descriptions[%s] = {\n", p, c.opts.CountName)
	for _, id := range ids {
		e := t.Entry(id)
		c.writeSlots(&sb, e.Descriptor, e.Slots.Unpack.Fields())
	}
	sb.WriteString("};\n\n")
	c.writeTableGetter(&sb, "unpack_")

	fmt.Fprintf(&sb, "static const %sfetch_rgba_func_ptr %sfetch_rgba_table[%s] = {\n", p, p, c.opts.CountName)
	for _, id := range ids {
		e := t.Entry(id)
		if r, ok := t.FetchRoutineFor(id); ok {
			fmt.Fprintf(&sb, "  [%s] = &%s,\n", c.ident(e.Descriptor.Name), r.Symbol)
		} else {
			fmt.Fprintf(&sb, "  [%s] = NULL,\n", c.ident(e.Descriptor.Name))
		}
	}
	sb.WriteString("};\n\n")
	c.writeFunctionGetter(&sb, "fetch_rgba")

	return sb.String()
}

func (c *C) writeDescription(sb *strings.Builder, e table.Entry) {
	d := e.Descriptor
	cp := c.constPrefix()
	ident := c.ident(d.Name)

	fmt.Fprintf(sb, "   [%s] = {\n", ident)
	fmt.Fprintf(sb, "      .format = %s,\n", ident)
	fmt.Fprintf(sb, "      .name = \"%s\",\n", ident)
	fmt.Fprintf(sb, "      .short_name = \"%s\",\n", d.ShortName())
	fmt.Fprintf(sb, "      .block = {%d, %d, %d, %d},\t/* block */\n", d.Block.Width, d.Block.Height, d.Block.Depth, d.Block.Bits)
	fmt.Fprintf(sb, "      .layout = %sLAYOUT_%s,\n", cp, strings.ToUpper(string(d.Layout)))
	fmt.Fprintf(sb, "      .nr_channels = %d,\t/* nr_channels */\n", e.Class.Channels)
	fmt.Fprintf(sb, "      .is_array = %s,\t/* is_array */\n", cBool(e.Class.IsArray))
	fmt.Fprintf(sb, "      .is_bitmask = %s,\t/* is_bitmask */\n", cBool(e.Class.IsBitmask))
	fmt.Fprintf(sb, "      .is_mixed = %s,\t/* is_mixed */\n", cBool(e.Class.IsMixed))
	fmt.Fprintf(sb, "      .is_unorm = %s,\t/* is_unorm */\n", cBool(e.Class.IsUnorm))
	fmt.Fprintf(sb, "      .is_snorm = %s,\t/* is_snorm */\n", cBool(e.Class.IsSnorm))

	c.writeByteOrder(sb, d, e.Class.Channels, c.writeChannels)
	c.writeByteOrder(sb, d, e.Class.Channels, writeSwizzles)

	fmt.Fprintf(sb, "      .colorspace = %sCOLORSPACE_%s,\n", cp, d.Colorspace)
	switch {
	case d.SRGBEquivalent != "":
		fmt.Fprintf(sb, "      .srgb_equivalent = %s,\t/* srgb_equivalent */\n", c.ident(d.SRGBEquivalent))
	case d.LinearEquivalent != "":
		fmt.Fprintf(sb, "      .linear_equivalent = %s,\t/* linear_equivalent */\n", c.ident(d.LinearEquivalent))
	default:
		fmt.Fprintf(sb, "      .srgb_equivalent = %s,\t/* srgb_equivalent */\n", c.ident(table.NoneName))
	}
	sb.WriteString("   },\n\n")
}

// writeByteOrder writes one channel or swizzle block, guarded by
// UTIL_ARCH_BIG_ENDIAN when the big-endian layout differs. Single-channel
// formats always use the little-endian layout.
func (c *C) writeByteOrder(sb *strings.Builder, d *format.Descriptor, channels int,
	write func(*strings.Builder, format.Colorspace, [4]format.Channel, [4]format.Swizzle),
) {
	if channels <= 1 || !d.EndianDiffers() {
		write(sb, d.Colorspace, d.Channels, d.Swizzles)
		return
	}
	sb.WriteString("#if UTIL_ARCH_BIG_ENDIAN\n")
	write(sb, d.Colorspace, d.BEChannels, d.BESwizzles)
	sb.WriteString("#else\n")
	write(sb, d.Colorspace, d.Channels, d.Swizzles)
	sb.WriteString("#endif\n")
}

func (c *C) writeChannels(sb *strings.Builder, _ format.Colorspace, channels [4]format.Channel, _ [4]format.Swizzle) {
	cp := c.constPrefix()
	sb.WriteString("      .channel = {\n")
	for i, ch := range channels {
		sep := ","
		if i == len(channels)-1 {
			sep = ""
		}
		if ch.IsEmpty() {
			fmt.Fprintf(sb, "         {0, 0, 0, 0, 0}%s\n", sep)
			continue
		}
		fmt.Fprintf(sb, "         {%sTYPE_%s, %s, %s, %d, %d}%s\t/* %c = %s */\n",
			cp, strings.ToUpper(ch.Type.String()), cBool(ch.Normalized), cBool(ch.Pure),
			ch.Size, ch.Shift, sep, "xyzw"[i], ch.Name)
	}
	sb.WriteString("      },\n")
}

func writeSwizzles(sb *strings.Builder, cs format.Colorspace, _ [4]format.Channel, swizzles [4]format.Swizzle) {
	names := swizzleComments[cs]
	sb.WriteString("      .swizzle = {\n")
	for i, s := range swizzles {
		sep := ","
		if i == len(swizzles)-1 {
			sep = ""
		}
		comment := "ignored"
		if i < len(names) {
			comment = names[i]
		}
		fmt.Fprintf(sb, "         PIPE_SWIZZLE_%s%s\t/* %s */\n", swizzleConst(s), sep, comment)
	}
	sb.WriteString("      },\n")
}

// writeSlots writes one dispatch record. Formats without accessor coverage
// get a zero initializer.
func (c *C) writeSlots(sb *strings.Builder, d *format.Descriptor, fields []access.Field) {
	ident := c.ident(d.Name)
	if !d.HasAccess() {
		fmt.Fprintf(sb, "   [%s] = { 0 },\n", ident)
		return
	}
	fmt.Fprintf(sb, "   [%s] = {\n", ident)
	for _, f := range fields {
		fmt.Fprintf(sb, "      .%s = &%s,\n", f.Name, f.Routine.Symbol)
	}
	sb.WriteString("   },\n")
}

func (c *C) writeTableGetter(sb *strings.Builder, kind string) {
	p := c.opts.SymbolPrefix
	fmt.Fprintf(sb, "ATTRIBUTE_RETURNS_NONNULL const struct %s%sdescription *\n", p, kind)
	fmt.Fprintf(sb, "%s(%s format)\n", c.tableGetterName(kind), c.opts.EnumType)
	sb.WriteString("{\n")
	fmt.Fprintf(sb, "   assert(format < %s);\n", c.opts.CountName)
	fmt.Fprintf(sb, "   return &%s%sdescriptions[format];\n", p, kind)
	sb.WriteString("}\n\n")
}

func (c *C) writeFunctionGetter(sb *strings.Builder, fn string) {
	p := c.opts.SymbolPrefix
	fmt.Fprintf(sb, "%s%s_func_ptr\n", p, fn)
	fmt.Fprintf(sb, "%s%s_func(%s format)\n", p, fn, c.opts.EnumType)
	sb.WriteString("{\n")
	fmt.Fprintf(sb, "   assert(format < %s);\n", c.opts.CountName)
	fmt.Fprintf(sb, "   return %s%s_table[format];\n", p, fn)
	sb.WriteString("}\n\n")
}

// tableGetterName returns the getter of a description table. The unpack
// getter carries a _generic suffix so consumers can wrap it.
func (c *C) tableGetterName(kind string) string {
	name := c.opts.SymbolPrefix + kind + "description"
	if kind == "unpack_" {
		name += "_generic"
	}
	return name
}

func swizzleConst(s format.Swizzle) string {
	switch s {
	case format.SwizzleNone:
		return "NONE"
	default:
		return s.String()
	}
}

func cBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
