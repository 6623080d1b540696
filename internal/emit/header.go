// SPDX-License-Identifier: MPL-2.0

package emit

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fmtgen/fmtgen/internal/access"
	"github.com/fmtgen/fmtgen/internal/table"
)

const (
	rowsPack   = "%s *restrict dst_row, unsigned dst_stride, const %s *restrict src_row, unsigned src_stride, unsigned width, unsigned height"
	spanUnpack = "%s *restrict dst, const uint8_t *restrict src, unsigned width"
	texelFetch = "%s *restrict dst, const uint8_t *restrict src, unsigned i, unsigned j"
)

// params returns the C parameter list of a routine kind.
func params(k access.Kind) string {
	switch k {
	case access.KindPackRGBA8Unorm, access.KindPackS8Uint:
		return fmt.Sprintf(rowsPack, "uint8_t", "uint8_t")
	case access.KindPackRGBAFloat, access.KindPackZFloat:
		return fmt.Sprintf(rowsPack, "uint8_t", "float")
	case access.KindPackZ32Unorm, access.KindPackUnsigned:
		return fmt.Sprintf(rowsPack, "uint8_t", "uint32_t")
	case access.KindPackSigned:
		return fmt.Sprintf(rowsPack, "uint8_t", "int32_t")
	case access.KindUnpackRGBA8Unorm:
		return fmt.Sprintf(spanUnpack, "uint8_t")
	case access.KindUnpackRGBA:
		return fmt.Sprintf(spanUnpack, "void")
	case access.KindUnpackRGBA8UnormRect, access.KindUnpackS8Uint:
		return fmt.Sprintf(rowsPack, "uint8_t", "uint8_t")
	case access.KindUnpackRGBARect:
		return fmt.Sprintf(rowsPack, "void", "uint8_t")
	case access.KindUnpackZ32Unorm:
		return fmt.Sprintf(rowsPack, "uint32_t", "uint8_t")
	case access.KindUnpackZFloat:
		return fmt.Sprintf(rowsPack, "float", "uint8_t")
	case access.KindFetchRGBA:
		return fmt.Sprintf(texelFetch, "void")
	case access.KindFetchRGBA8Unorm:
		return fmt.Sprintf(texelFetch, "uint8_t")
	default:
		return "void"
	}
}

// RenderHeader renders the declaration header: the four getters and every
// accessor routine the tables reference, so a routine the accessor
// generator never emitted fails at link time.
func (c *C) RenderHeader(t *table.Table) string {
	var sb strings.Builder
	p := c.opts.SymbolPrefix

	c.writeBanner(&sb, t)
	writeExternOpen(&sb)
	for _, inc := range c.opts.HeaderIncludes {
		fmt.Fprintf(&sb, "#include \"%s\"\n", inc)
	}
	sb.WriteString("\n")

	for _, kind := range []string{"", "pack_", "unpack_"} {
		fmt.Fprintf(&sb, "const struct %s%sdescription *\n", p, kind)
		fmt.Fprintf(&sb, "%s(%s format);\n\n", c.tableGetterName(kind), c.opts.EnumType)
	}
	fmt.Fprintf(&sb, "%sfetch_rgba_func_ptr\n", p)
	fmt.Fprintf(&sb, "%sfetch_rgba_func(%s format);\n\n", p, c.opts.EnumType)

	for _, r := range referencedRoutines(t) {
		sb.WriteString("void\n")
		fmt.Fprintf(&sb, "%s(%s);\n\n", r.Symbol, params(r.Kind))
	}

	writeExternClose(&sb)
	return sb.String()
}

// referencedRoutines returns every routine bound in the table, de-duplicated
// by symbol and sorted.
func referencedRoutines(t *table.Table) []access.Routine {
	seen := make(map[string]bool)
	var out []access.Routine
	for _, id := range t.PresentIDs() {
		for _, r := range t.Entry(id).Slots.Routines() {
			if seen[r.Symbol] {
				continue
			}
			seen[r.Symbol] = true
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b access.Routine) int { return strings.Compare(a.Symbol, b.Symbol) })
	return out
}

// RenderAliases renders the byte-order alias header.
func (c *C) RenderAliases(t *table.Table) string {
	var sb strings.Builder

	c.writeBanner(&sb, t)
	writeExternOpen(&sb)
	sb.WriteString("\n")

	ids := t.PresentIDs()
	sb.WriteString("#if UTIL_ARCH_LITTLE_ENDIAN\n")
	for _, id := range ids {
		if d := t.DescriptorFor(id); d.LEAlias != "" {
			fmt.Fprintf(&sb, "#define %s %s\n", c.ident(d.LEAlias), c.ident(d.Name))
		}
	}
	sb.WriteString("#elif UTIL_ARCH_BIG_ENDIAN\n")
	for _, id := range ids {
		if d := t.DescriptorFor(id); d.BEAlias != "" {
			fmt.Fprintf(&sb, "#define %s %s\n", c.ident(d.BEAlias), c.ident(d.Name))
		}
	}
	sb.WriteString("#endif\n")

	writeExternClose(&sb)
	return sb.String()
}
