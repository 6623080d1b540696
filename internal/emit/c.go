// SPDX-License-Identifier: MPL-2.0

// Package emit serializes a descriptor table into C source artifacts.
//
// The C backend produces three artifacts, each written to its own sink:
// the table source (descriptor, pack, unpack and fetch tables plus their
// getters), the declaration header (getter and accessor prototypes) and the
// byte-order alias header. A nil sink discards its artifact. Output depends
// only on the table contents, never on catalog file order.
package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/fmtgen/fmtgen/internal/access"
	"github.com/fmtgen/fmtgen/internal/table"
)

const (
	// DefaultIdentifierPrefix prefixes every enum identifier.
	DefaultIdentifierPrefix = "PIPE_FORMAT_"
	// DefaultCountName is the enum constant bounding the identifier range.
	DefaultCountName = "PIPE_FORMAT_COUNT"
	// DefaultEnumType is the C type of a format identifier.
	DefaultEnumType = "enum pipe_format"

	generatorName = "fmtgen"
)

var (
	// DefaultIncludes are the table source includes used unless configured.
	DefaultIncludes = []string{
		"util/format/u_format.h",
		"u_format_bptc.h",
		"u_format_fxt1.h",
		"u_format_s3tc.h",
		"u_format_rgtc.h",
		"u_format_latc.h",
		"u_format_etc.h",
	}

	// DefaultHeaderIncludes are the declaration header includes used unless
	// configured.
	DefaultHeaderIncludes = []string{"util/format/u_format.h"}
)

type (
	// Options configures the C backend. Zero fields take their defaults.
	Options struct {
		IdentifierPrefix string
		CountName        string
		EnumType         string
		// SymbolPrefix prefixes the table, getter and struct names. Routine
		// symbols come from the table's resolved slots.
		SymbolPrefix   string
		Includes       []string
		HeaderIncludes []string
		// Copyright is printed verbatim after the banner when non-empty.
		Copyright string
	}

	// Sinks receives the three artifacts. A nil sink discards its artifact.
	Sinks struct {
		Table   io.Writer
		Header  io.Writer
		Aliases io.Writer
	}

	// Artifacts holds rendered artifact bytes.
	Artifacts struct {
		Table   []byte
		Header  []byte
		Aliases []byte
	}

	// C is the C source backend.
	C struct {
		opts Options
	}
)

// NewC returns a C backend with defaults applied to opts.
func NewC(opts Options) *C {
	if opts.IdentifierPrefix == "" {
		opts.IdentifierPrefix = DefaultIdentifierPrefix
	}
	if opts.CountName == "" {
		opts.CountName = DefaultCountName
	}
	if opts.EnumType == "" {
		opts.EnumType = DefaultEnumType
	}
	if opts.SymbolPrefix == "" {
		opts.SymbolPrefix = access.DefaultSymbolPrefix
	}
	if opts.Includes == nil {
		opts.Includes = DefaultIncludes
	}
	if opts.HeaderIncludes == nil {
		opts.HeaderIncludes = DefaultHeaderIncludes
	}
	return &C{opts: opts}
}

// Options returns the effective options.
func (c *C) Options() Options { return c.opts }

// Render produces all three artifacts in memory.
func (c *C) Render(t *table.Table) Artifacts {
	return Artifacts{
		Table:   []byte(c.RenderTable(t)),
		Header:  []byte(c.RenderHeader(t)),
		Aliases: []byte(c.RenderAliases(t)),
	}
}

// Emit renders every artifact and then writes each one to its sink.
// Nothing is written unless rendering completed.
func (c *C) Emit(t *table.Table, sinks Sinks) error {
	a := c.Render(t)
	for _, out := range []struct {
		name string
		w    io.Writer
		data []byte
	}{
		{"table source", sinks.Table, a.Table},
		{"declaration header", sinks.Header, a.Header},
		{"alias header", sinks.Aliases, a.Aliases},
	} {
		if out.w == nil {
			continue
		}
		if _, err := out.w.Write(out.data); err != nil {
			return fmt.Errorf("failed to write %s: %w", out.name, err)
		}
	}
	return nil
}

// ident returns the enum identifier of a canonical format name.
func (c *C) ident(name string) string { return c.opts.IdentifierPrefix + name }

// constPrefix is the upper-case prefix of generated enum constants such as
// UTIL_FORMAT_LAYOUT_PLAIN.
func (c *C) constPrefix() string { return strings.ToUpper(c.opts.SymbolPrefix) }

// writeBanner writes the autogenerated notice and the optional copyright.
func (c *C) writeBanner(sb *strings.Builder, t *table.Table) {
	sources := t.Catalog().SourceNames()
	if len(sources) == 0 {
		fmt.Fprintf(sb, "/* This file is autogenerated by %s. Do not edit directly. */\n", generatorName)
	} else {
		fmt.Fprintf(sb, "/* This file is autogenerated by %s from %s. Do not edit directly. */\n",
			generatorName, strings.Join(sources, ", "))
	}
	sb.WriteString("\n")
	if copyright := strings.TrimSpace(c.opts.Copyright); copyright != "" {
		sb.WriteString(copyright)
		sb.WriteString("\n\n")
	}
}

func writeExternOpen(sb *strings.Builder) {
	sb.WriteString("#ifdef __cplusplus\n")
	sb.WriteString("extern \"C\" {\n")
	sb.WriteString("#endif\n")
}

func writeExternClose(sb *strings.Builder) {
	sb.WriteString("#ifdef __cplusplus\n")
	sb.WriteString("} /* extern \"C\" */\n")
	sb.WriteString("#endif\n")
}
