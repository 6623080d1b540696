// SPDX-License-Identifier: MPL-2.0

// Package access decides, per format, which accessor routines exist and
// binds each one to its dispatch slot.
//
// The decisions here must agree with the routines the accessor-body
// generator emits: a slot bound to a routine that is never emitted becomes a
// link error in the consumer, and a routine left unbound is unreachable.
package access

import (
	"github.com/fmtgen/fmtgen/internal/classify"
	"github.com/fmtgen/fmtgen/pkg/format"
)

// DefaultSymbolPrefix prefixes every routine symbol unless configured.
const DefaultSymbolPrefix = "util_format_"

// Resolver binds accessor routines to dispatch slots.
type Resolver struct {
	// SymbolPrefix is prepended to "<short name>_<routine>".
	SymbolPrefix string
}

// NewResolver returns a resolver using prefix, or DefaultSymbolPrefix when
// prefix is empty.
func NewResolver(prefix string) *Resolver {
	if prefix == "" {
		prefix = DefaultSymbolPrefix
	}
	return &Resolver{SymbolPrefix: prefix}
}

// Resolve computes the dispatch slots of d given its classification c.
func (r *Resolver) Resolve(d *format.Descriptor, c classify.Classification) Slots {
	var s Slots
	if !d.HasAccess() {
		return s
	}

	bind := func(routine string, kind Kind) Routine {
		return Routine{Symbol: r.SymbolPrefix + d.ShortName() + "_" + routine, Kind: kind}
	}

	if d.Colorspace != format.ColorspaceZS && !c.IsPureColor {
		s.Pack.RGBA8Unorm = bind("pack_rgba_8unorm", KindPackRGBA8Unorm)
		s.Pack.RGBAFloat = bind("pack_rgba_float", KindPackRGBAFloat)

		if d.Layout == format.LayoutS3TC || d.Layout == format.LayoutRGTC {
			s.Unpack.FetchRGBA8Unorm = bind("fetch_rgba_8unorm", KindFetchRGBA8Unorm)
		}
		if d.Block.Width > 1 {
			s.Unpack.RGBA8UnormRect = bind("unpack_rgba_8unorm", KindUnpackRGBA8UnormRect)
			s.Unpack.RGBARect = bind("unpack_rgba_float", KindUnpackRGBARect)
		} else {
			s.Unpack.RGBA8Unorm = bind("unpack_rgba_8unorm", KindUnpackRGBA8Unorm)
			s.Unpack.RGBA = bind("unpack_rgba_float", KindUnpackRGBA)
		}
	}

	if c.HasDepth {
		s.Pack.Z32Unorm = bind("pack_z_32unorm", KindPackZ32Unorm)
		s.Pack.ZFloat = bind("pack_z_float", KindPackZFloat)
		s.Unpack.Z32Unorm = bind("unpack_z_32unorm", KindUnpackZ32Unorm)
		s.Unpack.ZFloat = bind("unpack_z_float", KindUnpackZFloat)
	}

	if c.HasStencil {
		s.Pack.S8Uint = bind("pack_s_8uint", KindPackS8Uint)
		s.Unpack.S8Uint = bind("unpack_s_8uint", KindUnpackS8Uint)
	}

	if c.IsPureInteger() {
		s.Pack.RGBAUint = bind("pack_unsigned", KindPackUnsigned)
		s.Pack.RGBASint = bind("pack_signed", KindPackSigned)
	}
	switch {
	case c.IsPureUnsigned:
		s.Unpack.RGBA = bind("unpack_unsigned", KindUnpackRGBA)
	case c.IsPureSigned:
		s.Unpack.RGBA = bind("unpack_signed", KindUnpackRGBA)
	}

	if d.Colorspace != format.ColorspaceZS {
		s.Fetch = bind("fetch_rgba", KindFetchRGBA)
	}

	return s
}
