// SPDX-License-Identifier: MPL-2.0

package access

import (
	"testing"

	"github.com/fmtgen/fmtgen/internal/classify"
	"github.com/fmtgen/fmtgen/pkg/format"
)

func mkDesc(t *testing.T, name string, layout format.Layout, cs format.Colorspace, width int, specs, names []string) *format.Descriptor {
	t.Helper()
	d := &format.Descriptor{
		Name:       name,
		Layout:     layout,
		Colorspace: cs,
		Coverage:   layout.DefaultCoverage(),
		Block:      format.Block{Width: width, Height: width, Depth: 1},
	}
	for i, spec := range specs {
		c, err := format.ParseChannel(spec)
		if err != nil {
			t.Fatalf("ParseChannel(%q): %v", spec, err)
		}
		if i < len(names) {
			c.Name = names[i]
		}
		c.Shift = d.Block.Bits
		d.Block.Bits += c.Size
		d.Channels[i] = c
	}
	return d
}

func resolve(d *format.Descriptor) Slots {
	return NewResolver("").Resolve(d, classify.Classify(d))
}

func fieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestResolveRGBA8Unorm(t *testing.T) {
	t.Parallel()

	d := mkDesc(t, "R8G8B8A8_UNORM", format.LayoutPlain, format.ColorspaceRGB, 1,
		[]string{"UN8", "UN8", "UN8", "UN8"}, []string{"r", "g", "b", "a"})
	s := resolve(d)

	if got := s.Pack.RGBA8Unorm.Symbol; got != "util_format_r8g8b8a8_unorm_pack_rgba_8unorm" {
		t.Errorf("Pack.RGBA8Unorm = %q", got)
	}
	if got := s.Unpack.RGBA.Symbol; got != "util_format_r8g8b8a8_unorm_unpack_rgba_float" {
		t.Errorf("Unpack.RGBA = %q", got)
	}
	if got := s.Fetch.Symbol; got != "util_format_r8g8b8a8_unorm_fetch_rgba" {
		t.Errorf("Fetch = %q", got)
	}

	wantPack := []string{"pack_rgba_8unorm", "pack_rgba_float"}
	if got := fieldNames(s.Pack.Fields()); !equalStrings(got, wantPack) {
		t.Errorf("Pack.Fields() = %v, want %v", got, wantPack)
	}
	wantUnpack := []string{"unpack_rgba_8unorm", "unpack_rgba"}
	if got := fieldNames(s.Unpack.Fields()); !equalStrings(got, wantUnpack) {
		t.Errorf("Unpack.Fields() = %v, want %v", got, wantUnpack)
	}
}

func TestResolveDepthStencil(t *testing.T) {
	t.Parallel()

	d := mkDesc(t, "Z24_UNORM_S8_UINT", format.LayoutPlain, format.ColorspaceZS, 1,
		[]string{"UN24", "UP8"}, []string{"z", "s"})
	s := resolve(d)

	if !s.Pack.RGBA8Unorm.IsZero() || !s.Pack.RGBAFloat.IsZero() {
		t.Error("depth-stencil format must not have color pack slots")
	}
	if !s.Unpack.RGBA8Unorm.IsZero() || !s.Unpack.RGBA.IsZero() || !s.Fetch.IsZero() {
		t.Error("depth-stencil format must not have color unpack or fetch slots")
	}

	wantPack := []string{"pack_z_32unorm", "pack_z_float", "pack_s_8uint"}
	if got := fieldNames(s.Pack.Fields()); !equalStrings(got, wantPack) {
		t.Errorf("Pack.Fields() = %v, want %v", got, wantPack)
	}
	wantUnpack := []string{"unpack_z_32unorm", "unpack_z_float", "unpack_s_8uint"}
	if got := fieldNames(s.Unpack.Fields()); !equalStrings(got, wantUnpack) {
		t.Errorf("Unpack.Fields() = %v, want %v", got, wantUnpack)
	}
	if got := s.Unpack.S8Uint.Symbol; got != "util_format_z24_unorm_s8_uint_unpack_s_8uint" {
		t.Errorf("Unpack.S8Uint = %q", got)
	}
}

func TestResolveUnavailableCoverage(t *testing.T) {
	t.Parallel()

	d := mkDesc(t, "NV12", format.LayoutPlanar2, format.ColorspaceYUV, 1,
		[]string{"UN8", "UN8", "UN8"}, []string{"y", "u", "v"})
	if d.Coverage != format.CoverageUnavailable {
		t.Fatalf("planar2 default coverage = %q", d.Coverage)
	}
	if s := resolve(d); !s.IsEmpty() || len(s.Routines()) != 0 {
		t.Errorf("Resolve() = %+v, want every slot empty", s)
	}

	// The same applies to an available layout explicitly marked unavailable.
	r1 := mkDesc(t, "R1_UNORM", format.LayoutPlain, format.ColorspaceRGB, 1, []string{"UN1"}, []string{"r"})
	r1.Coverage = format.CoverageUnavailable
	if s := resolve(r1); !s.IsEmpty() {
		t.Errorf("Resolve(R1_UNORM) = %+v, want every slot empty", s)
	}
}

func TestResolveCompressed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		layout     format.Layout
		wantFetch8 bool
	}{
		{name: "DXT1_RGB", layout: format.LayoutS3TC, wantFetch8: true},
		{name: "RGTC1_UNORM", layout: format.LayoutRGTC, wantFetch8: true},
		{name: "LATC1_UNORM", layout: format.LayoutLATC},
		{name: "BPTC_RGBA_UNORM", layout: format.LayoutBPTC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := mkDesc(t, tt.name, tt.layout, format.ColorspaceRGB, 4, []string{"X64"}, nil)
			s := resolve(d)

			if s.Unpack.FetchRGBA8Unorm.IsZero() == tt.wantFetch8 {
				t.Errorf("FetchRGBA8Unorm = %+v, want populated=%v", s.Unpack.FetchRGBA8Unorm, tt.wantFetch8)
			}
			if !s.Unpack.RGBA8Unorm.IsZero() || !s.Unpack.RGBA.IsZero() {
				t.Error("block formats must use the rect unpack slots")
			}
			if s.Unpack.RGBARect.Kind != KindUnpackRGBARect || s.Unpack.RGBA8UnormRect.Kind != KindUnpackRGBA8UnormRect {
				t.Errorf("rect slots = %+v", s.Unpack)
			}
			if s.Unpack.RGBARect.Symbol != "util_format_"+d.ShortName()+"_unpack_rgba_float" {
				t.Errorf("RGBARect symbol = %q", s.Unpack.RGBARect.Symbol)
			}
			if s.Fetch.IsZero() {
				t.Error("compressed color format must have a fetch routine")
			}
		})
	}
}

func TestResolvePureInteger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		spec       string
		wantUnpack string
	}{
		{name: "R32_UINT", spec: "UP32", wantUnpack: "util_format_r32_uint_unpack_unsigned"},
		{name: "R32_SINT", spec: "SP32", wantUnpack: "util_format_r32_sint_unpack_signed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := mkDesc(t, tt.name, format.LayoutPlain, format.ColorspaceRGB, 1, []string{tt.spec}, []string{"r"})
			s := resolve(d)

			if !s.Pack.RGBA8Unorm.IsZero() || !s.Pack.RGBAFloat.IsZero() || !s.Unpack.RGBA8Unorm.IsZero() {
				t.Error("pure integer formats must not have color slots")
			}
			if s.Pack.RGBAUint.IsZero() || s.Pack.RGBASint.IsZero() {
				t.Errorf("pure integer formats bind both integer pack slots, got %+v", s.Pack)
			}
			if s.Unpack.RGBA.Symbol != tt.wantUnpack {
				t.Errorf("Unpack.RGBA = %q, want %q", s.Unpack.RGBA.Symbol, tt.wantUnpack)
			}
			if s.Fetch.IsZero() {
				t.Error("pure integer formats keep the fetch routine")
			}
		})
	}
}

func TestResolveSymbolPrefix(t *testing.T) {
	t.Parallel()

	d := mkDesc(t, "R8_UNORM", format.LayoutPlain, format.ColorspaceRGB, 1, []string{"UN8"}, []string{"r"})
	s := NewResolver("vk_fmt_").Resolve(d, classify.Classify(d))
	if s.Fetch.Symbol != "vk_fmt_r8_unorm_fetch_rgba" {
		t.Errorf("Fetch = %q", s.Fetch.Symbol)
	}
	if len(s.Routines()) != 5 {
		t.Errorf("Routines() = %d entries, want 5", len(s.Routines()))
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	for k := KindPackRGBA8Unorm; k <= KindFetchRGBA8Unorm; k++ {
		if k.String() == "unknown" {
			t.Errorf("Kind(%d).String() = unknown", k)
		}
	}
	if Kind(0).String() != "unknown" {
		t.Error("zero Kind must be unknown")
	}
}
