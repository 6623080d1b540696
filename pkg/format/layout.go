// SPDX-License-Identifier: MPL-2.0

package format

import (
	"errors"
	"fmt"
)

const (
	// LayoutPlain is an uncompressed, one-texel-per-block layout.
	LayoutPlain Layout = "plain"
	// LayoutSubsampled is a packed chroma-subsampled layout (e.g. YUYV).
	LayoutSubsampled Layout = "subsampled"
	// LayoutS3TC is the S3 texture compression (DXTn) family.
	LayoutS3TC Layout = "s3tc"
	// LayoutRGTC is the red/green texture compression family.
	LayoutRGTC Layout = "rgtc"
	// LayoutLATC is the luminance/alpha texture compression family.
	LayoutLATC Layout = "latc"
	// LayoutETC is the Ericsson texture compression family.
	LayoutETC Layout = "etc"
	// LayoutBPTC is the block partition texture compression family.
	LayoutBPTC Layout = "bptc"
	// LayoutASTC is the adaptive scalable texture compression family.
	LayoutASTC Layout = "astc"
	// LayoutATC is the AMD texture compression family.
	LayoutATC Layout = "atc"
	// LayoutFXT1 is the 3dfx texture compression family.
	LayoutFXT1 Layout = "fxt1"
	// LayoutPlanar2 is a two-plane YUV layout.
	LayoutPlanar2 Layout = "planar2"
	// LayoutPlanar3 is a three-plane YUV layout.
	LayoutPlanar3 Layout = "planar3"
	// LayoutOther covers encodings that fit none of the families above.
	LayoutOther Layout = "other"

	// ColorspaceRGB is linear RGB.
	ColorspaceRGB Colorspace = "RGB"
	// ColorspaceSRGB is gamma-encoded RGB.
	ColorspaceSRGB Colorspace = "SRGB"
	// ColorspaceZS is depth-stencil.
	ColorspaceZS Colorspace = "ZS"
	// ColorspaceYUV is luma/chroma.
	ColorspaceYUV Colorspace = "YUV"

	// CoverageAvailable marks a format for which accessor routines exist.
	CoverageAvailable Coverage = "available"
	// CoverageUnavailable marks a format with no direct accessor coverage.
	// Every dispatch slot of such a format stays empty.
	CoverageUnavailable Coverage = "unavailable"
)

var (
	// ErrInvalidLayout is the sentinel error wrapped by InvalidLayoutError.
	ErrInvalidLayout = errors.New("invalid layout")
	// ErrInvalidColorspace is the sentinel error wrapped by InvalidColorspaceError.
	ErrInvalidColorspace = errors.New("invalid colorspace")
	// ErrInvalidCoverage is the sentinel error wrapped by InvalidCoverageError.
	ErrInvalidCoverage = errors.New("invalid coverage")

	layouts = []Layout{
		LayoutPlain, LayoutSubsampled, LayoutS3TC, LayoutRGTC, LayoutLATC,
		LayoutETC, LayoutBPTC, LayoutASTC, LayoutATC, LayoutFXT1,
		LayoutPlanar2, LayoutPlanar3, LayoutOther,
	}
)

type (
	// Layout names the block layout family of a format.
	Layout string

	// InvalidLayoutError is returned when a Layout value is not recognized.
	InvalidLayoutError struct {
		Value Layout
	}

	// Colorspace is the semantic grouping of a format's channels.
	Colorspace string

	// InvalidColorspaceError is returned when a Colorspace value is not recognized.
	InvalidColorspaceError struct {
		Value Colorspace
	}

	// Coverage is the accessor capability flag attached to every descriptor
	// at load time.
	Coverage string

	// InvalidCoverageError is returned when a Coverage value is not recognized.
	InvalidCoverageError struct {
		Value Coverage
	}
)

// Layouts returns every known layout in declaration order.
func Layouts() []Layout {
	out := make([]Layout, len(layouts))
	copy(out, layouts)
	return out
}

// String returns the catalog spelling of the layout.
func (l Layout) String() string { return string(l) }

// IsValid reports whether l is a known layout.
func (l Layout) IsValid() (bool, []error) {
	for _, known := range layouts {
		if l == known {
			return true, nil
		}
	}
	return false, []error{&InvalidLayoutError{Value: l}}
}

// IsCompressed reports whether l is a block-compressed family.
func (l Layout) IsCompressed() bool {
	switch l {
	case LayoutS3TC, LayoutRGTC, LayoutLATC, LayoutETC, LayoutBPTC,
		LayoutASTC, LayoutATC, LayoutFXT1:
		return true
	default:
		return false
	}
}

// IsYUV reports whether l is a chroma-subsampled or multi-plane layout.
func (l Layout) IsYUV() bool {
	return l == LayoutSubsampled || l == LayoutPlanar2 || l == LayoutPlanar3
}

// DefaultCoverage returns the coverage a catalog entry of this layout gets
// when it does not set one explicitly.
func (l Layout) DefaultCoverage() Coverage {
	switch l {
	case LayoutSubsampled, LayoutPlanar2, LayoutPlanar3, LayoutASTC, LayoutATC, LayoutETC:
		return CoverageUnavailable
	default:
		return CoverageAvailable
	}
}

// Error implements the error interface.
func (e *InvalidLayoutError) Error() string {
	return fmt.Sprintf("invalid layout %q", e.Value)
}

// Unwrap returns ErrInvalidLayout for errors.Is() compatibility.
func (e *InvalidLayoutError) Unwrap() error { return ErrInvalidLayout }

// String returns the catalog spelling of the colorspace.
func (c Colorspace) String() string { return string(c) }

// IsValid reports whether c is a known colorspace.
func (c Colorspace) IsValid() (bool, []error) {
	switch c {
	case ColorspaceRGB, ColorspaceSRGB, ColorspaceZS, ColorspaceYUV:
		return true, nil
	default:
		return false, []error{&InvalidColorspaceError{Value: c}}
	}
}

// ChannelNames returns the per-swizzle-position semantic names used for
// channels of this colorspace. Positions beyond the returned slice carry no
// name.
func (c Colorspace) ChannelNames() []string {
	switch c {
	case ColorspaceRGB, ColorspaceSRGB:
		return []string{"r", "g", "b", "a"}
	case ColorspaceZS:
		return []string{"z", "s"}
	case ColorspaceYUV:
		return []string{"y", "u", "v"}
	default:
		return nil
	}
}

// Error implements the error interface.
func (e *InvalidColorspaceError) Error() string {
	return fmt.Sprintf("invalid colorspace %q (must be RGB, SRGB, ZS or YUV)", e.Value)
}

// Unwrap returns ErrInvalidColorspace for errors.Is() compatibility.
func (e *InvalidColorspaceError) Unwrap() error { return ErrInvalidColorspace }

// String returns the catalog spelling of the coverage flag.
func (c Coverage) String() string { return string(c) }

// IsValid reports whether c is a known coverage flag.
func (c Coverage) IsValid() (bool, []error) {
	switch c {
	case CoverageAvailable, CoverageUnavailable:
		return true, nil
	default:
		return false, []error{&InvalidCoverageError{Value: c}}
	}
}

// Error implements the error interface.
func (e *InvalidCoverageError) Error() string {
	return fmt.Sprintf("invalid coverage %q (must be available or unavailable)", e.Value)
}

// Unwrap returns ErrInvalidCoverage for errors.Is() compatibility.
func (e *InvalidCoverageError) Unwrap() error { return ErrInvalidCoverage }
