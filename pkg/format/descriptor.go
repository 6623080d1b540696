// SPDX-License-Identifier: MPL-2.0

package format

import "strings"

type (
	// Block is the footprint of the minimal encodable unit of a format.
	Block struct {
		Width  int
		Height int
		Depth  int
		// Bits is the sum of the bit sizes of the four channel slots.
		Bits int
	}

	// Descriptor is the static record of one pixel or block encoding.
	//
	// Channels and Swizzles describe the little-endian layout, BEChannels and
	// BESwizzles the big-endian one. Both pairs always have four slots; for
	// most formats the two pairs only differ in channel shifts.
	Descriptor struct {
		Name       string
		Layout     Layout
		Colorspace Colorspace
		Block      Block

		Channels   [4]Channel
		Swizzles   [4]Swizzle
		BEChannels [4]Channel
		BESwizzles [4]Swizzle

		Coverage Coverage

		// SRGBEquivalent names the gamma-encoded sibling of a linear format.
		SRGBEquivalent string
		// LinearEquivalent names the linear sibling of a gamma-encoded format.
		LinearEquivalent string

		// LEAlias and BEAlias are byte-order specific names that resolve to
		// this format only on a host of the matching native byte order.
		LEAlias string
		BEAlias string

		// Source is the catalog file the descriptor was loaded from.
		Source string
	}
)

// Bytes returns the block size rounded up to whole bytes.
func (b Block) Bytes() int { return (b.Bits + 7) / 8 }

// Texels returns the number of texels covered by one block.
func (b Block) Texels() int { return b.Width * b.Height * b.Depth }

// ShortName returns the lower-case name used to build routine symbols.
func (d *Descriptor) ShortName() string { return strings.ToLower(d.Name) }

// HasAccess reports whether accessor routines exist for this format.
func (d *Descriptor) HasAccess() bool { return d.Coverage != CoverageUnavailable }

// EndianDiffers reports whether the big-endian channel or swizzle layout
// differs from the little-endian one.
func (d *Descriptor) EndianDiffers() bool {
	return d.Channels != d.BEChannels || d.Swizzles != d.BESwizzles
}

// Equivalent returns the name of the linked gamma or linear sibling, or "".
func (d *Descriptor) Equivalent() string {
	if d.SRGBEquivalent != "" {
		return d.SRGBEquivalent
	}
	return d.LinearEquivalent
}
