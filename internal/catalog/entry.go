// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"fmt"

	"github.com/fmtgen/fmtgen/pkg/format"
)

const slotCount = 4

type (
	// catalogFile is the decoded form of one #Catalog document.
	catalogFile struct {
		Formats []formatEntry `json:"formats"`
	}

	// formatEntry is the decoded form of one #Format.
	formatEntry struct {
		Name             string     `json:"name"`
		Layout           string     `json:"layout"`
		Colorspace       string     `json:"colorspace"`
		Block            blockEntry `json:"block"`
		Channels         []string   `json:"channels"`
		Swizzles         []string   `json:"swizzles"`
		BEChannels       []string   `json:"be_channels,omitempty"`
		BESwizzles       []string   `json:"be_swizzles,omitempty"`
		Coverage         string     `json:"coverage,omitempty"`
		LinearEquivalent string     `json:"linear_equivalent,omitempty"`
		LEAlias          string     `json:"le_alias,omitempty"`
		BEAlias          string     `json:"be_alias,omitempty"`
	}

	blockEntry struct {
		Width  int `json:"width"`
		Height int `json:"height"`
		Depth  int `json:"depth"`
	}
)

// descriptor converts a schema-valid entry into a descriptor, deriving
// channel names, shifts and the block bit size.
func (e *formatEntry) descriptor(source string) (*format.Descriptor, error) {
	d := &format.Descriptor{
		Name:             e.Name,
		Layout:           format.Layout(e.Layout),
		Colorspace:       format.Colorspace(e.Colorspace),
		LinearEquivalent: e.LinearEquivalent,
		LEAlias:          e.LEAlias,
		BEAlias:          e.BEAlias,
		Source:           source,
	}

	if ok, errs := d.Layout.IsValid(); !ok {
		return nil, &CatalogError{Source: source, Format: e.Name, Err: errs[0]}
	}
	if ok, errs := d.Colorspace.IsValid(); !ok {
		return nil, &CatalogError{Source: source, Format: e.Name, Err: errs[0]}
	}

	d.Coverage = d.Layout.DefaultCoverage()
	if e.Coverage != "" {
		d.Coverage = format.Coverage(e.Coverage)
		if ok, errs := d.Coverage.IsValid(); !ok {
			return nil, &CatalogError{Source: source, Format: e.Name, Err: errs[0]}
		}
	}

	d.Block = format.Block{Width: max(e.Block.Width, 1), Height: max(e.Block.Height, 1), Depth: max(e.Block.Depth, 1)}

	var err error
	if d.Channels, err = parseChannels(e.Channels); err != nil {
		return nil, &CatalogError{Source: source, Format: e.Name, Err: err}
	}
	if d.Swizzles, err = parseSwizzles(e.Swizzles); err != nil {
		return nil, &CatalogError{Source: source, Format: e.Name, Err: err}
	}

	d.BEChannels = d.Channels
	if len(e.BEChannels) > 0 {
		if d.BEChannels, err = parseChannels(e.BEChannels); err != nil {
			return nil, &CatalogError{Source: source, Format: e.Name, Err: err}
		}
	}
	d.BESwizzles = d.Swizzles
	if len(e.BESwizzles) > 0 {
		if d.BESwizzles, err = parseSwizzles(e.BESwizzles); err != nil {
			return nil, &CatalogError{Source: source, Format: e.Name, Err: err}
		}
	}

	for _, order := range []struct {
		channels *[4]format.Channel
		swizzles [4]format.Swizzle
		label    string
	}{
		{&d.Channels, d.Swizzles, "swizzles"},
		{&d.BEChannels, d.BESwizzles, "be_swizzles"},
	} {
		if err := nameChannels(d.Layout, d.Colorspace, order.channels, order.swizzles); err != nil {
			return nil, invalidf(source, e.Name, "%s: %v", order.label, err)
		}
	}

	leBits := assignShifts(&d.Channels, false)
	beBits := assignShifts(&d.BEChannels, true)
	if leBits != beBits {
		return nil, invalidf(source, e.Name, "be_channels total %d bits, channels total %d bits", beBits, leBits)
	}
	d.Block.Bits = leBits

	if err := checkPureUniform(d); err != nil {
		return nil, invalidf(source, e.Name, "%v", err)
	}

	return d, nil
}

func parseChannels(specs []string) ([4]format.Channel, error) {
	var out [4]format.Channel
	if len(specs) > slotCount {
		return out, fmt.Errorf("%w: %d channels given, at most %d allowed", ErrInvalidFormat, len(specs), slotCount)
	}
	for i, spec := range specs {
		c, err := format.ParseChannel(spec)
		if err != nil {
			return out, err
		}
		out[i] = c
	}
	return out, nil
}

func parseSwizzles(specs []string) ([4]format.Swizzle, error) {
	out := [4]format.Swizzle{format.SwizzleNone, format.SwizzleNone, format.SwizzleNone, format.SwizzleNone}
	if len(specs) != slotCount {
		return out, fmt.Errorf("%w: %d swizzles given, exactly %d required", ErrInvalidFormat, len(specs), slotCount)
	}
	for i, spec := range specs {
		s, err := format.ParseSwizzle(spec)
		if err != nil {
			return out, err
		}
		out[i] = s
	}
	return out, nil
}

// nameChannels sets each channel's name to the concatenation of the
// colorspace names of the swizzle positions that read it.
//
// Only plain layouts must back every read with a sized channel. Compressed,
// subsampled and planar blocks carry one opaque channel while their swizzles
// still describe the decoded texel; reads of the empty slots are ignored.
func nameChannels(layout format.Layout, cs format.Colorspace, channels *[4]format.Channel, swizzles [4]format.Swizzle) error {
	names := cs.ChannelNames()
	for i := range channels {
		channels[i].Name = ""
	}
	for pos, s := range swizzles {
		if !s.IsChannel() {
			continue
		}
		ch := &channels[s.Channel()]
		if ch.IsEmpty() {
			if layout != format.LayoutPlain {
				continue
			}
			return fmt.Errorf("position %d reads empty channel %d", pos, s.Channel())
		}
		if pos >= len(names) {
			if cs == format.ColorspaceZS {
				return fmt.Errorf("depth-stencil position %d must not read a channel", pos)
			}
			continue
		}
		ch.Name += names[pos]
	}
	return nil
}

// assignShifts lays channels out from bit 0 upwards, in slot order for the
// little-endian layout and in reverse slot order for the big-endian one. It
// returns the total bit size.
func assignShifts(channels *[4]format.Channel, reverse bool) int {
	shift := 0
	for i := range channels {
		idx := i
		if reverse {
			idx = len(channels) - 1 - i
		}
		channels[idx].Shift = shift
		shift += channels[idx].Size
	}
	return shift
}

// checkPureUniform rejects plain color formats that mix pure and non-pure
// channels, or pure channels of different signedness.
func checkPureUniform(d *format.Descriptor) error {
	if d.Layout != format.LayoutPlain || d.Colorspace == format.ColorspaceZS {
		return nil
	}
	var ref *format.Channel
	for i := range d.Channels {
		c := &d.Channels[i]
		if !c.IsTyped() {
			continue
		}
		if ref == nil {
			ref = c
			continue
		}
		if c.Pure != ref.Pure {
			return fmt.Errorf("channel %d mixes pure and non-pure integer channels", i)
		}
		if c.Pure && c.Type != ref.Type {
			return fmt.Errorf("channel %d mixes pure integer signedness", i)
		}
	}
	return nil
}
