// SPDX-License-Identifier: MPL-2.0

// Package classify derives the predicates that describe how a format's
// channels are laid out and interpreted. Classification is a pure function of
// a descriptor; nothing here is stored in the catalog.
package classify

import (
	"strings"

	"github.com/fmtgen/fmtgen/pkg/format"
)

// Classification holds the derived predicates of one format.
type Classification struct {
	// Channels is the number of channel slots with a nonzero size.
	Channels int

	IsArray      bool
	IsBitmask    bool
	IsMixed      bool
	IsCompressed bool
	IsUnorm      bool
	IsSnorm      bool

	IsPureColor    bool
	IsPureUnsigned bool
	IsPureSigned   bool

	HasDepth   bool
	HasStencil bool
}

// Classify computes the classification of d.
func Classify(d *format.Descriptor) Classification {
	c := Classification{
		Channels:     channelCount(d),
		IsCompressed: !hasTyped(d),
	}

	plain := d.Layout == format.LayoutPlain
	c.IsArray = plain && isArray(d)
	c.IsMixed = plain && isMixed(d)
	c.IsBitmask = plain && isBitmask(d)

	if c.IsCompressed {
		c.IsUnorm = !strings.Contains(d.Name, "FLOAT") && !strings.Contains(d.Name, "SNORM")
		c.IsSnorm = strings.Contains(d.Name, "SNORM")
	} else {
		c.IsUnorm = allTyped(d, format.TypeUnsigned, true)
		c.IsSnorm = allTyped(d, format.TypeSigned, true)
	}

	if plain && d.Colorspace != format.ColorspaceZS {
		c.IsPureColor = hasTyped(d) && allPure(d)
		if c.IsPureColor {
			switch firstTyped(d).Type {
			case format.TypeUnsigned:
				c.IsPureUnsigned = true
			case format.TypeSigned:
				c.IsPureSigned = true
			}
		}
	}

	if d.Colorspace == format.ColorspaceZS {
		c.HasDepth = hasNamed(d, "z")
		c.HasStencil = hasNamed(d, "s")
	}

	return c
}

// IsPureInteger reports whether the format is a pure unsigned or pure signed
// color format.
func (c Classification) IsPureInteger() bool { return c.IsPureUnsigned || c.IsPureSigned }

// IsDepthStencil reports whether the format has a depth or stencil channel.
func (c Classification) IsDepthStencil() bool { return c.HasDepth || c.HasStencil }

func channelCount(d *format.Descriptor) int {
	n := 0
	for _, ch := range d.Channels {
		if !ch.IsEmpty() {
			n++
		}
	}
	return n
}

func hasTyped(d *format.Descriptor) bool {
	for _, ch := range d.Channels {
		if ch.IsTyped() {
			return true
		}
	}
	return false
}

func firstTyped(d *format.Descriptor) format.Channel {
	for _, ch := range d.Channels {
		if ch.IsTyped() {
			return ch
		}
	}
	return format.Channel{}
}

// reference returns the channel array checks compare against: channel 0,
// or channel 1 when channel 0 is void, even if channel 1 is an empty slot.
func reference(d *format.Descriptor) (int, format.Channel) {
	if d.Channels[0].Type == format.TypeVoid {
		return 1, d.Channels[1]
	}
	return 0, d.Channels[0]
}

func sameKind(a, b format.Channel) bool {
	return a.Type == b.Type && a.Normalized == b.Normalized && a.Pure == b.Pure
}

func isArray(d *format.Descriptor) bool {
	_, ref := reference(d)
	if ref.IsEmpty() {
		return false
	}
	for _, ch := range d.Channels {
		if ch.IsEmpty() {
			continue
		}
		if ch.Size != ref.Size || ch.Size%8 != 0 {
			return false
		}
		if ch.IsTyped() && !sameKind(ch, ref) {
			return false
		}
	}
	return true
}

func isMixed(d *format.Descriptor) bool {
	idx, ref := reference(d)
	for _, ch := range d.Channels[idx+1:] {
		if ch.IsTyped() && !sameKind(ch, ref) {
			return true
		}
	}
	return false
}

func isBitmask(d *format.Descriptor) bool {
	switch d.Block.Bits {
	case 8, 16, 32:
	default:
		return false
	}
	for _, ch := range d.Channels {
		switch ch.Type {
		case format.TypeVoid, format.TypeUnsigned, format.TypeSigned:
		default:
			return false
		}
	}
	return true
}

func allTyped(d *format.Descriptor, t format.ChannelType, normalized bool) bool {
	seen := false
	for _, ch := range d.Channels {
		if !ch.IsTyped() {
			continue
		}
		if ch.Type != t || ch.Normalized != normalized {
			return false
		}
		seen = true
	}
	return seen
}

func allPure(d *format.Descriptor) bool {
	for _, ch := range d.Channels {
		if ch.IsTyped() && !ch.Pure {
			return false
		}
	}
	return true
}

func hasNamed(d *format.Descriptor, name string) bool {
	for _, ch := range d.Channels {
		if !ch.IsEmpty() && ch.Name == name {
			return true
		}
	}
	return false
}
