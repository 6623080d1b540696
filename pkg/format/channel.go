// SPDX-License-Identifier: MPL-2.0

package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// TypeVoid marks padding or opaque (compressed) bits.
	TypeVoid ChannelType = iota
	// TypeUnsigned is an unsigned integer or unsigned normalized channel.
	TypeUnsigned
	// TypeSigned is a signed integer or signed normalized channel.
	TypeSigned
	// TypeFixed is a signed 16.16 fixed-point channel.
	TypeFixed
	// TypeFloat is an IEEE floating-point channel.
	TypeFloat
)

// MaxChannelBits is the widest channel the catalog accepts.
const MaxChannelBits = 128

// ErrInvalidChannelSpec is the sentinel error wrapped by InvalidChannelSpecError.
var ErrInvalidChannelSpec = errors.New("invalid channel spec")

type (
	// ChannelType is the numeric type of a channel.
	ChannelType uint8

	// Channel describes one scalar component of an encoded pixel.
	// A channel with Size 0 is an empty slot and carries no Name.
	Channel struct {
		Type       ChannelType
		Normalized bool
		Pure       bool
		Size       int
		Shift      int
		// Name is the concatenation of the semantic names of every swizzle
		// position reading this channel ("r", "rgb", "z", "s", ...).
		Name string
	}

	// InvalidChannelSpecError is returned when a catalog channel spec such as
	// "UN8" cannot be parsed.
	InvalidChannelSpecError struct {
		Spec   string
		Reason string
	}
)

// String returns the lower-case type name.
func (t ChannelType) String() string {
	switch t {
	case TypeVoid:
		return "void"
	case TypeUnsigned:
		return "unsigned"
	case TypeSigned:
		return "signed"
	case TypeFixed:
		return "fixed"
	case TypeFloat:
		return "float"
	default:
		return "ChannelType(" + strconv.Itoa(int(t)) + ")"
	}
}

// ParseChannel parses catalog channel notation: a type letter (X void,
// U unsigned, S signed, H fixed, F float), an optional N (normalized) or
// P (pure integer) flag, and the bit size. "UN8" is an 8-bit unsigned
// normalized channel, "SP32" a pure 32-bit signed integer, "X8" padding.
func ParseChannel(spec string) (Channel, error) {
	s := strings.TrimSpace(spec)
	if len(s) < 2 {
		return Channel{}, &InvalidChannelSpecError{Spec: spec, Reason: "too short"}
	}

	var ch Channel
	switch s[0] {
	case 'X':
		ch.Type = TypeVoid
	case 'U':
		ch.Type = TypeUnsigned
	case 'S':
		ch.Type = TypeSigned
	case 'H':
		ch.Type = TypeFixed
	case 'F':
		ch.Type = TypeFloat
	default:
		return Channel{}, &InvalidChannelSpecError{Spec: spec, Reason: fmt.Sprintf("unknown type letter %q", s[0])}
	}
	s = s[1:]

	switch s[0] {
	case 'N':
		ch.Normalized = true
		s = s[1:]
	case 'P':
		ch.Pure = true
		s = s[1:]
	}

	size, err := strconv.Atoi(s)
	if err != nil {
		return Channel{}, &InvalidChannelSpecError{Spec: spec, Reason: "bit size is not a number"}
	}
	if size <= 0 || size > MaxChannelBits {
		return Channel{}, &InvalidChannelSpecError{Spec: spec, Reason: fmt.Sprintf("bit size %d out of range 1-%d", size, MaxChannelBits)}
	}
	ch.Size = size

	if ch.Type == TypeVoid && (ch.Normalized || ch.Pure) {
		return Channel{}, &InvalidChannelSpecError{Spec: spec, Reason: "void channels cannot be normalized or pure"}
	}
	if ch.Normalized && (ch.Type == TypeFloat || ch.Type == TypeFixed) {
		return Channel{}, &InvalidChannelSpecError{Spec: spec, Reason: "only integer channels can be normalized"}
	}
	if ch.Pure && ch.Type != TypeUnsigned && ch.Type != TypeSigned {
		return Channel{}, &InvalidChannelSpecError{Spec: spec, Reason: "only integer channels can be pure"}
	}

	return ch, nil
}

// IsEmpty reports whether the channel is an unused slot.
func (c Channel) IsEmpty() bool { return c.Size == 0 }

// IsTyped reports whether the channel carries a non-void type.
func (c Channel) IsTyped() bool { return c.Type != TypeVoid }

// Spec returns the catalog notation of c, or "" for an empty slot.
func (c Channel) Spec() string {
	if c.Size == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte("XUSHF"[c.Type])
	if c.Normalized {
		sb.WriteByte('N')
	} else if c.Pure {
		sb.WriteByte('P')
	}
	sb.WriteString(strconv.Itoa(c.Size))
	return sb.String()
}

// Error implements the error interface.
func (e *InvalidChannelSpecError) Error() string {
	return fmt.Sprintf("invalid channel spec %q: %s", e.Spec, e.Reason)
}

// Unwrap returns ErrInvalidChannelSpec for errors.Is() compatibility.
func (e *InvalidChannelSpecError) Unwrap() error { return ErrInvalidChannelSpec }
