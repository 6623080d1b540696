// SPDX-License-Identifier: MPL-2.0

package format

import (
	"errors"
	"fmt"
)

const (
	// SwizzleX selects channel 0.
	SwizzleX Swizzle = iota
	// SwizzleY selects channel 1.
	SwizzleY
	// SwizzleZ selects channel 2.
	SwizzleZ
	// SwizzleW selects channel 3.
	SwizzleW
	// Swizzle0 is the constant zero.
	Swizzle0
	// Swizzle1 is the constant one.
	Swizzle1
	// SwizzleNone means the output position is ignored.
	SwizzleNone
)

// ErrInvalidSwizzle is the sentinel error wrapped by InvalidSwizzleError.
var ErrInvalidSwizzle = errors.New("invalid swizzle")

type (
	// Swizzle maps one output position to a source channel or a constant.
	Swizzle uint8

	// InvalidSwizzleError is returned when catalog swizzle notation is not
	// one of X, Y, Z, W, 0, 1 or _.
	InvalidSwizzleError struct {
		Spec string
	}
)

// ParseSwizzle parses catalog swizzle notation.
func ParseSwizzle(spec string) (Swizzle, error) {
	switch spec {
	case "X", "x":
		return SwizzleX, nil
	case "Y", "y":
		return SwizzleY, nil
	case "Z", "z":
		return SwizzleZ, nil
	case "W", "w":
		return SwizzleW, nil
	case "0":
		return Swizzle0, nil
	case "1":
		return Swizzle1, nil
	case "_":
		return SwizzleNone, nil
	default:
		return SwizzleNone, &InvalidSwizzleError{Spec: spec}
	}
}

// IsChannel reports whether s selects a source channel.
func (s Swizzle) IsChannel() bool { return s <= SwizzleW }

// Channel returns the source channel index selected by s. It is only
// meaningful when IsChannel is true.
func (s Swizzle) Channel() int { return int(s) }

// String returns the catalog notation of s.
func (s Swizzle) String() string {
	switch s {
	case SwizzleX:
		return "X"
	case SwizzleY:
		return "Y"
	case SwizzleZ:
		return "Z"
	case SwizzleW:
		return "W"
	case Swizzle0:
		return "0"
	case Swizzle1:
		return "1"
	case SwizzleNone:
		return "_"
	default:
		return fmt.Sprintf("Swizzle(%d)", uint8(s))
	}
}

// Error implements the error interface.
func (e *InvalidSwizzleError) Error() string {
	return fmt.Sprintf("invalid swizzle %q (must be X, Y, Z, W, 0, 1 or _)", e.Spec)
}

// Unwrap returns ErrInvalidSwizzle for errors.Is() compatibility.
func (e *InvalidSwizzleError) Unwrap() error { return ErrInvalidSwizzle }
