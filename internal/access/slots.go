// SPDX-License-Identifier: MPL-2.0

package access

const (
	// KindPackRGBA8Unorm packs rows of 8-bit unorm RGBA.
	KindPackRGBA8Unorm Kind = iota + 1
	// KindPackRGBAFloat packs rows of float RGBA.
	KindPackRGBAFloat
	// KindPackZ32Unorm packs rows of 32-bit unorm depth.
	KindPackZ32Unorm
	// KindPackZFloat packs rows of float depth.
	KindPackZFloat
	// KindPackS8Uint packs rows of 8-bit stencil.
	KindPackS8Uint
	// KindPackUnsigned packs rows of 32-bit unsigned integer RGBA.
	KindPackUnsigned
	// KindPackSigned packs rows of 32-bit signed integer RGBA.
	KindPackSigned
	// KindUnpackRGBA8Unorm unpacks a span of texels to 8-bit unorm RGBA.
	KindUnpackRGBA8Unorm
	// KindUnpackRGBA8UnormRect unpacks a rectangle of blocks to 8-bit unorm RGBA.
	KindUnpackRGBA8UnormRect
	// KindUnpackRGBA unpacks a span of texels to float or integer RGBA.
	KindUnpackRGBA
	// KindUnpackRGBARect unpacks a rectangle of blocks to float RGBA.
	KindUnpackRGBARect
	// KindUnpackZ32Unorm unpacks rows of depth to 32-bit unorm.
	KindUnpackZ32Unorm
	// KindUnpackZFloat unpacks rows of depth to float.
	KindUnpackZFloat
	// KindUnpackS8Uint unpacks rows of stencil to 8-bit unsigned.
	KindUnpackS8Uint
	// KindFetchRGBA fetches one texel as float RGBA.
	KindFetchRGBA
	// KindFetchRGBA8Unorm fetches one texel of a compressed block as 8-bit unorm RGBA.
	KindFetchRGBA8Unorm
)

type (
	// Kind is the signature family of an accessor routine.
	Kind uint8

	// Routine is one accessor routine bound to a dispatch slot.
	// The zero Routine is an empty slot.
	Routine struct {
		Symbol string
		Kind   Kind
	}

	// Field is a populated dispatch slot as it appears in an emitted table.
	Field struct {
		Name    string
		Routine Routine
	}

	// PackSlots is the pack dispatch record of one format.
	PackSlots struct {
		RGBA8Unorm Routine
		RGBAFloat  Routine
		Z32Unorm   Routine
		ZFloat     Routine
		S8Uint     Routine
		RGBAUint   Routine
		RGBASint   Routine
	}

	// UnpackSlots is the unpack dispatch record of one format. Formats with
	// a block width above one use the Rect variants of the color slots.
	UnpackSlots struct {
		FetchRGBA8Unorm Routine
		RGBA8Unorm      Routine
		RGBA8UnormRect  Routine
		RGBA            Routine
		RGBARect        Routine
		Z32Unorm        Routine
		ZFloat          Routine
		S8Uint          Routine
	}

	// Slots is the complete dispatch decision for one format.
	Slots struct {
		Pack   PackSlots
		Unpack UnpackSlots
		Fetch  Routine
	}
)

// String returns the routine suffix of the kind.
func (k Kind) String() string {
	switch k {
	case KindPackRGBA8Unorm:
		return "pack_rgba_8unorm"
	case KindPackRGBAFloat:
		return "pack_rgba_float"
	case KindPackZ32Unorm:
		return "pack_z_32unorm"
	case KindPackZFloat:
		return "pack_z_float"
	case KindPackS8Uint:
		return "pack_s_8uint"
	case KindPackUnsigned:
		return "pack_unsigned"
	case KindPackSigned:
		return "pack_signed"
	case KindUnpackRGBA8Unorm:
		return "unpack_rgba_8unorm"
	case KindUnpackRGBA8UnormRect:
		return "unpack_rgba_8unorm_rect"
	case KindUnpackRGBA:
		return "unpack_rgba"
	case KindUnpackRGBARect:
		return "unpack_rgba_rect"
	case KindUnpackZ32Unorm:
		return "unpack_z_32unorm"
	case KindUnpackZFloat:
		return "unpack_z_float"
	case KindUnpackS8Uint:
		return "unpack_s_8uint"
	case KindFetchRGBA:
		return "fetch_rgba"
	case KindFetchRGBA8Unorm:
		return "fetch_rgba_8unorm"
	default:
		return "unknown"
	}
}

// IsZero reports whether the slot is empty.
func (r Routine) IsZero() bool { return r.Symbol == "" }

// Fields returns the populated pack slots in table order.
func (p PackSlots) Fields() []Field {
	return populated([]Field{
		{"pack_rgba_8unorm", p.RGBA8Unorm},
		{"pack_rgba_float", p.RGBAFloat},
		{"pack_z_32unorm", p.Z32Unorm},
		{"pack_z_float", p.ZFloat},
		{"pack_s_8uint", p.S8Uint},
		{"pack_rgba_uint", p.RGBAUint},
		{"pack_rgba_sint", p.RGBASint},
	})
}

// IsEmpty reports whether no pack slot is populated.
func (p PackSlots) IsEmpty() bool { return p == PackSlots{} }

// Fields returns the populated unpack slots in table order.
func (u UnpackSlots) Fields() []Field {
	return populated([]Field{
		{"fetch_rgba_8unorm", u.FetchRGBA8Unorm},
		{"unpack_rgba_8unorm_rect", u.RGBA8UnormRect},
		{"unpack_rgba_rect", u.RGBARect},
		{"unpack_rgba_8unorm", u.RGBA8Unorm},
		{"unpack_rgba", u.RGBA},
		{"unpack_z_32unorm", u.Z32Unorm},
		{"unpack_z_float", u.ZFloat},
		{"unpack_s_8uint", u.S8Uint},
	})
}

// IsEmpty reports whether no unpack slot is populated.
func (u UnpackSlots) IsEmpty() bool { return u == UnpackSlots{} }

// IsEmpty reports whether no pack, unpack or fetch slot is populated.
func (s Slots) IsEmpty() bool {
	return s.Pack.IsEmpty() && s.Unpack.IsEmpty() && s.Fetch.IsZero()
}

// Routines returns every populated routine of s: pack slots, then unpack
// slots, then fetch.
func (s Slots) Routines() []Routine {
	var out []Routine
	for _, f := range s.Pack.Fields() {
		out = append(out, f.Routine)
	}
	for _, f := range s.Unpack.Fields() {
		out = append(out, f.Routine)
	}
	if !s.Fetch.IsZero() {
		out = append(out, s.Fetch)
	}
	return out
}

func populated(fields []Field) []Field {
	out := fields[:0]
	for _, f := range fields {
		if !f.Routine.IsZero() {
			out = append(out, f)
		}
	}
	return out
}
