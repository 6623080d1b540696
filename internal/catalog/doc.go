// SPDX-License-Identifier: MPL-2.0

// Package catalog loads pixel-format catalogs into immutable descriptors.
//
// Catalog sources may be written in CUE, JSON, YAML or TOML. Every source is
// unified with the embedded #Catalog schema before decoding, then checked for
// the rules a schema cannot express: swizzles must read sized channels,
// depth-stencil formats may only name z and s, pure-integer formats must be
// uniform, and names must be unique across all sources.
//
// The loader derives the fields a catalog author never writes by hand:
// channel names, bit shifts for both byte orders, the block bit size, the
// accessor coverage flag and the gamma/linear sibling links.
package catalog
