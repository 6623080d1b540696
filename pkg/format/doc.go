// SPDX-License-Identifier: MPL-2.0

// Package format defines the pixel-format data model shared by the catalog
// loader, the classification engine, the accessor resolver and the emitters.
//
// A Descriptor is an immutable record describing one pixel or block encoding:
// its layout family, colorspace, block footprint, and exactly four channel and
// four swizzle slots for each byte order. Descriptors are built by the catalog
// loader and never mutated afterwards.
//
// This package is a leaf dependency: it imports only the standard library.
package format
