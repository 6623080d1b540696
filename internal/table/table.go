// SPDX-License-Identifier: MPL-2.0

// Package table assembles the dense, identifier-indexed descriptor table and
// the pack, unpack and fetch dispatch tables that parallel it.
package table

import (
	"fmt"

	"github.com/fmtgen/fmtgen/internal/access"
	"github.com/fmtgen/fmtgen/internal/catalog"
	"github.com/fmtgen/fmtgen/internal/classify"
	"github.com/fmtgen/fmtgen/pkg/format"
)

type (
	// Entry is one row of the table. An identifier the catalog does not
	// describe holds the zero Entry.
	Entry struct {
		Descriptor *format.Descriptor
		Class      classify.Classification
		Slots      access.Slots
	}

	// Table is the immutable result of Build.
	Table struct {
		registry *Registry
		catalog  *catalog.Catalog
		entries  []Entry
	}
)

// Present reports whether the entry describes a catalog format.
func (e Entry) Present() bool { return e.Descriptor != nil }

// Build classifies and resolves every catalog format and places it at its
// registry identifier. It fails without a partial table when a catalog name
// has no identifier or two formats map to the same identifier.
func Build(cat *catalog.Catalog, reg *Registry, resolver *access.Resolver) (*Table, error) {
	if resolver == nil {
		resolver = access.NewResolver("")
	}

	entries := make([]Entry, reg.Len())
	for _, d := range cat.Formats() {
		id, ok := reg.Lookup(d.Name)
		if !ok {
			return nil, &catalog.CatalogError{
				Source: d.Source,
				Format: d.Name,
				Err:    fmt.Errorf("%w: no identifier for %s in the format enum", catalog.ErrUnknownFormat, d.Name),
			}
		}
		if entries[id].Present() {
			return nil, &catalog.CatalogError{
				Format: d.Name,
				Err: &catalog.DuplicateFormatError{Duplicates: []catalog.Duplicate{
					{Name: d.Name, Sources: []string{entries[id].Descriptor.Source, d.Source}},
				}},
			}
		}

		c := classify.Classify(d)
		entries[id] = Entry{Descriptor: d, Class: c, Slots: resolver.Resolve(d, c)}
	}

	return &Table{registry: reg, catalog: cat, entries: entries}, nil
}

// Len returns the identifier count.
func (t *Table) Len() int { return len(t.entries) }

// Registry returns the identifier registry the table was built against.
func (t *Table) Registry() *Registry { return t.registry }

// Catalog returns the catalog the table was built from.
func (t *Table) Catalog() *catalog.Catalog { return t.catalog }

// Lookup maps a format name to its identifier.
func (t *Table) Lookup(name string) (ID, bool) { return t.registry.Lookup(name) }

// Entry returns the full row for id.
func (t *Table) Entry(id ID) Entry {
	t.check(id)
	return t.entries[id]
}

// DescriptorFor returns the descriptor at id, or nil for an identifier the
// catalog does not describe.
func (t *Table) DescriptorFor(id ID) *format.Descriptor {
	t.check(id)
	return t.entries[id].Descriptor
}

// PackSlotsFor returns the pack dispatch record at id.
func (t *Table) PackSlotsFor(id ID) access.PackSlots {
	t.check(id)
	return t.entries[id].Slots.Pack
}

// UnpackSlotsFor returns the unpack dispatch record at id.
func (t *Table) UnpackSlotsFor(id ID) access.UnpackSlots {
	t.check(id)
	return t.entries[id].Slots.Unpack
}

// FetchRoutineFor returns the fetch routine at id and whether one exists.
func (t *Table) FetchRoutineFor(id ID) (access.Routine, bool) {
	t.check(id)
	r := t.entries[id].Slots.Fetch
	return r, !r.IsZero()
}

// PresentIDs returns the identifiers holding a catalog format, ascending.
func (t *Table) PresentIDs() []ID {
	ids := make([]ID, 0, t.catalog.Len())
	for i, e := range t.entries {
		if e.Present() {
			ids = append(ids, ID(i))
		}
	}
	return ids
}

func (t *Table) check(id ID) {
	if id < 0 || int(id) >= len(t.entries) {
		panic(&RangeViolation{ID: id, Count: len(t.entries)})
	}
}
