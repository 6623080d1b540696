// SPDX-License-Identifier: MPL-2.0

package table

import (
	"slices"

	"github.com/fmtgen/fmtgen/internal/catalog"
)

// NoneName is the reserved name of identifier 0 in a derived registry.
const NoneName = "NONE"

type (
	// ID is a dense format identifier.
	ID int

	// Registry is the ordered list of format identifier names. The index of a
	// name is its identifier.
	Registry struct {
		names []string
		index map[string]ID
	}
)

// NewRegistry builds a registry from an explicit ordered list of names.
func NewRegistry(names []string) (*Registry, error) {
	r := &Registry{names: slices.Clone(names), index: make(map[string]ID, len(names))}
	for i, n := range r.names {
		if _, dup := r.index[n]; dup {
			return nil, &catalog.CatalogError{
				Format: n,
				Err:    &catalog.DuplicateFormatError{Duplicates: []catalog.Duplicate{{Name: n}}},
			}
		}
		r.index[n] = ID(i)
	}
	return r, nil
}

// DeriveRegistry builds the default registry: NONE followed by every catalog
// name in lexical order. NONE keeps identifier 0 even when the catalog
// describes it.
func DeriveRegistry(cat *catalog.Catalog) *Registry {
	names := make([]string, 0, cat.Len()+1)
	names = append(names, NoneName)
	for _, n := range cat.Names() {
		if n != NoneName {
			names = append(names, n)
		}
	}

	r := &Registry{names: names, index: make(map[string]ID, len(names))}
	for i, n := range names {
		r.index[n] = ID(i)
	}
	return r
}

// Len returns the number of identifiers.
func (r *Registry) Len() int { return len(r.names) }

// Name returns the name of id.
func (r *Registry) Name(id ID) string {
	if id < 0 || int(id) >= len(r.names) {
		panic(&RangeViolation{ID: id, Count: len(r.names)})
	}
	return r.names[id]
}

// Lookup maps a name to its identifier.
func (r *Registry) Lookup(name string) (ID, bool) {
	id, ok := r.index[name]
	return id, ok
}

// Names returns the names in identifier order.
func (r *Registry) Names() []string { return slices.Clone(r.names) }
