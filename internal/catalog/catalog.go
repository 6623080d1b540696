// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/fmtgen/fmtgen/pkg/format"
)

// Catalog is a validated, name-sorted set of format descriptors.
type Catalog struct {
	formats []*format.Descriptor
	byName  map[string]*format.Descriptor
	sources []string
}

// New assembles a catalog from already-parsed descriptors. It rejects
// duplicate names, resolves gamma/linear links and validates aliases. The
// descriptors are modified in place and must not be shared afterwards.
func New(descs ...*format.Descriptor) (*Catalog, error) {
	if err := checkDuplicates(descs); err != nil {
		return nil, err
	}

	byName := make(map[string]*format.Descriptor, len(descs))
	for _, d := range descs {
		byName[d.Name] = d
	}

	if err := linkEquivalents(descs, byName); err != nil {
		return nil, err
	}
	if err := checkAliases(descs, byName); err != nil {
		return nil, err
	}

	sorted := slices.Clone(descs)
	slices.SortFunc(sorted, func(a, b *format.Descriptor) int { return strings.Compare(a.Name, b.Name) })

	var sources []string
	for _, d := range sorted {
		if d.Source != "" && !slices.Contains(sources, d.Source) {
			sources = append(sources, d.Source)
		}
	}
	slices.Sort(sources)

	return &Catalog{formats: sorted, byName: byName, sources: sources}, nil
}

// Formats returns the descriptors sorted by name.
func (c *Catalog) Formats() []*format.Descriptor { return slices.Clone(c.formats) }

// Len returns the number of formats.
func (c *Catalog) Len() int { return len(c.formats) }

// Lookup returns the descriptor with the given canonical name.
func (c *Catalog) Lookup(name string) (*format.Descriptor, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// Names returns the canonical names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.formats))
	for i, d := range c.formats {
		names[i] = d.Name
	}
	return names
}

// Sources returns the sorted, de-duplicated paths the catalog was loaded from.
func (c *Catalog) Sources() []string { return slices.Clone(c.sources) }

// SourceNames returns the sorted base names of Sources.
func (c *Catalog) SourceNames() []string {
	names := make([]string, 0, len(c.sources))
	for _, s := range c.sources {
		names = append(names, filepath.Base(s))
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func checkDuplicates(descs []*format.Descriptor) error {
	seen := make(map[string][]string, len(descs))
	var order []string
	for _, d := range descs {
		if _, ok := seen[d.Name]; !ok {
			order = append(order, d.Name)
		}
		seen[d.Name] = append(seen[d.Name], d.Source)
	}

	var dups []Duplicate
	for _, name := range order {
		if srcs := seen[name]; len(srcs) > 1 {
			dups = append(dups, Duplicate{Name: name, Sources: compactSources(srcs)})
		}
	}
	if len(dups) == 0 {
		return nil
	}
	slices.SortFunc(dups, func(a, b Duplicate) int { return strings.Compare(a.Name, b.Name) })

	return &CatalogError{Err: &DuplicateFormatError{Duplicates: dups}}
}

func compactSources(srcs []string) []string {
	out := make([]string, 0, len(srcs))
	for _, s := range srcs {
		if s != "" {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}
