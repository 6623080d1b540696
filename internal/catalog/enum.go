// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"fmt"
	"os"

	"github.com/fmtgen/fmtgen/pkg/cueutil"
)

type enumFile struct {
	Formats []string `json:"formats"`
}

// LoadEnum reads an ordered list of format identifier names. The position of
// a name in the list is its numeric identifier.
func (l *Loader) LoadEnum(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CatalogError{Source: path, Err: fmt.Errorf("failed to read enum: %w", err)}
	}
	return l.ParseEnum(path, data)
}

// ParseEnum validates enum bytes whose syntax is derived from the path
// extension.
func (l *Loader) ParseEnum(path string, data []byte) ([]string, error) {
	syntax, err := cueutil.SyntaxFromPath(path)
	if err != nil {
		return nil, &CatalogError{Source: path, Err: err}
	}

	result, err := cueutil.ParseAndDecodeString[enumFile](catalogSchema, data, "#Enum", l.options(path, syntax)...)
	if err != nil {
		return nil, &CatalogError{Source: path, Err: err}
	}

	names := result.Value.Formats
	seen := make(map[string]bool, len(names))
	var dups []Duplicate
	for _, n := range names {
		if seen[n] {
			dups = append(dups, Duplicate{Name: n, Sources: []string{path}})
			continue
		}
		seen[n] = true
	}
	if len(dups) > 0 {
		return nil, &CatalogError{Source: path, Err: &DuplicateFormatError{Duplicates: dups}}
	}

	l.debug("loaded enum", "path", path, "identifiers", len(names))
	return names, nil
}
