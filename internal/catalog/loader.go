// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/fmtgen/fmtgen/pkg/cueutil"
	"github.com/fmtgen/fmtgen/pkg/format"
)

//go:embed catalog_schema.cue
var catalogSchema string

// Loader reads catalog sources from disk.
type Loader struct {
	// Logger receives per-file debug output. Nil disables logging.
	Logger *log.Logger
	// MaxFileSize overrides the per-file size limit when positive.
	MaxFileSize int64
}

// Load reads every path, merges the entries and returns the catalog.
// Duplicate names across all paths are reported together in one error.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Catalog, error) {
	var all []*format.Descriptor
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		descs, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, descs...)
	}

	cat, err := New(all...)
	if err != nil {
		return nil, err
	}
	l.debug("catalog assembled", "sources", len(paths), "formats", cat.Len())
	return cat, nil
}

// LoadFile reads and validates a single catalog source. The returned
// descriptors are not yet linked to their siblings; use Load or New.
func (l *Loader) LoadFile(path string) ([]*format.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CatalogError{Source: path, Err: fmt.Errorf("failed to read catalog: %w", err)}
	}
	descs, err := l.Parse(path, data)
	if err != nil {
		return nil, err
	}
	l.debug("loaded catalog", "path", path, "formats", len(descs))
	return descs, nil
}

// Parse validates catalog bytes whose syntax is derived from the path
// extension.
func (l *Loader) Parse(path string, data []byte) ([]*format.Descriptor, error) {
	syntax, err := cueutil.SyntaxFromPath(path)
	if err != nil {
		return nil, &CatalogError{Source: path, Err: err}
	}

	result, err := cueutil.ParseAndDecodeString[catalogFile](catalogSchema, data, "#Catalog", l.options(path, syntax)...)
	if err != nil {
		return nil, &CatalogError{Source: path, Err: err}
	}

	descs := make([]*format.Descriptor, 0, len(result.Value.Formats))
	for i := range result.Value.Formats {
		d, err := result.Value.Formats[i].descriptor(path)
		if err != nil {
			return nil, err
		}
		descs = append(descs, d)
	}
	return descs, nil
}

func (l *Loader) options(path string, syntax cueutil.Syntax) []cueutil.Option {
	opts := []cueutil.Option{cueutil.WithFilename(path), cueutil.WithSyntax(syntax)}
	if l.MaxFileSize > 0 {
		opts = append(opts, cueutil.WithMaxFileSize(l.MaxFileSize))
	}
	return opts
}

func (l *Loader) debug(msg string, keyvals ...any) {
	if l.Logger != nil {
		l.Logger.Debug(msg, keyvals...)
	}
}
