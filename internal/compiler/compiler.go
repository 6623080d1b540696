// SPDX-License-Identifier: MPL-2.0

// Package compiler runs the full pipeline: expand catalog arguments, load and
// validate the catalog, build the identifier registry and descriptor table,
// and render every artifact into memory for publication.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/fmtgen/fmtgen/internal/access"
	"github.com/fmtgen/fmtgen/internal/artifact"
	"github.com/fmtgen/fmtgen/internal/catalog"
	"github.com/fmtgen/fmtgen/internal/emit"
	"github.com/fmtgen/fmtgen/internal/table"
)

// ErrNoInputs is returned when no catalog file was given or matched.
var ErrNoInputs = errors.New("no catalog inputs")

type (
	// Options configures a Compiler.
	Options struct {
		// Emit configures the C backend. Emit.SymbolPrefix also prefixes
		// accessor routine symbols.
		Emit emit.Options
		// Logger receives progress output. Nil uses a discarding logger.
		Logger *log.Logger
	}

	// Request is one compilation.
	Request struct {
		// Catalogs are catalog paths or doublestar patterns.
		Catalogs []string
		// EnumPath optionally names an identifier enum file. When empty the
		// registry is derived from the catalog.
		EnumPath string
	}

	// Result is a successful compilation. Nothing is published until
	// Publish is called.
	Result struct {
		Inputs  []string
		Catalog *catalog.Catalog
		Table   *table.Table
		Staged  *artifact.Staged
	}

	// Compiler runs compilations. It is safe to reuse but not for
	// concurrent Compile calls.
	Compiler struct {
		loader   *catalog.Loader
		resolver *access.Resolver
		backend  *emit.C
		logger   *log.Logger
	}
)

// New creates a Compiler.
func New(opts Options) *Compiler {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	backend := emit.NewC(opts.Emit)
	return &Compiler{
		loader:   &catalog.Loader{Logger: logger},
		resolver: access.NewResolver(backend.Options().SymbolPrefix),
		backend:  backend,
		logger:   logger,
	}
}

// Loader returns the catalog loader used by the compiler.
func (c *Compiler) Loader() *catalog.Loader { return c.loader }

// Compile loads, builds and renders. On any error nothing has been written.
func (c *Compiler) Compile(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	inputs, err := ExpandInputs(req.Catalogs)
	if err != nil {
		return nil, err
	}

	cat, err := c.loader.Load(ctx, inputs...)
	if err != nil {
		return nil, err
	}

	reg, err := c.registry(cat, req.EnumPath)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tbl, err := table.Build(cat, reg, c.resolver)
	if err != nil {
		return nil, err
	}

	staged := artifact.Stage(c.backend.Render(tbl))

	c.logger.Info("compiled format catalog",
		"inputs", len(inputs), "formats", cat.Len(), "identifiers", reg.Len(),
		"elapsed", time.Since(start).Round(time.Millisecond))

	return &Result{Inputs: inputs, Catalog: cat, Table: tbl, Staged: staged}, nil
}

func (c *Compiler) registry(cat *catalog.Catalog, enumPath string) (*table.Registry, error) {
	if enumPath == "" {
		return table.DeriveRegistry(cat), nil
	}
	names, err := c.loader.LoadEnum(enumPath)
	if err != nil {
		return nil, err
	}
	return table.NewRegistry(names)
}

// Publish writes the selected artifacts.
func (r *Result) Publish(stdout io.Writer, targets ...artifact.Target) error {
	return r.Staged.Publish(stdout, targets...)
}

// ExpandInputs resolves catalog arguments. An argument naming an existing
// file is taken literally, even if it contains glob meta characters; other
// arguments with meta characters are expanded with doublestar.
//
// Glob matches are de-duplicated against each other and against the literal
// arguments. A literal path given more than once is kept every time, so its
// formats are loaded twice and reported as duplicates. The result is sorted.
func ExpandInputs(args []string) ([]string, error) {
	var literal, matched []string
	for _, arg := range args {
		if !isPattern(arg) || isFile(arg) {
			literal = append(literal, filepath.Clean(arg))
			continue
		}
		if !doublestar.ValidatePattern(arg) {
			return nil, &catalog.CatalogError{Source: arg, Err: fmt.Errorf("%w: invalid glob pattern", ErrNoInputs)}
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, &catalog.CatalogError{Source: arg, Err: err}
		}
		if len(matches) == 0 {
			return nil, &catalog.CatalogError{Source: arg, Err: fmt.Errorf("%w: pattern matched no files", ErrNoInputs)}
		}
		matched = append(matched, matches...)
	}

	slices.Sort(matched)
	matched = slices.Compact(matched)
	matched = slices.DeleteFunc(matched, func(m string) bool { return slices.Contains(literal, m) })

	out := append(literal, matched...)
	if len(out) == 0 {
		return nil, &catalog.CatalogError{Err: ErrNoInputs}
	}
	slices.Sort(out)
	return out, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isPattern(arg string) bool { return strings.ContainsAny(arg, "*?[{") }
