// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCatalog is matched by every error the catalog loader returns.
	ErrCatalog = errors.New("catalog error")
	// ErrDuplicateFormat is the sentinel error wrapped by DuplicateFormatError.
	ErrDuplicateFormat = errors.New("duplicate format")
	// ErrInvalidFormat is returned for a catalog entry that passes the schema
	// but violates a rule the schema cannot express.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrUnknownFormat is returned when a name refers to a format that no
	// catalog or enum source defines.
	ErrUnknownFormat = errors.New("unknown format")
)

type (
	// CatalogError is the fatal error returned when a catalog source is
	// malformed or the catalog as a whole is inconsistent. It matches both
	// ErrCatalog and its cause under errors.Is.
	CatalogError struct {
		// Source is the catalog file involved, if a single one is.
		Source string
		// Format is the offending format name, if a single one is.
		Format string
		// Err is the underlying cause.
		Err error
	}

	// Duplicate is one name defined more than once across the catalog inputs.
	Duplicate struct {
		Name    string
		Sources []string
	}

	// DuplicateFormatError lists every name defined more than once.
	DuplicateFormatError struct {
		Duplicates []Duplicate
	}
)

// Error implements the error interface.
func (e *CatalogError) Error() string {
	var sb strings.Builder
	if e.Source != "" {
		sb.WriteString(e.Source)
		sb.WriteString(": ")
	}
	if e.Format != "" {
		sb.WriteString("format ")
		sb.WriteString(e.Format)
		sb.WriteString(": ")
	}
	if e.Err != nil {
		sb.WriteString(e.Err.Error())
	} else {
		sb.WriteString(ErrCatalog.Error())
	}
	return sb.String()
}

// Unwrap returns ErrCatalog and the cause.
func (e *CatalogError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCatalog}
	}
	return []error{ErrCatalog, e.Err}
}

// Error implements the error interface.
func (e *DuplicateFormatError) Error() string {
	parts := make([]string, 0, len(e.Duplicates))
	for _, d := range e.Duplicates {
		if len(d.Sources) > 0 {
			parts = append(parts, fmt.Sprintf("%s (%s)", d.Name, strings.Join(d.Sources, ", ")))
		} else {
			parts = append(parts, d.Name)
		}
	}
	return "duplicate format entries " + strings.Join(parts, ", ")
}

// Unwrap returns ErrDuplicateFormat for errors.Is() compatibility.
func (e *DuplicateFormatError) Unwrap() error { return ErrDuplicateFormat }

// invalidf builds a CatalogError for a rule violation in one entry.
func invalidf(source, name, format string, args ...any) *CatalogError {
	return &CatalogError{
		Source: source,
		Format: name,
		Err:    fmt.Errorf("%w: %s", ErrInvalidFormat, fmt.Sprintf(format, args...)),
	}
}
