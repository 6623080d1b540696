// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/fmtgen/fmtgen/internal/artifact"
	"github.com/fmtgen/fmtgen/internal/catalog"
	"github.com/fmtgen/fmtgen/internal/compiler"
	"github.com/fmtgen/fmtgen/internal/issue"
	"github.com/fmtgen/fmtgen/pkg/types"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want types.ExitCode
	}{
		{name: "nil", err: nil, want: types.ExitSuccess},
		{name: "catalog", err: &catalog.CatalogError{Err: catalog.ErrInvalidFormat}, want: types.ExitCatalogError},
		{name: "wrapped catalog", err: issue.WrapWithContext(&catalog.CatalogError{}, "compile", "x.cue"), want: types.ExitCatalogError},
		{name: "emission", err: &artifact.EmissionError{Mode: artifact.ModeTable, Path: "x.c", Err: fs.ErrPermission}, want: types.ExitEmissionError},
		{name: "explicit", err: &ExitError{Code: 7}, want: 7},
		{name: "other", err: errors.New("boom"), want: types.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{name: "missing catalog", err: &catalog.CatalogError{Source: "a.cue", Err: fmt.Errorf("read: %w", fs.ErrNotExist)}, want: issue.CatalogNotFoundId},
		{name: "parse", err: &catalog.CatalogError{Source: "a.cue", Err: errors.New("expected '}'")}, want: issue.CatalogParseErrorId},
		{name: "duplicate", err: &catalog.CatalogError{Err: &catalog.DuplicateFormatError{}}, want: issue.DuplicateFormatId},
		{name: "invalid", err: &catalog.CatalogError{Err: catalog.ErrInvalidFormat}, want: issue.InvalidFormatId},
		{name: "unknown", err: &catalog.CatalogError{Err: catalog.ErrUnknownFormat}, want: issue.UnknownIdentifierId},
		{name: "no inputs", err: &catalog.CatalogError{Err: compiler.ErrNoInputs}, want: issue.InvalidPatternId},
		{name: "emission", err: &artifact.EmissionError{Err: errors.New("disk full")}, want: issue.EmissionFailedId},
		{name: "permission", err: &artifact.EmissionError{Err: fs.ErrPermission}, want: issue.PermissionDeniedId},
		{name: "format not found", err: ErrFormatNotFound, want: issue.FormatNotFoundId},
		{name: "explicit issue", err: &issue.ActionableError{Operation: "load", Issue: issue.ConfigLoadFailedId}, want: issue.ConfigLoadFailedId},
		{name: "unclassified", err: errors.New("boom"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := classifyError(tt.err); got != tt.want {
				t.Errorf("classifyError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestActionable(t *testing.T) {
	t.Parallel()

	cause := &catalog.CatalogError{Err: &catalog.DuplicateFormatError{Duplicates: []catalog.Duplicate{{Name: "R8_UNORM"}}}}
	err := actionable(cause, "compile format catalog", "a.cue, b.cue")

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("actionable() = %T, want *issue.ActionableError", err)
	}
	if ae.Issue != issue.DuplicateFormatId || !ae.HasSuggestions() {
		t.Errorf("ActionableError = %+v, want the duplicate issue with suggestions", ae)
	}
	if !errors.Is(err, catalog.ErrDuplicateFormat) {
		t.Error("actionable() lost the cause")
	}
	if again := actionable(err, "other", ""); again != err {
		t.Error("actionable() rewrapped an ActionableError")
	}
}

func TestVerboseErrorRendersIssue(t *testing.T) {
	t.Parallel()

	_, path := writeCatalog(t)
	res := runCLI(t, "--verbose", "generate", path, path+".missing.cue")
	if exitCodeFor(res.err) != types.ExitCatalogError {
		t.Fatalf("exit code = %d, want %d", exitCodeFor(res.err), types.ExitCatalogError)
	}
	if !strings.Contains(res.stderr, "Error chain:") {
		t.Errorf("verbose stderr has no error chain:\n%s", res.stderr)
	}
}
