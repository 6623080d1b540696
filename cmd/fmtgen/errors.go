// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fmtgen/fmtgen/internal/artifact"
	"github.com/fmtgen/fmtgen/internal/catalog"
	"github.com/fmtgen/fmtgen/internal/compiler"
	"github.com/fmtgen/fmtgen/internal/issue"
	"github.com/fmtgen/fmtgen/internal/modtree"
)

// ErrFormatNotFound is returned by describe for a name no catalog defines.
var ErrFormatNotFound = errors.New("format not found")

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// classifyError maps a failure to the issue catalog entry explaining it.
func classifyError(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		return ae.Issue
	}

	switch {
	case errors.Is(err, os.ErrPermission):
		return issue.PermissionDeniedId
	case errors.Is(err, ErrFormatNotFound):
		return issue.FormatNotFoundId
	case errors.Is(err, compiler.ErrNoInputs), errors.Is(err, modtree.ErrInvalidFileName):
		return issue.InvalidPatternId
	case errors.Is(err, catalog.ErrDuplicateFormat), errors.Is(err, modtree.ErrDuplicateModule):
		return issue.DuplicateFormatId
	case errors.Is(err, catalog.ErrUnknownFormat):
		return issue.UnknownIdentifierId
	case errors.Is(err, catalog.ErrInvalidFormat):
		return issue.InvalidFormatId
	case errors.Is(err, catalog.ErrCatalog) && errors.Is(err, os.ErrNotExist):
		return issue.CatalogNotFoundId
	case errors.Is(err, catalog.ErrCatalog):
		return issue.CatalogParseErrorId
	case errors.Is(err, artifact.ErrEmission):
		return issue.EmissionFailedId
	default:
		return 0
	}
}

// actionable attaches operation context and remediation hints to err unless
// it already carries them.
func actionable(err error, operation, resource string) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return err
	}

	ctx := issue.NewErrorContext().
		WithOperation(operation).
		WithResource(resource).
		WithIssue(classifyError(err)).
		Wrap(err)

	switch {
	case errors.Is(err, catalog.ErrDuplicateFormat):
		ctx.WithSuggestion("Remove or rename one of the duplicate entries; names are unique across all inputs")
	case errors.Is(err, catalog.ErrUnknownFormat):
		ctx.WithSuggestion("Add the format to the enum file, or omit --enum to derive identifiers from the catalog")
	case errors.Is(err, compiler.ErrNoInputs):
		ctx.WithSuggestion("Pass at least one catalog file or a pattern such as 'formats/**/*.cue'")
	case errors.Is(err, os.ErrNotExist):
		ctx.WithSuggestion("Check that the path exists and is spelled correctly")
	case errors.Is(err, os.ErrPermission):
		ctx.WithSuggestion("Check write permissions on the output directory")
	case errors.Is(err, catalog.ErrCatalog):
		ctx.WithSuggestion("Run 'fmtgen list' on each catalog file to locate the malformed entry")
	}

	return ctx.BuildError()
}

// reportError prints err to stderr and converts it to an ExitError. In
// verbose mode the rendered issue help follows the message.
func reportError(cmd *cobra.Command, stderr io.Writer, err error, verbose bool) error {
	if err == nil {
		return nil
	}
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	fmt.Fprintf(stderr, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))

	if verbose {
		renderIssue(stderr, classifyError(err))
	}

	return &ExitError{Code: exitCodeFor(err), Err: err}
}

// renderIssue prints the issue catalog entry for id, if any.
func renderIssue(w io.Writer, id issue.Id) {
	if id == 0 {
		return
	}
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("dark")
	if err != nil {
		log.Warn("failed to render issue catalog entry", "issue", id, "error", err)
		return
	}
	fmt.Fprint(w, rendered)
}
