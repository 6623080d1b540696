// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "load format catalog"},
			want: "failed to load format catalog",
		},
		{
			name: "with resource",
			err:  &ActionableError{Operation: "load format catalog", Resource: "formats.cue"},
			want: "failed to load format catalog: formats.cue",
		},
		{
			name: "with resource and cause",
			err: &ActionableError{
				Operation: "write table source",
				Resource:  "u_format_table.c",
				Cause:     errors.New("disk full"),
			},
			want: "failed to write table source: u_format_table.c: disk full",
		},
		{
			name: "cause without resource",
			err:  &ActionableError{Operation: "load config", Cause: errors.New("bad key")},
			want: "failed to load config: bad key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying error")
	err := &ActionableError{Operation: "test", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	if (&ActionableError{Operation: "test"}).Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	multi := errors.Join(errors.New("first duplicate"), errors.New("second duplicate"))

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:     "simple non-verbose",
			err:      &ActionableError{Operation: "load config"},
			contains: []string{"failed to load config"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "suggestions",
			err: &ActionableError{
				Operation:   "load format catalog",
				Resource:    "formats.yaml",
				Suggestions: []string{"Check the channel specs", "Check file permissions"},
			},
			contains: []string{
				"failed to load format catalog: formats.yaml",
				"• Check the channel specs",
				"• Check file permissions",
			},
		},
		{
			name: "chain hidden when not verbose",
			err: &ActionableError{
				Operation: "parse catalog",
				Cause:     fmt.Errorf("line 3: %w", errors.New("syntax error")),
			},
			excludes: []string{"Error chain:"},
		},
		{
			name: "chain in verbose mode",
			err: &ActionableError{
				Operation: "parse catalog",
				Cause:     fmt.Errorf("line 3: %w", errors.New("syntax error")),
			},
			verbose:  true,
			contains: []string{"Error chain:", "1. line 3: syntax error", "2. syntax error"},
		},
		{
			name:     "joined causes are walked",
			err:      &ActionableError{Operation: "compile", Cause: multi},
			verbose:  true,
			contains: []string{"2. first duplicate", "3. second duplicate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.err.Format(tt.verbose)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Format() missing %q in:\n%s", want, got)
				}
			}
			for _, exclude := range tt.excludes {
				if strings.Contains(got, exclude) {
					t.Errorf("Format() should not contain %q in:\n%s", exclude, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("no such file")
	ae := NewErrorContext().
		WithOperation("load enum").
		WithResource("p_format.json").
		WithSuggestion("Check the path").
		WithSuggestions("Drop --enum", "Regenerate the enum").
		WithIssue(UnknownIdentifierId).
		Wrap(cause).
		Build()

	if ae == nil {
		t.Fatal("Build() returned nil")
	}
	if ae.Operation != "load enum" || ae.Resource != "p_format.json" {
		t.Errorf("Build() = %+v", ae)
	}
	if len(ae.Suggestions) != 3 || !ae.HasSuggestions() {
		t.Errorf("Suggestions = %v, want 3", ae.Suggestions)
	}
	if ae.Issue != UnknownIdentifierId {
		t.Errorf("Issue = %d, want %d", ae.Issue, UnknownIdentifierId)
	}
	if !errors.Is(ae, cause) {
		t.Error("built error should wrap the cause")
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithResource("formats.cue")
	if ctx.Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if err := ctx.BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil interface", err)
	}

	err := NewErrorContext().WithOperation("emit").BuildError()
	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("BuildError() = %T, want *ActionableError", err)
	}
	if ae.HasSuggestions() {
		t.Error("HasSuggestions() = true with no suggestions")
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}

	cause := errors.New("permission denied")
	ae := WrapWithContext(cause, "write header", "u_format_gen.h")
	if got, want := ae.Error(), "failed to write header: u_format_gen.h: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
