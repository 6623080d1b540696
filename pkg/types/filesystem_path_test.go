// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestFilesystemPathIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path FilesystemPath
		want bool
	}{
		{"absolute path", "/usr/share/fmtgen/formats.cue", true},
		{"relative path", "formats/u_format.yaml", true},
		{"glob", "formats/**/*.cue", true},
		{"dot path", ".", true},
		{"empty is invalid", "", false},
		{"whitespace only is invalid", "   ", false},
		{"tab only is invalid", "\t", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ok, errs := tt.path.IsValid()
			if ok != tt.want {
				t.Fatalf("FilesystemPath(%q).IsValid() = %v, want %v", tt.path, ok, tt.want)
			}
			if ok {
				return
			}
			if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidFilesystemPath) {
				t.Errorf("errors = %v, want one ErrInvalidFilesystemPath", errs)
			}
			var fpErr *InvalidFilesystemPathError
			if !errors.As(errs[0], &fpErr) || fpErr.Value != tt.path {
				t.Errorf("error = %#v", errs[0])
			}
		})
	}
}

func TestFilesystemPathJoin(t *testing.T) {
	t.Parallel()

	got := FilesystemPath("out").Join("gen", "u_format_table.c")
	if want := filepath.Join("out", "gen", "u_format_table.c"); got.String() != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
}
