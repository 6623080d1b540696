// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Doc: {
	name:     string & =~"^[A-Z0-9_]+$"
	width:    int & >=1 | *1
	tags?: [...string]
}
`

type testDoc struct {
	Name  string   `json:"name"`
	Width int      `json:"width"`
	Tags  []string `json:"tags,omitempty"`
}

func TestParseAndDecodeSyntaxes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		syntax Syntax
		data   string
	}{
		{name: "cue", syntax: SyntaxCUE, data: "name: \"R8_UNORM\"\nwidth: 4\ntags: [\"a\"]\n"},
		{name: "json", syntax: SyntaxJSON, data: `{"name": "R8_UNORM", "width": 4, "tags": ["a"]}`},
		{name: "yaml", syntax: SyntaxYAML, data: "name: R8_UNORM\nwidth: 4\ntags: [a]\n"},
		{name: "toml", syntax: SyntaxTOML, data: "name = \"R8_UNORM\"\nwidth = 4\ntags = [\"a\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := ParseAndDecodeString[testDoc](testSchema, []byte(tt.data), "#Doc",
				WithFilename("doc."+string(tt.syntax)), WithSyntax(tt.syntax))
			if err != nil {
				t.Fatalf("ParseAndDecodeString() error = %v", err)
			}
			if result.Value.Name != "R8_UNORM" {
				t.Errorf("Name = %q, want R8_UNORM", result.Value.Name)
			}
			if result.Value.Width != 4 {
				t.Errorf("Width = %d, want 4", result.Value.Width)
			}
			if len(result.Value.Tags) != 1 || result.Value.Tags[0] != "a" {
				t.Errorf("Tags = %v, want [a]", result.Value.Tags)
			}
		})
	}
}

func TestParseAndDecodeDefaults(t *testing.T) {
	t.Parallel()

	result, err := ParseAndDecodeString[testDoc](testSchema, []byte(`name: "NONE"`), "#Doc")
	if err != nil {
		t.Fatalf("ParseAndDecodeString() error = %v", err)
	}
	if result.Value.Width != 1 {
		t.Errorf("Width = %d, want schema default 1", result.Value.Width)
	}
}

func TestParseAndDecodeSchemaViolation(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecodeString[testDoc](testSchema, []byte(`name: "lower"`), "#Doc",
		WithFilename("bad.cue"))
	if err == nil {
		t.Fatal("expected schema violation error")
	}
	if !strings.Contains(err.Error(), "bad.cue") {
		t.Errorf("error should name the file, got: %v", err)
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("error should name the offending field, got: %v", err)
	}
}

func TestParseAndDecodeSyntaxError(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecodeString[testDoc](testSchema, []byte("name = = 1"), "#Doc",
		WithFilename("bad.toml"), WithSyntax(SyntaxTOML))
	if err == nil {
		t.Fatal("expected TOML syntax error")
	}
	if !strings.Contains(err.Error(), "bad.toml") {
		t.Errorf("error should name the file, got: %v", err)
	}
}

func TestParseAndDecodeFileSizeLimit(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecodeString[testDoc](testSchema, []byte(`name: "NONE"`), "#Doc",
		WithMaxFileSize(4))
	if err == nil {
		t.Fatal("expected size limit error")
	}
	if !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseAndDecodeMissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecodeString[testDoc](testSchema, []byte(`name: "NONE"`), "#Missing")
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Errorf("expected internal error for a missing definition, got %v", err)
	}
}

func TestSyntaxFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    Syntax
		wantErr bool
	}{
		{path: "formats.cue", want: SyntaxCUE},
		{path: "dir/formats.JSON", want: SyntaxJSON},
		{path: "u_format.yaml", want: SyntaxYAML},
		{path: "u_format.yml", want: SyntaxYAML},
		{path: "formats.toml", want: SyntaxTOML},
		{path: "formats.csv", wantErr: true},
		{path: "formats", wantErr: true},
	}

	for _, tt := range tests {
		got, err := SyntaxFromPath(tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedSyntax) {
				t.Errorf("SyntaxFromPath(%q) error = %v, want ErrUnsupportedSyntax", tt.path, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("SyntaxFromPath(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
		}
	}
}
