// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		CatalogNotFoundId,
		CatalogParseErrorId,
		DuplicateFormatId,
		InvalidFormatId,
		UnknownIdentifierId,
		EmissionFailedId,
		ConfigLoadFailedId,
		InvalidPatternId,
		PermissionDeniedId,
		FormatNotFoundId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}

	if CatalogNotFoundId != 1 {
		t.Errorf("CatalogNotFoundId = %d, want 1", CatalogNotFoundId)
	}
	if len(issues) != len(ids) {
		t.Errorf("issues map has %d entries, want %d", len(issues), len(ids))
	}
}

func TestGet_Unknown(t *testing.T) {
	if Get(Id(9999)) != nil {
		t.Error("Get() of an unknown id should return nil")
	}
}

func TestValues_Ordered(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Errorf("Values() not ordered at %d: %d >= %d", i, values[i-1].Id(), values[i].Id())
		}
	}
}

func TestIssue_Render(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	var rendered string
	render = func(in string, stylePath string) (string, error) {
		rendered = in
		return "styled:" + stylePath, nil
	}

	out, err := Get(CatalogParseErrorId).Render("dark")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != "styled:dark" {
		t.Errorf("Render() = %q", out)
	}
	if !strings.Contains(rendered, "## See also:") || !strings.Contains(rendered, "https://cuelang.org/docs/") {
		t.Errorf("rendered markdown should list external links:\n%s", rendered)
	}

	if _, err := Get(DuplicateFormatId).Render("dark"); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("issue without links should not render a See also section")
	}
}

func TestIssue_ExtLinksIsCopy(t *testing.T) {
	i := Get(CatalogParseErrorId)
	links := i.ExtLinks()
	links[0] = "changed"
	if i.ExtLinks()[0] == "changed" {
		t.Error("ExtLinks() should return a copy")
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	for _, i := range Values() {
		if strings.TrimSpace(string(i.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", i.Id())
			continue
		}
		out, err := i.Render("notty")
		if err != nil {
			t.Errorf("issue %d Render() error = %v", i.Id(), err)
		}
		if out == "" {
			t.Errorf("issue %d rendered empty", i.Id())
		}
	}
}
