// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fmtgen/fmtgen/internal/modtree"
	"github.com/fmtgen/fmtgen/internal/testutil"
)

func TestModtreeDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"nvh_classes_cla097.rs", "nvh_classes.rs", "nvh_hwref_pbdma.rs", "lib.rs", "notes.txt"} {
		testutil.MustWriteFile(t, dir, name, "")
	}

	res := runCLI(t, "modtree", dir)
	if res.err != nil {
		t.Fatalf("modtree error = %v\nstderr: %s", res.err, res.stderr)
	}

	wantMods := "mod nvh_classes;\nmod nvh_classes_cla097;\nmod nvh_hwref_pbdma;\n"
	if !strings.Contains(res.stdout, wantMods) {
		t.Errorf("output missing mod lines %q:\n%s", wantMods, res.stdout)
	}
	if strings.Contains(res.stdout, "lib") {
		t.Errorf("file without the prefix was picked up:\n%s", res.stdout)
	}
}

func TestModtreeOutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := testutil.MustWriteFile(t, dir, "nvh_classes.rs", "")
	out := filepath.Join(dir, "lib.rs")

	res := runCLI(t, "modtree", "--header", "SPDX-License-Identifier: MIT", "-o", out, file)
	if res.err != nil {
		t.Fatalf("modtree error = %v", res.err)
	}
	got := testutil.MustReadFile(t, out)
	if !strings.HasPrefix(got, "// SPDX-License-Identifier: MIT\n\n") {
		t.Errorf("header not emitted first:\n%s", got)
	}
	if !strings.Contains(got, "pub use crate::nvh_classes::*;") {
		t.Errorf("crate root does not re-export the module:\n%s", got)
	}
}

func TestModtreeErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := testutil.MustWriteFile(t, dir, "nvh_classes.rs", "")
	bad := testutil.MustWriteFile(t, dir, "classes.rs", "")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "missing prefix", args: []string{bad}, want: modtree.ErrInvalidFileName},
		{name: "duplicate", args: []string{a, a}, want: modtree.ErrDuplicateModule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := runCLI(t, append([]string{"modtree"}, tt.args...)...)
			if !errors.Is(res.err, tt.want) {
				t.Errorf("error = %v, want %v", res.err, tt.want)
			}
			if res.stdout != "" {
				t.Errorf("stdout = %q, want nothing", res.stdout)
			}
		})
	}
}
