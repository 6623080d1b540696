// SPDX-License-Identifier: MPL-2.0

package modtree

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestModulePath(t *testing.T) {
	t.Parallel()

	tree := New("")
	tests := []struct {
		file    string
		want    []string
		wantErr bool
	}{
		{file: "nvh_classes_cla097.rs", want: []string{"classes", "cla097"}},
		{file: "out/gen/nvh_hwref_gv100_pbdma.rs", want: []string{"hwref", "gv100", "pbdma"}},
		{file: "nvh_classes.rs", want: []string{"classes"}},
		{file: "nvh_classes_cla097.txt", wantErr: true},
		{file: "nvk_classes.rs", wantErr: true},
		{file: "nvh.rs", wantErr: true},
		{file: "nvh__x.rs", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			got, err := tree.ModulePath(tt.file)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFileName) {
					t.Errorf("ModulePath(%q) error = %v, want ErrInvalidFileName", tt.file, err)
				}
				return
			}
			if err != nil || !slices.Equal(got, tt.want) {
				t.Errorf("ModulePath(%q) = %v, %v; want %v", tt.file, got, err, tt.want)
			}
		})
	}
}

func TestBuildDuplicate(t *testing.T) {
	t.Parallel()

	_, err := Build("nvh", []string{"a/nvh_classes_cl9097.rs", "b/nvh_classes_cl9097.rs"})
	if !errors.Is(err, ErrDuplicateModule) {
		t.Fatalf("Build() error = %v, want ErrDuplicateModule", err)
	}
	var fileErr *FileError
	if !errors.As(err, &fileErr) || fileErr.File != "b/nvh_classes_cl9097.rs" {
		t.Errorf("error = %#v, want FileError for the second file", err)
	}
	if !strings.Contains(err.Error(), "classes::cl9097") {
		t.Errorf("error should name the module path, got %v", err)
	}
}

func TestLeavesOrder(t *testing.T) {
	t.Parallel()

	tree, err := Build("nvh", []string{
		"nvh_hwref_gv100_pbdma.rs",
		"nvh_classes_cla097.rs",
		"nvh_classes.rs",
		"nvh_classes_cl9097.rs",
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var got []string
	for _, leaf := range tree.Leaves() {
		got = append(got, strings.Join(leaf, "::"))
	}
	want := []string{"classes", "classes::cl9097", "classes::cla097", "hwref::gv100::pbdma"}
	if !slices.Equal(got, want) {
		t.Errorf("Leaves() = %v, want %v", got, want)
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	tree, err := Build("nvh", []string{"nvh_hwref_gv100_pbdma.rs", "nvh_classes_cla097.rs", "nvh_classes.rs"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got := string(tree.Render("Copyright © 2024 Example\nSPDX-License-Identifier: MIT"))
	want := `// Copyright © 2024 Example
// SPDX-License-Identifier: MIT

// This file is generated by fmtgen modtree. DO NOT EDIT!

#![allow(unused_imports)]

mod nvh_classes;
mod nvh_classes_cla097;
mod nvh_hwref_gv100_pbdma;

pub mod classes {
    pub use crate::nvh_classes::*;
    pub mod cla097 {
        pub use crate::nvh_classes_cla097::*;
    }
}

pub mod hwref {
    pub mod gv100 {
        pub mod pbdma {
            pub use crate::nvh_hwref_gv100_pbdma::*;
        }
    }
}
`
	if got != want {
		t.Errorf("Render() mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderOrderIndependent(t *testing.T) {
	t.Parallel()

	files := []string{"nvh_b_x.rs", "nvh_a.rs", "nvh_b_a.rs", "nvh_c_d_e.rs"}
	first, err := Build("nvh", files)
	if err != nil {
		t.Fatal(err)
	}
	reversed := slices.Clone(files)
	slices.Reverse(reversed)
	second, err := Build("nvh", reversed)
	if err != nil {
		t.Fatal(err)
	}
	if string(first.Render("")) != string(second.Render("")) {
		t.Error("Render() depends on input order")
	}
	if strings.HasPrefix(string(first.Render("")), "//\n") {
		t.Error("an empty header must not produce comment lines")
	}
}
