// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestMustSetenvRestores(t *testing.T) {
	const key = "FMTGEN_TESTUTIL_PROBE"

	restore := MustSetenv(t, key, "one")
	if got := os.Getenv(key); got != "one" {
		t.Fatalf("%s = %q, want one", key, got)
	}
	restore()
	if _, ok := os.LookupEnv(key); ok {
		t.Errorf("%s should be unset after cleanup", key)
	}
}

func TestSetHomeDir(t *testing.T) {
	key := "HOME"
	if runtime.GOOS == "windows" {
		key = "USERPROFILE"
	}
	original := os.Getenv(key)

	dir := t.TempDir()
	cleanup := SetHomeDir(t, dir)
	if got := os.Getenv(key); got != dir {
		t.Errorf("%s = %q, want %q", key, got, dir)
	}
	cleanup()
	if got := os.Getenv(key); got != original {
		t.Errorf("after cleanup %s = %q, want %q", key, got, original)
	}
}

func TestFileHelpers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := MustWriteFile(t, dir, filepath.Join("nested", "formats.cue"), "formats: []\n")
	if got := MustReadFile(t, path); got != "formats: []\n" {
		t.Errorf("MustReadFile() = %q", got)
	}

	copied := MustCopyFile(t, path, t.TempDir())
	if filepath.Base(copied) != "formats.cue" || MustReadFile(t, copied) != "formats: []\n" {
		t.Errorf("MustCopyFile() = %q", copied)
	}
}

func TestMustChdir(t *testing.T) {
	original, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	t.Run("inner", func(t *testing.T) {
		dir := t.TempDir()
		MustChdir(t, dir)
		wd, err := os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
		resolved, _ := filepath.EvalSymlinks(dir)
		if wd != dir && wd != resolved {
			t.Errorf("working directory = %q, want %q", wd, dir)
		}
	})

	if wd, _ := os.Getwd(); wd != original {
		t.Errorf("working directory not restored: %q, want %q", wd, original)
	}
}
