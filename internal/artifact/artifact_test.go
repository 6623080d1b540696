// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fmtgen/fmtgen/internal/emit"
)

func testStaged() *Staged {
	return Stage(emit.Artifacts{
		Table:   []byte("table\n"),
		Header:  []byte("header\n"),
		Aliases: []byte("aliases\n"),
	})
}

func TestPublishFilesAndStdout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tablePath := filepath.Join(dir, "u_format_table.c")
	aliasPath := filepath.Join(dir, "u_format_enum.h")

	var stdout bytes.Buffer
	err := testStaged().Publish(&stdout,
		Target{Mode: ModeTable, Path: tablePath},
		Target{Mode: ModeHeader, Path: StdoutPath},
		Target{Mode: ModeAliases, Path: aliasPath},
	)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	for path, want := range map[string]string{tablePath: "table\n", aliasPath: "aliases\n"} {
		got, readErr := os.ReadFile(path)
		if readErr != nil {
			t.Fatalf("ReadFile(%s) error = %v", path, readErr)
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}
	if stdout.String() != "header\n" {
		t.Errorf("stdout = %q, want header", stdout.String())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("directory holds %d entries, want 2 (no leftover temp files)", len(entries))
	}
}

func TestPublishReplacesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.h")
	if err := os.WriteFile(path, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := testStaged().Publish(nil, Target{Mode: ModeHeader, Path: path}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "header\n" {
		t.Errorf("file = %q, want replaced content", got)
	}
	if entries, _ := os.ReadDir(filepath.Dir(path)); len(entries) != 1 {
		t.Errorf("backup or temp files left behind: %d entries", len(entries))
	}
}

func TestPublishFailureLeavesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "table.c")
	bad := filepath.Join(dir, "missing", "header.h")

	var stdout bytes.Buffer
	err := testStaged().Publish(&stdout,
		Target{Mode: ModeTable, Path: good},
		Target{Mode: ModeAliases},
		Target{Mode: ModeHeader, Path: bad},
	)
	if err == nil {
		t.Fatal("expected an emission error")
	}
	if !errors.Is(err, ErrEmission) {
		t.Errorf("error %v does not match ErrEmission", err)
	}
	var emErr *EmissionError
	if !errors.As(err, &emErr) || emErr.Mode != ModeHeader {
		t.Errorf("error = %#v, want EmissionError for the header", err)
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory not empty after failure: %v", names)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout written despite failure: %q", stdout.String())
	}
}

func TestPublishRenameFailureRestoresEarlierFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	table := filepath.Join(dir, "table.c")
	fresh := filepath.Join(dir, "aliases.h")
	if err := os.WriteFile(table, []byte("old table"), 0o600); err != nil {
		t.Fatal(err)
	}
	// A directory at the destination lets staging succeed but fails the rename.
	blocked := filepath.Join(dir, "header.h")
	if err := os.Mkdir(blocked, 0o755); err != nil {
		t.Fatal(err)
	}

	err := testStaged().Publish(nil,
		Target{Mode: ModeTable, Path: table},
		Target{Mode: ModeAliases, Path: fresh},
		Target{Mode: ModeHeader, Path: blocked},
	)
	var emErr *EmissionError
	if !errors.As(err, &emErr) || emErr.Mode != ModeHeader {
		t.Fatalf("Publish() error = %v, want EmissionError for the header", err)
	}

	got, readErr := os.ReadFile(table)
	if readErr != nil || string(got) != "old table" {
		t.Errorf("table.c = %q, %v; want the previous content restored", got, readErr)
	}
	if _, statErr := os.Stat(fresh); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("aliases.h should be removed after rollback, stat error = %v", statErr)
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 2 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory = %v, want only table.c and header.h", names)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestPublishStdoutFailure(t *testing.T) {
	t.Parallel()

	err := testStaged().Publish(failingWriter{}, Target{Mode: ModeTable})
	if !errors.Is(err, ErrEmission) {
		t.Errorf("Publish() error = %v, want ErrEmission", err)
	}
}

func TestModeString(t *testing.T) {
	t.Parallel()

	want := []string{"table", "header", "aliases"}
	for i, m := range Modes() {
		if m.String() != want[i] {
			t.Errorf("Mode(%d).String() = %q, want %q", m, m.String(), want[i])
		}
	}
	if got := testStaged().Bytes(Mode(7)); got != nil {
		t.Errorf("Bytes(invalid) = %q, want nil", got)
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "mod.rs")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteFile(nil, path, []byte("new\n")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new\n" {
		t.Errorf("file = %q, want %q", got, "new\n")
	}

	var stdout bytes.Buffer
	if err := WriteFile(&stdout, StdoutPath, []byte("out")); err != nil || stdout.String() != "out" {
		t.Errorf("WriteFile(stdout) = %v, wrote %q", err, stdout.String())
	}

	err = WriteFile(nil, filepath.Join(dir, "missing", "mod.rs"), []byte("x"))
	if !errors.Is(err, ErrEmission) {
		t.Errorf("WriteFile() into a missing directory error = %v, want ErrEmission", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("unexpected leftovers in %s: %d entries", dir, len(entries))
	}
}
