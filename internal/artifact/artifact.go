// SPDX-License-Identifier: MPL-2.0

// Package artifact publishes rendered artifacts all-or-nothing.
//
// Every selected artifact is first written to a temporary file next to its
// destination; only when all of them were written are they renamed into
// place. Standard output is written last, after every file target
// succeeded, so a failed run never leaves a partial artifact behind.
package artifact

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fmtgen/fmtgen/internal/emit"
)

const (
	// ModeTable selects the table source.
	ModeTable Mode = iota
	// ModeHeader selects the declaration header.
	ModeHeader
	// ModeAliases selects the byte-order alias header.
	ModeAliases

	// StdoutPath is the target path meaning standard output.
	StdoutPath = "-"

	filePerm = 0o644
)

// ErrEmission is matched by every error Publish returns.
var ErrEmission = errors.New("emission failure")

type (
	// Mode selects one of the three artifacts.
	Mode int

	// Target is a destination for one artifact. An empty Path or StdoutPath
	// means standard output.
	Target struct {
		Mode Mode
		Path string
	}

	// EmissionError is returned when an artifact cannot be published.
	EmissionError struct {
		Mode Mode
		Path string
		Err  error
	}

	// Staged holds rendered artifacts awaiting publication.
	Staged struct {
		data [3][]byte
	}

	pending struct {
		target Target
		temp   string
	}

	// commit is one destination replaced by Publish. backup holds the
	// previous file, or is empty when the destination did not exist.
	commit struct {
		path   string
		backup string
	}
)

// Modes returns every mode in artifact order.
func Modes() []Mode { return []Mode{ModeTable, ModeHeader, ModeAliases} }

// String returns the artifact name.
func (m Mode) String() string {
	switch m {
	case ModeTable:
		return "table"
	case ModeHeader:
		return "header"
	case ModeAliases:
		return "aliases"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// IsStdout reports whether the target writes to standard output.
func (t Target) IsStdout() bool { return t.Path == "" || t.Path == StdoutPath }

// Error implements the error interface.
func (e *EmissionError) Error() string {
	dest := e.Path
	if dest == "" || dest == StdoutPath {
		dest = "stdout"
	}
	return fmt.Sprintf("failed to publish %s artifact to %s: %v", e.Mode, dest, e.Err)
}

// Unwrap returns ErrEmission and the cause.
func (e *EmissionError) Unwrap() []error { return []error{ErrEmission, e.Err} }

// Stage wraps rendered artifacts for publication.
func Stage(a emit.Artifacts) *Staged {
	return &Staged{data: [3][]byte{a.Table, a.Header, a.Aliases}}
}

// Bytes returns the rendered bytes of one artifact.
func (s *Staged) Bytes(m Mode) []byte {
	if m < ModeTable || m > ModeAliases {
		return nil
	}
	return s.data[m]
}

// Publish writes each target. File targets are staged as temporary files in
// their destination directory and renamed into place once all were staged;
// stdout targets are then written to stdout.
//
// Existing destination files are moved aside before being replaced. If any
// rename fails, files already renamed into place are rolled back to their
// previous content (or removed if they did not exist), so the destination
// set never mixes old and new artifacts.
func (s *Staged) Publish(stdout io.Writer, targets ...Target) error {
	var staged []pending
	cleanup := func() {
		for _, p := range staged {
			_ = os.Remove(p.temp)
		}
	}

	for _, t := range targets {
		if t.Mode < ModeTable || t.Mode > ModeAliases {
			cleanup()
			return &EmissionError{Mode: t.Mode, Path: t.Path, Err: errors.New("unknown artifact mode")}
		}
		if t.IsStdout() {
			continue
		}
		temp, err := writeTemp(t.Path, s.data[t.Mode])
		if err != nil {
			cleanup()
			return &EmissionError{Mode: t.Mode, Path: t.Path, Err: err}
		}
		staged = append(staged, pending{target: t, temp: temp})
	}

	var done []commit
	for i, p := range staged {
		c, err := replace(p.temp, p.target.Path)
		if err != nil {
			rollback(done)
			for _, rest := range staged[i:] {
				_ = os.Remove(rest.temp)
			}
			return &EmissionError{Mode: p.target.Mode, Path: p.target.Path, Err: err}
		}
		done = append(done, c)
	}
	for _, c := range done {
		if c.backup != "" {
			_ = os.Remove(c.backup)
		}
	}

	for _, t := range targets {
		if !t.IsStdout() {
			continue
		}
		if stdout == nil {
			continue
		}
		if _, err := stdout.Write(s.data[t.Mode]); err != nil {
			return &EmissionError{Mode: t.Mode, Path: t.Path, Err: err}
		}
	}
	return nil
}

// WriteFile publishes one standalone document to path, or to stdout when
// path is StdoutPath or empty. A file is replaced only once fully written.
func WriteFile(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == StdoutPath {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrEmission, err)
		}
		return nil
	}

	temp, err := writeTemp(path, data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEmission, path, err)
	}
	if err := os.Rename(temp, path); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("%w: %s: %w", ErrEmission, path, err)
	}
	return nil
}

// replace renames temp onto dest, first moving an existing regular file at
// dest to a backup next to it.
func replace(temp, dest string) (commit, error) {
	c := commit{path: dest}
	if info, err := os.Lstat(dest); err == nil && info.Mode().IsRegular() {
		backup, err := reserveTemp(dest, ".orig.tmp")
		if err != nil {
			return c, err
		}
		if err := os.Rename(dest, backup); err != nil {
			_ = os.Remove(backup)
			return c, fmt.Errorf("moving previous file aside: %w", err)
		}
		c.backup = backup
	}
	if err := os.Rename(temp, dest); err != nil {
		if c.backup != "" {
			_ = os.Rename(c.backup, dest)
		}
		return c, err
	}
	return c, nil
}

// rollback undoes committed replacements in reverse order.
func rollback(done []commit) {
	for i := len(done) - 1; i >= 0; i-- {
		c := done[i]
		if c.backup == "" {
			_ = os.Remove(c.path)
			continue
		}
		_ = os.Rename(c.backup, c.path)
	}
}

// reserveTemp creates an empty hidden file next to dest and returns its path.
func reserveTemp(dest, suffix string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*"+suffix)
	if err != nil {
		return "", fmt.Errorf("creating backup file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("closing backup file: %w", err)
	}
	return f.Name(), nil
}

// writeTemp writes data to a new temporary file in the directory of dest and
// returns its path.
func writeTemp(dest string, data []byte) (path string, err error) {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if closeErr := tmp.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing temp file: %w", closeErr)
		}
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Chmod(filePerm); err != nil {
		return "", fmt.Errorf("setting permissions: %w", err)
	}
	return tmp.Name(), nil
}
