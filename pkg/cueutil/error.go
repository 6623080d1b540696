// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrFileTooLarge is returned by CheckFileSize.
var ErrFileTooLarge = errors.New("file too large")

type (
	// Violation is one problem reported for a document, located by a
	// JSON-style path such as "formats[3].channels[1]".
	Violation struct {
		Path    string
		Message string
	}

	// DocumentError collects the violations found in one document.
	DocumentError struct {
		Filename   string
		Violations []Violation
		// Err is the error the violations were extracted from.
		Err error
	}
)

// Error renders "<file>: <path>: <message>" for a single violation and an
// indented list otherwise.
func (e *DocumentError) Error() string {
	lines := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if v.Path == "" {
			lines = append(lines, v.Message)
			continue
		}
		lines = append(lines, v.Path+": "+v.Message)
	}
	if len(lines) == 1 {
		return e.Filename + ": " + lines[0]
	}
	return e.Filename + ": validation failed:\n  " + strings.Join(lines, "\n  ")
}

// Unwrap returns the underlying error.
func (e *DocumentError) Unwrap() error { return e.Err }

// FormatError turns err into a *DocumentError for filePath. CUE errors
// contribute one violation each, located by their value path:
//
//	formats.cue: formats[3].layout: 2 errors in empty disjunction
//	fmtgen.cue: symbol.prefix: conflicting values "util_" and 1
//
// Other errors are wrapped with the file name only.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	de := &DocumentError{Filename: filePath, Err: err}
	for _, e := range list {
		path := formatPath(cueerrors.Path(e))
		msg := e.Error()
		// CUE may repeat the path at the start of the message.
		if path != "" {
			if rest, ok := strings.CutPrefix(msg, path); ok {
				msg = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
			}
		}
		de.Violations = append(de.Violations, Violation{Path: path, Message: msg})
	}
	return de
}

// formatPath converts a CUE error path such as ["formats", "0", "name"] to
// "formats[0].name".
func formatPath(path []string) string {
	var sb strings.Builder
	for i, part := range path {
		if _, err := strconv.Atoi(part); err == nil && i > 0 {
			sb.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(part)
	}
	return sb.String()
}

// CheckFileSize rejects documents larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: %w: %d bytes exceeds maximum %d bytes",
			filename, ErrFileTooLarge, len(data), maxSize)
	}
	return nil
}
