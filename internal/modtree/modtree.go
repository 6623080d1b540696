// SPDX-License-Identifier: MPL-2.0

// Package modtree builds the Rust crate root that re-exports generated
// binding files under a nested module hierarchy.
//
// A flat file name such as nvh_classes_cla097.rs becomes the module path
// classes::cla097: the file is declared as a private module named after the
// file, and a nested chain of public modules re-exports its contents.
package modtree

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultPrefix is the leading path segment of the NVIDIA header bindings.
const DefaultPrefix = "nvh"

var (
	// ErrInvalidFileName is returned for a file that is not <prefix>_path.rs.
	ErrInvalidFileName = errors.New("invalid module file name")
	// ErrDuplicateModule is returned when two files map to the same module.
	ErrDuplicateModule = errors.New("duplicate module")
)

type (
	// Node is one module in the tree. Present marks a module backed by a
	// file; intermediate modules only group their children.
	Node struct {
		Present  bool
		children map[string]*Node
	}

	// Tree is a trie of module paths keyed by path segment.
	Tree struct {
		prefix string
		root   *Node
	}

	// FileError reports a file that could not be added to the tree.
	FileError struct {
		File string
		Err  error
	}
)

// Error implements the error interface.
func (e *FileError) Error() string { return e.File + ": " + e.Err.Error() }

// Unwrap returns the cause.
func (e *FileError) Unwrap() error { return e.Err }

// New returns an empty tree whose file names start with prefix.
func New(prefix string) *Tree {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Tree{prefix: prefix, root: &Node{}}
}

// Build adds every file to a new tree.
func Build(prefix string, files []string) (*Tree, error) {
	t := New(prefix)
	for _, f := range files {
		if err := t.AddFile(f); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Prefix returns the file name prefix.
func (t *Tree) Prefix() string { return t.prefix }

// AddFile adds the module named by a file path. Directories are ignored;
// only the base name matters.
func (t *Tree) AddFile(file string) error {
	path, err := t.ModulePath(file)
	if err != nil {
		return &FileError{File: file, Err: err}
	}
	if err := t.Add(path); err != nil {
		return &FileError{File: file, Err: err}
	}
	return nil
}

// ModulePath splits a file name into its module path.
func (t *Tree) ModulePath(file string) ([]string, error) {
	base := filepath.Base(file)
	stem, ok := strings.CutSuffix(base, ".rs")
	if !ok {
		return nil, fmt.Errorf("%w %q: missing .rs suffix", ErrInvalidFileName, base)
	}
	segments := strings.Split(stem, "_")
	if segments[0] != t.prefix {
		return nil, fmt.Errorf("%w %q: expected prefix %q", ErrInvalidFileName, base, t.prefix+"_")
	}
	segments = segments[1:]
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w %q: empty module path", ErrInvalidFileName, base)
	}
	if slices.Contains(segments, "") {
		return nil, fmt.Errorf("%w %q: empty path segment", ErrInvalidFileName, base)
	}
	return segments, nil
}

// Add marks the module at path present, creating intermediate modules.
func (t *Tree) Add(path []string) error {
	n := t.root
	for _, seg := range path {
		if n.children == nil {
			n.children = make(map[string]*Node)
		}
		child, ok := n.children[seg]
		if !ok {
			child = &Node{}
			n.children[seg] = child
		}
		n = child
	}
	if n.Present {
		return fmt.Errorf("%w %s", ErrDuplicateModule, strings.Join(path, "::"))
	}
	n.Present = true
	return nil
}

// Leaves returns the path of every present module in depth-first order with
// siblings sorted by name.
func (t *Tree) Leaves() [][]string {
	var leaves [][]string
	t.walk(t.root, nil, func(path []string, n *Node) {
		if n.Present {
			leaves = append(leaves, slices.Clone(path))
		}
	})
	return leaves
}

// walk visits n and then its descendants, siblings in name order.
func (t *Tree) walk(n *Node, path []string, visit func([]string, *Node)) {
	visit(path, n)
	for _, name := range n.childNames() {
		t.walk(n.children[name], append(path, name), visit)
	}
}

func (n *Node) childNames() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Render returns the crate root source. header, when non-empty, is printed
// first as line comments.
func (t *Tree) Render(header string) []byte {
	var buf bytes.Buffer

	for _, line := range strings.Split(strings.TrimSpace(header), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Fprintf(&buf, "// %s\n", line)
		}
	}
	if header != "" {
		buf.WriteString("\n")
	}
	buf.WriteString("// This file is generated by fmtgen modtree. DO NOT EDIT!\n\n")
	buf.WriteString("#![allow(unused_imports)]\n\n")

	leaves := t.Leaves()
	for _, path := range leaves {
		fmt.Fprintf(&buf, "mod %s;\n", t.crateName(path))
	}
	if len(leaves) > 0 {
		buf.WriteString("\n")
	}

	if t.root.Present {
		fmt.Fprintf(&buf, "pub use crate::%s::*;\n", t.crateName(nil))
	}
	first := true
	for _, name := range t.root.childNames() {
		if !first {
			buf.WriteString("\n")
		}
		first = false
		t.renderModule(&buf, t.root.children[name], []string{name})
	}

	return buf.Bytes()
}

func (t *Tree) renderModule(buf *bytes.Buffer, n *Node, path []string) {
	indent := strings.Repeat("    ", len(path)-1)
	fmt.Fprintf(buf, "%spub mod %s {\n", indent, path[len(path)-1])
	if n.Present {
		fmt.Fprintf(buf, "%s    pub use crate::%s::*;\n", indent, t.crateName(path))
	}
	for _, name := range n.childNames() {
		t.renderModule(buf, n.children[name], append(slices.Clone(path), name))
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}

// crateName is the private module name of the file backing path.
func (t *Tree) crateName(path []string) string {
	return strings.Join(append([]string{t.prefix}, path...), "_")
}
