// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
	"github.com/pelletier/go-toml/v2"
)

const (
	// SyntaxCUE is CUE source.
	SyntaxCUE Syntax = "cue"
	// SyntaxJSON is JSON source, compiled as CUE.
	SyntaxJSON Syntax = "json"
	// SyntaxYAML is YAML source.
	SyntaxYAML Syntax = "yaml"
	// SyntaxTOML is TOML source.
	SyntaxTOML Syntax = "toml"
)

// ErrUnsupportedSyntax is returned for file extensions with no known syntax.
var ErrUnsupportedSyntax = errors.New("unsupported document syntax")

type (
	// Syntax identifies the source language of a document.
	Syntax string

	// ParseResult contains the result of a successful parse operation.
	ParseResult[T any] struct {
		// Value is the decoded Go struct.
		Value *T

		// Unified is the unified CUE value, available for callers that need
		// to inspect fields the struct does not carry.
		Unified cue.Value
	}
)

// SyntaxFromPath derives the document syntax from a file extension.
func SyntaxFromPath(path string) (Syntax, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return SyntaxCUE, nil
	case ".json":
		return SyntaxJSON, nil
	case ".yaml", ".yml":
		return SyntaxYAML, nil
	case ".toml":
		return SyntaxTOML, nil
	default:
		return "", fmt.Errorf("%s: %w (expected .cue, .json, .yaml, .yml or .toml)", path, ErrUnsupportedSyntax)
	}
}

// ParseAndDecode performs the 3-step CUE parsing flow:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to Go struct
//
// schemaPath is the path of the root definition in the schema (e.g. "#Catalog").
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	filename := options.filename
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckFileSize(data, options.maxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue, err := compileDocument(ctx, data, filename, options.syntax)
	if err != nil {
		return nil, err
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)

	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &ParseResult[T]{
		Value:   &result,
		Unified: unified,
	}, nil
}

// ParseAndDecodeString is a convenience wrapper that accepts the schema as a
// string, which is how embedded schemas are usually declared.
func ParseAndDecodeString[T any](schema string, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	return ParseAndDecode[T]([]byte(schema), data, schemaPath, opts...)
}

// compileDocument turns raw document bytes of the given syntax into a CUE
// value owned by ctx.
func compileDocument(ctx *cue.Context, data []byte, filename string, syntax Syntax) (cue.Value, error) {
	switch syntax {
	case SyntaxCUE, SyntaxJSON, "":
		v := ctx.CompileBytes(data, cue.Filename(filename))
		if v.Err() != nil {
			return cue.Value{}, FormatError(v.Err(), filename)
		}
		return v, nil

	case SyntaxYAML:
		file, err := yaml.Extract(filename, data)
		if err != nil {
			return cue.Value{}, FormatError(err, filename)
		}
		v := ctx.BuildFile(file)
		if v.Err() != nil {
			return cue.Value{}, FormatError(v.Err(), filename)
		}
		return v, nil

	case SyntaxTOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			var decodeErr *toml.DecodeError
			if errors.As(err, &decodeErr) {
				row, col := decodeErr.Position()
				return cue.Value{}, fmt.Errorf("%s:%d:%d: %s", filename, row, col, decodeErr.Error())
			}
			return cue.Value{}, fmt.Errorf("%s: %w", filename, err)
		}
		v := ctx.Encode(doc)
		if v.Err() != nil {
			return cue.Value{}, FormatError(v.Err(), filename)
		}
		return v, nil

	default:
		return cue.Value{}, fmt.Errorf("%s: %w %q", filename, ErrUnsupportedSyntax, syntax)
	}
}
