// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Every document fmtgen reads (format catalogs, identifier enum files and the
// configuration file) goes through the same 3-step flow:
//
//  1. Compile the embedded schema
//  2. Compile the user document and unify it with the schema
//  3. Validate and decode to a Go struct
//
// Documents may be written in CUE, JSON, YAML or TOML. CUE and JSON are
// compiled directly, YAML is extracted with CUE's YAML encoder, and TOML is
// decoded with go-toml and encoded into a CUE value, so schema errors look the
// same regardless of the source syntax.
//
// # Usage
//
//	//go:embed catalog_schema.cue
//	var catalogSchema string
//
//	result, err := cueutil.ParseAndDecodeString[catalogFile](
//	    catalogSchema,
//	    data,
//	    "#Catalog",
//	    cueutil.WithFilename(path),
//	    cueutil.WithSyntax(cueutil.SyntaxYAML),
//	)
//	if err != nil {
//	    return nil, err  // Error includes CUE path for debugging
//	}
package cueutil
