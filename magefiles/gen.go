// SPDX-License-Identifier: MPL-2.0

//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
)

type Gen mg.Namespace

// Formats regenerates gen/ from the sample catalog.
func (Gen) Formats() error {
	mg.Deps(Build.Binary)
	if err := os.MkdirAll("gen", 0o755); err != nil {
		return err
	}
	_, err := executeCmd("bin/fmtgen",
		withArgs("generate", "--enum", "catalog/enum.cue", "--all", "--out-dir", "gen", "catalog/formats/*"),
		withStream())
	return err
}

// Describe prints the report of one sample format, R8G8B8A8_UNORM by default.
func (Gen) Describe() error {
	mg.Deps(Build.Binary)
	name := os.Getenv("FORMAT")
	if name == "" {
		name = "R8G8B8A8_UNORM"
	}
	_, err := executeCmd("bin/fmtgen", withArgs("describe", name, "catalog/formats/*"), withDir("."), withStream())
	return err
}
