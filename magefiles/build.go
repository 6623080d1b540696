// SPDX-License-Identifier: MPL-2.0

//go:build mage

package main

import (
	"fmt"
	"time"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

const versionPkg = "github.com/fmtgen/fmtgen/cmd/fmtgen"

// Binary builds bin/fmtgen with version information stamped in.
func (Build) Binary() error {
	version := gitOutput("dev", "describe", "--tags", "--always", "--dirty")
	commit := gitOutput("unknown", "rev-parse", "--short", "HEAD")
	ldflags := fmt.Sprintf("-s -w -X %[1]s.Version=%[2]s -X %[1]s.Commit=%[3]s -X %[1]s.BuildDate=%[4]s",
		versionPkg, version, commit, time.Now().UTC().Format(time.RFC3339))

	_, err := executeCmd("go", withArgs("build", "-trimpath", "-ldflags", ldflags, "-o", "bin/fmtgen", "."),
		withEnv("CGO_ENABLED=0"), withStream())
	return err
}

// Tidy runs go mod tidy.
func (Build) Tidy() error {
	_, err := executeCmd("go", withArgs("mod", "tidy"))
	return err
}
