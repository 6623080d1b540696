// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/fmtgen/fmtgen/internal/config"
	"github.com/fmtgen/fmtgen/internal/testutil"
)

const testCatalog = `formats: [
	{
		name:       "R8G8B8A8_UNORM"
		layout:     "plain"
		colorspace: "RGB"
		channels: ["UN8", "UN8", "UN8", "UN8"]
		swizzles: ["X", "Y", "Z", "W"]
		le_alias: "RGBA8888_UNORM"
		be_alias: "ABGR8888_UNORM"
	},
	{
		name:       "R8G8B8A8_SRGB"
		layout:     "plain"
		colorspace: "SRGB"
		channels: ["UN8", "UN8", "UN8", "UN8"]
		swizzles: ["X", "Y", "Z", "W"]
	},
	{
		name:       "Z24_UNORM_S8_UINT"
		layout:     "plain"
		colorspace: "ZS"
		channels: ["UN24", "UP8"]
		swizzles: ["X", "Y", "_", "_"]
		be_channels: ["UP8", "UN24"]
		be_swizzles: ["Y", "X", "_", "_"]
	},
]
`

const testCatalogDuplicate = `formats: [
	{
		name:       "R8G8B8A8_UNORM"
		layout:     "plain"
		colorspace: "RGB"
		channels: ["UN8", "UN8", "UN8", "UN8"]
		swizzles: ["X", "Y", "Z", "W"]
	},
]
`

// staticConfigProvider returns a fixed configuration without touching the
// file system.
type staticConfigProvider struct {
	cfg  *config.Config
	path string
	err  error
}

func (p *staticConfigProvider) Load(ctx context.Context, _ config.LoadOptions) (*config.Config, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if p.err != nil {
		return nil, "", p.err
	}
	cfg := *p.cfg
	return &cfg, p.path, nil
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the command tree with default configuration.
func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	return runCLIWithProvider(t, &staticConfigProvider{cfg: config.DefaultConfig()}, args...)
}

func runCLIWithProvider(t *testing.T, provider config.Provider, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{Config: provider, Stdout: &stdout, Stderr: &stderr})
	root := NewRootCommand(app)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// writeCatalog writes the test catalog into a fresh directory.
func writeCatalog(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	return dir, testutil.MustWriteFile(t, dir, "formats.cue", testCatalog)
}
