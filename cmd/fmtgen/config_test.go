// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fmtgen/fmtgen/internal/config"
)

func TestConfigShow(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Identifier.Prefix = "MY_FORMAT_"
	res := runCLIWithProvider(t, &staticConfigProvider{cfg: cfg, path: "/etc/fmtgen.cue"}, "config", "show")
	if res.err != nil {
		t.Fatalf("config show error = %v", res.err)
	}
	for _, want := range []string{"/etc/fmtgen.cue", "MY_FORMAT_", "u_format_table.c", "debounce_ms: 300"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("config show output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestShowConfigDefaults(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	showConfig(&out, config.DefaultConfig(), "")
	if !strings.Contains(out.String(), "(using defaults)") {
		t.Errorf("showConfig() without a file does not say so:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "PIPE_FORMAT_") {
		t.Errorf("showConfig() misses the identifier prefix:\n%s", out.String())
	}
}

func TestConfigDump(t *testing.T) {
	t.Parallel()

	res := runCLI(t, "config", "dump")
	if res.err != nil {
		t.Fatalf("config dump error = %v", res.err)
	}
	if res.stdout != config.GenerateCUE(config.DefaultConfig()) {
		t.Errorf("config dump output differs from GenerateCUE:\n%s", res.stdout)
	}
}
