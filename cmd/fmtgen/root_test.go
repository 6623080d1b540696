// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-03-01T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-03-01T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestRootCommandTree(t *testing.T) {
	t.Parallel()

	root := NewRootCommand(NewApp(Dependencies{Config: &staticConfigProvider{}}))
	want := []string{"completion", "config", "describe", "generate", "list", "modtree"}
	for _, name := range want {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command has no %q subcommand", name)
		}
	}
	if root.PersistentFlags().Lookup("verbose") == nil || root.PersistentFlags().Lookup("config") == nil {
		t.Error("root command is missing --verbose or --config")
	}
}

func TestConfigLoadFailureIsReported(t *testing.T) {
	t.Parallel()

	_, path := writeCatalog(t)
	res := runCLIWithProvider(t, &staticConfigProvider{err: errors.New("broken config")}, "generate", path)

	if exitCodeFor(res.err) != 1 {
		t.Errorf("exit code = %d, want 1 (err = %v)", exitCodeFor(res.err), res.err)
	}
	if !strings.Contains(res.stderr, "broken config") {
		t.Errorf("stderr = %q, want the config error", res.stderr)
	}
	if res.stdout != "" {
		t.Errorf("stdout = %q, want nothing", res.stdout)
	}
}

func TestCompletion(t *testing.T) {
	t.Parallel()

	res := runCLI(t, "completion", "bash")
	if res.err != nil {
		t.Fatalf("completion bash error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "fmtgen") {
		t.Error("bash completion script does not mention fmtgen")
	}

	if res := runCLI(t, "completion", "tcsh"); res.err == nil {
		t.Error("completion accepted an unsupported shell")
	}
}
