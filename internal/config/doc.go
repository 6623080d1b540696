// SPDX-License-Identifier: MPL-2.0

// Package config handles fmtgen configuration using Viper with CUE as the file format.
//
// The configuration is looked up at the path given with --config, then at
// ./fmtgen.cue, then at config.cue in the user configuration directory
// ($XDG_CONFIG_HOME/fmtgen on Linux, ~/Library/Application Support/fmtgen on
// macOS, %APPDATA%\fmtgen on Windows). Files are validated against the
// embedded #Config schema and every key can be overridden from the
// environment with the FMTGEN_ prefix, e.g. FMTGEN_SYMBOL_PREFIX.
package config
