// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the fmtgen command line interface.
//
// Every command handler receives an App holding the configuration provider
// and the output streams. Generated artifacts go to files or standard output;
// logs and diagnostics always go to standard error.
package cmd
