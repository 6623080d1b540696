// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that fail the test on
// error instead of returning it: environment and working directory changes
// with restoring cleanups, and file fixtures.
package testutil
