// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the file or format involved,
// and remediation hints. The issue catalog holds longer Markdown guidance,
// rendered with glamour, for the failure classes users hit most often.
package issue
