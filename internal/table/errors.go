// SPDX-License-Identifier: MPL-2.0

package table

import "fmt"

// RangeViolation is the panic value raised when a getter receives an
// identifier outside [0, Count). It signals a broken caller precondition and
// is never returned as an error.
type RangeViolation struct {
	ID    ID
	Count int
}

// Error implements the error interface.
func (e *RangeViolation) Error() string {
	return fmt.Sprintf("format identifier %d out of range [0, %d)", e.ID, e.Count)
}
