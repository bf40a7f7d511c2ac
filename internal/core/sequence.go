package core

import (
	"strconv"
	"strings"
)

const (
	// FirstInvoiceNumber is issued when an owner has no prior invoices.
	FirstInvoiceNumber = 1001

	// fallbackLastNumber stands in for a stored invoice number that cannot be
	// parsed as a positive integer, so sequencing still yields a valid
	// successor instead of failing.
	fallbackLastNumber = 1000
)

// NextInvoiceNumber computes the next sequential invoice number for an owner.
// lastIssued is the numerically greatest number previously stored for that
// owner; exists is false when the owner has no prior invoices.
//
// This is advisory uniqueness only: two concurrent creations for the same
// owner can race on read-then-write. Callers needing strict uniqueness must
// arbitrate in the storage layer.
func NextInvoiceNumber(lastIssued string, exists bool) int {
	if !exists {
		return FirstInvoiceNumber
	}
	n, err := strconv.Atoi(strings.TrimSpace(lastIssued))
	if err != nil || n <= 0 {
		n = fallbackLastNumber
	}
	return n + 1
}
