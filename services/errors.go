package services

import "errors"

// Failure taxonomy surfaced to controllers. Anything else coming out of a
// service is an opaque storage error and is propagated unchanged.
var (
	// ErrNotFound means the referenced post, comment or reply does not exist.
	// On read paths this is a normal outcome, not a fault.
	ErrNotFound = errors.New("record not found")
	// ErrValidation means the input was malformed or referenced an entity the
	// acting member may not use.
	ErrValidation = errors.New("invalid input")
	// ErrConflict means a uniqueness violation was detected by the storage
	// layer, typically from a racing toggle or duplicate report.
	ErrConflict = errors.New("conflicting concurrent update")
)
