package model

import "errors"

// Error taxonomy shared by all ledger components. Wrap these with
// fmt.Errorf("...: %w", ...) and match with errors.Is.
var (
	// ErrValidation marks malformed input rejected before any write.
	ErrValidation = errors.New("validation failed")

	// ErrPersistence marks a file or database I/O failure. Nothing written
	// under this error may be treated as durable.
	ErrPersistence = errors.New("persistence failed")

	// ErrNotFound marks a lookup for a date with no ledger document.
	ErrNotFound = errors.New("not found")
)
