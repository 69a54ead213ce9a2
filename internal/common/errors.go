// Package common defines shared sentinel errors used across client and
// server layers of gl. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors, rejected before any transaction opens.
	ErrorValidation = errors.New("validation error")

	// ErrorConstraint means a unique or check constraint would be broken.
	// It indicates a position-allocation bug or a lost race; the enclosing
	// transaction is rolled back in full.
	ErrorConstraint = errors.New("constraint violation")

	// ErrorConflictRetryable is returned on lock timeouts and serialization
	// failures under concurrent load. The whole operation may be retried.
	ErrorConflictRetryable = errors.New("conflict, retry")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
)
