package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown store backend or payload type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Annotation Errors.

	// ErrUnknownSource indicates a source outside the registry was referenced.
	// This is a programming error, never a data condition.
	ErrUnknownSource = errors.New("unknown annotation source")

	// ErrInvalidRange indicates a range with start < 1 or start > end reached the aggregate.
	// Normalisers must never emit such a range.
	ErrInvalidRange = errors.New("invalid residue range")

	// ErrNoCoverage indicates a source has no record at all for the protein.
	// Callers treat the source as absent rather than empty.
	ErrNoCoverage = errors.New("no coverage for protein")

	// Collaborator Errors.

	// ErrStoreUnavailable indicates the protein store is not configured.
	ErrStoreUnavailable = errors.New("protein store unavailable")

	// ErrRateLimited indicates an upstream API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// UnknownSourceError reports the offending source identifier.
// It matches ErrUnknownSource with errors.Is.
type UnknownSourceError struct {
	Source AnnotationSource
}

// Error implements the error interface.
func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown annotation source %q", string(e.Source))
}

// Is reports whether target is ErrUnknownSource.
func (e *UnknownSourceError) Is(target error) bool {
	return target == ErrUnknownSource
}
