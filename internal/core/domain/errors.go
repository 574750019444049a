package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested event does not exist.
	// Callers resolving asynchronous results treat this as a no-op,
	// since the target event may have been legitimately deleted mid-flight.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID indicates an event with the same ID already exists.
	ErrDuplicateID = errors.New("duplicate event id")

	// ErrInvalidYear indicates a year string that is not a 4-digit year
	// in the supported range.
	ErrInvalidYear = errors.New("invalid year")

	// ErrEmptyDescription indicates an event submission with no text.
	ErrEmptyDescription = errors.New("empty description")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Title/year inference falls back to local truncation without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
