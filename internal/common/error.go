package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors for price entries, raised on both sides of the wire.
	ErrInvalidEntry = errors.New("invalid price entry")

	// Auth errors (missing, invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden is returned when a caller writes on behalf of another owner.
	ErrForbidden = errors.New("forbidden")
)
