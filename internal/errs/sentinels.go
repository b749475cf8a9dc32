// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates missing or invalid owner credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the acting identity lacks permission for the operation.
	ErrForbidden = errors.New("not permitted")

	// ErrInvalidToken covers unknown, revoked, expired and malformed share tokens alike.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrValidation prefixes input validation failures.
	ErrValidation = errors.New("validation")

	// ErrStorage indicates a persistence failure; callers keep local state and retry later.
	ErrStorage = errors.New("storage failure")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., share token taken).
	ErrAlreadyExists = errors.New("already exists")
)
