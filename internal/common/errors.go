// Package common defines shared constants and sentinel errors used across
// minimart components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration errors.
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")

	// Validation errors.
	ErrNotAnImage = errors.New("file is not an image")

	// Token verification failure kinds. The transport collapses all three
	// into a single unauthenticated response, but they stay distinguishable
	// here for logging and tests.
	ErrTokenMalformed = errors.New("token malformed")
	ErrBadSignature   = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)
