// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across api/store layers.
var (
	// ErrUnauthorized indicates invalid credentials or an expired session (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested entity does not exist (HTTP 404).
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates the remote API rejected a malformed submission (HTTP 400/422).
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates a transport failure with no HTTP response to parse.
	ErrUnavailable = errors.New("service unavailable")

	// ErrNoSession indicates an operation that requires an authenticated session.
	ErrNoSession = errors.New("no active session")

	// ErrSessionExists indicates login/register attempted while already authenticated.
	ErrSessionExists = errors.New("session already active")
)
