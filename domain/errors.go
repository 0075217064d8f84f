package domain

import "errors"

// Sentinel errors surfaced by the repository and auth layers. Handlers
// translate these into HTTP statuses; anything else is a 500 with a
// generic body.
var (
	// ErrNotFound covers both a missing invoice and one owned by a
	// different user, so lookups never leak existence.
	ErrNotFound = errors.New("invoice not found")

	// ErrInvalidCredentials is returned for unknown identifiers and
	// wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
