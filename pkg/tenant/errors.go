package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when an identifier resolves to no
	// account via any recognized field. Never silently defaulted.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidIdentifier is returned when the identifier format is invalid.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrStoreUnavailable is returned when the underlying store cannot be
	// reached, as opposed to a clean not-found.
	ErrStoreUnavailable = errors.New("tenant store unavailable")
)
