package tenant

import "context"

// Store defines tenant persistence as seen by this engine: read access to
// accounts and write access to the single plan assignment record it owns.
// The accounts themselves belong to an external collaborator.
type Store interface {
	// FindByIdentifier retrieves an account matching the canonical id via
	// any of the recognized id fields. Returns ErrTenantNotFound when no
	// record matches.
	FindByIdentifier(ctx context.Context, id string) (*Account, error)

	// SaveAssignment replaces the tenant's plan assignment in a single
	// write, so concurrent saves for the same tenant are last-write-wins.
	SaveAssignment(ctx context.Context, tenantID string, assignment PlanAssignment) error
}
