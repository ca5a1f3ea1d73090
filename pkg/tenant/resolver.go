package tenant

import "context"

// Resolver turns loosely-typed tenant identifiers into canonical accounts.
type Resolver struct {
	store Store
}

// NewResolver creates a Resolver backed by the given store.
// Panics on nil store to fail fast during initialization.
func NewResolver(store Store) *Resolver {
	if store == nil {
		panic("tenant: Store is required")
	}
	return &Resolver{store: store}
}

// Resolve normalizes the identifier and looks up the account. Resolution
// through a legacy alias field is a documented compatibility path, not an
// error; only a true miss returns ErrTenantNotFound.
func (r *Resolver) Resolve(ctx context.Context, rawID any) (*Account, error) {
	id, err := NormalizeID(rawID)
	if err != nil {
		return nil, err
	}
	return r.store.FindByIdentifier(ctx, id)
}
