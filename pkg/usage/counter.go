package usage

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/promoflow/entitlements/pkg/plan"
)

// ErrCountUnavailable is returned when the underlying store cannot be
// reached while counting. A clean zero-record result is a valid count of
// 0, never an error.
var ErrCountUnavailable = errors.New("resource count unavailable")

// Counter reports current usage per tenant and resource type.
type Counter interface {
	// Count returns how many records of the resource type the tenant owns.
	Count(ctx context.Context, tenantID string, res plan.Resource) (int64, error)

	// Resources lists the resource types this counter knows how to count.
	Resources() []plan.Resource
}

// CounterFunc counts one resource type for a tenant.
// Should be fast: aggregate at the store or cache in front of it.
type CounterFunc func(ctx context.Context, tenantID string) (int64, error)

// Registry maps resource types to counter functions. Not thread-safe:
// register everything at startup, then treat as immutable.
type Registry map[plan.Resource]CounterFunc

// NewRegistry returns a new, empty Registry.
func NewRegistry() Registry {
	return make(Registry)
}

// Register sets or replaces the CounterFunc for a resource. Panics if fn
// is nil.
func (r Registry) Register(res plan.Resource, fn CounterFunc) {
	if fn == nil {
		panic(fmt.Sprintf("usage: CounterFunc for resource %q cannot be nil", res))
	}
	r[res] = fn
}

// Count dispatches to the registered function for the resource type.
func (r Registry) Count(ctx context.Context, tenantID string, res plan.Resource) (int64, error) {
	fn, ok := r[res]
	if !ok {
		return 0, fmt.Errorf("%w: no counter registered for resource %q", ErrCountUnavailable, res)
	}
	return fn(ctx, tenantID)
}

// Resources lists the registered resource types in stable order.
func (r Registry) Resources() []plan.Resource {
	out := make([]plan.Resource, 0, len(r))
	for res := range r {
		out = append(out, res)
	}
	slices.Sort(out)
	return out
}
