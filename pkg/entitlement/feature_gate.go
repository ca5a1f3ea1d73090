package entitlement

import (
	"context"
	"time"

	"github.com/promoflow/entitlements/pkg/plan"
	"github.com/promoflow/entitlements/pkg/tenant"
)

// Gate answers boolean capability checks against a tenant's effective
// plan. It carries no state beyond its dependencies.
type Gate struct {
	resolver *tenant.Resolver
	catalog  *plan.Catalog
	now      func() time.Time
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithGateClock overrides the time source, mainly for tests.
func WithGateClock(now func() time.Time) GateOption {
	return func(g *Gate) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGate creates a feature gate. Panics on nil dependencies.
func NewGate(resolver *tenant.Resolver, catalog *plan.Catalog, opts ...GateOption) *Gate {
	if resolver == nil {
		panic("entitlement: tenant resolver is required")
	}
	if catalog == nil {
		panic("entitlement: plan catalog is required")
	}
	g := &Gate{resolver: resolver, catalog: catalog, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// HasFeature reports whether the tenant's effective plan grants the
// feature. Unknown keys are never granted, but resolution failures
// surface to the caller: a missing tenant is caller misuse, not a
// missing capability.
func (g *Gate) HasFeature(ctx context.Context, rawID any, f plan.Feature) (bool, error) {
	acc, err := g.resolver.Resolve(ctx, rawID)
	if err != nil {
		return false, err
	}

	planID := acc.PlanID()
	if acc.Assignment.ExpiredAt(g.now()) {
		planID = plan.FreePlanID
	}

	return g.catalog.HasFeature(planID, f), nil
}
