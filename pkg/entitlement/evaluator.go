package entitlement

import (
	"context"
	"errors"
	"time"

	"github.com/promoflow/entitlements/pkg/plan"
	"github.com/promoflow/entitlements/pkg/tenant"
	"github.com/promoflow/entitlements/pkg/usage"
)

// Evaluator combines the plan catalog with live usage counts to decide
// whether a tenant may create another instance of a bounded resource.
//
// Evaluation is stateless: every call re-reads tenant, plan and count, so
// concurrent checks for different tenants share no mutable state. For the
// same tenant the contract is read-then-decide; two concurrent checks may
// both pass with one unit of quota left. That race is accepted here, a
// store-side conditional increment is the stronger extension.
type Evaluator struct {
	resolver *tenant.Resolver
	catalog  *plan.Catalog
	counter  usage.Counter
	now      func() time.Time
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEvaluator creates an Evaluator. Panics on nil dependencies to fail
// fast during initialization.
func NewEvaluator(resolver *tenant.Resolver, catalog *plan.Catalog, counter usage.Counter, opts ...Option) *Evaluator {
	if resolver == nil {
		panic("entitlement: tenant resolver is required")
	}
	if catalog == nil {
		panic("entitlement: plan catalog is required")
	}
	if counter == nil {
		panic("entitlement: usage counter is required")
	}

	e := &Evaluator{
		resolver: resolver,
		catalog:  catalog,
		counter:  counter,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// effectiveTier resolves the tenant and returns the tier its entitlements
// are judged against. An expired assignment degrades to the free tier
// rather than blocking every operation; so does an unknown plan id. Both
// fallbacks are deliberate policy, kept as explicit branches.
func (e *Evaluator) effectiveTier(ctx context.Context, rawID any) (*tenant.Account, plan.Tier, error) {
	acc, err := e.resolver.Resolve(ctx, rawID)
	if err != nil {
		return nil, plan.Tier{}, err
	}

	planID := acc.PlanID()
	if acc.Assignment.ExpiredAt(e.now()) {
		planID = plan.FreePlanID
	}

	return acc, e.catalog.Resolve(planID), nil
}

// Evaluate computes the entitlement status for one tenant/resource pair.
//
// TenantNotFound and CountUnavailable propagate as-is; this function never
// invents a tenant and leaves degrade-vs-fail decisions to the caller.
func (e *Evaluator) Evaluate(ctx context.Context, rawID any, res plan.Resource) (Result, error) {
	acc, tier, err := e.effectiveTier(ctx, rawID)
	if err != nil {
		return Result{}, err
	}

	current, err := e.counter.Count(ctx, acc.ID, res)
	if err != nil {
		return Result{}, err
	}

	return Compute(res, tier.LimitFor(res), current), nil
}

// CanCreate is the call-site shape for "may I create X": nil when allowed,
// ErrLimitExceeded when the cap is reached, resolution/count errors as-is.
func (e *Evaluator) CanCreate(ctx context.Context, rawID any, res plan.Resource) error {
	result, err := e.Evaluate(ctx, rawID, res)
	if err != nil {
		return err
	}
	if !result.Allowed {
		return ErrLimitExceeded
	}
	return nil
}

// CanDowngrade checks whether current usage fits inside the target plan's
// caps. The target must exist: this is an explicit plan reference, so an
// unknown id fails loudly instead of degrading.
func (e *Evaluator) CanDowngrade(ctx context.Context, rawID any, targetPlanID string) error {
	if !e.catalog.Exists(targetPlanID) {
		return plan.ErrUnknownPlan
	}
	target := e.catalog.Resolve(targetPlanID)

	acc, _, err := e.effectiveTier(ctx, rawID)
	if err != nil {
		return err
	}

	for _, res := range e.counter.Resources() {
		targetLimit := target.LimitFor(res)
		if targetLimit == plan.Unlimited {
			continue
		}

		current, err := e.counter.Count(ctx, acc.ID, res)
		if err != nil {
			return err
		}
		if current > targetLimit {
			return errors.Join(ErrDowngradeNotPossible, errorsForResource(res, current, targetLimit))
		}
	}
	return nil
}

// Resources lists the resource types the evaluator can count.
func (e *Evaluator) Resources() []plan.Resource {
	return e.counter.Resources()
}

// Aggregate evaluates every registered resource type for the tenant, for
// dashboard consumption. A failing count drops only its own entry; the
// report never fails globally on one broken counter.
func (e *Evaluator) Aggregate(ctx context.Context, rawID any) (map[plan.Resource]Result, error) {
	acc, tier, err := e.effectiveTier(ctx, rawID)
	if err != nil {
		return nil, err
	}

	resources := e.counter.Resources()
	report := make(map[plan.Resource]Result, len(resources))
	for _, res := range resources {
		current, err := e.counter.Count(ctx, acc.ID, res)
		if err != nil {
			continue
		}
		report[res] = Compute(res, tier.LimitFor(res), current)
	}
	return report, nil
}
