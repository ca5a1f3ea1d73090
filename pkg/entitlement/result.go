package entitlement

import "github.com/promoflow/entitlements/pkg/plan"

// Result is the computed entitlement status for one tenant/resource pair.
// It is derived on every evaluation, never persisted.
type Result struct {
	Resource    plan.Resource `json:"resource"`
	Limit       int64         `json:"limit"`
	Current     int64         `json:"current"`
	Remaining   int64         `json:"remaining"` // -1 when the limit is unlimited
	PercentUsed int           `json:"percent_used"`
	Allowed     bool          `json:"allowed"`
}

// HasReached reports whether the tenant is at or over its cap.
func (r Result) HasReached() bool {
	return !r.Allowed
}

// Compute derives a Result from a limit and a current count.
//
// Invariants: PercentUsed stays within [0,100]; Allowed holds exactly when
// the limit is unlimited or the count is below it. A limit of 0 means the
// resource is disabled for the tier, reported as fully used rather than as
// a division error.
func Compute(res plan.Resource, limit, current int64) Result {
	if current < 0 {
		current = 0
	}

	result := Result{
		Resource: res,
		Limit:    limit,
		Current:  current,
		Allowed:  limit == plan.Unlimited || current < limit,
	}

	switch {
	case limit == plan.Unlimited:
		result.Remaining = plan.Unlimited
		result.PercentUsed = 0
	case limit == 0:
		result.Remaining = 0
		result.PercentUsed = 100
	default:
		result.Remaining = max(0, limit-current)
		// Half-up rounding, capped at 100 for over-quota tenants.
		result.PercentUsed = min(100, int((current*100+limit/2)/limit))
	}

	return result
}
