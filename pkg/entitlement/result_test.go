package entitlement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/promoflow/entitlements/pkg/entitlement"
	"github.com/promoflow/entitlements/pkg/plan"
)

func TestCompute(t *testing.T) {
	t.Parallel()

	t.Run("allowed under limit", func(t *testing.T) {
		t.Parallel()

		r := entitlement.Compute(plan.ResourceFlyers, 10, 3)

		assert.True(t, r.Allowed)
		assert.False(t, r.HasReached())
		assert.Equal(t, int64(7), r.Remaining)
		assert.Equal(t, 30, r.PercentUsed)
	})

	t.Run("blocked at limit", func(t *testing.T) {
		t.Parallel()

		r := entitlement.Compute(plan.ResourceFlyers, 5, 5)

		assert.False(t, r.Allowed)
		assert.True(t, r.HasReached())
		assert.Equal(t, int64(0), r.Remaining)
		assert.Equal(t, 100, r.PercentUsed)
	})

	t.Run("unlimited ignores current", func(t *testing.T) {
		t.Parallel()

		for _, current := range []int64{0, 1, 1_000_000} {
			r := entitlement.Compute(plan.ResourceProducts, plan.Unlimited, current)

			assert.True(t, r.Allowed)
			assert.Equal(t, plan.Unlimited, r.Remaining)
			assert.Equal(t, 0, r.PercentUsed)
		}
	})

	t.Run("zero limit means disabled", func(t *testing.T) {
		t.Parallel()

		for _, current := range []int64{0, 1, 42} {
			r := entitlement.Compute(plan.ResourceIntegrations, 0, current)

			assert.False(t, r.Allowed)
			assert.Equal(t, int64(0), r.Remaining)
			assert.Equal(t, 100, r.PercentUsed)
		}
	})

	t.Run("percentage rounds half up", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 33, entitlement.Compute(plan.ResourceFlyers, 3, 1).PercentUsed)
		assert.Equal(t, 67, entitlement.Compute(plan.ResourceFlyers, 3, 2).PercentUsed)
		assert.Equal(t, 17, entitlement.Compute(plan.ResourceFlyers, 6, 1).PercentUsed)
	})

	t.Run("percentage capped at 100 when over quota", func(t *testing.T) {
		t.Parallel()

		r := entitlement.Compute(plan.ResourceFlyers, 5, 12)

		assert.False(t, r.Allowed)
		assert.Equal(t, int64(0), r.Remaining)
		assert.Equal(t, 100, r.PercentUsed)
	})

	t.Run("negative current clamps to zero", func(t *testing.T) {
		t.Parallel()

		r := entitlement.Compute(plan.ResourceFlyers, 5, -3)

		assert.True(t, r.Allowed)
		assert.Equal(t, int64(0), r.Current)
		assert.Equal(t, int64(5), r.Remaining)
		assert.Equal(t, 0, r.PercentUsed)
	})

	t.Run("invariants hold across a grid", func(t *testing.T) {
		t.Parallel()

		for limit := int64(-1); limit <= 10; limit++ {
			for current := int64(0); current <= 15; current++ {
				r := entitlement.Compute(plan.ResourceFlyers, limit, current)

				assert.Equal(t, limit == plan.Unlimited || current < limit, r.Allowed,
					"allowed mismatch for limit=%d current=%d", limit, current)
				assert.GreaterOrEqual(t, r.PercentUsed, 0)
				assert.LessOrEqual(t, r.PercentUsed, 100)
			}
		}
	})
}
