package tenant_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/promoflow/entitlements/pkg/tenant"
)

func TestPlanAssignmentExpiredAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("within window", func(t *testing.T) {
		t.Parallel()

		a := &tenant.PlanAssignment{PlanID: "pro", EndDate: now.AddDate(0, 0, 1)}

		assert.False(t, a.ExpiredAt(now))
	})

	t.Run("past window", func(t *testing.T) {
		t.Parallel()

		a := &tenant.PlanAssignment{PlanID: "pro", EndDate: now.AddDate(0, 0, -1)}

		assert.True(t, a.ExpiredAt(now))
	})

	t.Run("end date is inclusive", func(t *testing.T) {
		t.Parallel()

		a := &tenant.PlanAssignment{PlanID: "pro", EndDate: now}

		assert.False(t, a.ExpiredAt(now))
	})

	t.Run("zero end date never expires", func(t *testing.T) {
		t.Parallel()

		a := &tenant.PlanAssignment{PlanID: "legacy"}

		assert.False(t, a.ExpiredAt(now))
	})

	t.Run("nil assignment never expires", func(t *testing.T) {
		t.Parallel()

		var a *tenant.PlanAssignment

		assert.False(t, a.ExpiredAt(now))
	})
}
