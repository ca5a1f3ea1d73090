package entitlement_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promoflow/entitlements/pkg/entitlement"
	"github.com/promoflow/entitlements/pkg/plan"
	"github.com/promoflow/entitlements/pkg/tenant"
)

func TestGateHasFeature(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("granted by active plan", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore(&tenant.Account{
			ID:         "t1",
			Active:     true,
			Assignment: assignmentFor("pro", now.AddDate(0, 0, -1), now.AddDate(0, 1, 0)),
		})
		gate := entitlement.NewGate(tenant.NewResolver(store), newTestCatalog(t), entitlement.WithGateClock(func() time.Time { return now }))

		enabled, err := gate.HasFeature(context.Background(), "t1", plan.FeatureAnalytics)

		require.NoError(t, err)
		assert.True(t, enabled)
	})

	t.Run("unknown feature key fails closed", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore(&tenant.Account{
			ID:         "t1",
			Active:     true,
			Assignment: assignmentFor("pro", now.AddDate(0, 0, -1), now.AddDate(0, 1, 0)),
		})
		gate := entitlement.NewGate(tenant.NewResolver(store), newTestCatalog(t), entitlement.WithGateClock(func() time.Time { return now }))

		enabled, err := gate.HasFeature(context.Background(), "t1", plan.Feature("quantum_mode"))

		require.NoError(t, err)
		assert.False(t, enabled)
	})

	t.Run("missing tenant surfaces the error", func(t *testing.T) {
		t.Parallel()

		gate := entitlement.NewGate(tenant.NewResolver(newFakeStore()), newTestCatalog(t))

		enabled, err := gate.HasFeature(context.Background(), "ghost", plan.FeatureAnalytics)

		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		assert.False(t, enabled)
	})

	t.Run("store failure surfaces the error", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore(&tenant.Account{ID: "t1", Active: true})
		store.findErr = tenant.ErrStoreUnavailable
		gate := entitlement.NewGate(tenant.NewResolver(store), newTestCatalog(t))

		_, err := gate.HasFeature(context.Background(), "t1", plan.FeatureAnalytics)

		assert.ErrorIs(t, err, tenant.ErrStoreUnavailable)
	})

	t.Run("expired plan loses paid features", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore(&tenant.Account{
			ID:         "t1",
			Active:     true,
			Assignment: assignmentFor("pro", now.AddDate(0, -2, 0), now.AddDate(0, -1, 0)),
		})
		gate := entitlement.NewGate(tenant.NewResolver(store), newTestCatalog(t), entitlement.WithGateClock(func() time.Time { return now }))

		enabled, err := gate.HasFeature(context.Background(), "t1", plan.FeatureAnalytics)

		require.NoError(t, err)
		assert.False(t, enabled)
	})
}
