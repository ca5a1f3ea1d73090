package entitlement_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	module "github.com/promoflow/entitlements/modules/entitlement"
	"github.com/promoflow/entitlements/pkg/assignment"
	"github.com/promoflow/entitlements/pkg/entitlement"
	"github.com/promoflow/entitlements/pkg/plan"
	"github.com/promoflow/entitlements/pkg/tenant"
	"github.com/promoflow/entitlements/pkg/usage"
)

type memStore struct {
	mu       sync.Mutex
	accounts map[string]*tenant.Account
}

func (s *memStore) FindByIdentifier(ctx context.Context, id string) (*tenant.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if acc, ok := s.accounts[id]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *memStore) SaveAssignment(ctx context.Context, tenantID string, a tenant.PlanAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[tenantID]
	if !ok {
		return tenant.ErrTenantNotFound
	}
	acc.Assignment = &a
	return nil
}

type staticCounter struct {
	counts map[plan.Resource]int64
	errs   map[plan.Resource]error
}

func (c *staticCounter) Count(ctx context.Context, tenantID string, res plan.Resource) (int64, error) {
	if err, ok := c.errs[res]; ok {
		return 0, err
	}
	return c.counts[res], nil
}

func (c *staticCounter) Resources() []plan.Resource {
	out := make([]plan.Resource, 0, len(c.counts))
	for res := range c.counts {
		out = append(out, res)
	}
	for res := range c.errs {
		if !slices.Contains(out, res) {
			out = append(out, res)
		}
	}
	slices.Sort(out)
	return out
}

func newTestServer(t *testing.T, store *memStore, counter usage.Counter) *httptest.Server {
	t.Helper()

	catalog, err := plan.NewCatalog(context.Background(), plan.NewInMemSource(
		plan.Tier{
			ID:       "free",
			Name:     "Free",
			Interval: plan.IntervalNone,
			Limits: map[plan.Resource]int64{
				plan.ResourceFlyers:   3,
				plan.ResourceProducts: 10,
			},
		},
		plan.Tier{
			ID:       "pro",
			Name:     "Pro",
			Interval: plan.IntervalAnnual,
			Limits: map[plan.Resource]int64{
				plan.ResourceFlyers:   plan.Unlimited,
				plan.ResourceProducts: 100,
			},
			Features: []plan.Feature{plan.FeatureAnalytics},
		},
	))
	require.NoError(t, err)

	resolver := tenant.NewResolver(store)
	log := slog.New(slog.DiscardHandler)

	m := module.NewModule(
		entitlement.NewEvaluator(resolver, catalog, counter),
		entitlement.NewGate(resolver, catalog),
		assignment.NewManager(catalog, resolver, store, log),
		log,
	)

	srv := httptest.NewServer(m.Router())
	t.Cleanup(srv.Close)
	return srv
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestEntitlementEndpoint(t *testing.T) {
	t.Parallel()

	store := &memStore{accounts: map[string]*tenant.Account{
		"t1": {ID: "t1", Active: true},
	}}
	counter := &staticCounter{counts: map[plan.Resource]int64{
		plan.ResourceFlyers:   3,
		plan.ResourceProducts: 4,
	}}
	srv := newTestServer(t, store, counter)

	t.Run("reached cap", func(t *testing.T) {
		t.Parallel()

		resp, err := http.Get(srv.URL + "/entitlement/t1/flyers")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody[map[string]any](t, resp)
		assert.Equal(t, float64(3), body["limit"])
		assert.Equal(t, float64(3), body["current"])
		assert.Equal(t, true, body["hasReached"])
		assert.Equal(t, float64(100), body["percentage"])
	})

	t.Run("under cap", func(t *testing.T) {
		t.Parallel()

		resp, err := http.Get(srv.URL + "/entitlement/t1/products")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody[map[string]any](t, resp)
		assert.Equal(t, false, body["hasReached"])
		assert.Equal(t, float64(40), body["percentage"])
	})

	t.Run("unknown resource type", func(t *testing.T) {
		t.Parallel()

		resp, err := http.Get(srv.URL + "/entitlement/t1/timemachines")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		t.Parallel()

		resp, err := http.Get(srv.URL + "/entitlement/ghost/flyers")
		require.NoError(t, err)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeBody[map[string]map[string]string](t, resp)
		assert.Equal(t, "tenant_not_found", body["error"]["code"])
	})

	t.Run("count unavailable", func(t *testing.T) {
		t.Parallel()

		store := &memStore{accounts: map[string]*tenant.Account{
			"t1": {ID: "t1", Active: true},
		}}
		counter := &staticCounter{
			counts: map[plan.Resource]int64{},
			errs:   map[plan.Resource]error{plan.ResourceFlyers: usage.ErrCountUnavailable},
		}
		srv := newTestServer(t, store, counter)

		resp, err := http.Get(srv.URL + "/entitlement/t1/flyers")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestAggregateEndpoint(t *testing.T) {
	t.Parallel()

	store := &memStore{accounts: map[string]*tenant.Account{
		"t1": {ID: "t1", Active: true},
	}}
	counter := &staticCounter{
		counts: map[plan.Resource]int64{
			plan.ResourceFlyers: 1,
		},
		errs: map[plan.Resource]error{plan.ResourceProducts: usage.ErrCountUnavailable},
	}
	srv := newTestServer(t, store, counter)

	resp, err := http.Get(srv.URL + "/entitlement/t1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]map[string]any](t, resp)

	// The broken products counter drops its entry; the rest still renders.
	require.Contains(t, body, "flyers")
	assert.NotContains(t, body, "products")
	assert.Equal(t, float64(33), body["flyers"]["percentage"])
}

func TestPlanAssignmentEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("assigns and returns the window", func(t *testing.T) {
		t.Parallel()

		store := &memStore{accounts: map[string]*tenant.Account{
			"t1": {ID: "t1", Active: true},
		}}
		srv := newTestServer(t, store, &staticCounter{counts: map[plan.Resource]int64{}})

		resp, err := http.Post(srv.URL+"/plan-assignment", "application/json",
			strings.NewReader(`{"tenantId":"t1","planId":"pro"}`))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody[map[string]any](t, resp)
		assert.Equal(t, "pro", body["planId"])

		start, err := time.Parse(time.RFC3339, body["startDate"].(string))
		require.NoError(t, err)
		end, err := time.Parse(time.RFC3339, body["endDate"].(string))
		require.NoError(t, err)
		assert.Equal(t, start.AddDate(1, 0, 0), end) // pro bills annually

		acc, err := store.FindByIdentifier(context.Background(), "t1")
		require.NoError(t, err)
		require.NotNil(t, acc.Assignment)
		assert.Equal(t, "pro", acc.Assignment.PlanID)
	})

	t.Run("unknown plan is 404", func(t *testing.T) {
		t.Parallel()

		store := &memStore{accounts: map[string]*tenant.Account{
			"t1": {ID: "t1", Active: true},
		}}
		srv := newTestServer(t, store, &staticCounter{counts: map[plan.Resource]int64{}})

		resp, err := http.Post(srv.URL+"/plan-assignment", "application/json",
			strings.NewReader(`{"tenantId":"t1","planId":"platinum"}`))
		require.NoError(t, err)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeBody[map[string]map[string]string](t, resp)
		assert.Equal(t, "unknown_plan", body["error"]["code"])
	})

	t.Run("unknown tenant is 404", func(t *testing.T) {
		t.Parallel()

		store := &memStore{accounts: map[string]*tenant.Account{}}
		srv := newTestServer(t, store, &staticCounter{counts: map[plan.Resource]int64{}})

		resp, err := http.Post(srv.URL+"/plan-assignment", "application/json",
			strings.NewReader(`{"tenantId":"ghost","planId":"pro"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		t.Parallel()

		store := &memStore{accounts: map[string]*tenant.Account{}}
		srv := newTestServer(t, store, &staticCounter{counts: map[plan.Resource]int64{}})

		resp, err := http.Post(srv.URL+"/plan-assignment", "application/json",
			strings.NewReader(`{"tenantId":`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestFeatureEndpoint(t *testing.T) {
	t.Parallel()

	future := time.Now().UTC().AddDate(0, 1, 0)
	store := &memStore{accounts: map[string]*tenant.Account{
		"paid": {ID: "paid", Active: true, Assignment: &tenant.PlanAssignment{
			PlanID:  "pro",
			EndDate: future,
			Active:  true,
		}},
		"free": {ID: "free", Active: true},
	}}
	srv := newTestServer(t, store, &staticCounter{counts: map[plan.Resource]int64{}})

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"granted by paid plan", "/feature/paid/analytics", true},
		{"not granted on free plan", "/feature/free/analytics", false},
		{"unknown feature key", "/feature/paid/quantum_mode", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resp, err := http.Get(srv.URL + tc.path)
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			body := decodeBody[map[string]bool](t, resp)
			assert.Equal(t, tc.want, body["enabled"])
		})
	}

	t.Run("unknown tenant is 404, not a disabled feature", func(t *testing.T) {
		t.Parallel()

		resp, err := http.Get(srv.URL + "/feature/ghost/analytics")
		require.NoError(t, err)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeBody[map[string]map[string]string](t, resp)
		assert.Equal(t, "tenant_not_found", body["error"]["code"])
	})
}
