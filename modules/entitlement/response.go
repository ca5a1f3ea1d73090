package entitlement

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/promoflow/entitlements/pkg/entitlement"
	"github.com/promoflow/entitlements/pkg/plan"
	"github.com/promoflow/entitlements/pkg/tenant"
	"github.com/promoflow/entitlements/pkg/usage"
)

// entitlementResponse is the wire shape for one tenant/resource check.
type entitlementResponse struct {
	Limit      int64 `json:"limit"`
	Current    int64 `json:"current"`
	HasReached bool  `json:"hasReached"`
	Percentage int   `json:"percentage"`
}

func toEntitlementResponse(r entitlement.Result) entitlementResponse {
	return entitlementResponse{
		Limit:      r.Limit,
		Current:    r.Current,
		HasReached: r.HasReached(),
		Percentage: r.PercentUsed,
	}
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps engine errors to HTTP statuses. Identity errors are
// caller misuse (404), infrastructure failures are 503, the rest is 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"

	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		status, code = http.StatusNotFound, "tenant_not_found"
	case errors.Is(err, plan.ErrUnknownPlan):
		status, code = http.StatusNotFound, "unknown_plan"
	case errors.Is(err, tenant.ErrInvalidIdentifier):
		status, code = http.StatusBadRequest, "invalid_tenant_id"
	case errors.Is(err, usage.ErrCountUnavailable):
		status, code = http.StatusServiceUnavailable, "count_unavailable"
	case errors.Is(err, tenant.ErrStoreUnavailable):
		status, code = http.StatusServiceUnavailable, "store_unavailable"
	}

	writeJSON(w, status, errorResponse{Error: errorDetail{
		Code:    code,
		Message: err.Error(),
	}})
}
