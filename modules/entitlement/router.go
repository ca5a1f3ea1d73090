package entitlement

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/promoflow/entitlements/pkg/assignment"
	"github.com/promoflow/entitlements/pkg/entitlement"
	"github.com/promoflow/entitlements/pkg/logger"
	"github.com/promoflow/entitlements/pkg/plan"
)

// Module is the HTTP surface of the entitlement engine.
type Module struct {
	evaluator *entitlement.Evaluator
	gate      *entitlement.Gate
	manager   *assignment.Manager
	logger    *slog.Logger
}

// NewModule creates the HTTP module. Panics on nil services.
func NewModule(evaluator *entitlement.Evaluator, gate *entitlement.Gate, manager *assignment.Manager, log *slog.Logger) *Module {
	if evaluator == nil {
		panic("entitlement module: evaluator is required")
	}
	if gate == nil {
		panic("entitlement module: feature gate is required")
	}
	if manager == nil {
		panic("entitlement module: assignment manager is required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Module{evaluator: evaluator, gate: gate, manager: manager, logger: log}
}

// Router mounts the module's routes.
//
//	r := chi.NewRouter()
//	r.Mount("/", module.Router())
func (m *Module) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/entitlement/{tenantID}/{resourceType}", m.handleEvaluate)
	r.Get("/entitlement/{tenantID}", m.handleAggregate)
	r.Post("/plan-assignment", m.handleAssign)
	r.Get("/feature/{tenantID}/{featureKey}", m.handleFeature)

	return r
}

func (m *Module) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	res := plan.Resource(chi.URLParam(r, "resourceType"))

	if !slices.Contains(m.evaluator.Resources(), res) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorDetail{
			Code:    "unknown_resource",
			Message: "unknown resource type: " + string(res),
		}})
		return
	}

	result, err := m.evaluator.Evaluate(r.Context(), tenantID, res)
	if err != nil {
		m.logger.ErrorContext(r.Context(), "entitlement evaluation failed",
			slog.String("tenant_id", tenantID),
			slog.String("resource", string(res)),
			logger.Error(err),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntitlementResponse(result))
}

func (m *Module) handleAggregate(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	report, err := m.evaluator.Aggregate(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}

	body := make(map[plan.Resource]entitlementResponse, len(report))
	for res, result := range report {
		body[res] = toEntitlementResponse(result)
	}
	writeJSON(w, http.StatusOK, body)
}

type assignRequest struct {
	TenantID string `json:"tenantId"`
	PlanID   string `json:"planId"`
}

type assignResponse struct {
	PlanID    string    `json:"planId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

func (m *Module) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorDetail{
			Code:    "invalid_request",
			Message: "malformed request body",
		}})
		return
	}

	assigned, err := m.manager.Assign(r.Context(), req.TenantID, req.PlanID, time.Time{})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assignResponse{
		PlanID:    assigned.PlanID,
		StartDate: assigned.StartDate,
		EndDate:   assigned.EndDate,
	})
}

type featureResponse struct {
	Enabled bool `json:"enabled"`
}

func (m *Module) handleFeature(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	key := plan.Feature(chi.URLParam(r, "featureKey"))

	enabled, err := m.gate.HasFeature(r.Context(), tenantID, key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, featureResponse{Enabled: enabled})
}
