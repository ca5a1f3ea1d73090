package tenant

import (
	"time"

	"github.com/promoflow/entitlements/pkg/plan"
)

// Account represents a tenant account with the minimal state the
// entitlement engine needs: identity and the currently assigned plan.
type Account struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Active     bool            `json:"active"`
	Assignment *PlanAssignment `json:"assignment,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PlanID returns the assigned plan id, or the free plan when the tenant
// has no assignment. A missing assignment is the documented default, not
// an error state.
func (a *Account) PlanID() string {
	if a.Assignment == nil || a.Assignment.PlanID == "" {
		return plan.FreePlanID
	}
	return a.Assignment.PlanID
}

// PlanAssignment records which plan a tenant is on and for how long.
// Re-assignment replaces the record wholesale; no history is kept here.
type PlanAssignment struct {
	PlanID    string    `json:"plan_id" bson:"planId"`
	StartDate time.Time `json:"start_date" bson:"startDate"`
	EndDate   time.Time `json:"end_date" bson:"endDate"`
	Active    bool      `json:"active" bson:"active"`
}

// ExpiredAt reports whether the assignment's validity window has passed.
// Expiry is evaluated lazily at read time; a zero EndDate means the
// assignment has no window and never expires.
func (p *PlanAssignment) ExpiredAt(now time.Time) bool {
	if p == nil || p.EndDate.IsZero() {
		return false
	}
	return now.After(p.EndDate)
}
