package assignment

import (
	"context"
	"log/slog"
	"time"

	"github.com/promoflow/entitlements/pkg/plan"
	"github.com/promoflow/entitlements/pkg/tenant"
)

// fallbackPeriod is the documented validity window for plans whose billing
// interval the catalog does not recognize. Flagged in the log, never an
// error: an odd interval must not block an explicit assignment.
const fallbackPeriod = 30 * 24 * time.Hour

// Manager assigns and renews tenant plans. It is the only side-effecting
// component of the engine; the write is a single assignment replace, so
// concurrent assigns for the same tenant resolve last-write-wins.
type Manager struct {
	catalog  *plan.Catalog
	resolver *tenant.Resolver
	store    tenant.Store
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithNotifier sets the delivery target for assignment events.
func WithNotifier(n Notifier) ManagerOption {
	return func(m *Manager) {
		if n != nil {
			m.notifier = n
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a Manager. Panics on nil required dependencies to
// fail fast during initialization.
func NewManager(catalog *plan.Catalog, resolver *tenant.Resolver, store tenant.Store, logger *slog.Logger, opts ...ManagerOption) *Manager {
	if catalog == nil {
		panic("assignment: plan catalog is required")
	}
	if resolver == nil {
		panic("assignment: tenant resolver is required")
	}
	if store == nil {
		panic("assignment: tenant store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		catalog:  catalog,
		resolver: resolver,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.notifier == nil {
		m.notifier = LogNotifier(logger)
	}
	return m
}

// Assign puts the tenant on the given plan starting at now (or the
// current time when now is zero), replacing any prior assignment.
//
// Unlike evaluation-time fallback, an explicit assignment to a
// nonexistent plan fails loudly with plan.ErrUnknownPlan.
func (m *Manager) Assign(ctx context.Context, rawID any, planID string, now time.Time) (tenant.PlanAssignment, error) {
	if !m.catalog.Exists(planID) {
		return tenant.PlanAssignment{}, plan.ErrUnknownPlan
	}

	acc, err := m.resolver.Resolve(ctx, rawID)
	if err != nil {
		return tenant.PlanAssignment{}, err
	}

	if now.IsZero() {
		now = m.now()
	}
	now = now.UTC()

	tier := m.catalog.Resolve(planID)
	end, ok := tier.Interval.PeriodEnd(now)
	if !ok {
		end = now.Add(fallbackPeriod)
		m.logger.WarnContext(ctx, "unrecognized billing interval, using 30-day fallback",
			slog.String("plan_id", planID),
			slog.String("interval", string(tier.Interval)),
		)
	}

	assigned := tenant.PlanAssignment{
		PlanID:    planID,
		StartDate: now,
		EndDate:   end.UTC(),
		Active:    true,
	}

	if err := m.store.SaveAssignment(ctx, acc.ID, assigned); err != nil {
		return tenant.PlanAssignment{}, err
	}

	m.notify(ctx, Event{
		TenantID:  acc.ID,
		PlanID:    planID,
		StartDate: assigned.StartDate,
		EndDate:   assigned.EndDate,
	})

	return assigned, nil
}

// notify delivers the event asynchronously. The detached context keeps
// delivery alive past the request; failures are logged and dropped.
func (m *Manager) notify(ctx context.Context, event Event) {
	detached := context.WithoutCancel(ctx)
	go func() {
		if err := m.notifier.Notify(detached, event); err != nil {
			m.logger.ErrorContext(detached, "plan assignment notification failed",
				slog.String("tenant_id", event.TenantID),
				slog.String("plan_id", event.PlanID),
				slog.Any("error", err),
			)
		}
	}()
}
