package assignment

import (
	"context"
	"log/slog"
	"time"
)

// Event describes a completed plan assignment, for delivery to an
// external notification collaborator.
type Event struct {
	TenantID  string    `json:"tenant_id"`
	PlanID    string    `json:"plan_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Notifier delivers assignment events. Delivery is fire-and-forget from
// the manager's perspective: a failing notifier never fails an assignment.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, event Event) error

func (f NotifierFunc) Notify(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// LogNotifier is the default delivery target: it writes the event to the
// structured log, which is enough for environments without a real
// notification service wired in.
func LogNotifier(logger *slog.Logger) Notifier {
	return NotifierFunc(func(ctx context.Context, event Event) error {
		logger.InfoContext(ctx, "plan assigned",
			slog.String("tenant_id", event.TenantID),
			slog.String("plan_id", event.PlanID),
			slog.Time("start_date", event.StartDate),
			slog.Time("end_date", event.EndDate),
		)
		return nil
	})
}
