package entitlement

import (
	"errors"
	"fmt"

	"github.com/promoflow/entitlements/pkg/plan"
)

var (
	// ErrLimitExceeded is returned by CanCreate when the tenant is at or
	// over its cap for the resource.
	ErrLimitExceeded = errors.New("resource limit exceeded")

	// ErrDowngradeNotPossible is returned when current usage would not fit
	// inside the target plan's caps.
	ErrDowngradeNotPossible = errors.New("downgrade not possible with current usage")
)

func errorsForResource(res plan.Resource, current, limit int64) error {
	return fmt.Errorf("resource %s: usage %d exceeds target limit %d", res, current, limit)
}
