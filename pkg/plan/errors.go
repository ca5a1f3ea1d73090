package plan

import "errors"

var (
	// ErrUnknownPlan is returned when an explicitly referenced plan id does
	// not exist in the catalog. Evaluation paths never return it; they
	// degrade to the free tier instead.
	ErrUnknownPlan = errors.New("plan not found in catalog")

	// ErrInvalidRef is returned when a loosely-typed plan reference cannot
	// be normalized to a plan id or inline tier.
	ErrInvalidRef = errors.New("invalid plan reference")

	ErrFailedToLoadPlans        = errors.New("failed to load plan catalog")
	ErrMissingFreeTier          = errors.New("plan catalog must define the free tier")
	ErrInvalidPlanConfiguration = errors.New("invalid plan configuration")
)
