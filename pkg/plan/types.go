package plan

import "time"

// Resource represents a countable tenant resource type.
// The set is closed: it grows only by catalog update, never by
// inferring new kinds from persisted records.
type Resource string

const (
	ResourceFlyers            Resource = "flyers"
	ResourceProducts          Resource = "products"
	ResourceCampaigns         Resource = "campaigns"
	ResourceClients           Resource = "clients"
	ResourceIntegrations      Resource = "integrations"
	ResourceStorefrontWidgets Resource = "storefront_widgets"
)

const (
	// Unlimited indicates no cap for a resource (-1 chosen for SQL/BSON compatibility).
	Unlimited int64 = -1
)

// Feature is a plan-specific capability that can be enabled or disabled.
type Feature string

const (
	FeatureCustomDomain    Feature = "custom_domain"
	FeatureAnalytics       Feature = "analytics"
	FeatureWhiteLabel      Feature = "white_label"
	FeatureIntegrationsAPI Feature = "integrations_api"
	FeaturePrioritySupport Feature = "priority_support"
	FeatureScheduledFlyers Feature = "scheduled_flyers"
)

// Money represents a monetary amount in the smallest currency unit.
// For example, $10.99 USD would be Amount: 1099, Currency: "USD".
type Money struct {
	Amount   int64  `yaml:"amount" json:"amount"`
	Currency string `yaml:"currency" json:"currency"`
}

// BillingInterval represents the billing frequency for a plan.
type BillingInterval string

const (
	IntervalNone       BillingInterval = "none" // free plans with no billing cycle
	IntervalMonthly    BillingInterval = "monthly"
	IntervalQuarterly  BillingInterval = "quarterly"
	IntervalSemiannual BillingInterval = "semiannual"
	IntervalAnnual     BillingInterval = "annual"
)

// PeriodEnd returns the end of a billing period that starts at the given time.
// The second return value is false for intervals the catalog does not
// recognize; the caller decides the fallback policy.
func (i BillingInterval) PeriodEnd(start time.Time) (time.Time, bool) {
	switch i {
	case IntervalMonthly:
		return start.AddDate(0, 1, 0), true
	case IntervalQuarterly:
		return start.AddDate(0, 3, 0), true
	case IntervalSemiannual:
		return start.AddDate(0, 6, 0), true
	case IntervalAnnual:
		return start.AddDate(1, 0, 0), true
	default:
		return start, false
	}
}
