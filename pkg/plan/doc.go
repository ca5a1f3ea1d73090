// Package plan defines plan tiers and the catalog that maps plan ids to
// tiers, limits and feature flags.
//
// The catalog is deliberately asymmetric: unknown plan ids resolve to the
// free tier (fail-open, so a renamed plan never strands a tenant without
// entitlements), while unknown feature keys are never granted (fail-closed).
//
// Limits use -1 as the unlimited sentinel; 0 is a valid cap meaning the
// resource is disabled for the tier.
package plan
