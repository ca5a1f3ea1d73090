// Package usage counts plan-limited records per tenant.
//
// Counts come straight from the store on every check; the optional redis
// CachedCounter can be layered in front, but nothing in the engine depends
// on cache freshness for correctness.
package usage
