// Package entitlement decides whether a tenant may create another
// instance of a plan-limited resource, how much of its allowance is
// consumed, and which optional features its plan unlocks.
//
// The core invariants: -1 limits are unlimited, 0 limits are disabled
// resources (reported as 100% used), percentages stay in [0,100], expired
// or unknown plans degrade to the free tier at evaluation time.
package entitlement
