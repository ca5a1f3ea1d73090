// Package assignment manages the plan assignment record each tenant
// carries: which plan, and for which validity window.
//
// The validity window is computed from the plan's billing interval;
// unrecognized intervals fall back to 30 days and are flagged in the log.
package assignment
