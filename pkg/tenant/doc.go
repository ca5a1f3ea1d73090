// Package tenant resolves loosely-typed tenant identifiers to canonical
// accounts and owns the tenant's plan assignment record.
//
// Persisted records were written under inconsistent schemas over time, so
// identifier lookups OR across a single authoritative list of alias fields
// (IDFieldAliases) in both string and typed-id representations. Resolving
// through an alias is a compatibility path, not an error.
package tenant
