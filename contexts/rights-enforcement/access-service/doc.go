// Package accessservice contains the Marlowe access controller: per-user
// license grants (purchase, revocation, validity evaluation) and the
// per-content access key.
//
// Grant invalidity is two-sided: revocation is an explicit stored flag,
// while expiry and usage exhaustion are derived from timestamps and
// counters at read time. The access predicate folds all of them so the
// read path stays the single source of truth; nothing ever writes an
// "expired" state back to storage.
package accessservice
