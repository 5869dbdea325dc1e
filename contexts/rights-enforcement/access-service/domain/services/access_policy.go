package services

import (
	"time"

	"marlowe/contexts/rights-enforcement/access-service/domain/entities"
)

const (
	ReasonNoGrant   = "no_grant"
	ReasonRevoked   = "revoked"
	ReasonExpired   = "expired"
	ReasonExhausted = "exhausted"
	ReasonValid     = "valid"
)

// Decision is the outcome of a pure access evaluation. Revoked, expired
// and exhausted grants are all denied; the reason exists for logs and
// diagnostics, not for callers to branch on.
type Decision struct {
	Allowed bool
	Reason  string
}

// EvaluateAccess folds the stored active flag with derived expiry and
// exhaustion conditions. It never mutates anything; repeated calls at
// the same instant yield the same decision.
func EvaluateAccess(grant entities.Grant, found bool, now time.Time) Decision {
	if !found {
		return Decision{Reason: ReasonNoGrant}
	}
	if !grant.Active {
		return Decision{Reason: ReasonRevoked}
	}
	if grant.ExpiresAt != nil && now.UTC().After(grant.ExpiresAt.UTC()) {
		return Decision{Reason: ReasonExpired}
	}
	if grant.UsesLeft != nil && *grant.UsesLeft <= 0 {
		return Decision{Reason: ReasonExhausted}
	}
	return Decision{Allowed: true, Reason: ReasonValid}
}
