package entities

import "time"

// Grant is one user's purchased instance of a license offer, keyed by
// (ContentID, User). The grant copies expiry and usage terms from the
// offer at purchase time; later offer changes never touch it.
type Grant struct {
	ContentID   uint64
	LicenseID   uint64
	User        string
	PurchasedAt time.Time
	ExpiresAt   *time.Time
	UsesLeft    *int64
	Active      bool
	UpdatedAt   time.Time
}

// ValidAt reports whether the grant confers access at the given instant:
// not revoked, not past expiry, not exhausted. Expiry and exhaustion are
// evaluated here, never flipped in storage.
func (g Grant) ValidAt(now time.Time) bool {
	if !g.Active {
		return false
	}
	if g.ExpiresAt != nil && now.UTC().After(g.ExpiresAt.UTC()) {
		return false
	}
	if g.UsesLeft != nil && *g.UsesLeft <= 0 {
		return false
	}
	return true
}

// ConsumeUse returns a copy with one use deducted when the grant is
// usage-bounded; unlimited grants pass through unchanged.
func (g Grant) ConsumeUse(now time.Time) Grant {
	if g.UsesLeft != nil {
		remaining := *g.UsesLeft - 1
		g.UsesLeft = &remaining
	}
	g.UpdatedAt = now.UTC()
	return g
}
