package entities

import (
	"strings"
	"time"

	domainerrors "marlowe/contexts/content-catalog/license-registry/domain/errors"
)

// License is a reusable offer attached to a content record. Optional
// numeric terms use pointers: nil DurationMinutes means non-expiring,
// nil MaxUses means unlimited. Zero is never a sentinel.
type License struct {
	LicenseID           uint64
	ContentID           uint64
	Creator             string
	LicenseType         string
	Price               int64
	DurationMinutes     *int64
	MaxUses             *int64
	CommercialUse       bool
	ModificationAllowed bool
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Terms carries the replaceable portion of a license. UpdateTerms swaps
// the whole set atomically.
type Terms struct {
	Price               int64
	DurationMinutes     *int64
	MaxUses             *int64
	CommercialUse       bool
	ModificationAllowed bool
	Active              bool
}

func NewLicense(
	contentID uint64,
	creator string,
	licenseType string,
	terms Terms,
	createdAt time.Time,
) (License, error) {
	if contentID == 0 || strings.TrimSpace(creator) == "" || strings.TrimSpace(licenseType) == "" {
		return License{}, domainerrors.ErrInvalidLicenseTerms
	}
	normalized, err := normalizeTerms(terms)
	if err != nil {
		return License{}, err
	}

	return License{
		ContentID:           contentID,
		Creator:             creator,
		LicenseType:         licenseType,
		Price:               normalized.Price,
		DurationMinutes:     normalized.DurationMinutes,
		MaxUses:             normalized.MaxUses,
		CommercialUse:       normalized.CommercialUse,
		ModificationAllowed: normalized.ModificationAllowed,
		Active:              true,
		CreatedAt:           createdAt.UTC(),
		UpdatedAt:           createdAt.UTC(),
	}, nil
}

// ApplyTerms replaces every replaceable field at once.
func (l License) ApplyTerms(terms Terms, updatedAt time.Time) (License, error) {
	normalized, err := normalizeTerms(terms)
	if err != nil {
		return License{}, err
	}
	l.Price = normalized.Price
	l.DurationMinutes = normalized.DurationMinutes
	l.MaxUses = normalized.MaxUses
	l.CommercialUse = normalized.CommercialUse
	l.ModificationAllowed = normalized.ModificationAllowed
	l.Active = normalized.Active
	l.UpdatedAt = updatedAt.UTC()
	return l, nil
}

// Expiry derives a grant expiry from the purchase instant, nil when the
// license is non-expiring.
func (l License) Expiry(purchasedAt time.Time) *time.Time {
	if l.DurationMinutes == nil {
		return nil
	}
	expiry := purchasedAt.UTC().Add(time.Duration(*l.DurationMinutes) * time.Minute)
	return &expiry
}

func normalizeTerms(terms Terms) (Terms, error) {
	if terms.Price < 0 {
		return Terms{}, domainerrors.ErrInvalidLicenseTerms
	}
	if terms.MaxUses != nil && *terms.MaxUses <= 0 {
		return Terms{}, domainerrors.ErrInvalidLicenseTerms
	}
	if terms.DurationMinutes != nil {
		if *terms.DurationMinutes < 0 {
			return Terms{}, domainerrors.ErrInvalidLicenseTerms
		}
		// A zero duration means non-expiring; store it as absence.
		if *terms.DurationMinutes == 0 {
			terms.DurationMinutes = nil
		}
	}
	return terms, nil
}
