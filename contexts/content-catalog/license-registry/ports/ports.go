package ports

import (
	"context"
	"time"

	"marlowe/contexts/content-catalog/license-registry/domain/entities"
)

// LicenseRepository owns license persistence. CreateLicense assigns the
// next monotonic LicenseID and returns the stored row.
type LicenseRepository interface {
	CreateLicense(ctx context.Context, license entities.License) (entities.License, error)
	GetLicense(ctx context.Context, licenseID uint64) (entities.License, error)
	ListLicensesByContent(ctx context.Context, contentID uint64) ([]entities.License, error)
	// ReplaceLicenseTerms swaps the whole replaceable field set in one write.
	ReplaceLicenseTerms(ctx context.Context, licenseID uint64, terms entities.Terms, updatedAt time.Time) error
	SetLicenseActive(ctx context.Context, licenseID uint64, active bool, updatedAt time.Time) error
}

// ContentOwnership resolves the current owner of a content record from
// the content registry. found is false when the content does not exist.
type ContentOwnership interface {
	OwnerOf(ctx context.Context, contentID uint64) (owner string, found bool, err error)
}

// Clock allows deterministic testing of creation timestamps.
type Clock interface {
	Now() time.Time
}
