package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	application "marlowe/contexts/content-catalog/license-registry/application"
	"marlowe/contexts/content-catalog/license-registry/domain/entities"
	domainerrors "marlowe/contexts/content-catalog/license-registry/domain/errors"
)

// Store is the in-memory license repository for local runtime and tests.
type Store struct {
	mu       sync.RWMutex
	licenses map[uint64]entities.License
	sequence uint64
	logger   *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		licenses: make(map[uint64]entities.License),
		logger:   application.ResolveLogger(logger),
	}
}

func (s *Store) CreateLicense(_ context.Context, license entities.License) (entities.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequence++
	license.LicenseID = s.sequence
	s.licenses[license.LicenseID] = license
	return license, nil
}

func (s *Store) GetLicense(_ context.Context, licenseID uint64) (entities.License, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	license, ok := s.licenses[licenseID]
	if !ok {
		return entities.License{}, domainerrors.ErrLicenseNotFound
	}
	return license, nil
}

func (s *Store) ListLicensesByContent(_ context.Context, contentID uint64) ([]entities.License, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []entities.License
	for _, license := range s.licenses {
		if license.ContentID == contentID {
			items = append(items, license)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].LicenseID < items[j].LicenseID
	})
	return items, nil
}

func (s *Store) ReplaceLicenseTerms(
	_ context.Context,
	licenseID uint64,
	terms entities.Terms,
	updatedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	license, ok := s.licenses[licenseID]
	if !ok {
		return domainerrors.ErrLicenseNotFound
	}
	license.Price = terms.Price
	license.DurationMinutes = terms.DurationMinutes
	license.MaxUses = terms.MaxUses
	license.CommercialUse = terms.CommercialUse
	license.ModificationAllowed = terms.ModificationAllowed
	license.Active = terms.Active
	license.UpdatedAt = updatedAt.UTC()
	s.licenses[licenseID] = license
	return nil
}

func (s *Store) SetLicenseActive(
	_ context.Context,
	licenseID uint64,
	active bool,
	updatedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	license, ok := s.licenses[licenseID]
	if !ok {
		return domainerrors.ErrLicenseNotFound
	}
	license.Active = active
	license.UpdatedAt = updatedAt.UTC()
	s.licenses[licenseID] = license
	return nil
}
