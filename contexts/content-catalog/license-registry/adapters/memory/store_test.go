package memory

import (
	"context"
	"testing"
	"time"

	"marlowe/contexts/content-catalog/license-registry/domain/entities"
	domainerrors "marlowe/contexts/content-catalog/license-registry/domain/errors"
)

func int64Ptr(v int64) *int64 { return &v }

func seedLicense(t *testing.T, store *Store, contentID uint64) entities.License {
	t.Helper()
	license, err := entities.NewLicense(
		contentID,
		"creator_1",
		"standard",
		entities.Terms{
			Price:           100000000,
			DurationMinutes: int64Ptr(525600),
			Active:          true,
		},
		time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("new license failed: %v", err)
	}
	stored, err := store.CreateLicense(context.Background(), license)
	if err != nil {
		t.Fatalf("create license failed: %v", err)
	}
	return stored
}

func TestCreateLicenseAssignsMonotonicIDs(t *testing.T) {
	store := NewStore(nil)

	first := seedLicense(t, store, 1)
	second := seedLicense(t, store, 1)

	if first.LicenseID != 1 || second.LicenseID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.LicenseID, second.LicenseID)
	}
}

func TestGetLicenseMissing(t *testing.T) {
	store := NewStore(nil)

	_, err := store.GetLicense(context.Background(), 42)
	if err != domainerrors.ErrLicenseNotFound {
		t.Fatalf("expected ErrLicenseNotFound, got %v", err)
	}
}

func TestReplaceLicenseTermsIsAllOrNothing(t *testing.T) {
	store := NewStore(nil)
	stored := seedLicense(t, store, 1)

	newTerms := entities.Terms{
		Price:               50000000,
		DurationMinutes:     nil,
		MaxUses:             int64Ptr(10),
		CommercialUse:       true,
		ModificationAllowed: true,
		Active:              true,
	}
	if err := store.ReplaceLicenseTerms(
		context.Background(), stored.LicenseID, newTerms, stored.CreatedAt.Add(time.Hour),
	); err != nil {
		t.Fatalf("replace terms failed: %v", err)
	}

	got, err := store.GetLicense(context.Background(), stored.LicenseID)
	if err != nil {
		t.Fatalf("get license failed: %v", err)
	}
	if got.Price != 50000000 || got.DurationMinutes != nil {
		t.Fatalf("expected replaced terms, got %+v", got)
	}
	if got.MaxUses == nil || *got.MaxUses != 10 {
		t.Fatalf("expected max uses 10, got %v", got.MaxUses)
	}
	if !got.CommercialUse || !got.ModificationAllowed {
		t.Fatal("expected rights flags replaced")
	}
	if got.Creator != stored.Creator || got.ContentID != stored.ContentID {
		t.Fatal("creator and content id must not change through terms updates")
	}
}

func TestSetLicenseActive(t *testing.T) {
	store := NewStore(nil)
	stored := seedLicense(t, store, 1)

	if err := store.SetLicenseActive(
		context.Background(), stored.LicenseID, false, stored.CreatedAt.Add(time.Minute),
	); err != nil {
		t.Fatalf("set active failed: %v", err)
	}

	got, err := store.GetLicense(context.Background(), stored.LicenseID)
	if err != nil {
		t.Fatalf("get license failed: %v", err)
	}
	if got.Active {
		t.Fatal("expected license inactive")
	}
}

func TestListLicensesByContent(t *testing.T) {
	store := NewStore(nil)
	seedLicense(t, store, 1)
	seedLicense(t, store, 2)
	seedLicense(t, store, 1)

	items, err := store.ListLicensesByContent(context.Background(), 1)
	if err != nil {
		t.Fatalf("list licenses failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 licenses for content 1, got %d", len(items))
	}
}
