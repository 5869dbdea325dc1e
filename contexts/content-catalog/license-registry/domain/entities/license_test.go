package entities

import (
	"testing"
	"time"

	domainerrors "marlowe/contexts/content-catalog/license-registry/domain/errors"
)

func int64Ptr(v int64) *int64 { return &v }

func TestNewLicenseRejectsNegativePrice(t *testing.T) {
	_, err := NewLicense(1, "creator_1", "standard", Terms{Price: -1, Active: true}, time.Now())
	if err != domainerrors.ErrInvalidLicenseTerms {
		t.Fatalf("expected ErrInvalidLicenseTerms, got %v", err)
	}
}

func TestNewLicenseRejectsNonPositiveMaxUses(t *testing.T) {
	_, err := NewLicense(1, "creator_1", "standard", Terms{MaxUses: int64Ptr(0), Active: true}, time.Now())
	if err != domainerrors.ErrInvalidLicenseTerms {
		t.Fatalf("expected ErrInvalidLicenseTerms for zero max uses, got %v", err)
	}
}

func TestNewLicenseStoresZeroDurationAsAbsence(t *testing.T) {
	license, err := NewLicense(1, "creator_1", "standard", Terms{DurationMinutes: int64Ptr(0), Active: true}, time.Now())
	if err != nil {
		t.Fatalf("new license failed: %v", err)
	}
	if license.DurationMinutes != nil {
		t.Fatal("zero duration must normalize to nil (non-expiring)")
	}
	if license.Expiry(time.Now()) != nil {
		t.Fatal("non-expiring license must derive nil expiry")
	}
}

func TestExpiryDerivesFromPurchaseInstant(t *testing.T) {
	license, err := NewLicense(1, "creator_1", "standard", Terms{DurationMinutes: int64Ptr(525600), Active: true}, time.Now())
	if err != nil {
		t.Fatalf("new license failed: %v", err)
	}

	purchasedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiry := license.Expiry(purchasedAt)
	if expiry == nil {
		t.Fatal("expected derived expiry")
	}
	want := purchasedAt.Add(525600 * time.Minute)
	if !expiry.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, expiry)
	}
}

func TestApplyTermsReplacesWholeSet(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	license, err := NewLicense(1, "creator_1", "standard", Terms{
		Price:           100,
		DurationMinutes: int64Ptr(60),
		MaxUses:         int64Ptr(5),
		Active:          true,
	}, createdAt)
	if err != nil {
		t.Fatalf("new license failed: %v", err)
	}

	updated, err := license.ApplyTerms(Terms{Price: 200, Active: false}, createdAt.Add(time.Hour))
	if err != nil {
		t.Fatalf("apply terms failed: %v", err)
	}
	if updated.Price != 200 || updated.Active {
		t.Fatalf("expected replaced price and active flag, got %+v", updated)
	}
	if updated.DurationMinutes != nil || updated.MaxUses != nil {
		t.Fatal("omitted optional terms must be replaced with absence, not kept")
	}
	if !updated.CreatedAt.Equal(createdAt) {
		t.Fatal("creation date must not change through terms updates")
	}
}
