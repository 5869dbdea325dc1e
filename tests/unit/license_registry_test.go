package unit

import (
	"context"
	"errors"
	"testing"

	contenthttp "marlowe/contexts/content-catalog/content-registry/transport/http"
	licenseerrors "marlowe/contexts/content-catalog/license-registry/domain/errors"
	licensehttp "marlowe/contexts/content-catalog/license-registry/transport/http"
	"marlowe/internal/shared/authz"
)

func registerContent(t *testing.T, stack *licensingStack, creator string) uint64 {
	t.Helper()
	registered, err := stack.contents.Handler.RegisterContentHandler(
		context.Background(),
		creator,
		contenthttp.RegisterContentRequest{
			Title:       "Set",
			ContentHash: "hash-" + creator,
			ContentType: "audio",
		},
	)
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	return registered.Item.ContentID
}

func TestCreateLicenseIsContentOwnerOnly(t *testing.T) {
	stack := newLicensingStack()
	contentID := registerContent(t, stack, "alice")

	created, err := stack.licenses.Handler.CreateLicenseHandler(
		context.Background(),
		"alice",
		contentID,
		licensehttp.CreateLicenseRequest{
			LicenseType:   "standard",
			Price:         500,
			CommercialUse: true,
		},
	)
	if err != nil {
		t.Fatalf("create license failed: %v", err)
	}
	if created.Item.LicenseID != 1 {
		t.Fatalf("expected license id 1, got %d", created.Item.LicenseID)
	}
	if !created.Item.Active {
		t.Fatalf("new license must start active")
	}
	if created.Item.Creator != "alice" {
		t.Fatalf("license creator snapshot = %s, want alice", created.Item.Creator)
	}

	_, err = stack.licenses.Handler.CreateLicenseHandler(
		context.Background(),
		"mallory",
		contentID,
		licensehttp.CreateLicenseRequest{LicenseType: "standard"},
	)
	if !errors.Is(err, authz.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-owner, got %v", err)
	}

	_, err = stack.licenses.Handler.CreateLicenseHandler(
		context.Background(),
		"alice",
		999,
		licensehttp.CreateLicenseRequest{LicenseType: "standard"},
	)
	if !errors.Is(err, licenseerrors.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound for missing content, got %v", err)
	}
}

func TestCreateLicenseValidatesTerms(t *testing.T) {
	stack := newLicensingStack()
	contentID := registerContent(t, stack, "alice")

	cases := []struct {
		name string
		req  licensehttp.CreateLicenseRequest
	}{
		{"negative price", licensehttp.CreateLicenseRequest{LicenseType: "standard", Price: -1}},
		{"zero max uses", licensehttp.CreateLicenseRequest{LicenseType: "standard", MaxUses: int64ptr(0)}},
		{"negative duration", licensehttp.CreateLicenseRequest{LicenseType: "standard", DurationMinutes: int64ptr(-5)}},
		{"blank type", licensehttp.CreateLicenseRequest{LicenseType: "  "}},
	}
	for _, tc := range cases {
		_, err := stack.licenses.Handler.CreateLicenseHandler(context.Background(), "alice", contentID, tc.req)
		if !errors.Is(err, licenseerrors.ErrInvalidLicenseTerms) {
			t.Fatalf("%s: expected ErrInvalidLicenseTerms, got %v", tc.name, err)
		}
	}
}

func TestZeroDurationIsStoredAsNonExpiring(t *testing.T) {
	stack := newLicensingStack()
	contentID := registerContent(t, stack, "alice")

	created, err := stack.licenses.Handler.CreateLicenseHandler(
		context.Background(),
		"alice",
		contentID,
		licensehttp.CreateLicenseRequest{
			LicenseType:     "standard",
			DurationMinutes: int64ptr(0),
		},
	)
	if err != nil {
		t.Fatalf("create license failed: %v", err)
	}
	if created.Item.DurationMinutes != nil {
		t.Fatalf("zero duration must normalize to absence, got %d", *created.Item.DurationMinutes)
	}
}

func TestUpdateTermsReplacesWholeSetAtomically(t *testing.T) {
	stack := newLicensingStack()
	contentID := registerContent(t, stack, "alice")

	created, err := stack.licenses.Handler.CreateLicenseHandler(
		context.Background(),
		"alice",
		contentID,
		licensehttp.CreateLicenseRequest{
			LicenseType:     "standard",
			Price:           100,
			DurationMinutes: int64ptr(60),
			MaxUses:         int64ptr(3),
			CommercialUse:   true,
		},
	)
	if err != nil {
		t.Fatalf("create license failed: %v", err)
	}

	updated, err := stack.licenses.Handler.UpdateTermsHandler(
		context.Background(),
		"alice",
		created.Item.LicenseID,
		licensehttp.UpdateTermsRequest{
			Price:               250,
			ModificationAllowed: true,
			Active:              true,
		},
	)
	if err != nil {
		t.Fatalf("update terms failed: %v", err)
	}
	if updated.Item.Price != 250 {
		t.Fatalf("price = %d, want 250", updated.Item.Price)
	}
	// Omitted optional terms are cleared, not preserved.
	if updated.Item.DurationMinutes != nil || updated.Item.MaxUses != nil {
		t.Fatalf("optional terms must be replaced wholesale: %+v", updated.Item)
	}
	if updated.Item.CommercialUse {
		t.Fatalf("commercial_use must be replaced wholesale")
	}
	if !updated.Item.ModificationAllowed {
		t.Fatalf("modification_allowed not applied")
	}

	_, err = stack.licenses.Handler.UpdateTermsHandler(
		context.Background(),
		"mallory",
		created.Item.LicenseID,
		licensehttp.UpdateTermsRequest{Price: 1},
	)
	if !errors.Is(err, authz.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-creator, got %v", err)
	}
}

func TestDeactivateLicenseAndActiveFlagRead(t *testing.T) {
	stack := newLicensingStack()
	contentID := registerContent(t, stack, "alice")

	created, err := stack.licenses.Handler.CreateLicenseHandler(
		context.Background(),
		"alice",
		contentID,
		licensehttp.CreateLicenseRequest{LicenseType: "standard"},
	)
	if err != nil {
		t.Fatalf("create license failed: %v", err)
	}

	active, err := stack.licenses.Handler.IsActiveHandler(context.Background(), created.Item.LicenseID)
	if err != nil {
		t.Fatalf("is active failed: %v", err)
	}
	if !active.Active {
		t.Fatalf("expected active license")
	}

	_, err = stack.licenses.Handler.DeactivateLicenseHandler(context.Background(), "mallory", created.Item.LicenseID)
	if !errors.Is(err, authz.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	deactivated, err := stack.licenses.Handler.DeactivateLicenseHandler(context.Background(), "alice", created.Item.LicenseID)
	if err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if deactivated.Item.Active {
		t.Fatalf("license still active after deactivation")
	}

	active, err = stack.licenses.Handler.IsActiveHandler(context.Background(), created.Item.LicenseID)
	if err != nil {
		t.Fatalf("is active failed: %v", err)
	}
	if active.Active {
		t.Fatalf("expected inactive license")
	}

	// Missing licenses read as inactive rather than erroring.
	missing, err := stack.licenses.Handler.IsActiveHandler(context.Background(), 404)
	if err != nil {
		t.Fatalf("is active on missing license must not error: %v", err)
	}
	if missing.Active {
		t.Fatalf("missing license must read inactive")
	}
}

func TestListLicensesByContent(t *testing.T) {
	stack := newLicensingStack()
	contentID := registerContent(t, stack, "alice")
	otherID := registerContent(t, stack, "bob")

	for i := 0; i < 2; i++ {
		if _, err := stack.licenses.Handler.CreateLicenseHandler(
			context.Background(),
			"alice",
			contentID,
			licensehttp.CreateLicenseRequest{LicenseType: "standard"},
		); err != nil {
			t.Fatalf("create license failed: %v", err)
		}
	}
	if _, err := stack.licenses.Handler.CreateLicenseHandler(
		context.Background(),
		"bob",
		otherID,
		licensehttp.CreateLicenseRequest{LicenseType: "standard"},
	); err != nil {
		t.Fatalf("create license failed: %v", err)
	}

	listed, err := stack.licenses.Handler.ListLicensesHandler(context.Background(), contentID)
	if err != nil {
		t.Fatalf("list licenses failed: %v", err)
	}
	if len(listed.Items) != 2 {
		t.Fatalf("expected 2 licenses, got %d", len(listed.Items))
	}
	for _, item := range listed.Items {
		if item.ContentID != contentID {
			t.Fatalf("license for wrong content: %d", item.ContentID)
		}
	}
}
