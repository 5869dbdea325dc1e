package authz

import "testing"

func TestRequireOwnerMatch(t *testing.T) {
	if err := RequireOwner("creator_1", "creator_1"); err != nil {
		t.Fatalf("expected owner match, got %v", err)
	}
}

func TestRequireOwnerMismatch(t *testing.T) {
	if err := RequireOwner("creator_2", "creator_1"); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRequireOwnerBlankPrincipalNeverMatches(t *testing.T) {
	if err := RequireOwner("", ""); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for blank principal, got %v", err)
	}
	if err := RequireOwner("   ", "creator_1"); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for whitespace principal, got %v", err)
	}
}

func TestIsOwner(t *testing.T) {
	if !IsOwner("creator_1", "creator_1") {
		t.Fatal("expected IsOwner true for matching principal")
	}
	if IsOwner("creator_2", "creator_1") {
		t.Fatal("expected IsOwner false for non-owner")
	}
}
