package services

import (
	"testing"
	"time"

	"marlowe/contexts/rights-enforcement/access-service/domain/entities"
)

func int64Ptr(v int64) *int64 { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestEvaluateAccessNoGrant(t *testing.T) {
	decision := EvaluateAccess(entities.Grant{}, false, time.Now())
	if decision.Allowed || decision.Reason != ReasonNoGrant {
		t.Fatalf("expected denied/no_grant, got %+v", decision)
	}
}

func TestEvaluateAccessValidUnlimitedGrant(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	grant := entities.Grant{
		ContentID:   1,
		LicenseID:   1,
		User:        "buyer_1",
		PurchasedAt: now,
		Active:      true,
	}
	decision := EvaluateAccess(grant, true, now.Add(time.Hour))
	if !decision.Allowed || decision.Reason != ReasonValid {
		t.Fatalf("expected allowed/valid, got %+v", decision)
	}
}

func TestEvaluateAccessRevokedWinsOverEverything(t *testing.T) {
	now := time.Now().UTC()
	grant := entities.Grant{Active: false, ExpiresAt: timePtr(now.Add(time.Hour))}
	decision := EvaluateAccess(grant, true, now)
	if decision.Allowed || decision.Reason != ReasonRevoked {
		t.Fatalf("expected denied/revoked, got %+v", decision)
	}
}

func TestEvaluateAccessExpiry(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	grant := entities.Grant{Active: true, ExpiresAt: timePtr(now)}

	atExpiry := EvaluateAccess(grant, true, now)
	if !atExpiry.Allowed {
		t.Fatalf("access at the expiry instant must still be allowed, got %+v", atExpiry)
	}

	after := EvaluateAccess(grant, true, now.Add(time.Second))
	if after.Allowed || after.Reason != ReasonExpired {
		t.Fatalf("expected denied/expired past expiry, got %+v", after)
	}
}

func TestEvaluateAccessExhaustion(t *testing.T) {
	now := time.Now().UTC()

	bounded := entities.Grant{Active: true, UsesLeft: int64Ptr(1)}
	if decision := EvaluateAccess(bounded, true, now); !decision.Allowed {
		t.Fatalf("expected allowed with one use left, got %+v", decision)
	}

	exhausted := entities.Grant{Active: true, UsesLeft: int64Ptr(0)}
	decision := EvaluateAccess(exhausted, true, now)
	if decision.Allowed || decision.Reason != ReasonExhausted {
		t.Fatalf("expected denied/exhausted at zero uses, got %+v", decision)
	}
}

func TestEvaluateAccessIsPure(t *testing.T) {
	now := time.Now().UTC()
	uses := int64(2)
	grant := entities.Grant{Active: true, UsesLeft: &uses}

	for i := 0; i < 5; i++ {
		if decision := EvaluateAccess(grant, true, now); !decision.Allowed {
			t.Fatalf("evaluation %d changed outcome: %+v", i, decision)
		}
	}
	if uses != 2 {
		t.Fatalf("evaluation must not consume uses, got %d", uses)
	}
}
