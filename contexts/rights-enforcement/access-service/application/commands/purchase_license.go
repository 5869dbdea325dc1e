package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	application "marlowe/contexts/rights-enforcement/access-service/application"
	"marlowe/contexts/rights-enforcement/access-service/domain/entities"
	domainerrors "marlowe/contexts/rights-enforcement/access-service/domain/errors"
	"marlowe/contexts/rights-enforcement/access-service/ports"
)

const purchasedEventType = "licensing.grant_purchased"

type PurchaseLicenseCommand struct {
	Caller    string
	LicenseID uint64
}

type PurchaseLicenseResult struct {
	Grant entities.Grant
}

type PurchaseLicenseUseCase struct {
	Licenses    ports.LicenseSource
	Grants      ports.GrantRepository
	Payments    ports.PaymentLedger
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute runs the purchase workflow in this order:
// 1) offer lookup and active check
// 2) price collection through the settlement collaborator
// 3) atomic grant upsert + outbox persistence.
// A payment failure aborts before any grant is written. Re-purchasing
// before expiry is allowed and simply resets the grant.
func (u PurchaseLicenseUseCase) Execute(ctx context.Context, cmd PurchaseLicenseCommand) (PurchaseLicenseResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.Caller) == "" || cmd.LicenseID == 0 {
		return PurchaseLicenseResult{}, domainerrors.ErrInvalidPurchase
	}

	now := u.now()
	logger.Info("license purchase started",
		"event", "purchase_license_started",
		"module", "rights-enforcement/access-service",
		"layer", "application",
		"license_id", cmd.LicenseID,
		"user", cmd.Caller,
	)

	offer, found, err := u.Licenses.LicenseByID(ctx, cmd.LicenseID)
	if err != nil {
		logger.Error("purchase failed resolving license",
			"event", "purchase_license_lookup_failed",
			"module", "rights-enforcement/access-service",
			"layer", "application",
			"license_id", cmd.LicenseID,
			"error", err.Error(),
		)
		return PurchaseLicenseResult{}, err
	}
	if !found {
		return PurchaseLicenseResult{}, domainerrors.ErrLicenseNotFound
	}
	if !offer.Active {
		logger.Warn("purchase rejected for inactive license",
			"event", "purchase_license_inactive",
			"module", "rights-enforcement/access-service",
			"layer", "application",
			"license_id", cmd.LicenseID,
			"user", cmd.Caller,
		)
		return PurchaseLicenseResult{}, domainerrors.ErrLicenseInactive
	}

	if offer.Price > 0 {
		reference, err := u.IDGenerator.NewID(ctx)
		if err != nil {
			return PurchaseLicenseResult{}, err
		}
		if err := u.Payments.Collect(ctx, cmd.Caller, offer.Creator, offer.Price, reference); err != nil {
			logger.Error("purchase aborted on payment collection",
				"event", "purchase_license_payment_failed",
				"module", "rights-enforcement/access-service",
				"layer", "application",
				"license_id", cmd.LicenseID,
				"user", cmd.Caller,
				"price", offer.Price,
				"error", err.Error(),
			)
			return PurchaseLicenseResult{}, domainerrors.ErrPaymentFailed
		}
	}

	grant := entities.Grant{
		ContentID:   offer.ContentID,
		LicenseID:   offer.LicenseID,
		User:        cmd.Caller,
		PurchasedAt: now,
		ExpiresAt:   expiryFrom(offer, now),
		UsesLeft:    copyUses(offer.MaxUses),
		Active:      true,
		UpdatedAt:   now,
	}

	eventID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return PurchaseLicenseResult{}, err
	}
	payload, err := json.Marshal(grantPurchasedPayload{
		ContentID:   grant.ContentID,
		LicenseID:   grant.LicenseID,
		User:        grant.User,
		PurchasedAt: grant.PurchasedAt,
		ExpiresAt:   grant.ExpiresAt,
	})
	if err != nil {
		return PurchaseLicenseResult{}, err
	}
	event := ports.OutboxEvent{
		EventID:      eventID,
		EventType:    purchasedEventType,
		PartitionKey: grant.User,
		Payload:      payload,
		OccurredAt:   now,
	}

	// Grant row and licensing.grant_purchased outbox message commit
	// together in the repository adapter.
	if err := u.Grants.UpsertGrantWithOutbox(ctx, grant, event); err != nil {
		logger.Error("purchase failed on write transaction",
			"event", "purchase_license_write_failed",
			"module", "rights-enforcement/access-service",
			"layer", "application",
			"license_id", cmd.LicenseID,
			"user", cmd.Caller,
			"error", err.Error(),
		)
		return PurchaseLicenseResult{}, err
	}

	logger.Info("license purchased",
		"event", "license_purchased",
		"module", "rights-enforcement/access-service",
		"layer", "application",
		"license_id", grant.LicenseID,
		"content_id", grant.ContentID,
		"user", grant.User,
		"price", offer.Price,
	)
	return PurchaseLicenseResult{Grant: grant}, nil
}

func (u PurchaseLicenseUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}

func expiryFrom(offer ports.LicenseOffer, purchasedAt time.Time) *time.Time {
	if offer.DurationMinutes == nil {
		return nil
	}
	expiry := purchasedAt.UTC().Add(time.Duration(*offer.DurationMinutes) * time.Minute)
	return &expiry
}

func copyUses(maxUses *int64) *int64 {
	if maxUses == nil {
		return nil
	}
	uses := *maxUses
	return &uses
}

type grantPurchasedPayload struct {
	ContentID   uint64     `json:"content_id"`
	LicenseID   uint64     `json:"license_id"`
	User        string     `json:"user"`
	PurchasedAt time.Time  `json:"purchased_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}
