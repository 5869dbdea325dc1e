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
	"marlowe/internal/shared/authz"
)

const revokedEventType = "licensing.grant_revoked"

type RevokeGrantCommand struct {
	Caller    string
	ContentID uint64
	User      string
}

type RevokeGrantResult struct {
	Grant entities.Grant
}

type RevokeGrantUseCase struct {
	Grants      ports.GrantRepository
	Ownership   ports.ContentOwnership
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute flips the grant's stored active flag. Only the content's
// current owner may revoke; a revoked grant reads exactly like an
// expired or exhausted one to access checks.
func (u RevokeGrantUseCase) Execute(ctx context.Context, cmd RevokeGrantCommand) (RevokeGrantResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.User) == "" || cmd.ContentID == 0 {
		return RevokeGrantResult{}, domainerrors.ErrInvalidRevocation
	}

	owner, found, err := u.Ownership.OwnerOf(ctx, cmd.ContentID)
	if err != nil {
		return RevokeGrantResult{}, err
	}
	if !found {
		return RevokeGrantResult{}, domainerrors.ErrContentNotFound
	}
	if err := authz.RequireOwner(cmd.Caller, owner); err != nil {
		logger.Warn("grant revocation denied",
			"event", "revoke_grant_denied",
			"module", "rights-enforcement/access-service",
			"layer", "application",
			"content_id", cmd.ContentID,
			"caller", cmd.Caller,
		)
		return RevokeGrantResult{}, err
	}

	grant, found, err := u.Grants.GetGrant(ctx, cmd.ContentID, cmd.User)
	if err != nil {
		return RevokeGrantResult{}, err
	}
	if !found {
		return RevokeGrantResult{}, domainerrors.ErrGrantNotFound
	}

	now := u.now()
	eventID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return RevokeGrantResult{}, err
	}
	payload, err := json.Marshal(grantRevokedPayload{
		ContentID: cmd.ContentID,
		User:      cmd.User,
		RevokedBy: cmd.Caller,
		RevokedAt: now,
	})
	if err != nil {
		return RevokeGrantResult{}, err
	}
	event := ports.OutboxEvent{
		EventID:      eventID,
		EventType:    revokedEventType,
		PartitionKey: cmd.User,
		Payload:      payload,
		OccurredAt:   now,
	}

	if err := u.Grants.DeactivateGrantWithOutbox(ctx, cmd.ContentID, cmd.User, now, event); err != nil {
		logger.Error("grant revocation failed on write transaction",
			"event", "revoke_grant_write_failed",
			"module", "rights-enforcement/access-service",
			"layer", "application",
			"content_id", cmd.ContentID,
			"user", cmd.User,
			"error", err.Error(),
		)
		return RevokeGrantResult{}, err
	}

	grant.Active = false
	grant.UpdatedAt = now

	logger.Info("grant revoked",
		"event", "grant_revoked",
		"module", "rights-enforcement/access-service",
		"layer", "application",
		"content_id", cmd.ContentID,
		"user", cmd.User,
		"caller", cmd.Caller,
	)
	return RevokeGrantResult{Grant: grant}, nil
}

func (u RevokeGrantUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}

type grantRevokedPayload struct {
	ContentID uint64    `json:"content_id"`
	User      string    `json:"user"`
	RevokedBy string    `json:"revoked_by"`
	RevokedAt time.Time `json:"revoked_at"`
}
