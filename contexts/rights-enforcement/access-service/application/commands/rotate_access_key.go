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
	"marlowe/contexts/rights-enforcement/access-service/domain/services"
	"marlowe/contexts/rights-enforcement/access-service/ports"
)

const keyRotatedEventType = "licensing.access_key_rotated"

type RotateAccessKeyCommand struct {
	Caller      string
	ContentID   uint64
	KeyMaterial string
}

type RotateAccessKeyResult struct {
	AccessKey entities.AccessKey
	UsesLeft  *int64
}

type RotateAccessKeyUseCase struct {
	Grants      ports.GrantRepository
	Keys        ports.AccessKeyRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute overwrites the content's access key with caller-provided
// opaque material. The caller must hold a currently valid grant; when
// that grant is usage-bounded this call is the accounted use and one
// use is deducted in the same transaction as the key write. A denied
// call leaves the stored key untouched.
func (u RotateAccessKeyUseCase) Execute(ctx context.Context, cmd RotateAccessKeyCommand) (RotateAccessKeyResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.KeyMaterial) == "" {
		return RotateAccessKeyResult{}, domainerrors.ErrInvalidKeyMaterial
	}

	now := u.now()
	grant, found, err := u.Grants.GetGrant(ctx, cmd.ContentID, cmd.Caller)
	if err != nil {
		return RotateAccessKeyResult{}, err
	}

	decision := services.EvaluateAccess(grant, found, now)
	if !decision.Allowed {
		logger.Warn("access key rotation denied",
			"event", "rotate_access_key_denied",
			"module", "rights-enforcement/access-service",
			"layer", "application",
			"content_id", cmd.ContentID,
			"caller", cmd.Caller,
			"reason", decision.Reason,
		)
		return RotateAccessKeyResult{}, domainerrors.ErrAccessDenied
	}

	accounted := grant.ConsumeUse(now)
	key := entities.AccessKey{
		ContentID: cmd.ContentID,
		Key:       cmd.KeyMaterial,
		UpdatedAt: now,
	}

	eventID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return RotateAccessKeyResult{}, err
	}
	payload, err := json.Marshal(keyRotatedPayload{
		ContentID: cmd.ContentID,
		RotatedBy: cmd.Caller,
		RotatedAt: now,
	})
	if err != nil {
		return RotateAccessKeyResult{}, err
	}
	event := ports.OutboxEvent{
		EventID:      eventID,
		EventType:    keyRotatedEventType,
		PartitionKey: cmd.Caller,
		Payload:      payload,
		OccurredAt:   now,
	}

	// Key overwrite, use accounting and outbox message commit together.
	if err := u.Keys.RotateAccessKey(ctx, key, accounted, event); err != nil {
		logger.Error("access key rotation failed on write transaction",
			"event", "rotate_access_key_write_failed",
			"module", "rights-enforcement/access-service",
			"layer", "application",
			"content_id", cmd.ContentID,
			"caller", cmd.Caller,
			"error", err.Error(),
		)
		return RotateAccessKeyResult{}, err
	}

	logger.Info("access key rotated",
		"event", "access_key_rotated",
		"module", "rights-enforcement/access-service",
		"layer", "application",
		"content_id", cmd.ContentID,
		"caller", cmd.Caller,
	)
	return RotateAccessKeyResult{
		AccessKey: key,
		UsesLeft:  accounted.UsesLeft,
	}, nil
}

func (u RotateAccessKeyUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}

type keyRotatedPayload struct {
	ContentID uint64    `json:"content_id"`
	RotatedBy string    `json:"rotated_by"`
	RotatedAt time.Time `json:"rotated_at"`
}
