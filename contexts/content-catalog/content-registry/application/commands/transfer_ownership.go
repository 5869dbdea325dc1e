package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "marlowe/contexts/content-catalog/content-registry/application"
	"marlowe/contexts/content-catalog/content-registry/domain/entities"
	domainerrors "marlowe/contexts/content-catalog/content-registry/domain/errors"
	"marlowe/contexts/content-catalog/content-registry/ports"
	"marlowe/internal/shared/authz"
)

type TransferOwnershipCommand struct {
	Caller    string
	ContentID uint64
	NewOwner  string
}

type TransferOwnershipResult struct {
	Content entities.Content
}

type TransferOwnershipUseCase struct {
	Contents ports.ContentRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

// Execute reassigns content ownership. Licenses already issued against
// the content keep their stored creator; transfer never cascades.
func (u TransferOwnershipUseCase) Execute(ctx context.Context, cmd TransferOwnershipCommand) (TransferOwnershipResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.NewOwner) == "" {
		return TransferOwnershipResult{}, domainerrors.ErrInvalidOwner
	}

	content, err := u.Contents.GetContent(ctx, cmd.ContentID)
	if err != nil {
		return TransferOwnershipResult{}, err
	}
	if err := authz.RequireOwner(cmd.Caller, content.Creator); err != nil {
		logger.Warn("ownership transfer denied",
			"event", "transfer_ownership_denied",
			"module", "content-catalog/content-registry",
			"layer", "application",
			"content_id", cmd.ContentID,
			"caller", cmd.Caller,
		)
		return TransferOwnershipResult{}, err
	}

	now := u.now()
	if err := u.Contents.UpdateContentOwner(ctx, cmd.ContentID, cmd.NewOwner, now); err != nil {
		logger.Error("ownership transfer failed on write",
			"event", "transfer_ownership_write_failed",
			"module", "content-catalog/content-registry",
			"layer", "application",
			"content_id", cmd.ContentID,
			"error", err.Error(),
		)
		return TransferOwnershipResult{}, err
	}

	content.Creator = cmd.NewOwner
	content.UpdatedAt = now

	logger.Info("content ownership transferred",
		"event", "content_ownership_transferred",
		"module", "content-catalog/content-registry",
		"layer", "application",
		"content_id", cmd.ContentID,
		"previous_owner", cmd.Caller,
		"new_owner", cmd.NewOwner,
	)
	return TransferOwnershipResult{Content: content}, nil
}

func (u TransferOwnershipUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
