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

type UpdateMetadataCommand struct {
	Caller      string
	ContentID   uint64
	Title       string
	Description string
	IsPublic    bool
}

type UpdateMetadataResult struct {
	Content entities.Content
}

type UpdateMetadataUseCase struct {
	Contents ports.ContentRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

// Execute mutates title/description/isPublic only. Creator, hash and
// creation date are immutable through this path. Existence is checked
// before ownership so 404 and 403 stay distinguishable.
func (u UpdateMetadataUseCase) Execute(ctx context.Context, cmd UpdateMetadataCommand) (UpdateMetadataResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.Title) == "" {
		return UpdateMetadataResult{}, domainerrors.ErrInvalidMetadata
	}

	content, err := u.Contents.GetContent(ctx, cmd.ContentID)
	if err != nil {
		return UpdateMetadataResult{}, err
	}
	if err := authz.RequireOwner(cmd.Caller, content.Creator); err != nil {
		logger.Warn("metadata update denied",
			"event", "update_metadata_denied",
			"module", "content-catalog/content-registry",
			"layer", "application",
			"content_id", cmd.ContentID,
			"caller", cmd.Caller,
		)
		return UpdateMetadataResult{}, err
	}

	now := u.now()
	if err := u.Contents.UpdateContentMetadata(
		ctx,
		cmd.ContentID,
		cmd.Title,
		cmd.Description,
		cmd.IsPublic,
		now,
	); err != nil {
		logger.Error("metadata update failed on write",
			"event", "update_metadata_write_failed",
			"module", "content-catalog/content-registry",
			"layer", "application",
			"content_id", cmd.ContentID,
			"error", err.Error(),
		)
		return UpdateMetadataResult{}, err
	}

	content.Title = cmd.Title
	content.Description = cmd.Description
	content.IsPublic = cmd.IsPublic
	content.UpdatedAt = now

	logger.Info("content metadata updated",
		"event", "content_metadata_updated",
		"module", "content-catalog/content-registry",
		"layer", "application",
		"content_id", cmd.ContentID,
		"caller", cmd.Caller,
	)
	return UpdateMetadataResult{Content: content}, nil
}

func (u UpdateMetadataUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
