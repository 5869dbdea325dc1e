package commands

import (
	"context"
	"log/slog"
	"time"

	application "marlowe/contexts/content-catalog/content-registry/application"
	"marlowe/contexts/content-catalog/content-registry/domain/entities"
	"marlowe/contexts/content-catalog/content-registry/ports"
)

type RegisterContentCommand struct {
	Creator     string
	Title       string
	Description string
	ContentHash string
	ContentType string
	IsPublic    bool
}

type RegisterContentResult struct {
	Content entities.Content
}

type RegisterContentUseCase struct {
	Contents ports.ContentRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

// Execute registers a new work owned by the caller. Registration has no
// precondition beyond a resolvable caller identity; the repository
// assigns the next content id.
func (u RegisterContentUseCase) Execute(ctx context.Context, cmd RegisterContentCommand) (RegisterContentResult, error) {
	logger := application.ResolveLogger(u.Logger)
	now := u.now()

	content, err := entities.NewContent(
		cmd.Creator,
		cmd.Title,
		cmd.Description,
		cmd.ContentHash,
		cmd.ContentType,
		cmd.IsPublic,
		now,
	)
	if err != nil {
		logger.Warn("register content rejected",
			"event", "register_content_rejected",
			"module", "content-catalog/content-registry",
			"layer", "application",
			"creator", cmd.Creator,
			"error", err.Error(),
		)
		return RegisterContentResult{}, err
	}

	stored, err := u.Contents.CreateContent(ctx, content)
	if err != nil {
		logger.Error("register content failed on write",
			"event", "register_content_write_failed",
			"module", "content-catalog/content-registry",
			"layer", "application",
			"creator", cmd.Creator,
			"error", err.Error(),
		)
		return RegisterContentResult{}, err
	}

	logger.Info("content registered",
		"event", "content_registered",
		"module", "content-catalog/content-registry",
		"layer", "application",
		"content_id", stored.ContentID,
		"creator", stored.Creator,
		"is_public", stored.IsPublic,
	)
	return RegisterContentResult{Content: stored}, nil
}

func (u RegisterContentUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
