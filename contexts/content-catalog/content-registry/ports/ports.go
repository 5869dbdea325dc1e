package ports

import (
	"context"
	"time"

	"marlowe/contexts/content-catalog/content-registry/domain/entities"
)

// ContentRepository owns content persistence. CreateContent assigns the
// next monotonic ContentID and returns the stored row.
type ContentRepository interface {
	CreateContent(ctx context.Context, content entities.Content) (entities.Content, error)
	GetContent(ctx context.Context, contentID uint64) (entities.Content, error)
	ListContentsByCreator(ctx context.Context, creator string) ([]entities.Content, error)
	UpdateContentMetadata(
		ctx context.Context,
		contentID uint64,
		title string,
		description string,
		isPublic bool,
		updatedAt time.Time,
	) error
	UpdateContentOwner(
		ctx context.Context,
		contentID uint64,
		newOwner string,
		updatedAt time.Time,
	) error
}

// Clock allows deterministic testing of registration timestamps.
type Clock interface {
	Now() time.Time
}
