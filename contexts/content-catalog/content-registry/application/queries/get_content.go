package queries

import (
	"context"
	"log/slog"

	"marlowe/contexts/content-catalog/content-registry/domain/entities"
	"marlowe/contexts/content-catalog/content-registry/ports"
)

type GetContentQuery struct {
	ContentID uint64
}

type GetContentResult struct {
	Content entities.Content
}

type GetContentUseCase struct {
	Contents ports.ContentRepository
	Logger   *slog.Logger
}

func (u GetContentUseCase) Execute(ctx context.Context, query GetContentQuery) (GetContentResult, error) {
	content, err := u.Contents.GetContent(ctx, query.ContentID)
	if err != nil {
		return GetContentResult{}, err
	}
	return GetContentResult{Content: content}, nil
}
