package queries

import (
	"context"
	"log/slog"
	"strings"

	"marlowe/contexts/content-catalog/content-registry/domain/entities"
	domainerrors "marlowe/contexts/content-catalog/content-registry/domain/errors"
	"marlowe/contexts/content-catalog/content-registry/ports"
)

type ListContentsQuery struct {
	Creator string
}

type ListContentsResult struct {
	Items []entities.Content
}

type ListContentsUseCase struct {
	Contents ports.ContentRepository
	Logger   *slog.Logger
}

func (u ListContentsUseCase) Execute(ctx context.Context, query ListContentsQuery) (ListContentsResult, error) {
	if strings.TrimSpace(query.Creator) == "" {
		return ListContentsResult{}, domainerrors.ErrInvalidContent
	}
	items, err := u.Contents.ListContentsByCreator(ctx, query.Creator)
	if err != nil {
		return ListContentsResult{}, err
	}
	return ListContentsResult{Items: items}, nil
}
