package queries

import (
	"context"
	"errors"
	"log/slog"

	domainerrors "marlowe/contexts/content-catalog/content-registry/domain/errors"
	"marlowe/contexts/content-catalog/content-registry/ports"
	"marlowe/internal/shared/authz"
)

type VerifyOwnershipQuery struct {
	Principal string
	ContentID uint64
}

type VerifyOwnershipResult struct {
	IsOwner bool
}

type VerifyOwnershipUseCase struct {
	Contents ports.ContentRepository
	Logger   *slog.Logger
}

// Execute is a pure ownership read. Missing content yields false rather
// than an error; callers that need to distinguish absence use GetContent.
func (u VerifyOwnershipUseCase) Execute(ctx context.Context, query VerifyOwnershipQuery) (VerifyOwnershipResult, error) {
	content, err := u.Contents.GetContent(ctx, query.ContentID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrContentNotFound) {
			return VerifyOwnershipResult{IsOwner: false}, nil
		}
		return VerifyOwnershipResult{}, err
	}
	return VerifyOwnershipResult{IsOwner: authz.IsOwner(query.Principal, content.Creator)}, nil
}
