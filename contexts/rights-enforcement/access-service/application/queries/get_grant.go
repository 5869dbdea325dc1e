package queries

import (
	"context"
	"log/slog"
	"time"

	"marlowe/contexts/rights-enforcement/access-service/domain/entities"
	domainerrors "marlowe/contexts/rights-enforcement/access-service/domain/errors"
	"marlowe/contexts/rights-enforcement/access-service/domain/services"
	"marlowe/contexts/rights-enforcement/access-service/ports"
)

type GetGrantQuery struct {
	ContentID uint64
	User      string
}

type GetGrantResult struct {
	Grant entities.Grant
	Valid bool
}

type GetGrantUseCase struct {
	Grants ports.GrantRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u GetGrantUseCase) Execute(ctx context.Context, query GetGrantQuery) (GetGrantResult, error) {
	grant, found, err := u.Grants.GetGrant(ctx, query.ContentID, query.User)
	if err != nil {
		return GetGrantResult{}, err
	}
	if !found {
		return GetGrantResult{}, domainerrors.ErrGrantNotFound
	}
	decision := services.EvaluateAccess(grant, true, u.now())
	return GetGrantResult{
		Grant: grant,
		Valid: decision.Allowed,
	}, nil
}

func (u GetGrantUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
