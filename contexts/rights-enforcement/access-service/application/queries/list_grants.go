package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"marlowe/contexts/rights-enforcement/access-service/domain/entities"
	domainerrors "marlowe/contexts/rights-enforcement/access-service/domain/errors"
	"marlowe/contexts/rights-enforcement/access-service/domain/services"
	"marlowe/contexts/rights-enforcement/access-service/ports"
)

type ListGrantsQuery struct {
	User string
}

// GrantWithValidity pairs a stored grant with its derived validity at
// evaluation time.
type GrantWithValidity struct {
	Grant entities.Grant
	Valid bool
}

type ListGrantsResult struct {
	Items []GrantWithValidity
}

type ListGrantsUseCase struct {
	Grants ports.GrantRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u ListGrantsUseCase) Execute(ctx context.Context, query ListGrantsQuery) (ListGrantsResult, error) {
	if strings.TrimSpace(query.User) == "" {
		return ListGrantsResult{}, domainerrors.ErrInvalidPurchase
	}

	grants, err := u.Grants.ListGrantsByUser(ctx, query.User)
	if err != nil {
		return ListGrantsResult{}, err
	}

	now := u.now()
	items := make([]GrantWithValidity, 0, len(grants))
	for _, grant := range grants {
		items = append(items, GrantWithValidity{
			Grant: grant,
			Valid: services.EvaluateAccess(grant, true, now).Allowed,
		})
	}
	return ListGrantsResult{Items: items}, nil
}

func (u ListGrantsUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
