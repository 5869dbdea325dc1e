package queries

import (
	"context"
	"log/slog"
	"time"

	"marlowe/contexts/rights-enforcement/access-service/domain/services"
	"marlowe/contexts/rights-enforcement/access-service/ports"
)

type HasAccessQuery struct {
	User      string
	ContentID uint64
}

type HasAccessResult struct {
	Allowed bool
	Reason  string
}

type HasAccessUseCase struct {
	Grants ports.GrantRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

// Execute is the pure access predicate: side-effect free, idempotent,
// folding the stored revocation flag with derived expiry/exhaustion.
func (u HasAccessUseCase) Execute(ctx context.Context, query HasAccessQuery) (HasAccessResult, error) {
	grant, found, err := u.Grants.GetGrant(ctx, query.ContentID, query.User)
	if err != nil {
		return HasAccessResult{}, err
	}
	decision := services.EvaluateAccess(grant, found, u.now())
	return HasAccessResult{
		Allowed: decision.Allowed,
		Reason:  decision.Reason,
	}, nil
}

func (u HasAccessUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
