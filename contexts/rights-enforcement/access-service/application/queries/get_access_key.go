package queries

import (
	"context"
	"log/slog"
	"time"

	application "marlowe/contexts/rights-enforcement/access-service/application"
	"marlowe/contexts/rights-enforcement/access-service/domain/entities"
	domainerrors "marlowe/contexts/rights-enforcement/access-service/domain/errors"
	"marlowe/contexts/rights-enforcement/access-service/domain/services"
	"marlowe/contexts/rights-enforcement/access-service/ports"
)

type GetAccessKeyQuery struct {
	Caller    string
	ContentID uint64
}

type GetAccessKeyResult struct {
	AccessKey entities.AccessKey
}

type GetAccessKeyUseCase struct {
	Grants ports.GrantRepository
	Keys   ports.AccessKeyRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

// Execute returns the content's current key to a caller with a valid
// grant. Reading is not an accounted use; only rotation deducts from
// usage-bounded grants.
func (u GetAccessKeyUseCase) Execute(ctx context.Context, query GetAccessKeyQuery) (GetAccessKeyResult, error) {
	logger := application.ResolveLogger(u.Logger)
	now := u.now()

	grant, found, err := u.Grants.GetGrant(ctx, query.ContentID, query.Caller)
	if err != nil {
		return GetAccessKeyResult{}, err
	}
	decision := services.EvaluateAccess(grant, found, now)
	if !decision.Allowed {
		logger.Warn("access key read denied",
			"event", "get_access_key_denied",
			"module", "rights-enforcement/access-service",
			"layer", "application",
			"content_id", query.ContentID,
			"caller", query.Caller,
			"reason", decision.Reason,
		)
		return GetAccessKeyResult{}, domainerrors.ErrAccessDenied
	}

	key, found, err := u.Keys.GetAccessKey(ctx, query.ContentID)
	if err != nil {
		return GetAccessKeyResult{}, err
	}
	if !found {
		return GetAccessKeyResult{}, domainerrors.ErrAccessKeyNotFound
	}
	return GetAccessKeyResult{AccessKey: key}, nil
}

func (u GetAccessKeyUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
