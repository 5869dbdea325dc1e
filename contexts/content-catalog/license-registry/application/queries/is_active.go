package queries

import (
	"context"
	"errors"
	"log/slog"

	domainerrors "marlowe/contexts/content-catalog/license-registry/domain/errors"
	"marlowe/contexts/content-catalog/license-registry/ports"
)

type IsActiveQuery struct {
	LicenseID uint64
}

type IsActiveResult struct {
	Active bool
}

type IsActiveUseCase struct {
	Licenses ports.LicenseRepository
	Logger   *slog.Logger
}

// Execute reads only the stored flag; content state is not consulted.
// A missing license reads as inactive rather than an error.
func (u IsActiveUseCase) Execute(ctx context.Context, query IsActiveQuery) (IsActiveResult, error) {
	license, err := u.Licenses.GetLicense(ctx, query.LicenseID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrLicenseNotFound) {
			return IsActiveResult{Active: false}, nil
		}
		return IsActiveResult{}, err
	}
	return IsActiveResult{Active: license.Active}, nil
}
