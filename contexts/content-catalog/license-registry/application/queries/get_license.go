package queries

import (
	"context"
	"log/slog"

	"marlowe/contexts/content-catalog/license-registry/domain/entities"
	"marlowe/contexts/content-catalog/license-registry/ports"
)

type GetLicenseQuery struct {
	LicenseID uint64
}

type GetLicenseResult struct {
	License entities.License
}

type GetLicenseUseCase struct {
	Licenses ports.LicenseRepository
	Logger   *slog.Logger
}

func (u GetLicenseUseCase) Execute(ctx context.Context, query GetLicenseQuery) (GetLicenseResult, error) {
	license, err := u.Licenses.GetLicense(ctx, query.LicenseID)
	if err != nil {
		return GetLicenseResult{}, err
	}
	return GetLicenseResult{License: license}, nil
}
