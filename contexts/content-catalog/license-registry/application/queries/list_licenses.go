package queries

import (
	"context"
	"log/slog"

	"marlowe/contexts/content-catalog/license-registry/domain/entities"
	"marlowe/contexts/content-catalog/license-registry/ports"
)

type ListLicensesQuery struct {
	ContentID uint64
}

type ListLicensesResult struct {
	Items []entities.License
}

type ListLicensesUseCase struct {
	Licenses ports.LicenseRepository
	Logger   *slog.Logger
}

func (u ListLicensesUseCase) Execute(ctx context.Context, query ListLicensesQuery) (ListLicensesResult, error) {
	items, err := u.Licenses.ListLicensesByContent(ctx, query.ContentID)
	if err != nil {
		return ListLicensesResult{}, err
	}
	return ListLicensesResult{Items: items}, nil
}
