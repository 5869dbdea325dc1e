package httpadapter

import (
	"context"
	"log/slog"
	"time"

	application "marlowe/contexts/content-catalog/license-registry/application"
	"marlowe/contexts/content-catalog/license-registry/application/commands"
	"marlowe/contexts/content-catalog/license-registry/application/queries"
	"marlowe/contexts/content-catalog/license-registry/domain/entities"
	httptransport "marlowe/contexts/content-catalog/license-registry/transport/http"
)

type Handler struct {
	CreateLicense     commands.CreateLicenseUseCase
	UpdateTerms       commands.UpdateTermsUseCase
	DeactivateLicense commands.DeactivateLicenseUseCase
	GetLicense        queries.GetLicenseUseCase
	ListLicenses      queries.ListLicensesUseCase
	IsActive          queries.IsActiveUseCase
	Logger            *slog.Logger
}

// CreateLicenseHandler godoc
// @Summary Create a license offer
// @Description Attaches a new offer to a content record; content owner only.
// @Tags license-registry
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller principal"
// @Param content_id path int true "Content id"
// @Param request body httptransport.CreateLicenseRequest true "License payload"
// @Success 200 {object} httptransport.CreateLicenseResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/catalog/contents/{content_id}/licenses [post]
func (h Handler) CreateLicenseHandler(
	ctx context.Context,
	caller string,
	contentID uint64,
	req httptransport.CreateLicenseRequest,
) (httptransport.CreateLicenseResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("create license request received",
		"event", "http_create_license_received",
		"module", "content-catalog/license-registry",
		"layer", "transport",
		"content_id", contentID,
		"caller", caller,
	)

	result, err := h.CreateLicense.Execute(ctx, commands.CreateLicenseCommand{
		Caller:              caller,
		ContentID:           contentID,
		LicenseType:         req.LicenseType,
		Price:               req.Price,
		DurationMinutes:     req.DurationMinutes,
		MaxUses:             req.MaxUses,
		CommercialUse:       req.CommercialUse,
		ModificationAllowed: req.ModificationAllowed,
	})
	if err != nil {
		return httptransport.CreateLicenseResponse{}, err
	}
	return httptransport.CreateLicenseResponse{Item: mapLicense(result.License)}, nil
}

// GetLicenseHandler godoc
// @Summary Get license
// @Description Returns one license offer by id.
// @Tags license-registry
// @Produce json
// @Param license_id path int true "License id"
// @Success 200 {object} httptransport.GetLicenseResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/catalog/licenses/{license_id} [get]
func (h Handler) GetLicenseHandler(ctx context.Context, licenseID uint64) (httptransport.GetLicenseResponse, error) {
	result, err := h.GetLicense.Execute(ctx, queries.GetLicenseQuery{LicenseID: licenseID})
	if err != nil {
		return httptransport.GetLicenseResponse{}, err
	}
	return httptransport.GetLicenseResponse{Item: mapLicense(result.License)}, nil
}

// ListLicensesHandler godoc
// @Summary List licenses for content
// @Description Returns all offers attached to a content record.
// @Tags license-registry
// @Produce json
// @Param content_id path int true "Content id"
// @Success 200 {object} httptransport.ListLicensesResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/catalog/contents/{content_id}/licenses [get]
func (h Handler) ListLicensesHandler(ctx context.Context, contentID uint64) (httptransport.ListLicensesResponse, error) {
	result, err := h.ListLicenses.Execute(ctx, queries.ListLicensesQuery{ContentID: contentID})
	if err != nil {
		return httptransport.ListLicensesResponse{}, err
	}
	items := make([]httptransport.LicenseDTO, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, mapLicense(item))
	}
	return httptransport.ListLicensesResponse{Items: items}, nil
}

// UpdateTermsHandler godoc
// @Summary Update license terms
// @Description Replaces all replaceable terms atomically; license creator only.
// @Tags license-registry
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller principal"
// @Param license_id path int true "License id"
// @Param request body httptransport.UpdateTermsRequest true "Terms payload"
// @Success 200 {object} httptransport.UpdateTermsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/catalog/licenses/{license_id}/terms [post]
func (h Handler) UpdateTermsHandler(
	ctx context.Context,
	caller string,
	licenseID uint64,
	req httptransport.UpdateTermsRequest,
) (httptransport.UpdateTermsResponse, error) {
	result, err := h.UpdateTerms.Execute(ctx, commands.UpdateTermsCommand{
		Caller:              caller,
		LicenseID:           licenseID,
		Price:               req.Price,
		DurationMinutes:     req.DurationMinutes,
		MaxUses:             req.MaxUses,
		CommercialUse:       req.CommercialUse,
		ModificationAllowed: req.ModificationAllowed,
		Active:              req.Active,
	})
	if err != nil {
		return httptransport.UpdateTermsResponse{}, err
	}
	return httptransport.UpdateTermsResponse{Item: mapLicense(result.License)}, nil
}

// DeactivateLicenseHandler godoc
// @Summary Deactivate license
// @Description Takes the offer off the market; license creator only.
// @Tags license-registry
// @Produce json
// @Param X-User-Id header string true "Caller principal"
// @Param license_id path int true "License id"
// @Success 200 {object} httptransport.DeactivateLicenseResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/catalog/licenses/{license_id}/deactivate [post]
func (h Handler) DeactivateLicenseHandler(
	ctx context.Context,
	caller string,
	licenseID uint64,
) (httptransport.DeactivateLicenseResponse, error) {
	result, err := h.DeactivateLicense.Execute(ctx, commands.DeactivateLicenseCommand{
		Caller:    caller,
		LicenseID: licenseID,
	})
	if err != nil {
		return httptransport.DeactivateLicenseResponse{}, err
	}
	return httptransport.DeactivateLicenseResponse{Item: mapLicense(result.License)}, nil
}

// IsActiveHandler godoc
// @Summary Check license active flag
// @Description Pure read of the stored flag; false for missing licenses.
// @Tags license-registry
// @Produce json
// @Param license_id path int true "License id"
// @Success 200 {object} httptransport.IsActiveResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/catalog/licenses/{license_id}/active [get]
func (h Handler) IsActiveHandler(ctx context.Context, licenseID uint64) (httptransport.IsActiveResponse, error) {
	result, err := h.IsActive.Execute(ctx, queries.IsActiveQuery{LicenseID: licenseID})
	if err != nil {
		return httptransport.IsActiveResponse{}, err
	}
	return httptransport.IsActiveResponse{
		LicenseID: licenseID,
		Active:    result.Active,
	}, nil
}

func mapLicense(license entities.License) httptransport.LicenseDTO {
	return httptransport.LicenseDTO{
		LicenseID:           license.LicenseID,
		ContentID:           license.ContentID,
		Creator:             license.Creator,
		LicenseType:         license.LicenseType,
		Price:               license.Price,
		DurationMinutes:     license.DurationMinutes,
		MaxUses:             license.MaxUses,
		CommercialUse:       license.CommercialUse,
		ModificationAllowed: license.ModificationAllowed,
		Active:              license.Active,
		CreatedAt:           license.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:           license.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
