package httpadapter

import (
	"context"
	"log/slog"
	"time"

	application "marlowe/contexts/rights-enforcement/access-service/application"
	"marlowe/contexts/rights-enforcement/access-service/application/commands"
	"marlowe/contexts/rights-enforcement/access-service/application/queries"
	"marlowe/contexts/rights-enforcement/access-service/domain/entities"
	httptransport "marlowe/contexts/rights-enforcement/access-service/transport/http"
)

type Handler struct {
	PurchaseLicense commands.PurchaseLicenseUseCase
	RevokeGrant     commands.RevokeGrantUseCase
	RotateAccessKey commands.RotateAccessKeyUseCase
	HasAccess       queries.HasAccessUseCase
	GetGrant        queries.GetGrantUseCase
	ListGrants      queries.ListGrantsUseCase
	GetAccessKey    queries.GetAccessKeyUseCase
	Logger          *slog.Logger
}

// PurchaseLicenseHandler godoc
// @Summary Purchase a license
// @Description Settles the offer price and records an access grant for the caller.
// @Tags access-service
// @Produce json
// @Param X-User-Id header string true "Caller principal"
// @Param license_id path int true "License id"
// @Success 200 {object} httptransport.PurchaseLicenseResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 402 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/access/licenses/{license_id}/purchase [post]
func (h Handler) PurchaseLicenseHandler(
	ctx context.Context,
	caller string,
	licenseID uint64,
) (httptransport.PurchaseLicenseResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("purchase request received",
		"event", "http_purchase_license_received",
		"module", "rights-enforcement/access-service",
		"layer", "transport",
		"license_id", licenseID,
		"user", caller,
	)

	result, err := h.PurchaseLicense.Execute(ctx, commands.PurchaseLicenseCommand{
		Caller:    caller,
		LicenseID: licenseID,
	})
	if err != nil {
		return httptransport.PurchaseLicenseResponse{}, err
	}
	return httptransport.PurchaseLicenseResponse{Item: mapGrant(result.Grant, true)}, nil
}

// RevokeGrantHandler godoc
// @Summary Revoke an access grant
// @Description Deactivates a user's grant for a content record; content owner only.
// @Tags access-service
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller principal"
// @Param content_id path int true "Content id"
// @Param request body httptransport.RevokeGrantRequest true "Grant holder"
// @Success 200 {object} httptransport.RevokeGrantResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/access/contents/{content_id}/revoke [post]
func (h Handler) RevokeGrantHandler(
	ctx context.Context,
	caller string,
	contentID uint64,
	req httptransport.RevokeGrantRequest,
) (httptransport.RevokeGrantResponse, error) {
	result, err := h.RevokeGrant.Execute(ctx, commands.RevokeGrantCommand{
		Caller:    caller,
		ContentID: contentID,
		User:      req.User,
	})
	if err != nil {
		return httptransport.RevokeGrantResponse{}, err
	}
	return httptransport.RevokeGrantResponse{Item: mapGrant(result.Grant, false)}, nil
}

// HasAccessHandler godoc
// @Summary Check content access
// @Description Side-effect free validity check for the caller's grant.
// @Tags access-service
// @Produce json
// @Param X-User-Id header string true "Caller principal"
// @Param content_id path int true "Content id"
// @Success 200 {object} httptransport.HasAccessResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/access/contents/{content_id}/check [get]
func (h Handler) HasAccessHandler(
	ctx context.Context,
	caller string,
	contentID uint64,
) (httptransport.HasAccessResponse, error) {
	result, err := h.HasAccess.Execute(ctx, queries.HasAccessQuery{
		User:      caller,
		ContentID: contentID,
	})
	if err != nil {
		return httptransport.HasAccessResponse{}, err
	}
	return httptransport.HasAccessResponse{
		ContentID: contentID,
		User:      caller,
		Allowed:   result.Allowed,
		Reason:    result.Reason,
	}, nil
}

// GetGrantHandler godoc
// @Summary Get one grant
// @Description Returns the stored grant for (content, user) with derived validity.
// @Tags access-service
// @Produce json
// @Param content_id path int true "Content id"
// @Param user query string true "Grant holder"
// @Success 200 {object} httptransport.GetGrantResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/access/contents/{content_id}/grants [get]
func (h Handler) GetGrantHandler(
	ctx context.Context,
	contentID uint64,
	user string,
) (httptransport.GetGrantResponse, error) {
	result, err := h.GetGrant.Execute(ctx, queries.GetGrantQuery{
		ContentID: contentID,
		User:      user,
	})
	if err != nil {
		return httptransport.GetGrantResponse{}, err
	}
	return httptransport.GetGrantResponse{Item: mapGrant(result.Grant, result.Valid)}, nil
}

// ListGrantsHandler godoc
// @Summary List a user's grants
// @Description Returns every stored grant held by the user with derived validity.
// @Tags access-service
// @Produce json
// @Param user path string true "Grant holder"
// @Success 200 {object} httptransport.ListGrantsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/access/users/{user}/grants [get]
func (h Handler) ListGrantsHandler(ctx context.Context, user string) (httptransport.ListGrantsResponse, error) {
	result, err := h.ListGrants.Execute(ctx, queries.ListGrantsQuery{User: user})
	if err != nil {
		return httptransport.ListGrantsResponse{}, err
	}
	items := make([]httptransport.GrantDTO, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, mapGrant(item.Grant, item.Valid))
	}
	return httptransport.ListGrantsResponse{Items: items}, nil
}

// RotateAccessKeyHandler godoc
// @Summary Rotate the content access key
// @Description Overwrites the key with caller material; the accounted use on bounded grants.
// @Tags access-service
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller principal"
// @Param content_id path int true "Content id"
// @Param request body httptransport.RotateAccessKeyRequest true "Opaque key material"
// @Success 200 {object} httptransport.RotateAccessKeyResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/access/contents/{content_id}/key [post]
func (h Handler) RotateAccessKeyHandler(
	ctx context.Context,
	caller string,
	contentID uint64,
	req httptransport.RotateAccessKeyRequest,
) (httptransport.RotateAccessKeyResponse, error) {
	result, err := h.RotateAccessKey.Execute(ctx, commands.RotateAccessKeyCommand{
		Caller:      caller,
		ContentID:   contentID,
		KeyMaterial: req.KeyMaterial,
	})
	if err != nil {
		return httptransport.RotateAccessKeyResponse{}, err
	}
	return httptransport.RotateAccessKeyResponse{
		ContentID: result.AccessKey.ContentID,
		Key:       result.AccessKey.Key,
		UsesLeft:  result.UsesLeft,
		UpdatedAt: result.AccessKey.UpdatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// GetAccessKeyHandler godoc
// @Summary Read the content access key
// @Description Returns the current key to a caller holding a valid grant; not an accounted use.
// @Tags access-service
// @Produce json
// @Param X-User-Id header string true "Caller principal"
// @Param content_id path int true "Content id"
// @Success 200 {object} httptransport.GetAccessKeyResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/access/contents/{content_id}/key [get]
func (h Handler) GetAccessKeyHandler(
	ctx context.Context,
	caller string,
	contentID uint64,
) (httptransport.GetAccessKeyResponse, error) {
	result, err := h.GetAccessKey.Execute(ctx, queries.GetAccessKeyQuery{
		Caller:    caller,
		ContentID: contentID,
	})
	if err != nil {
		return httptransport.GetAccessKeyResponse{}, err
	}
	return httptransport.GetAccessKeyResponse{
		ContentID: result.AccessKey.ContentID,
		Key:       result.AccessKey.Key,
		UpdatedAt: result.AccessKey.UpdatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func mapGrant(grant entities.Grant, valid bool) httptransport.GrantDTO {
	dto := httptransport.GrantDTO{
		ContentID:   grant.ContentID,
		LicenseID:   grant.LicenseID,
		User:        grant.User,
		PurchasedAt: grant.PurchasedAt.UTC().Format(time.RFC3339),
		UsesLeft:    grant.UsesLeft,
		Active:      grant.Active,
		Valid:       valid,
		UpdatedAt:   grant.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if grant.ExpiresAt != nil {
		dto.ExpiresAt = grant.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return dto
}
