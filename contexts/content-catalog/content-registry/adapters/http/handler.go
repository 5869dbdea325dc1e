package httpadapter

import (
	"context"
	"log/slog"
	"time"

	application "marlowe/contexts/content-catalog/content-registry/application"
	"marlowe/contexts/content-catalog/content-registry/application/commands"
	"marlowe/contexts/content-catalog/content-registry/application/queries"
	"marlowe/contexts/content-catalog/content-registry/domain/entities"
	httptransport "marlowe/contexts/content-catalog/content-registry/transport/http"
)

type Handler struct {
	RegisterContent   commands.RegisterContentUseCase
	UpdateMetadata    commands.UpdateMetadataUseCase
	TransferOwnership commands.TransferOwnershipUseCase
	GetContent        queries.GetContentUseCase
	ListContents      queries.ListContentsUseCase
	VerifyOwnership   queries.VerifyOwnershipUseCase
	Logger            *slog.Logger
}

// RegisterContentHandler godoc
// @Summary Register content
// @Description Registers a new work owned by the caller and returns its id.
// @Tags content-registry
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller principal"
// @Param request body httptransport.RegisterContentRequest true "Content payload"
// @Success 200 {object} httptransport.RegisterContentResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/catalog/contents [post]
func (h Handler) RegisterContentHandler(
	ctx context.Context,
	creator string,
	req httptransport.RegisterContentRequest,
) (httptransport.RegisterContentResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("register content request received",
		"event", "http_register_content_received",
		"module", "content-catalog/content-registry",
		"layer", "transport",
		"creator", creator,
	)

	result, err := h.RegisterContent.Execute(ctx, commands.RegisterContentCommand{
		Creator:     creator,
		Title:       req.Title,
		Description: req.Description,
		ContentHash: req.ContentHash,
		ContentType: req.ContentType,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return httptransport.RegisterContentResponse{}, err
	}
	return httptransport.RegisterContentResponse{Item: mapContent(result.Content)}, nil
}

// GetContentHandler godoc
// @Summary Get content
// @Description Returns one registered work by id.
// @Tags content-registry
// @Produce json
// @Param content_id path int true "Content id"
// @Success 200 {object} httptransport.GetContentResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/catalog/contents/{content_id} [get]
func (h Handler) GetContentHandler(ctx context.Context, contentID uint64) (httptransport.GetContentResponse, error) {
	result, err := h.GetContent.Execute(ctx, queries.GetContentQuery{ContentID: contentID})
	if err != nil {
		return httptransport.GetContentResponse{}, err
	}
	return httptransport.GetContentResponse{Item: mapContent(result.Content)}, nil
}

// ListContentsHandler godoc
// @Summary List contents by creator
// @Description Returns all works currently owned by the given creator.
// @Tags content-registry
// @Produce json
// @Param creator query string true "Creator principal"
// @Success 200 {object} httptransport.ListContentsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/catalog/contents [get]
func (h Handler) ListContentsHandler(ctx context.Context, creator string) (httptransport.ListContentsResponse, error) {
	result, err := h.ListContents.Execute(ctx, queries.ListContentsQuery{Creator: creator})
	if err != nil {
		return httptransport.ListContentsResponse{}, err
	}
	items := make([]httptransport.ContentDTO, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, mapContent(item))
	}
	return httptransport.ListContentsResponse{Items: items}, nil
}

// UpdateMetadataHandler godoc
// @Summary Update content metadata
// @Description Mutates title/description/visibility; owner only.
// @Tags content-registry
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller principal"
// @Param content_id path int true "Content id"
// @Param request body httptransport.UpdateMetadataRequest true "Metadata payload"
// @Success 200 {object} httptransport.UpdateMetadataResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/catalog/contents/{content_id}/metadata [post]
func (h Handler) UpdateMetadataHandler(
	ctx context.Context,
	caller string,
	contentID uint64,
	req httptransport.UpdateMetadataRequest,
) (httptransport.UpdateMetadataResponse, error) {
	result, err := h.UpdateMetadata.Execute(ctx, commands.UpdateMetadataCommand{
		Caller:      caller,
		ContentID:   contentID,
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return httptransport.UpdateMetadataResponse{}, err
	}
	return httptransport.UpdateMetadataResponse{Item: mapContent(result.Content)}, nil
}

// TransferOwnershipHandler godoc
// @Summary Transfer content ownership
// @Description Reassigns the work to a new owner; current owner only.
// @Tags content-registry
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller principal"
// @Param content_id path int true "Content id"
// @Param request body httptransport.TransferOwnershipRequest true "Transfer payload"
// @Success 200 {object} httptransport.TransferOwnershipResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/catalog/contents/{content_id}/transfer [post]
func (h Handler) TransferOwnershipHandler(
	ctx context.Context,
	caller string,
	contentID uint64,
	req httptransport.TransferOwnershipRequest,
) (httptransport.TransferOwnershipResponse, error) {
	result, err := h.TransferOwnership.Execute(ctx, commands.TransferOwnershipCommand{
		Caller:    caller,
		ContentID: contentID,
		NewOwner:  req.NewOwner,
	})
	if err != nil {
		return httptransport.TransferOwnershipResponse{}, err
	}
	return httptransport.TransferOwnershipResponse{Item: mapContent(result.Content)}, nil
}

// VerifyOwnershipHandler godoc
// @Summary Verify content ownership
// @Description Pure read; false for missing content or non-owner.
// @Tags content-registry
// @Produce json
// @Param content_id path int true "Content id"
// @Param principal query string true "Principal to check"
// @Success 200 {object} httptransport.VerifyOwnershipResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/catalog/contents/{content_id}/ownership [get]
func (h Handler) VerifyOwnershipHandler(
	ctx context.Context,
	contentID uint64,
	principal string,
) (httptransport.VerifyOwnershipResponse, error) {
	result, err := h.VerifyOwnership.Execute(ctx, queries.VerifyOwnershipQuery{
		Principal: principal,
		ContentID: contentID,
	})
	if err != nil {
		return httptransport.VerifyOwnershipResponse{}, err
	}
	return httptransport.VerifyOwnershipResponse{
		ContentID: contentID,
		Principal: principal,
		IsOwner:   result.IsOwner,
	}, nil
}

func mapContent(content entities.Content) httptransport.ContentDTO {
	return httptransport.ContentDTO{
		ContentID:   content.ContentID,
		Creator:     content.Creator,
		Title:       content.Title,
		Description: content.Description,
		ContentHash: content.ContentHash,
		ContentType: content.ContentType,
		IsPublic:    content.IsPublic,
		CreatedAt:   content.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   content.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
