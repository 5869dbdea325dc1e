package commands

import (
	"context"
	"log/slog"
	"time"

	application "marlowe/contexts/content-catalog/license-registry/application"
	"marlowe/contexts/content-catalog/license-registry/domain/entities"
	domainerrors "marlowe/contexts/content-catalog/license-registry/domain/errors"
	"marlowe/contexts/content-catalog/license-registry/ports"
	"marlowe/internal/shared/authz"
)

type CreateLicenseCommand struct {
	Caller              string
	ContentID           uint64
	LicenseType         string
	Price               int64
	DurationMinutes     *int64
	MaxUses             *int64
	CommercialUse       bool
	ModificationAllowed bool
}

type CreateLicenseResult struct {
	License entities.License
}

type CreateLicenseUseCase struct {
	Licenses  ports.LicenseRepository
	Ownership ports.ContentOwnership
	Clock     ports.Clock
	Logger    *slog.Logger
}

// Execute attaches a new offer to a content record. Only the content's
// current owner may create licenses; the caller is then frozen into the
// license as its creator.
func (u CreateLicenseUseCase) Execute(ctx context.Context, cmd CreateLicenseCommand) (CreateLicenseResult, error) {
	logger := application.ResolveLogger(u.Logger)

	owner, found, err := u.Ownership.OwnerOf(ctx, cmd.ContentID)
	if err != nil {
		logger.Error("create license failed resolving content owner",
			"event", "create_license_owner_lookup_failed",
			"module", "content-catalog/license-registry",
			"layer", "application",
			"content_id", cmd.ContentID,
			"error", err.Error(),
		)
		return CreateLicenseResult{}, err
	}
	if !found {
		return CreateLicenseResult{}, domainerrors.ErrContentNotFound
	}
	if err := authz.RequireOwner(cmd.Caller, owner); err != nil {
		logger.Warn("create license denied",
			"event", "create_license_denied",
			"module", "content-catalog/license-registry",
			"layer", "application",
			"content_id", cmd.ContentID,
			"caller", cmd.Caller,
		)
		return CreateLicenseResult{}, err
	}

	license, err := entities.NewLicense(
		cmd.ContentID,
		cmd.Caller,
		cmd.LicenseType,
		entities.Terms{
			Price:               cmd.Price,
			DurationMinutes:     cmd.DurationMinutes,
			MaxUses:             cmd.MaxUses,
			CommercialUse:       cmd.CommercialUse,
			ModificationAllowed: cmd.ModificationAllowed,
			Active:              true,
		},
		u.now(),
	)
	if err != nil {
		return CreateLicenseResult{}, err
	}

	stored, err := u.Licenses.CreateLicense(ctx, license)
	if err != nil {
		logger.Error("create license failed on write",
			"event", "create_license_write_failed",
			"module", "content-catalog/license-registry",
			"layer", "application",
			"content_id", cmd.ContentID,
			"error", err.Error(),
		)
		return CreateLicenseResult{}, err
	}

	logger.Info("license created",
		"event", "license_created",
		"module", "content-catalog/license-registry",
		"layer", "application",
		"license_id", stored.LicenseID,
		"content_id", stored.ContentID,
		"creator", stored.Creator,
		"license_type", stored.LicenseType,
		"price", stored.Price,
	)
	return CreateLicenseResult{License: stored}, nil
}

func (u CreateLicenseUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
