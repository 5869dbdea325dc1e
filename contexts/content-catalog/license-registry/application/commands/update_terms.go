package commands

import (
	"context"
	"log/slog"
	"time"

	application "marlowe/contexts/content-catalog/license-registry/application"
	"marlowe/contexts/content-catalog/license-registry/domain/entities"
	"marlowe/contexts/content-catalog/license-registry/ports"
	"marlowe/internal/shared/authz"
)

type UpdateTermsCommand struct {
	Caller              string
	LicenseID           uint64
	Price               int64
	DurationMinutes     *int64
	MaxUses             *int64
	CommercialUse       bool
	ModificationAllowed bool
	Active              bool
}

type UpdateTermsResult struct {
	License entities.License
}

type UpdateTermsUseCase struct {
	Licenses ports.LicenseRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

// Execute replaces the whole replaceable field set at once. Grants
// already purchased keep the terms copied at purchase time; updates
// never cascade. Setting Active true here is the only reactivation path.
func (u UpdateTermsUseCase) Execute(ctx context.Context, cmd UpdateTermsCommand) (UpdateTermsResult, error) {
	logger := application.ResolveLogger(u.Logger)

	license, err := u.Licenses.GetLicense(ctx, cmd.LicenseID)
	if err != nil {
		return UpdateTermsResult{}, err
	}
	if err := authz.RequireOwner(cmd.Caller, license.Creator); err != nil {
		logger.Warn("license terms update denied",
			"event", "update_terms_denied",
			"module", "content-catalog/license-registry",
			"layer", "application",
			"license_id", cmd.LicenseID,
			"caller", cmd.Caller,
		)
		return UpdateTermsResult{}, err
	}

	now := u.now()
	terms := entities.Terms{
		Price:               cmd.Price,
		DurationMinutes:     cmd.DurationMinutes,
		MaxUses:             cmd.MaxUses,
		CommercialUse:       cmd.CommercialUse,
		ModificationAllowed: cmd.ModificationAllowed,
		Active:              cmd.Active,
	}
	updated, err := license.ApplyTerms(terms, now)
	if err != nil {
		return UpdateTermsResult{}, err
	}

	// Persist the normalized set (zero duration is stored as absence).
	normalized := entities.Terms{
		Price:               updated.Price,
		DurationMinutes:     updated.DurationMinutes,
		MaxUses:             updated.MaxUses,
		CommercialUse:       updated.CommercialUse,
		ModificationAllowed: updated.ModificationAllowed,
		Active:              updated.Active,
	}
	if err := u.Licenses.ReplaceLicenseTerms(ctx, cmd.LicenseID, normalized, now); err != nil {
		logger.Error("license terms update failed on write",
			"event", "update_terms_write_failed",
			"module", "content-catalog/license-registry",
			"layer", "application",
			"license_id", cmd.LicenseID,
			"error", err.Error(),
		)
		return UpdateTermsResult{}, err
	}

	logger.Info("license terms updated",
		"event", "license_terms_updated",
		"module", "content-catalog/license-registry",
		"layer", "application",
		"license_id", cmd.LicenseID,
		"caller", cmd.Caller,
		"active", cmd.Active,
	)
	return UpdateTermsResult{License: updated}, nil
}

func (u UpdateTermsUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
