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

type DeactivateLicenseCommand struct {
	Caller    string
	LicenseID uint64
}

type DeactivateLicenseResult struct {
	License entities.License
}

type DeactivateLicenseUseCase struct {
	Licenses ports.LicenseRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

// Execute takes the offer off the market. Deactivation is not reversible
// through this call; reactivation goes through UpdateTerms.
func (u DeactivateLicenseUseCase) Execute(ctx context.Context, cmd DeactivateLicenseCommand) (DeactivateLicenseResult, error) {
	logger := application.ResolveLogger(u.Logger)

	license, err := u.Licenses.GetLicense(ctx, cmd.LicenseID)
	if err != nil {
		return DeactivateLicenseResult{}, err
	}
	if err := authz.RequireOwner(cmd.Caller, license.Creator); err != nil {
		logger.Warn("license deactivation denied",
			"event", "deactivate_license_denied",
			"module", "content-catalog/license-registry",
			"layer", "application",
			"license_id", cmd.LicenseID,
			"caller", cmd.Caller,
		)
		return DeactivateLicenseResult{}, err
	}

	now := u.now()
	if err := u.Licenses.SetLicenseActive(ctx, cmd.LicenseID, false, now); err != nil {
		logger.Error("license deactivation failed on write",
			"event", "deactivate_license_write_failed",
			"module", "content-catalog/license-registry",
			"layer", "application",
			"license_id", cmd.LicenseID,
			"error", err.Error(),
		)
		return DeactivateLicenseResult{}, err
	}

	license.Active = false
	license.UpdatedAt = now

	logger.Info("license deactivated",
		"event", "license_deactivated",
		"module", "content-catalog/license-registry",
		"layer", "application",
		"license_id", cmd.LicenseID,
		"caller", cmd.Caller,
	)
	return DeactivateLicenseResult{License: license}, nil
}

func (u DeactivateLicenseUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
