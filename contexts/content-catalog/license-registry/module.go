package licenseregistry

import (
	"log/slog"

	httpadapter "marlowe/contexts/content-catalog/license-registry/adapters/http"
	"marlowe/contexts/content-catalog/license-registry/adapters/memory"
	"marlowe/contexts/content-catalog/license-registry/application/commands"
	"marlowe/contexts/content-catalog/license-registry/application/queries"
	"marlowe/contexts/content-catalog/license-registry/ports"
)

// Module is the license registry composition surface.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Licenses  ports.LicenseRepository
	Ownership ports.ContentOwnership
	Clock     ports.Clock
	Logger    *slog.Logger
}

// NewModule wires license registry use-cases against explicit ports.
func NewModule(deps Dependencies) Module {
	createLicense := commands.CreateLicenseUseCase{
		Licenses:  deps.Licenses,
		Ownership: deps.Ownership,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	updateTerms := commands.UpdateTermsUseCase{
		Licenses: deps.Licenses,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	deactivateLicense := commands.DeactivateLicenseUseCase{
		Licenses: deps.Licenses,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	getLicense := queries.GetLicenseUseCase{
		Licenses: deps.Licenses,
		Logger:   deps.Logger,
	}
	listLicenses := queries.ListLicensesUseCase{
		Licenses: deps.Licenses,
		Logger:   deps.Logger,
	}
	isActive := queries.IsActiveUseCase{
		Licenses: deps.Licenses,
		Logger:   deps.Logger,
	}

	handler := httpadapter.Handler{
		CreateLicense:     createLicense,
		UpdateTerms:       updateTerms,
		DeactivateLicense: deactivateLicense,
		GetLicense:        getLicense,
		ListLicenses:      listLicenses,
		IsActive:          isActive,
		Logger:            deps.Logger,
	}

	return Module{Handler: handler}
}

// NewInMemoryModule wires the registry against the in-memory adapter.
// Ownership still arrives as a port so tests compose it with the content
// registry of their choice.
func NewInMemoryModule(ownership ports.ContentOwnership, clock ports.Clock, logger *slog.Logger) Module {
	store := memory.NewStore(logger)
	module := NewModule(Dependencies{
		Licenses:  store,
		Ownership: ownership,
		Clock:     clock,
		Logger:    logger,
	})
	module.Store = store
	return module
}
