package accessservice

import (
	"log/slog"

	httpadapter "marlowe/contexts/rights-enforcement/access-service/adapters/http"
	"marlowe/contexts/rights-enforcement/access-service/adapters/memory"
	paymentadapter "marlowe/contexts/rights-enforcement/access-service/adapters/payment"
	"marlowe/contexts/rights-enforcement/access-service/application/commands"
	"marlowe/contexts/rights-enforcement/access-service/application/queries"
	"marlowe/contexts/rights-enforcement/access-service/application/workers"
	"marlowe/contexts/rights-enforcement/access-service/ports"
)

// Module is the access service composition surface.
type Module struct {
	Handler httpadapter.Handler
	Relay   workers.OutboxRelay
	Store   *memory.Store
	Ledger  *paymentadapter.Ledger
}

type Dependencies struct {
	Grants      ports.GrantRepository
	Keys        ports.AccessKeyRepository
	Outbox      ports.OutboxRepository
	Licenses    ports.LicenseSource
	Ownership   ports.ContentOwnership
	Payments    ports.PaymentLedger
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// NewModule wires access service use-cases against explicit ports.
func NewModule(deps Dependencies) Module {
	purchaseLicense := commands.PurchaseLicenseUseCase{
		Licenses:    deps.Licenses,
		Grants:      deps.Grants,
		Payments:    deps.Payments,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	revokeGrant := commands.RevokeGrantUseCase{
		Grants:      deps.Grants,
		Ownership:   deps.Ownership,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	rotateAccessKey := commands.RotateAccessKeyUseCase{
		Grants:      deps.Grants,
		Keys:        deps.Keys,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	hasAccess := queries.HasAccessUseCase{
		Grants: deps.Grants,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	getGrant := queries.GetGrantUseCase{
		Grants: deps.Grants,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	listGrants := queries.ListGrantsUseCase{
		Grants: deps.Grants,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	getAccessKey := queries.GetAccessKeyUseCase{
		Grants: deps.Grants,
		Keys:   deps.Keys,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}

	handler := httpadapter.Handler{
		PurchaseLicense: purchaseLicense,
		RevokeGrant:     revokeGrant,
		RotateAccessKey: rotateAccessKey,
		HasAccess:       hasAccess,
		GetGrant:        getGrant,
		ListGrants:      listGrants,
		GetAccessKey:    getAccessKey,
		Logger:          deps.Logger,
	}
	relay := workers.OutboxRelay{
		Outbox:    deps.Outbox,
		Publisher: deps.Publisher,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}

	return Module{Handler: handler, Relay: relay}
}

// NewInMemoryModule wires the service against the in-memory ledger and
// payment stub. License and ownership projections still arrive as ports
// so callers compose them with the catalog modules of their choice.
func NewInMemoryModule(
	licenses ports.LicenseSource,
	ownership ports.ContentOwnership,
	publisher ports.EventPublisher,
	clock ports.Clock,
	idGenerator ports.IDGenerator,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(logger)
	ledger := paymentadapter.NewLedger(logger)
	module := NewModule(Dependencies{
		Grants:      store,
		Keys:        store,
		Outbox:      store,
		Licenses:    licenses,
		Ownership:   ownership,
		Payments:    ledger,
		Publisher:   publisher,
		Clock:       clock,
		IDGenerator: idGenerator,
		Logger:      logger,
	})
	module.Store = store
	module.Ledger = ledger
	return module
}
