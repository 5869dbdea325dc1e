package contentregistry

import (
	"log/slog"

	httpadapter "marlowe/contexts/content-catalog/content-registry/adapters/http"
	"marlowe/contexts/content-catalog/content-registry/adapters/memory"
	"marlowe/contexts/content-catalog/content-registry/application/commands"
	"marlowe/contexts/content-catalog/content-registry/application/queries"
	"marlowe/contexts/content-catalog/content-registry/ports"
)

// Module is the content registry composition surface. Runtime wiring
// consumes Handler; Store is exposed for tests/inspection when the
// in-memory path is used.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Contents ports.ContentRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

// NewModule wires content registry use-cases against explicit ports.
func NewModule(deps Dependencies) Module {
	registerContent := commands.RegisterContentUseCase{
		Contents: deps.Contents,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	updateMetadata := commands.UpdateMetadataUseCase{
		Contents: deps.Contents,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	transferOwnership := commands.TransferOwnershipUseCase{
		Contents: deps.Contents,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	getContent := queries.GetContentUseCase{
		Contents: deps.Contents,
		Logger:   deps.Logger,
	}
	listContents := queries.ListContentsUseCase{
		Contents: deps.Contents,
		Logger:   deps.Logger,
	}
	verifyOwnership := queries.VerifyOwnershipUseCase{
		Contents: deps.Contents,
		Logger:   deps.Logger,
	}

	handler := httpadapter.Handler{
		RegisterContent:   registerContent,
		UpdateMetadata:    updateMetadata,
		TransferOwnership: transferOwnership,
		GetContent:        getContent,
		ListContents:      listContents,
		VerifyOwnership:   verifyOwnership,
		Logger:            deps.Logger,
	}

	return Module{Handler: handler}
}

// NewInMemoryModule wires the registry against the in-memory adapter for
// tests and local runtime.
func NewInMemoryModule(clock ports.Clock, logger *slog.Logger) Module {
	store := memory.NewStore(logger)
	module := NewModule(Dependencies{
		Contents: store,
		Clock:    clock,
		Logger:   logger,
	})
	module.Store = store
	return module
}
