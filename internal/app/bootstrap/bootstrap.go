package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	contentregistry "marlowe/contexts/content-catalog/content-registry"
	contentpg "marlowe/contexts/content-catalog/content-registry/adapters/postgres"
	contenterrors "marlowe/contexts/content-catalog/content-registry/domain/errors"
	contentports "marlowe/contexts/content-catalog/content-registry/ports"
	licenseregistry "marlowe/contexts/content-catalog/license-registry"
	licensepg "marlowe/contexts/content-catalog/license-registry/adapters/postgres"
	licenseerrors "marlowe/contexts/content-catalog/license-registry/domain/errors"
	licenseports "marlowe/contexts/content-catalog/license-registry/ports"
	accessservice "marlowe/contexts/rights-enforcement/access-service"
	accesspayment "marlowe/contexts/rights-enforcement/access-service/adapters/payment"
	accesspg "marlowe/contexts/rights-enforcement/access-service/adapters/postgres"
	accessworkers "marlowe/contexts/rights-enforcement/access-service/application/workers"
	accessports "marlowe/contexts/rights-enforcement/access-service/ports"
	"marlowe/internal/platform/config"
	"marlowe/internal/platform/db"
	"marlowe/internal/platform/httpserver"
	"marlowe/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  accessworkers.OutboxRelay
	relayEnabled bool
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	contentRepo := contentpg.NewRepository(pg.DB, logger)
	contentModule := contentregistry.NewModule(contentregistry.Dependencies{
		Contents: contentRepo,
		Clock:    contentpg.SystemClock{},
		Logger:   logger,
	})

	licenseRepo := licensepg.NewRepository(pg.DB, logger)
	ownership := contentOwnership{contents: contentRepo}
	licenseModule := licenseregistry.NewModule(licenseregistry.Dependencies{
		Licenses:  licenseRepo,
		Ownership: ownership,
		Clock:     licensepg.SystemClock{},
		Logger:    logger,
	})

	accessRepo := accesspg.NewRepository(pg.DB, logger)
	accessModule := accessservice.NewModule(accessservice.Dependencies{
		Grants:      accessRepo,
		Keys:        accessRepo,
		Outbox:      accessRepo,
		Licenses:    licenseSource{licenses: licenseRepo},
		Ownership:   ownership,
		Payments:    accesspayment.NewLedger(logger),
		Clock:       accesspg.SystemClock{},
		IDGenerator: accesspg.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(contentModule, licenseModule, accessModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	accessRepo := accesspg.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: accessworkers.OutboxRelay{
			Outbox:        accessRepo,
			Publisher:     kafka,
			Clock:         accesspg.SystemClock{},
			Topic:         "licensing.events",
			SourceService: cfg.ServiceName,
			BatchSize:     100,
			Logger:        logger,
		},
		relayEnabled: cfg.EnableLicensingOutboxRelay,
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"relay_enabled", w.relayEnabled,
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if w.relayEnabled {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// contentOwnership projects the content registry's owner column for the
// license and access modules without coupling them to catalog errors.
type contentOwnership struct {
	contents contentports.ContentRepository
}

func (o contentOwnership) OwnerOf(ctx context.Context, contentID uint64) (string, bool, error) {
	content, err := o.contents.GetContent(ctx, contentID)
	if err != nil {
		if errors.Is(err, contenterrors.ErrContentNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return content.Creator, true, nil
}

// licenseSource projects license offers for the access module.
type licenseSource struct {
	licenses licenseports.LicenseRepository
}

func (s licenseSource) LicenseByID(ctx context.Context, licenseID uint64) (accessports.LicenseOffer, bool, error) {
	license, err := s.licenses.GetLicense(ctx, licenseID)
	if err != nil {
		if errors.Is(err, licenseerrors.ErrLicenseNotFound) {
			return accessports.LicenseOffer{}, false, nil
		}
		return accessports.LicenseOffer{}, false, err
	}
	return accessports.LicenseOffer{
		LicenseID:       license.LicenseID,
		ContentID:       license.ContentID,
		Creator:         license.Creator,
		LicenseType:     license.LicenseType,
		Price:           license.Price,
		DurationMinutes: license.DurationMinutes,
		MaxUses:         license.MaxUses,
		Active:          license.Active,
	}, true, nil
}

var _ licenseports.ContentOwnership = contentOwnership{}
var _ accessports.ContentOwnership = contentOwnership{}
var _ accessports.LicenseSource = licenseSource{}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
