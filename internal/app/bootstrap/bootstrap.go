package bootstrap

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"studylog/app/internal/config"
	catalogdata "studylog/app/internal/data/catalog"
	"studylog/app/internal/data/database"
	"studylog/app/internal/data/migrations"
	progressdata "studylog/app/internal/data/progress"
	domaincatalog "studylog/app/internal/domain/catalog"
	domainprogress "studylog/app/internal/domain/progress"
	"studylog/app/internal/infrastructure/markdown"
	presentationhttp "studylog/app/internal/presentation/http"
)

type Dependencies struct {
	Config    *config.Config
	Logger    *logrus.Logger
	SentryHub *sentry.Hub
}

type Result struct {
	Catalog    domaincatalog.Service
	Ledger     domainprogress.Service
	Importer   *markdown.Importer
	HTTPServer *presentationhttp.Server
	Database   *gorm.DB
	Cleanup    func() error
}

// Build composes the studylog application layers and returns the constructed components.
func Build(ctx context.Context, deps Dependencies) (Result, error) {
	if deps.Config == nil {
		return Result{}, eris.New("config is required")
	}

	db, err := database.Open(database.Options{Path: deps.Config.DBPath})
	if err != nil {
		return Result{}, eris.Wrap(err, "opening database")
	}

	closeOnError := func(wrapper error) (Result, error) {
		if closeErr := database.Close(db); closeErr != nil && deps.Logger != nil {
			deps.Logger.WithError(closeErr).Error("closing database after bootstrap failure")
		}
		return Result{}, wrapper
	}

	if err := migrations.Migrate(ctx, db, deps.Logger); err != nil {
		return closeOnError(eris.Wrap(err, "running migrations"))
	}

	catalogRepo, err := catalogdata.NewRepository(db, deps.Logger)
	if err != nil {
		return closeOnError(eris.Wrap(err, "creating catalog repository"))
	}

	ledgerRepo, err := progressdata.NewRepository(db, deps.Logger)
	if err != nil {
		return closeOnError(eris.Wrap(err, "creating ledger repository"))
	}

	catalogService, err := domaincatalog.NewService(catalogRepo, deps.Logger, deps.SentryHub)
	if err != nil {
		return closeOnError(eris.Wrap(err, "creating catalog service"))
	}

	ledgerService, err := domainprogress.NewService(ledgerRepo, catalogRepo, deps.Logger, deps.SentryHub)
	if err != nil {
		return closeOnError(eris.Wrap(err, "creating ledger service"))
	}

	importer, err := markdown.NewImporter(catalogService, ledgerService, deps.Logger)
	if err != nil {
		return closeOnError(eris.Wrap(err, "creating markdown importer"))
	}

	httpServer, err := presentationhttp.NewServer(presentationhttp.Options{
		Catalog:   catalogService,
		Ledger:    ledgerService,
		Checklist: importer,
		Database:  db,
		Logger:    deps.Logger,
		SentryHub: deps.SentryHub,
		RateLimiter: presentationhttp.RateLimiterSettings{
			Burst:             deps.Config.RateLimit.Burst,
			RequestsPerSecond: deps.Config.RateLimit.RequestsPerSecond,
			ClientTTL:         deps.Config.RateLimit.ClientTTL,
		},
	})
	if err != nil {
		return closeOnError(eris.Wrap(err, "initialising http server"))
	}

	cleanup := func() error {
		return database.Close(db)
	}

	return Result{
		Catalog:    catalogService,
		Ledger:     ledgerService,
		Importer:   importer,
		HTTPServer: httpServer,
		Database:   db,
		Cleanup:    cleanup,
	}, nil
}
