package cmd

import (
	"context"
	"fmt"

	"report-sync/core/config"
	"report-sync/core/database"
	"report-sync/core/export"
	"report-sync/core/logger"
	"report-sync/core/notify"
	"report-sync/core/remote"
	"report-sync/core/storage"
	"report-sync/core/warehouse"
	"report-sync/feature/reportsync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// connector opens the warehouse connection.
type connector func(cfg database.Config) (*gorm.DB, error)

// application bundles what every command needs.
type application struct {
	cfg      *config.Config
	logger   *zap.Logger
	capture  *logger.Capture
	notifier notify.Notifier
	job      *reportsync.Job
}

// bootstrap loads configuration, builds the logger and notifier, then wires the
// sync job. With notifyFailure set, a wiring error is sent to the notifiers.
func bootstrap(notifyFailure bool) (*application, error) {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger and Notifier
	app, err := newApplication(cfg)
	if err != nil {
		return nil, err
	}

	// 3. Wire warehouse, remote and engines
	if err := app.wire(database.Connect); err != nil {
		if notifyFailure {
			return nil, app.fail(context.Background(), err)
		}
		return nil, err
	}
	return app, nil
}

// newApplication builds the capture logger and the notifiers.
func newApplication(cfg *config.Config) (*application, error) {
	// The capture feeds notifications.
	logg, capture, err := logger.NewCapture(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	return &application{
		cfg:      cfg,
		logger:   logg,
		capture:  capture,
		notifier: notify.New(cfg.Notify, logg),
	}, nil
}

// wire connects the warehouse and builds the sync job.
func (a *application) wire(connect connector) error {
	cfg, logg := a.cfg, a.logger

	if len(cfg.Reports) == 0 {
		logg.Warn("No reports configured; add a reports list to config.yaml")
	}

	db, err := connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	logg.Info("Connected to warehouse", zap.String("driver", cfg.Database.Driver), zap.String("database", cfg.Database.Name))

	// Remote drop location
	var store storage.Client
	if cfg.Remote.Kind == remote.KindS3 {
		if store, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
	}
	fetcher, err := remote.NewFetcher(cfg.Remote, store, cfg.Storage.Bucket, logg)
	if err != nil {
		return fmt.Errorf("failed to create remote fetcher: %w", err)
	}
	if fetcher == nil {
		logg.Info("Remote fetch disabled; syncing files already staged", zap.String("staging_dir", cfg.Sync.StagingDir))
	}

	runner, err := reportsync.NewRunner(cfg.Sync, cfg.Reports, reportsync.Deps{
		Fetcher:   fetcher,
		Exporter:  export.NewHTTPExporter(cfg.Export, logg),
		Warehouse: warehouse.New(db, cfg.Sync.BatchSize),
		Schema:    reportsync.NewSchemaChecker(db),
	}, logg)
	if err != nil {
		return fmt.Errorf("invalid sync configuration: %w", err)
	}

	a.job = reportsync.NewJob(cfg.Server.Job, runner, a.notifier, a.capture, logg)
	return nil
}

// fail logs err and sends it with the captured logs as a failed outcome.
// It returns err.
func (a *application) fail(ctx context.Context, err error) error {
	a.logger.Error("Sync run failed", zap.String("job", a.cfg.Server.Job), zap.Error(err))

	outcome := notify.Outcome{Job: a.cfg.Server.Job, Success: false, Logs: a.capture.String()}
	if nerr := a.notifier.Notify(ctx, outcome); nerr != nil {
		a.logger.Error("Failed to send notification", zap.Error(nerr))
	}
	return err
}
