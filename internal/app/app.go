// Package app wires configuration, storage and the content services together
// for the API server and the admin CLI.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bucketcms/service/internal/config"
	"github.com/bucketcms/service/internal/content"
	"github.com/bucketcms/service/internal/db"
	"github.com/bucketcms/service/internal/fields"
	"github.com/bucketcms/service/internal/objectstore"
)

// App holds the long-lived services built from a Config.
type App struct {
	Config *config.Config
	Log    *zap.Logger

	Store    objectstore.Store
	Registry *prometheus.Registry

	Journal     content.Journal
	Schemas     *content.SchemaStore
	Items       *content.ItemStore
	Enumerator  *content.Enumerator
	Provisioner *content.Provisioner
	Reconciler  *content.Reconciler

	pool *pgxpool.Pool
}

// New opens the configured object store (and Postgres, for the postgres
// journal) and builds the content services on top of it.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	raw, err := objectstore.Open(ctx, cfg.StorageDriver, objectstore.Options{
		Endpoint:          cfg.StorageEndpoint,
		AccessKey:         cfg.StorageAccessKey,
		SecretKey:         cfg.StorageSecretKey,
		Region:            cfg.StorageRegion,
		Bucket:            cfg.StorageBucket,
		UseSSL:            cfg.StorageUseSSL,
		ConditionalWrites: cfg.StorageConditionalWrites,
	})
	if err != nil {
		return nil, fmt.Errorf("open object store: %w", err)
	}
	store := objectstore.Instrument(raw, objectstore.NewMetrics(reg))
	if !store.ConditionalWrites() {
		log.Warn("conditional writes disabled: concurrent creates of the same slug may overwrite each other")
	}

	a := &App{
		Config:   cfg,
		Log:      log,
		Store:    store,
		Registry: reg,
	}

	switch cfg.JournalDriver {
	case config.JournalPostgres:
		if err := db.Migrate(cfg.DatabaseURL, log); err != nil {
			return nil, fmt.Errorf("migrate journal database: %w", err)
		}
		pool, err := db.Connect(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, fmt.Errorf("connect journal database: %w", err)
		}
		a.pool = pool
		a.Journal = content.NewPostgresJournal(pool)
	default:
		a.Journal = content.NewBucketJournal(store)
	}

	a.Schemas = content.NewSchemaStore(store, fields.NewRegistry())
	a.Items = content.NewItemStore(store, a.Journal, a.Schemas, log.Named("items"))
	a.Enumerator = content.NewEnumerator(store, a.Schemas, cfg.ListPageSize)
	a.Provisioner = content.NewProvisioner(store, log.Named("provision"))
	a.Reconciler = content.NewReconciler(store, a.Journal, log.Named("reconcile"))

	log.Info("storage ready",
		zap.String("driver", cfg.StorageDriver),
		zap.String("bucket", store.Bucket()),
		zap.String("journal", cfg.JournalDriver),
	)
	return a, nil
}

// MetricsHandler serves the application's Prometheus registry.
func (a *App) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
