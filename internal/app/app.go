// Package app wires configuration into a running allocator: store backend,
// kit catalog, notifiers, metrics and the allocation service.
package app

import (
	"context"
	"fmt"
	"time"

	"kit-allocator/internal/allocation"
	"kit-allocator/internal/catalog"
	"kit-allocator/internal/config"
	"kit-allocator/internal/database"
	"kit-allocator/internal/inventory"
	"kit-allocator/internal/logging"
	"kit-allocator/internal/metrics"
	"kit-allocator/internal/notify"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// App holds the wired components. Close releases connections.
type App struct {
	Config  *config.Config
	Logger  logging.Logger
	Store   inventory.Store
	Catalog catalog.Catalog
	Service *allocation.Service

	// Audit is nil unless the postgres backend is used.
	Audit *database.AuditWriter

	// Registry is nil when metrics are disabled.
	Registry *prometheus.Registry

	closers []func()
}

// New builds an App for cfg.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logging.OrNop(logger)}
	if err := a.build(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) build(ctx context.Context) error {
	cfg := a.Config

	var nc *nats.Conn
	if cfg.NATSURL != "" {
		conn, err := nats.Connect(cfg.NATSURL, nats.Name("kit-allocator"), nats.Timeout(5*time.Second))
		if err != nil {
			return fmt.Errorf("connect to nats: %w", err)
		}
		a.closers = append(a.closers, conn.Close)
		nc = conn
	}

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := database.Open(ctx, cfg.DBDSN, a.Logger)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() { closeDB(db) })
		a.Store = inventory.NewGormStore(db)
		a.Catalog = catalog.NewGormCatalog(db)
		a.Audit = database.NewAuditWriter(db)

	case config.BackendNATS:
		js, err := jetstream.New(nc)
		if err != nil {
			return fmt.Errorf("jetstream: %w", err)
		}
		store, err := inventory.OpenKVStore(ctx, js, cfg.InventoryBucket, a.Logger)
		if err != nil {
			return err
		}
		a.Store = store
		a.Catalog = catalog.NewMemoryCatalog()

	default:
		a.Store = inventory.NewMemoryStore()
		a.Catalog = catalog.NewMemoryCatalog()
	}

	if cfg.KitCatalogFile != "" {
		kits, err := catalog.LoadYAMLFile(cfg.KitCatalogFile)
		if err != nil {
			return err
		}
		if err := catalog.Seed(ctx, a.Catalog, kits, a.Logger); err != nil {
			return err
		}
	}

	opts := []allocation.Option{
		allocation.WithLogger(a.Logger),
		allocation.WithTimeout(cfg.AllocationTimeout),
		allocation.WithMaxRetries(cfg.MaxCASRetries),
	}

	notifiers := notify.Multi{notify.NewLogNotifier(a.Logger)}
	if nc != nil {
		n, err := notify.NewNATSNotifier(nc, cfg.NotifySubject)
		if err != nil {
			return err
		}
		notifiers = append(notifiers, n)
	}
	opts = append(opts, allocation.WithNotifier(notifiers))

	if a.Audit != nil {
		opts = append(opts, allocation.WithAuditSink(a.Audit))
	}

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		collector, err := metrics.NewPrometheus(reg, "")
		if err != nil {
			return err
		}
		a.Registry = reg
		opts = append(opts, allocation.WithMetrics(collector))
	}

	svc, err := allocation.NewService(a.Store, a.Catalog, opts...)
	if err != nil {
		return err
	}
	a.Service = svc

	a.Logger.Info("allocator ready", "backend", cfg.StoreBackend, "metrics", cfg.MetricsEnabled, "nats", nc != nil)
	return nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
