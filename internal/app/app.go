// Package app wires configuration, logging, metrics and persistence into a
// ready-to-use event store.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/klabast/wb-services/geo-events/internal/metrics"
	"github.com/klabast/wb-services/geo-events/internal/storage"
	"github.com/klabast/wb-services/geo-events/internal/store"
)

// App holds the long-lived collaborators of one CLI invocation
type App struct {
	Config  *Config
	Log     *zap.Logger
	Metrics *metrics.Metrics
	Store   *store.Store

	closeRepo func() error
}

// Open selects the configured backend and rehydrates the store from it
func Open(cfg *Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	repo, closeRepo, err := OpenRepository(cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	a := &App{
		Config:    cfg,
		Log:       log,
		Metrics:   m,
		closeRepo: closeRepo,
	}
	a.Store = store.New(repo,
		store.WithLogger(log.Named("store")),
		store.WithMetrics(m),
	)
	return a, nil
}

// OpenRepository builds the persistence backend for cfg. The returned close
// function is never nil.
func OpenRepository(cfg StorageConfig, log *zap.Logger) (store.Repository, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case BackendFile:
		return storage.NewFile(cfg.Dir, cfg.Namespace, log.Named("storage")), noop, nil
	case BackendSQLite:
		if err := os.MkdirAll(cfg.Dir, storage.DirPermissions); err != nil {
			return nil, nil, fmt.Errorf("create data directory: %w", err)
		}
		db, err := storage.OpenSQLite(filepath.Join(cfg.Dir, SQLiteFile), cfg.Namespace)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case BackendMemory:
		return storage.NewMemory(cfg.Namespace), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Close writes the metrics snapshot (when configured) and releases the backend
func (a *App) Close() error {
	var errs []error
	if err := a.Metrics.WriteTextfile(a.Config.Metrics.Textfile); err != nil {
		errs = append(errs, err)
	}
	if err := a.closeRepo(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	return errors.Join(errs...)
}
