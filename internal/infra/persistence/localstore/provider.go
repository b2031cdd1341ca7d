package localstore

import (
	"context"
	"log/slog"

	"maison/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Store provider names accepted in configuration.
const (
	ProviderMemory   = "memory"
	ProviderFile     = "file"
	ProviderPostgres = "postgres"
)

// StoreParams holds dependencies for the state store, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewStore creates a Store based on configuration
func NewStore(params StoreParams) (Store, error) {
	cfg := params.Config.Store
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("State store not configured, using in-memory store")

		return withLifecycle(params.Lc, NewMemory(), logger), nil
	}

	var store Store
	var err error

	switch cfg.Provider {
	case ProviderMemory:
		logger.Info("Using in-memory state store")
		store = NewMemory()

	case ProviderFile:
		if cfg.Path == "" {
			return nil, errors.New("path is required for file provider")
		}
		logger.Info("Using file state store", slog.String("path", cfg.Path))
		store, err = NewFile(cfg.Path)
		if err != nil {
			return nil, err
		}

	case ProviderPostgres:
		if cfg.Postgres == nil {
			return nil, errors.New("postgres connection is required for postgres provider")
		}
		logger.Info("Using PostgreSQL state store")
		store, err = NewPostgres(params.Config, logger)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown store provider: %s", cfg.Provider)
	}

	return withLifecycle(params.Lc, store, logger), nil
}

func withLifecycle(lc fx.Lifecycle, store Store, logger *slog.Logger) Store {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing state store")

			return store.Close()
		},
	})

	return store
}
