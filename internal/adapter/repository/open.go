// Package repository opens the configured key-value backend for the ledger store.
package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/debtnet/internal/adapter/repository/file"
	"github.com/iho/debtnet/internal/adapter/repository/memory"
	pgrepo "github.com/iho/debtnet/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/debtnet/internal/adapter/repository/redis"
	"github.com/iho/debtnet/internal/adapter/repository/sqlite"
	"github.com/iho/debtnet/internal/infrastructure/config"
	"github.com/iho/debtnet/internal/infrastructure/postgres"
	infraredis "github.com/iho/debtnet/internal/infrastructure/redis"
	"github.com/iho/debtnet/internal/usecase"
)

// Open connects to the backend named by cfg.StoreBackend. The returned
// function releases its resources and is never nil.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (usecase.KVStore, func(), error) {
	log := logger.With().Str("backend", cfg.StoreBackend).Logger()
	noop := func() {}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Debug().Msg("using in-memory storage, nothing will be persisted")
		return memory.NewKVStore(), noop, nil

	case config.BackendFile:
		store, err := file.New(cfg.DataDir)
		if err != nil {
			return nil, noop, err
		}
		log.Debug().Str("dir", cfg.DataDir).Msg("storage opened")
		return store, noop, nil

	case config.BackendSQLite:
		store, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		log.Debug().Str("path", cfg.SQLitePath).Msg("storage opened")
		return store, func() {
			if err := store.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close sqlite")
			}
		}, nil

	case config.BackendRedis:
		client, err := infraredis.NewClient(ctx, cfg.RedisURL, cfg.ConnectTimeout)
		if err != nil {
			return nil, noop, err
		}
		log.Debug().Msg("storage opened")
		return redisrepo.NewKVStore(client), func() {
			if err := client.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close redis client")
			}
		}, nil

	case config.BackendPostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL, log); err != nil {
			return nil, noop, err
		}
		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL:    cfg.DatabaseURL,
			MaxConns:       cfg.DatabaseMaxConns,
			MinConns:       cfg.DatabaseMinConns,
			ConnectTimeout: cfg.ConnectTimeout,
		})
		if err != nil {
			return nil, noop, err
		}
		log.Debug().Msg("storage opened")
		return pgrepo.NewKVStore(pool), pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
