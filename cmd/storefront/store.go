package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/limits"
)

// openStore builds the configured counter backend. The returned cleanup
// releases its connections.
func openStore(ctx context.Context, cfg config.Store, logger *zap.Logger) (limits.Store, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	opts := []limits.Option{
		limits.WithRecordName(cfg.Record),
		limits.WithLogger(logger.Named("limits")),
	}
	noop := func() {}

	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := limits.OpenSQLite(ctx, cfg.SQLitePath, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite counter store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil

	case config.BackendPostgres:
		if cfg.RunMigrations {
			if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
				return nil, nil, fmt.Errorf("db migrate: %w", err)
			}
		}
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("db connect: %w", err)
		}
		return limits.NewPostgresStore(pool, opts...), pool.Close, nil

	case config.BackendRedis:
		client := limits.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return limits.NewRedisStore(client, opts...), func() { _ = client.Close() }, nil

	case config.BackendMemory:
		logger.Warn("using in-memory counter store, weekly counts are lost on restart")
		return limits.NewMemoryStore(nil), noop, nil
	}

	return nil, nil, fmt.Errorf("unknown counter backend %q", cfg.Backend)
}
