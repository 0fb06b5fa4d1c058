// Package storage picks the key-value backend named in the configuration.
package storage

import (
	"context"
	"fmt"
	"time"

	"go-warehouse-ledger/internal/config"
	"go-warehouse-ledger/pkg/database"
	"go-warehouse-ledger/pkg/kvstore"

	"go.uber.org/zap"
)

// CloseFunc releases whatever connection backs the store.
type CloseFunc func() error

func noopClose() error { return nil }

// Open connects the configured backend and returns it with its closer.
func Open(ctx context.Context, cfg config.StoreConfig, log *zap.Logger) (kvstore.Store, CloseFunc, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory store, data is lost on exit")
		return kvstore.NewMemoryStore(), noopClose, nil

	case config.DriverSQLite:
		store, err := kvstore.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("sqlite store opened", zap.String("path", cfg.SQLitePath))
		return store, store.Close, nil

	case config.DriverPostgres:
		db, err := database.ConnectDB(cfg.Postgres.DSN(), log)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("postgres pool: %w", err)
		}
		store, err := kvstore.NewGormStore(db)
		if err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		return store, sqlDB.Close, nil

	case config.DriverRedis:
		store := kvstore.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		log.Info("redis store connected", zap.String("addr", cfg.Redis.Addr), zap.String("prefix", cfg.Redis.Prefix))
		return store, store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
