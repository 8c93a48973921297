package prefs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albapepper/pokeview/internal/config"
	"github.com/albapepper/pokeview/internal/db"
)

// Open builds the Store selected by cfg.PreferenceStore.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.PreferenceStore {
	case config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StoreFile:
		return NewFileStore(cfg.PreferenceFile, logger), nil
	case config.StoreRedis:
		client, err := DialRedis(ctx, cfg.RedisURL, logger)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client), nil
	case config.StorePostgres:
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("postgres preference store: %w", err)
		}
		logger.Info("Database connected", "min_conns", cfg.DBPoolMinConns, "max_conns", cfg.DBPoolMaxConns)
		return NewPostgresStore(pool), nil
	default:
		return nil, fmt.Errorf("unknown preference store %q", cfg.PreferenceStore)
	}
}
