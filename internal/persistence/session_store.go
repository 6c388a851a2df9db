package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/movie-ticket-web/internal/config"
	"github.com/spec-kit/movie-ticket-web/internal/session"
)

// OpenSessionStore builds the key/value store selected by SESSION_STORE.
// The returned func releases its connections.
func OpenSessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.KV, func(), error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client := NewRedisClient(ctx, cfg.Redis, logger)
		return session.NewRedisKV(client), func() { _ = client.Close() }, nil

	case config.SessionStorePostgres:
		pool, err := NewPostgresPool(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pool, logger); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		return session.NewPostgresKV(pool), pool.Close, nil

	case config.SessionStoreMemory, "":
		return session.NewMemoryKV(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
