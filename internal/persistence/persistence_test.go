package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/movie-ticket-web/internal/config"
	"github.com/spec-kit/movie-ticket-web/internal/session"
)

func TestMigrationNamesAreOrdered(t *testing.T) {
	names, err := migrationNames(migrationFiles)
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_web_sessions.sql", names[0])
	assert.IsIncreasing(t, names)
}

func TestOpenSessionStoreMemory(t *testing.T) {
	cfg := &config.Config{Session: config.SessionConfig{Store: config.SessionStoreMemory}}

	kv, closeFn, err := OpenSessionStore(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &session.MemoryKV{}, kv)
	assert.NoError(t, kv.Ping(context.Background()))
}

func TestOpenSessionStorePostgresWithoutDSN(t *testing.T) {
	cfg := &config.Config{Session: config.SessionConfig{Store: config.SessionStorePostgres}}

	_, _, err := OpenSessionStore(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "POSTGRES_DSN")
}

func TestOpenSessionStoreUnknown(t *testing.T) {
	cfg := &config.Config{Session: config.SessionConfig{Store: "etcd"}}

	_, _, err := OpenSessionStore(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}
