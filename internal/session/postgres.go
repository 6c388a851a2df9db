package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// farFuture stands in for "no expiry" in the web_sessions table.
var farFuture = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

// PostgresKV stores sessions in the web_sessions table.
type PostgresKV struct {
	pool *pgxpool.Pool
}

// NewPostgresKV returns a store over an open pool.
func NewPostgresKV(pool *pgxpool.Pool) *PostgresKV {
	return &PostgresKV{pool: pool}
}

func (s *PostgresKV) Load(ctx context.Context, key string) (string, error) {
	const query = `
        SELECT value FROM web_sessions
        WHERE key=$1 AND expires_at > NOW()`

	var value string
	if err := s.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to load session key: %w", err)
	}
	return value, nil
}

func (s *PostgresKV) Save(ctx context.Context, key, value string, ttl time.Duration) error {
	const query = `
        INSERT INTO web_sessions (key, value, expires_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (key) DO UPDATE
        SET value=EXCLUDED.value, expires_at=EXCLUDED.expires_at, updated_at=NOW()`

	if _, err := s.pool.Exec(ctx, query, key, value, expiresAt(ttl)); err != nil {
		return fmt.Errorf("failed to store session key: %w", err)
	}
	return nil
}

func (s *PostgresKV) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM web_sessions WHERE key=$1`

	if _, err := s.pool.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete session key: %w", err)
	}
	return nil
}

func (s *PostgresKV) Touch(ctx context.Context, key string, ttl time.Duration) error {
	const query = `
        UPDATE web_sessions SET expires_at=$2, updated_at=NOW()
        WHERE key=$1 AND expires_at > NOW()`

	if _, err := s.pool.Exec(ctx, query, key, expiresAt(ttl)); err != nil {
		return fmt.Errorf("failed to touch session key: %w", err)
	}
	return nil
}

func (s *PostgresKV) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// PurgeExpired deletes rows whose expiry has passed.
func (s *PostgresKV) PurgeExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM web_sessions WHERE expires_at <= NOW()`

	cmd, err := s.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func expiresAt(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return farFuture
	}
	return time.Now().Add(ttl).UTC()
}
