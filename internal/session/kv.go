package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by KV.Load for missing or expired keys.
var ErrNotFound = errors.New("session: key not found")

// KV is the persistence behind visitor sessions. Implementations must treat
// expired entries as missing.
type KV interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Touch extends the TTL of an existing key. Missing keys are not an error.
	Touch(ctx context.Context, key string, ttl time.Duration) error
	Ping(ctx context.Context) error
}

// Purger is implemented by stores that keep expired rows until removed.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
