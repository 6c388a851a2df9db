package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newClockedKV() (*MemoryKV, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	kv := NewMemoryKV()
	kv.now = clock.Now
	return kv, clock
}

func TestMemoryKV_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	kv, _ := newClockedKV()

	_, err := kv.Load(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Save(ctx, "k", "v", time.Minute))
	val, err := kv.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	require.NoError(t, kv.Delete(ctx, "k"))
	_, err = kv.Load(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryKV_Expiry(t *testing.T) {
	ctx := context.Background()
	kv, clock := newClockedKV()

	require.NoError(t, kv.Save(ctx, "k", "v", time.Minute))
	clock.now = clock.now.Add(61 * time.Second)

	_, err := kv.Load(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryKV_TouchSlidesExpiry(t *testing.T) {
	ctx := context.Background()
	kv, clock := newClockedKV()

	require.NoError(t, kv.Save(ctx, "k", "v", time.Minute))
	clock.now = clock.now.Add(50 * time.Second)
	require.NoError(t, kv.Touch(ctx, "k", time.Minute))
	clock.now = clock.now.Add(50 * time.Second)

	val, err := kv.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	assert.NoError(t, kv.Touch(ctx, "missing", time.Minute))
}

func TestMemoryKV_ZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	kv, clock := newClockedKV()

	require.NoError(t, kv.Save(ctx, "k", "v", 0))
	clock.now = clock.now.Add(24 * 365 * time.Hour)

	_, err := kv.Load(ctx, "k")
	assert.NoError(t, err)
}

func TestMemoryKV_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	kv, clock := newClockedKV()

	require.NoError(t, kv.Save(ctx, "short", "v", time.Second))
	require.NoError(t, kv.Save(ctx, "long", "v", time.Hour))
	clock.now = clock.now.Add(time.Minute)

	removed, err := kv.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, 1, kv.Len())
}
