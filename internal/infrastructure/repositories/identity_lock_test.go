package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityLockImpl_AcquireRelease(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	lock := NewIdentityLock(client, time.Minute)
	ctx := context.Background()

	acquired, err := lock.Acquire(ctx, "reg:test@example.com:+911234567890")
	require.NoError(t, err)
	assert.True(t, acquired)

	// Second acquisition of the same key is refused while held.
	acquired, err = lock.Acquire(ctx, "reg:test@example.com:+911234567890")
	require.NoError(t, err)
	assert.False(t, acquired)

	// A different identity pair is unaffected.
	acquired, err = lock.Acquire(ctx, "reg:other@example.com:+919999999999")
	require.NoError(t, err)
	assert.True(t, acquired)

	require.NoError(t, lock.Release(ctx, "reg:test@example.com:+911234567890"))

	acquired, err = lock.Acquire(ctx, "reg:test@example.com:+911234567890")
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestIdentityLockImpl_TTLExpiresStaleLock(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	lock := NewIdentityLock(client, time.Second)
	ctx := context.Background()

	acquired, err := lock.Acquire(ctx, "reg:stale")
	require.NoError(t, err)
	require.True(t, acquired)

	// A crashed holder never releases; the TTL must free the key.
	mr.FastForward(2 * time.Second)

	acquired, err = lock.Acquire(ctx, "reg:stale")
	require.NoError(t, err)
	assert.True(t, acquired)
}
