package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/accountsvc/domain"
)

// IdentityLockImpl implements domain.IdentityLocker with a Redis SETNX key
// per normalized identity pair. The TTL guards against a crashed holder
// leaving the pair locked forever.
type IdentityLockImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewIdentityLock creates a Redis-backed identity lock
func NewIdentityLock(client *redis.Client, ttl time.Duration) domain.IdentityLocker {
	return &IdentityLockImpl{
		client: client,
		prefix: "reglock:",
		ttl:    ttl,
	}
}

// Acquire implements domain.IdentityLocker
func (l *IdentityLockImpl) Acquire(ctx context.Context, key string) (bool, error) {
	return l.client.SetNX(ctx, l.prefix+key, 1, l.ttl).Result()
}

// Release implements domain.IdentityLocker
func (l *IdentityLockImpl) Release(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.prefix+key).Err()
}
