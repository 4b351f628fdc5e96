package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker guards a critical section across API instances.
type Locker interface {
	Acquire(ctx context.Context, key string) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker uses SET NX with an owner token; only the owner can release.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisLocker{client: client, ttl: ttl}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

func (l *RedisLocker) Release(ctx context.Context, key, token string) error {
	return releaseScript.Run(ctx, l.client, []string{key}, token).Err()
}

// NopLocker always grants the lock; the database row locks still apply.
type NopLocker struct{}

func (NopLocker) Acquire(context.Context, string) (string, bool, error) { return "", true, nil }
func (NopLocker) Release(context.Context, string, string) error         { return nil }

// NewLocker picks the Redis locker when a client is configured.
func NewLocker(client *redis.Client, ttl time.Duration) Locker {
	if client == nil {
		return NopLocker{}
	}
	return NewRedisLocker(client, ttl)
}

func roomLockKey(roomID uint) string {
	return fmt.Sprintf("lock:room:%d", roomID)
}

func userDiscountLockKey(userID uint) string {
	return fmt.Sprintf("lock:discount:user:%d", userID)
}
