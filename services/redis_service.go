package services

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// GetFromRedis đọc key và giải mã JSON vào target. Trả về false khi không có key.
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) (bool, error) {
	cachedData, err := rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(cachedData, target); err != nil {
		return false, err
	}
	return true, nil
}

// SetToRedis lưu dữ liệu dạng JSON vào Redis
func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, dataJSON, ttl).Err()
}

// DeleteFromRedis xóa các key cache
func DeleteFromRedis(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}

// DeleteByPrefix xóa mọi key bắt đầu bằng prefix
func DeleteByPrefix(ctx context.Context, rdb *redis.Client, prefix string) error {
	iter := rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return DeleteFromRedis(ctx, rdb, keys...)
}

// Cache is a nil-safe cache-aside wrapper: with no client every lookup misses
// and writes are dropped.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, key string, target interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	found, err := GetFromRedis(ctx, c.rdb, key, target)
	return err == nil && found
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return SetToRedis(ctx, c.rdb, key, value, c.ttl)
}

func (c *Cache) Invalidate(ctx context.Context, prefix string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return DeleteByPrefix(ctx, c.rdb, prefix)
}
