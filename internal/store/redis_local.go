package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// LocalKeyPrefix namespaces local-store items inside a shared Redis.
const LocalKeyPrefix = "local:"

// RedisLocalStore is the device local store backed by Redis. Items never expire.
type RedisLocalStore struct {
	client *redis.Client
}

func NewRedisLocalStore(client *redis.Client) *RedisLocalStore {
	return &RedisLocalStore{client: client}
}

func (r *RedisLocalStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, LocalKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisLocalStore) SetItem(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, LocalKeyPrefix+key, value, 0).Err()
}

func (r *RedisLocalStore) RemoveItem(ctx context.Context, key string) error {
	return r.client.Del(ctx, LocalKeyPrefix+key).Err()
}
