package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps entries as plain string keys without TTL; staleness is only detected
// when the backend rejects the token.
type RedisStorage struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStorage returns a store whose keys live under transit:session:<namespace>:.
func NewRedisStorage(client redis.UniversalClient, namespace string) *RedisStorage {
	return &RedisStorage{client: client, prefix: fmt.Sprintf("transit:session:%s:", namespace)}
}

func (r *RedisStorage) key(k string) string {
	return r.prefix + k
}

// Get returns the value for key.
func (r *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set stores value under key.
func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

// Delete removes keys with a single DEL.
func (r *RedisStorage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	return r.client.Del(ctx, full...).Err()
}
