package cart

import (
	"context"
	"time"

	"github.com/dfameublement/catalogue-backend/pkg/redis"
)

// RedisStore persists cart blobs in Redis, one key per cart token, with a
// sliding TTL so abandoned carts eventually expire.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	blobKey := s.client.CartKey(key)
	blob, ok, err := s.client.Get(ctx, blobKey)
	if err == nil && ok {
		// Reading a cart renews its TTL; only untouched carts expire.
		_ = s.client.Expire(ctx, blobKey, s.ttl)
	}
	return blob, ok, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value string) error {
	return s.client.Set(ctx, s.client.CartKey(key), value, s.ttl)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.client.CartKey(key))
}
