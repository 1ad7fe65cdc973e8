package querycache

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-storefront/pkg/cache"
	"github.com/redis/go-redis/v9"
)

const redisPrefix = "storefront:query:"

type RedisStore struct {
	rc *cache.RedisClient
}

func NewRedisStore(rc *cache.RedisClient) *RedisStore {
	return &RedisStore{rc: rc}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.rc.Client.Get(ctx, redisPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return s.rc.Client.Set(ctx, redisPrefix+key, val, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = redisPrefix + k
	}
	return s.rc.Client.Del(ctx, full...).Err()
}
