package querycache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/fekuna/omnipos-storefront/pkg/metrics"
	"go.uber.org/zap"
)

// Store is the byte-level backend of the cache.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Cache struct {
	store  Store
	ttl    time.Duration
	rules  map[Mutation][]keyFunc
	logger logger.ZapLogger
}

func New(store Store, ttl time.Duration, log logger.ZapLogger) *Cache {
	return &Cache{
		store:  store,
		ttl:    ttl,
		rules:  DefaultRules,
		logger: log,
	}
}

// Fetch returns the cached value under key, or calls load and caches its result.
// Cache errors degrade to a direct load.
func Fetch[T any](ctx context.Context, c *Cache, key string, load func(context.Context) (T, error)) (T, error) {
	if raw, ok, err := c.store.Get(ctx, key); err != nil {
		c.logger.Warn("query cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return v, nil
		}
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if data, err := json.Marshal(v); err == nil {
		if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Warn("query cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return v, nil
}

// Invalidate drops every query the mutation's rule names for scope.
func (c *Cache) Invalidate(ctx context.Context, m Mutation, scope Scope) {
	keys := Keys(c.rules, m, scope)
	if len(keys) == 0 {
		return
	}
	metrics.CacheInvalidations.WithLabelValues(string(m)).Inc()
	if err := c.store.Delete(ctx, keys...); err != nil {
		c.logger.Error("query cache invalidation failed",
			zap.String("mutation", string(m)),
			zap.Strings("keys", keys),
			zap.Error(err),
		)
	}
}
