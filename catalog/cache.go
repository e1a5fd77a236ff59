package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const productCachePrefix = "catalog:product:"

// CachedReader is a read-through Redis cache in front of another Reader.
// Cache failures degrade to direct reads; they never fail a lookup.
type CachedReader struct {
	inner  Reader
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedReader(inner Reader, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedReader {
	return &CachedReader{inner: inner, redis: rdb, ttl: ttl, logger: logger}
}

func (c *CachedReader) GetProductsByIDs(ctx context.Context, ids []string) ([]Product, error) {
	products := make([]Product, 0, len(ids))
	misses := make([]string, 0, len(ids))

	for _, id := range ids {
		data, err := c.redis.Get(ctx, productCachePrefix+id).Result()
		if err != nil {
			misses = append(misses, id)
			continue
		}
		var p Product
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			misses = append(misses, id)
			continue
		}
		products = append(products, p)
	}

	if len(misses) == 0 {
		return products, nil
	}

	fetched, err := c.inner.GetProductsByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}

	for _, p := range fetched {
		if data, err := json.Marshal(p); err == nil {
			if err := c.redis.Set(ctx, productCachePrefix+p.ID, data, c.ttl).Err(); err != nil {
				c.logger.Warn("catalog cache write failed", zap.String("product_id", p.ID), zap.Error(err))
			}
		}
	}

	return append(products, fetched...), nil
}

// ListProducts is not cached: the listing changes with editorial publishes
// and the CDN-backed query endpoint is already cheap.
func (c *CachedReader) ListProducts(ctx context.Context, limit int) ([]Product, error) {
	return c.inner.ListProducts(ctx, limit)
}
