package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CounterStore abstracts the rate-limit counters so correctness does not
// depend on single-process affinity: production uses Redis, tests use the
// in-memory variant.
type CounterStore interface {
	// Incr bumps the counter for key and returns its new value. The
	// counter expires after window from its first increment.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounterStore implements CounterStore on a shared Redis instance.
type RedisCounterStore struct {
	client *redis.Client
}

func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

func (s *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, "ratelimit:"+key)
	pipe.ExpireNX(ctx, "ratelimit:"+key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// MemoryCounterStore is the process-local variant: non-durable across
// restarts, not coherent across instances. Fine for abuse mitigation and
// for tests, not for correctness-critical limits.
type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]*memoryCounter
}

type memoryCounter struct {
	count     int64
	expiresAt time.Time
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{counters: make(map[string]*memoryCounter)}
}

func (s *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	c, ok := s.counters[key]
	if !ok || now.After(c.expiresAt) {
		c = &memoryCounter{expiresAt: now.Add(window)}
		s.counters[key] = c
	}
	c.count++

	// Occasional sweep keeps the map bounded.
	if len(s.counters) > 1024 {
		for k, v := range s.counters {
			if now.After(v.expiresAt) {
				delete(s.counters, k)
			}
		}
	}

	return c.count, nil
}

// RateLimit limits requests per identifier within the window. The key is
// the authenticated user when present, the client IP otherwise. Store
// failures let the request through: rate limiting is abuse mitigation,
// not an availability dependency.
func RateLimit(store CounterStore, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := c.ClientIP()
		if userID, err := GetUserID(c); err == nil {
			identifier = userID
		}

		count, err := store.Incr(c.Request.Context(), c.FullPath()+":"+identifier, window)
		if err == nil && count > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		c.Next()
	}
}
