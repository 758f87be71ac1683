package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"lead-voucher-backend/internal/common/errors"
)

// Limiter decides whether another request for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter is a fixed-window counter shared by all instances.
type RedisLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
}

func NewRedisLimiter(client redis.Cmdable, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window}
}

// Allow counts the request and re-arms the window whenever the key has no TTL,
// so a failed EXPIRE cannot leave a counter that never resets.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	key = "ratelimit:" + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if ttl.Val() < 0 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, err
		}
	}
	return incr.Val() <= int64(l.limit), nil
}

// MemoryLimiter is a per-process token bucket used when Redis is disabled.
type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rate      float64 // tokens per second
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	tokens   float64
	lastTime time.Time
}

// NewMemoryLimiter allows limit requests per window per key, refilled continuously.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		rate:    float64(limit) / window.Seconds(),
		burst:   limit,
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(l.burst), lastTime: now}
		l.buckets[key] = b
	}

	b.tokens += now.Sub(b.lastTime).Seconds() * l.rate
	if b.tokens > float64(l.burst) {
		b.tokens = float64(l.burst)
	}
	b.lastTime = now

	if b.tokens < 1 {
		return false, nil
	}
	b.tokens--
	return true, nil
}

// sweep evicts idle buckets; caller holds mu.
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < 5*time.Minute {
		return
	}
	l.lastSweep = now
	cutoff := now.Add(-10 * time.Minute)
	for key, b := range l.buckets {
		if b.lastTime.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// RateLimit rejects clients over the limit with RATE_LIMIT_EXCEEDED.
// Limiter errors let the request through.
func RateLimit(limiter Limiter, window time.Duration, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn().Err(err).Str("client_ip", c.ClientIP()).Msg("Rate limiter unavailable")
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			SendError(c, errors.NewRateLimitError(window), logger)
			c.Abort()
			return
		}
		c.Next()
	}
}
