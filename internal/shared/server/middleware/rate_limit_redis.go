package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"writing-tutor-api/internal/shared/telemetry"
)

// RedisLimiter is a fixed-window limiter shared by every API instance. A
// window lasts Burst/Rate seconds and admits Burst requests. Redis errors
// fail open.
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
	now    func() time.Time
}

// NewRedisLimiter constructs a RedisLimiter. An empty prefix uses "ratelimit".
func NewRedisLimiter(client redis.Cmdable, prefix string, now func() time.Time) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	if now == nil {
		now = time.Now
	}
	return &RedisLimiter{client: client, prefix: prefix, now: now}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || l.client == nil {
		return true, 0
	}
	if rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}
	window := time.Duration(float64(rule.Burst) / rule.Rate * float64(time.Second))
	if window < time.Second {
		window = time.Second
	}

	now := l.now()
	slot := now.UnixNano() / int64(window)
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		telemetry.Warn("ratelimit.redis_failed", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
		return true, 0
	}

	if incr.Val() <= int64(rule.Burst) {
		return true, 0
	}
	elapsed := time.Duration(now.UnixNano() % int64(window))
	return false, window - elapsed
}

var _ Limiter = (*RedisLimiter)(nil)
