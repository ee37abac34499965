package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aws-samples/aws-contactus-serverless-website/internal/ratelimit/metrics"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/platform/circuit"
)

const keyPrefix = "contactus:ratelimit:"

// RedisLimiter counts requests per key in fixed windows shared by every
// instance. Store errors fall back to the local limiter, and repeated errors
// open a breaker so Redis is only probed until it recovers.
type RedisLimiter struct {
	client   redis.Cmdable
	breaker  *circuit.Breaker
	limit    int
	window   time.Duration
	fallback Limiter
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type RedisOption func(*RedisLimiter)

func WithLogger(logger *slog.Logger) RedisOption {
	return func(l *RedisLimiter) {
		l.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) RedisOption {
	return func(l *RedisLimiter) {
		l.metrics = m
	}
}

func WithBreaker(b *circuit.Breaker) RedisOption {
	return func(l *RedisLimiter) {
		l.breaker = b
	}
}

// WithWindow overrides the one-minute window.
func WithWindow(window time.Duration) RedisOption {
	return func(l *RedisLimiter) {
		if window > 0 {
			l.window = window
		}
	}
}

func NewRedisLimiter(client redis.Cmdable, limit int, fallback Limiter, opts ...RedisOption) *RedisLimiter {
	if limit < 1 {
		limit = 1
	}
	l := &RedisLimiter{
		client:   client,
		breaker:  circuit.New("ratelimit-redis"),
		limit:    limit,
		window:   time.Minute,
		fallback: fallback,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if !l.breaker.ShouldAttempt() {
		return l.fallbackAllow(ctx, key)
	}

	windowKey := l.windowKey(key)
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, windowKey)
		pipe.Expire(ctx, windowKey, l.window)
		return nil
	})
	if err != nil {
		_, change := l.breaker.RecordFailure()
		if change.Opened {
			l.logger.WarnContext(ctx, "redis rate limit circuit opened", "error", err)
		} else {
			l.logger.WarnContext(ctx, "redis rate limit unavailable, using local limiter", "error", err)
		}
		return l.fallbackAllow(ctx, key)
	}

	usePrimary, change := l.breaker.RecordSuccess()
	if change.Closed {
		l.logger.InfoContext(ctx, "redis rate limit circuit closed")
	}
	if !usePrimary {
		return l.fallbackAllow(ctx, key)
	}

	allowed := incr.Val() <= int64(l.limit)
	l.metrics.IncrementCheck(allowed)
	return allowed, nil
}

func (l *RedisLimiter) fallbackAllow(ctx context.Context, key string) (bool, error) {
	l.metrics.IncrementFallback()
	if l.fallback == nil {
		return true, nil
	}
	return l.fallback.Allow(ctx, key)
}

func (l *RedisLimiter) windowKey(key string) string {
	window := l.now().UnixNano() / int64(l.window)
	return fmt.Sprintf("%s%s:%d", keyPrefix, key, window)
}
