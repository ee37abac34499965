//go:build integration

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws-samples/aws-contactus-serverless-website/pkg/testutil/containers"
)

func TestRedisLimiterIntegration(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	require.NoError(t, rc.FlushAll(ctx))

	l := NewRedisLimiter(rc.Client, 2, NewLocalLimiter(2))
	now := time.Date(2026, 1, 1, 12, 0, 10, 0, time.UTC)
	l.now = func() time.Time { return now }

	for range 2 {
		ok, err := l.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := l.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, ok)

	t.Run("counter expires with the window", func(t *testing.T) {
		ttl, err := rc.Client.TTL(ctx, l.windowKey("203.0.113.7")).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("next window starts fresh", func(t *testing.T) {
		now = now.Add(time.Minute)
		ok, err := l.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("instances share counters", func(t *testing.T) {
		other := NewRedisLimiter(rc.Client, 2, NewLocalLimiter(2))
		other.now = l.now

		ok, err := other.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = l.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
