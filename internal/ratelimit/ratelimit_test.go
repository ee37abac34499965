package ratelimit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aws-samples/aws-contactus-serverless-website/internal/ratelimit/metrics"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/ratelimit/mocks"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/platform/circuit"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/requestcontext"
)

func TestLocalLimiter(t *testing.T) {
	t.Run("allows the burst then refuses", func(t *testing.T) {
		l := NewLocalLimiter(3)
		now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return now }

		for range 3 {
			ok, err := l.Allow(context.Background(), "203.0.113.7")
			require.NoError(t, err)
			assert.True(t, ok)
		}
		ok, err := l.Allow(context.Background(), "203.0.113.7")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("keys are independent", func(t *testing.T) {
		l := NewLocalLimiter(1)
		ok, _ := l.Allow(context.Background(), "a")
		assert.True(t, ok)
		ok, _ = l.Allow(context.Background(), "b")
		assert.True(t, ok)
		ok, _ = l.Allow(context.Background(), "a")
		assert.False(t, ok)
	})

	t.Run("refills over time", func(t *testing.T) {
		l := NewLocalLimiter(2)
		now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return now }

		for range 2 {
			ok, _ := l.Allow(context.Background(), "k")
			require.True(t, ok)
		}
		ok, _ := l.Allow(context.Background(), "k")
		require.False(t, ok)

		now = now.Add(30 * time.Second)
		ok, _ = l.Allow(context.Background(), "k")
		assert.True(t, ok)
	})

	t.Run("evicts idle keys once the map is large", func(t *testing.T) {
		l := NewLocalLimiter(5)
		start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		now := start
		l.now = func() time.Time { return now }

		for i := range sweepThreshold {
			_, _ = l.Allow(context.Background(), string(rune('a'+i%26))+time.Duration(i).String())
		}
		require.Equal(t, sweepThreshold, l.Len())

		now = start.Add(time.Hour)
		_, _ = l.Allow(context.Background(), "fresh")
		assert.Equal(t, 1, l.Len())
	})
}

func TestRedisLimiterFallsBackWhenUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	m := metrics.New(prometheus.NewRegistry())
	ctrl := gomock.NewController(t)
	fallback := mocks.NewMockLimiter(ctrl)
	fallback.EXPECT().Allow(gomock.Any(), "203.0.113.7").Return(false, nil)

	l := NewRedisLimiter(client, 5, fallback, WithMetrics(m), WithLogger(slog.New(slog.DiscardHandler)))

	ok, err := l.Allow(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fallbacks))
}

func TestRedisLimiterWindowKey(t *testing.T) {
	l := NewRedisLimiter(nil, 5, nil)
	l.now = func() time.Time { return time.Unix(120, 0) }

	assert.Equal(t, "contactus:ratelimit:203.0.113.7:2", l.windowKey("203.0.113.7"))
}

func TestMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		allowed    bool
		err        error
		wantStatus int
	}{
		{name: "allowed", allowed: true, wantStatus: http.StatusNoContent},
		{name: "limited", allowed: false, wantStatus: http.StatusTooManyRequests},
		{name: "limiter error fails open", err: errors.New("boom"), wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := mocks.NewMockLimiter(gomock.NewController(t))
			limiter.EXPECT().Allow(gomock.Any(), "198.51.100.4").Return(tt.allowed, tt.err)

			req := httptest.NewRequest(http.MethodPost, "/contact-us", nil)
			req = req.WithContext(requestcontext.WithClientIP(req.Context(), "198.51.100.4"))
			rec := httptest.NewRecorder()

			Middleware(limiter, slog.New(slog.DiscardHandler))(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusTooManyRequests {
				assert.JSONEq(t, `{"error":"rate_limited","error_description":"too many submissions, try again later"}`, rec.Body.String())
				assert.Equal(t, "60", rec.Header().Get("Retry-After"))
			}
		})
	}
}

func TestRedisLimiterSkipsRedisWhileCircuitOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	breaker := circuit.New("test", circuit.WithFailureThreshold(2), circuit.WithClock(func() time.Time { return now }))
	l := NewRedisLimiter(client, 5, NewLocalLimiter(5), WithBreaker(breaker))

	for range 2 {
		ok, err := l.Allow(context.Background(), "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	require.True(t, breaker.IsOpen())
	assert.False(t, breaker.ShouldAttempt())

	ok, err := l.Allow(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, ok)
}
