package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/aws-samples/aws-contactus-serverless-website/internal/platform/config"
)

// Client wraps the go-redis client used by the shared rate limit store.
type Client struct {
	*redis.Client
}

// New connects to Redis and verifies the connection with a ping.
// Returns nil, nil when no URL is configured so callers can fall back to
// in-process limiting.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health checks if the Redis connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
