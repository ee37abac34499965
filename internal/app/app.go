// Package app builds the services shared by the Lambda entrypoints and the
// local server from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aws-samples/aws-contactus-serverless-website/internal/authorizer"
	authMetrics "github.com/aws-samples/aws-contactus-serverless-website/internal/authorizer/metrics"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/authorizer/ports"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/contact"
	contactMetrics "github.com/aws-samples/aws-contactus-serverless-website/internal/contact/metrics"
	contactPorts "github.com/aws-samples/aws-contactus-serverless-website/internal/contact/ports"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/notify"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/platform/awsclient"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/platform/config"
	redisclient "github.com/aws-samples/aws-contactus-serverless-website/internal/platform/redis"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/ratelimit"
	rlMetrics "github.com/aws-samples/aws-contactus-serverless-website/internal/ratelimit/metrics"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/secrets"
)

// staticSecretID labels the in-process secret when no store is configured.
const staticSecretID = "static"

// NewAuthorizer builds the origin-verify decider. A static secret takes
// precedence over Secrets Manager.
func NewAuthorizer(ctx context.Context, cfg config.Authorizer, logger *slog.Logger, reg prometheus.Registerer) (*authorizer.Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		lookup   ports.SecretLookup
		secretID = cfg.SecretID
	)
	if cfg.StaticSecret != "" {
		logger.Warn("using static origin-verify secret; do not use outside local development")
		lookup = secrets.NewStatic(cfg.StaticSecret)
		if secretID == "" {
			secretID = staticSecretID
		}
	} else {
		awsCfg, err := awsclient.Load(ctx, awsclient.Options{Region: cfg.Region, Endpoint: cfg.Endpoint})
		if err != nil {
			return nil, err
		}
		lookup = secrets.NewSecretsManager(awsCfg)
	}

	return authorizer.New(lookup, secretID,
		authorizer.WithLogger(logger),
		authorizer.WithMetrics(authMetrics.New(reg)),
	)
}

// NewContact builds the submission service with the configured notifier.
func NewContact(ctx context.Context, cfg config.Contact, logger *slog.Logger, reg prometheus.Registerer) (*contact.Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var notifier contactPorts.Notifier
	switch cfg.Notifier {
	case config.NotifierLog:
		notifier = notify.NewLog(logger)
	default:
		awsCfg, err := awsclient.Load(ctx, awsclient.Options{Region: cfg.Region, Endpoint: cfg.Endpoint})
		if err != nil {
			return nil, err
		}
		notifier = notify.NewSES(awsCfg)
	}

	return contact.New(notifier, cfg.SendFrom, splitAddresses(cfg.SendTo),
		contact.WithLogger(logger),
		contact.WithMetrics(contactMetrics.New(reg)),
	)
}

// NewLimiter returns a Redis-backed limiter when REDIS_URL is set, otherwise
// a local one. The returned client is nil without Redis and must be closed
// by the caller otherwise.
func NewLimiter(ctx context.Context, cfg config.RateLimit, logger *slog.Logger, reg prometheus.Registerer) (ratelimit.Limiter, *redisclient.Client, error) {
	local := ratelimit.NewLocalLimiter(cfg.PerMinute)

	client, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("connect rate limit store: %w", err)
	}
	if client == nil {
		logger.Info("rate limiting with in-process limiter", "per_minute", cfg.PerMinute)
		return local, nil, nil
	}

	logger.Info("rate limiting with redis", "per_minute", cfg.PerMinute)
	limiter := ratelimit.NewRedisLimiter(client, cfg.PerMinute, local,
		ratelimit.WithLogger(logger),
		ratelimit.WithMetrics(rlMetrics.New(reg)),
	)
	return limiter, client, nil
}

func splitAddresses(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
