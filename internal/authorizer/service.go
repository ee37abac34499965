package authorizer

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/aws-samples/aws-contactus-serverless-website/internal/authorizer/metrics"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/authorizer/ports"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/requestcontext"
)

// Service decides whether a request carries the current origin-verify secret.
// It holds no per-request state; the secret is fetched on every call.
type Service struct {
	secrets  ports.SecretLookup
	secretID string
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New builds the decider. The secret identifier is process configuration,
// never request input, so it is fixed here.
func New(secrets ports.SecretLookup, secretID string, opts ...Option) (*Service, error) {
	if secrets == nil {
		return nil, errors.New("secret lookup is required")
	}
	if secretID == "" {
		return nil, errors.New("secret identifier is required")
	}

	svc := &Service{
		secrets:  secrets,
		secretID: secretID,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Decide fetches the secret and evaluates the request against it. It never
// returns an error: every failure resolves to ErrorResult.
func (s *Service) Decide(ctx context.Context, req Request) Decision {
	start := time.Now()
	secret, err := s.secrets.Fetch(ctx, s.secretID)
	s.metrics.ObserveSecretFetch(time.Since(start))

	var d Decision
	if err != nil {
		s.logger.WarnContext(ctx, "secret lookup failed, refusing to authorize",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		d = ErrorResult{Reason: ReasonSecretUnavailable}
	} else {
		d = Evaluate(req, secret)
	}

	s.metrics.IncrementDecision(string(d.Outcome()))
	s.logger.InfoContext(ctx, "authorization decided",
		"request_id", requestcontext.RequestID(ctx),
		"outcome", d.Outcome(),
		"method", req.Method,
		"resource", req.Resource,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return d
}

// Evaluate is the pure decision: same request and secret, same result.
//
// A request without any headers object cannot be evaluated. A headers object
// without x-origin-verify is an explicit deny. An empty secret never matches.
func Evaluate(req Request, secret string) Decision {
	if req.Headers == nil {
		return ErrorResult{Reason: ReasonMissingHeaders}
	}
	if secret == "" {
		return ErrorResult{Reason: ReasonSecretUnavailable}
	}

	presented, ok := req.Headers[HeaderOriginVerify]
	if ok && subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) == 1 {
		return AllowDecision{Principal: PrincipalAuthenticated, Resource: req.Resource}
	}
	return DenyDecision{Principal: PrincipalUnauthenticated, Resource: req.Resource}
}
