package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws-samples/aws-contactus-serverless-website/internal/contact/metrics"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/contact/ports"
	dErrors "github.com/aws-samples/aws-contactus-serverless-website/pkg/domain-errors"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/requestcontext"
)

const subjectPrefix = "Contact Us Form Received From: "

// Service validates contact submissions and dispatches them as notifications.
type Service struct {
	notifier ports.Notifier
	from     string
	to       []string
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

func New(notifier ports.Notifier, from string, to []string, opts ...Option) (*Service, error) {
	if notifier == nil {
		return nil, errors.New("notifier is required")
	}
	if from == "" {
		return nil, errors.New("sender address is required")
	}
	if len(to) == 0 {
		return nil, errors.New("at least one recipient is required")
	}

	svc := &Service{
		notifier: notifier,
		from:     from,
		to:       append([]string(nil), to...),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Submit handles one form post. Method and validation problems are returned
// as errors; a failed send is reported as OutcomeFailure, not as an error.
func (s *Service) Submit(ctx context.Context, method string, body []byte) (Outcome, error) {
	requestID := requestcontext.RequestID(ctx)

	if method != MethodPost {
		s.metrics.IncrementSubmission("method_not_allowed")
		return "", dErrors.New(dErrors.CodeMethodNotAllowed,
			fmt.Sprintf("postMethod only accepts POST method, you tried: %s method.", method))
	}

	sub, err := ParseSubmission(method, body)
	if err != nil {
		s.metrics.IncrementSubmission("invalid")
		s.logger.InfoContext(ctx, "contact submission rejected",
			"request_id", requestID,
			"error", err,
		)
		return "", err
	}

	start := time.Now()
	err = s.notifier.Send(ctx, s.compose(sub))
	s.metrics.ObserveSend(time.Since(start))
	if err != nil {
		s.metrics.IncrementSubmission("failure")
		s.logger.ErrorContext(ctx, "failed to send contact notification",
			"request_id", requestID,
			"error", err,
		)
		return OutcomeFailure, nil
	}

	s.metrics.IncrementSubmission("success")
	s.logger.InfoContext(ctx, "contact notification sent",
		"request_id", requestID,
	)
	return OutcomeSuccess, nil
}

func (s *Service) compose(sub Submission) ports.Message {
	var b strings.Builder
	b.WriteString("Name: " + sub.Name + "\n")
	b.WriteString("Phone: " + sub.Phone + "\n")
	b.WriteString("Email: " + sub.Email + "\n")
	b.WriteString("Description: " + sub.Description)

	return ports.Message{
		From:    s.from,
		To:      s.to,
		Subject: subjectPrefix + sub.Name,
		Body:    b.String(),
	}
}
