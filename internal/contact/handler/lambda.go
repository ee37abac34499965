package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	dErrors "github.com/aws-samples/aws-contactus-serverless-website/pkg/domain-errors"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/requestcontext"
)

// Limiter admits or refuses a request for a client key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Lambda adapts API Gateway proxy events to the contact service.
type Lambda struct {
	service Service
	limiter Limiter
	logger  *slog.Logger
}

// NewLambda builds the proxy handler. limiter may be nil.
func NewLambda(service Service, limiter Limiter, logger *slog.Logger) *Lambda {
	return &Lambda{
		service: service,
		limiter: limiter,
		logger:  logger,
	}
}

// Handle processes one proxy event. Method and validation failures are
// returned as the invocation error.
func (l *Lambda) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ctx = requestcontext.WithRequestID(ctx, req.RequestContext.RequestID)
	sourceIP := req.RequestContext.Identity.SourceIP
	ctx = requestcontext.WithClientIP(ctx, sourceIP)

	if l.limiter != nil && sourceIP != "" {
		allowed, err := l.limiter.Allow(ctx, sourceIP)
		if err != nil {
			l.logger.WarnContext(ctx, "rate limit check failed, admitting request",
				"request_id", req.RequestContext.RequestID,
				"error", err,
			)
		} else if !allowed {
			return jsonResponse(http.StatusTooManyRequests, map[string]string{
				"error":             string(dErrors.CodeRateLimited),
				"error_description": "too many submissions, try again later",
			})
		}
	}

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return events.APIGatewayProxyResponse{}, dErrors.Wrap(err, dErrors.CodeValidation,
				"Bad request. Please check the request data for: "+req.HTTPMethod+" method.")
		}
		body = decoded
	}

	outcome, err := l.service.Submit(ctx, req.HTTPMethod, body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return jsonResponse(StatusFor(outcome), ResultResponse{Result: outcome})
}

func jsonResponse(status int, v any) (events.APIGatewayProxyResponse, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return events.APIGatewayProxyResponse{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode response")
	}
	return events.APIGatewayProxyResponse{
		StatusCode:      status,
		Headers:         map[string]string{"Content-Type": "application/json"},
		Body:            string(payload),
		IsBase64Encoded: false,
	}, nil
}
