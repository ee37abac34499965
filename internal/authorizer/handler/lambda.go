package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"

	"github.com/aws-samples/aws-contactus-serverless-website/internal/authorizer"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/requestcontext"
)

// Decider produces an authorization decision for one request.
type Decider interface {
	Decide(ctx context.Context, req authorizer.Request) authorizer.Decision
}

// Lambda adapts API Gateway REQUEST authorizer events to the decider.
type Lambda struct {
	decider Decider
}

// NewLambda constructs the Lambda adapter.
func NewLambda(decider Decider) *Lambda {
	return &Lambda{decider: decider}
}

// Handle returns the policy response, or authorizer.ErrInvalidToken when the
// decision could not be evaluated.
func (l *Lambda) Handle(ctx context.Context, event events.APIGatewayCustomAuthorizerRequestTypeRequest) (*authorizer.Response, error) {
	ctx = requestcontext.WithRequestID(ctx, event.RequestContext.RequestID)

	d := l.decider.Decide(ctx, authorizer.Request{
		Headers:  event.Headers,
		Resource: event.MethodArn,
		Method:   event.HTTPMethod,
	})
	return authorizer.BuildResponse(d)
}
