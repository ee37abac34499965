package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aws-samples/aws-contactus-serverless-website/internal/app"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/contact/handler"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/platform/config"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/platform/logger"
)

// main runs the contact form handler as a Lambda function behind API Gateway.
func main() {
	ctx := context.Background()
	log := logger.New(os.Getenv("LOG_LEVEL"))
	reg := prometheus.DefaultRegisterer

	svc, err := app.NewContact(ctx, config.ContactFromEnv(), log, reg)
	if err != nil {
		log.Error("failed to initialize contact service", "error", err)
		os.Exit(1)
	}

	// Without REDIS_URL the limiter is per execution environment.
	limiter, _, err := app.NewLimiter(ctx, config.RateLimitFromEnv(), log, reg)
	if err != nil {
		log.Warn("rate limiting disabled", "error", err)
		limiter = nil
	}

	lambda.Start(handler.NewLambda(svc, limiter, log).Handle)
}
