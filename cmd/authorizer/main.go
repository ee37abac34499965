package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aws-samples/aws-contactus-serverless-website/internal/app"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/authorizer/handler"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/platform/config"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/platform/logger"
)

// main runs the x-origin-verify REQUEST authorizer as a Lambda function.
func main() {
	log := logger.New(os.Getenv("LOG_LEVEL"))

	svc, err := app.NewAuthorizer(context.Background(), config.AuthorizerFromEnv(), log, prometheus.DefaultRegisterer)
	if err != nil {
		log.Error("failed to initialize authorizer", "error", err)
		os.Exit(1)
	}

	lambda.Start(handler.NewLambda(svc).Handle)
}
