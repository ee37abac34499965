// Package awsclient loads the shared AWS SDK configuration used by the
// Secrets Manager and SES clients.
package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// Options selects the region and an optional endpoint override
// (LocalStack and similar emulators).
type Options struct {
	Region   string
	Endpoint string
}

// Load resolves credentials and region through the default SDK chain.
// An empty Region leaves region resolution to the environment.
func Load(ctx context.Context, opts Options) (aws.Config, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if opts.Endpoint != "" {
		cfg.BaseEndpoint = aws.String(opts.Endpoint)
	}
	return cfg, nil
}
