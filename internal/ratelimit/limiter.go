// Package ratelimit throttles contact form submissions per client.
//
// Limits are anti-spam only: every failure in the shared store degrades to
// the in-process limiter rather than rejecting traffic.
package ratelimit

import "context"

//go:generate mockgen -source=limiter.go -destination=mocks/limiter-mocks.go -package=mocks Limiter

// Limiter admits or refuses one request for key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
