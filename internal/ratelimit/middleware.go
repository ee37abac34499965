package ratelimit

import (
	"log/slog"
	"net/http"

	dErrors "github.com/aws-samples/aws-contactus-serverless-website/pkg/domain-errors"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/platform/httputil"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/requestcontext"
)

// Middleware limits requests by the client IP recorded in the request
// context. Limiter errors let the request through.
func Middleware(limiter Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)

			allowed, err := limiter.Allow(ctx, ip)
			if err != nil {
				logger.ErrorContext(ctx, "failed to check rate limit",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				w.Header().Set("Retry-After", "60")
				httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "too many submissions, try again later"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
