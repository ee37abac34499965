package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws-samples/aws-contactus-serverless-website/internal/authorizer"
	dErrors "github.com/aws-samples/aws-contactus-serverless-website/pkg/domain-errors"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/platform/httputil"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/requestcontext"
)

// RequireOriginVerify runs the authorizer in front of local routes, the way
// API Gateway does in a deployment. Header keys are lower-cased to match what
// the CDN forwards. Deny maps to 403, an unevaluated decision to 401.
func RequireOriginVerify(decider Decider, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			d := decider.Decide(ctx, authorizer.Request{
				Headers:  flattenHeaders(r.Header),
				Resource: r.Method + " " + r.URL.Path,
				Method:   r.Method,
			})

			switch d.(type) {
			case authorizer.AllowDecision:
				next.ServeHTTP(w, r)
			case authorizer.DenyDecision:
				logger.WarnContext(ctx, "origin verification denied",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "User is not authorized to access this resource"))
			default:
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, authorizer.ErrInvalidToken.Error()))
			}
		})
	}
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[strings.ToLower(k)] = v[0]
		}
	}
	return out
}
