package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authHandler "github.com/aws-samples/aws-contactus-serverless-website/internal/authorizer/handler"
	contactHandler "github.com/aws-samples/aws-contactus-serverless-website/internal/contact/handler"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/ratelimit"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/platform/httputil"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/platform/middleware/metadata"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/platform/middleware/request"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/platform/middleware/requesttime"
)

// Deps are the services the local router exposes.
type Deps struct {
	Decider  authHandler.Decider
	Contact  contactHandler.Service
	Limiter  ratelimit.Limiter
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger

	// Health reports dependency health; nil means always healthy.
	Health func(ctx context.Context) error
}

// NewRouter mirrors the deployed API: the contact endpoint sits behind the
// origin-verify check and the submission limiter.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)

	r.Get("/health", healthHandler(d.Health))
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(authHandler.RequireOriginVerify(d.Decider, d.Logger))
		if d.Limiter != nil {
			r.Use(ratelimit.Middleware(d.Limiter, d.Logger))
		}
		contactHandler.New(d.Contact, d.Logger).Register(r)
	})

	return r
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
