package metadata

import (
	"net"
	"net/http"
	"strings"

	"github.com/aws-samples/aws-contactus-serverless-website/pkg/requestcontext"
)

// ClientMetadata extracts the caller's IP address and stores it in the
// request context. Apply it before rate limiting.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientIP(r.Context(), ClientIPFromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIPFromRequest extracts the real client IP from the request, handling
// proxies and CDN edges.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For is "client, proxy1, proxy2"; the first entry is the caller
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if r.RemoteAddr != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			return host
		}
		return r.RemoteAddr
	}

	return "unknown"
}
