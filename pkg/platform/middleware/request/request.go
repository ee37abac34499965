package request

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/aws-samples/aws-contactus-serverless-website/pkg/requestcontext"
)

// HeaderRequestID is echoed back on every response.
const HeaderRequestID = "X-Request-ID"

// RequestID reuses an inbound X-Request-ID or mints a new one, stores it in
// the context and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
