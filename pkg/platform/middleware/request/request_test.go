package request

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws-samples/aws-contactus-serverless-website/pkg/requestcontext"
)

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	}))

	t.Run("inbound id is propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(HeaderRequestID, "edge-abc")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, "edge-abc", seen)
		assert.Equal(t, "edge-abc", rr.Header().Get(HeaderRequestID))
	})

	t.Run("missing id is generated", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, rr.Header().Get(HeaderRequestID))
	})
}
