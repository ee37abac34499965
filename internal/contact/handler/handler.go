package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aws-samples/aws-contactus-serverless-website/internal/contact"
	dErrors "github.com/aws-samples/aws-contactus-serverless-website/pkg/domain-errors"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/platform/httputil"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/requestcontext"
)

// maxBodyBytes comfortably fits the largest valid form.
const maxBodyBytes = 16 << 10

// Service defines the interface for contact submissions.
type Service interface {
	Submit(ctx context.Context, method string, body []byte) (contact.Outcome, error)
}

// ResultResponse is the body returned for every accepted submission.
type ResultResponse struct {
	Result contact.Outcome `json:"result"`
}

// StatusFor maps a submission outcome to its HTTP status.
func StatusFor(outcome contact.Outcome) int {
	if outcome == contact.OutcomeSuccess {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}

// Handler serves the contact form over plain HTTP.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the contact endpoint. Every method is routed so the service
// can answer non-POST requests with its own message.
func (h *Handler) Register(r chi.Router) {
	r.HandleFunc("/contact-us", h.HandleSubmit)
}

// HandleSubmit handles /contact-us requests.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := requestcontext.Now(ctx)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request body too large"))
			return
		}
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read request body"))
		return
	}

	outcome, err := h.service.Submit(ctx, r.Method, body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "contact submission handled",
		"request_id", requestcontext.RequestID(ctx),
		"result", outcome,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, StatusFor(outcome), ResultResponse{Result: outcome})
}
