package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "github.com/aws-samples/aws-contactus-serverless-website/pkg/domain-errors"
)

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into the error envelope. Uncoded errors and
// internal errors never expose their message.
func WriteError(w http.ResponseWriter, err error) {
	de, ok := dErrors.Is(err)
	if !ok {
		WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: string(dErrors.CodeInternal)})
		return
	}

	resp := errorResponse{Error: string(de.Code)}
	if de.Code != dErrors.CodeInternal && de.Code != dErrors.CodeConfig {
		resp.ErrorDescription = de.Message
	}
	WriteJSON(w, StatusFor(de.Code), resp)
}

// StatusFor maps a domain error code to an HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation, dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeRateLimited:
		return http.StatusTooManyRequests
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
