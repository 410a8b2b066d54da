// Package http provides HTTP utilities including chi-compatible error handling
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/chainsafe/audit-register-recon/pkg/app/errors"
)

// HandlerFunc defines a function that returns an error for clean error handling
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// ErrorRenderer writes the response body for an error returned by a HandlerFunc.
// Non-service errors arrive wrapped as a GeneralError.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, svcErr *apperrors.ServiceError)

// HandleError wraps an error-returning HandlerFunc into a standard http.HandlerFunc
// using the default {"error","code"} body.
//
// Usage with chi:
//
//	r.Post("/v1/ar/auditRegister", http.HandleError(handler.auditRegister))
func HandleError(h HandlerFunc) http.HandlerFunc {
	return HandleErrorWith(h, DefaultErrorRenderer)
}

// HandleErrorWith wraps h and renders its errors with render
func HandleErrorWith(h HandlerFunc, render ErrorRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			render(w, r, AsServiceError(err))
		}
	}
}

// AsServiceError returns err as a *ServiceError, wrapping unknown errors as GeneralError
func AsServiceError(err error) *apperrors.ServiceError {
	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	_ = errors.As(apperrors.GeneralError(err), &svcErr)
	return svcErr
}

// DefaultErrorRenderer writes {"error": message, "code": status}
func DefaultErrorRenderer(w http.ResponseWriter, _ *http.Request, svcErr *apperrors.ServiceError) {
	type errorResponse struct {
		ErrMsg     string   `json:"error"`
		ErrMsgCode int      `json:"code"`
		Details    []string `json:"details,omitempty"`
	}

	WriteJSON(w, svcErr.StatusCode(), &errorResponse{
		ErrMsg:     svcErr.Message,
		ErrMsgCode: svcErr.StatusCode(),
		Details:    svcErr.Details,
	})
}

// WriteJSON writes v as a JSON body with the given status
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
