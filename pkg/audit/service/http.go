package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/audit-register-recon/pkg/app/errors"
	apphttp "github.com/chainsafe/audit-register-recon/pkg/app/http"
	"github.com/chainsafe/audit-register-recon/pkg/audit"
)

const (
	// ClientRequestHeader carries the caller's opaque request id, echoed on the response
	ClientRequestHeader = "X-Client-Request-Identifier"

	unknownClientRequestID = "UNKNOWN"

	// MaxBodyBytes caps the size of an audit register request body
	MaxBodyBytes = 4 << 20
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the audit register endpoint on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Post("/v1/ar/auditRegister", apphttp.HandleErrorWith(h.auditRegister, h.renderError))
}

func (h *HTTP) auditRegister(w http.ResponseWriter, r *http.Request) error {
	rawClientID := r.Header.Get(ClientRequestHeader)
	clientID := rawClientID
	if clientID == "" {
		clientID = unknownClientRequestID
	}
	w.Header().Set(ClientRequestHeader, rawClientID)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.PayloadTooLargeError(err, fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
		}
		return apperrors.ValidationError(audit.Message(audit.MsgValidationFailed), []string{"body: " + err.Error()})
	}

	var req audit.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.ValidationError(audit.Message(audit.MsgValidationFailed), []string{"body: malformed JSON"})
	}
	if errs := req.Validate(); len(errs) > 0 {
		return apperrors.ValidationError(audit.Message(audit.MsgValidationFailed), errs)
	}

	resp, err := h.service.Process(r.Context(), clientID, req.Transactions)
	if err != nil {
		return apperrors.GeneralError(err)
	}

	status := http.StatusAccepted // partial success or errors
	if resp.ResponseCode == audit.CodeSuccess {
		status = http.StatusOK
	}
	apphttp.WriteJSON(w, status, resp)
	return nil
}

// renderError writes failures in the audit register response shape
func (h *HTTP) renderError(w http.ResponseWriter, _ *http.Request, svcErr *apperrors.ServiceError) {
	switch svcErr.Category {
	case apperrors.CategoryDataError:
		apphttp.WriteJSON(w, svcErr.StatusCode(), audit.ValidationResponse(svcErr.Details))
		return
	case apperrors.CategoryTooLarge:
		apphttp.WriteJSON(w, svcErr.StatusCode(), &audit.Response{
			ResponseCode:    audit.CodeError,
			ResponseMessage: svcErr.Message,
		})
		return
	}

	h.logger.Error("Unexpected error occurred", zap.Error(svcErr))
	apphttp.WriteJSON(w, svcErr.StatusCode(), &audit.Response{
		ResponseCode:    audit.CodeError,
		ResponseMessage: "An unexpected error occurred: " + svcErr.Error(),
		Errors:          []string{svcErr.Error()},
	})
}
