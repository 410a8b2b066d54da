package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/chainsafe/audit-register-recon/pkg/audit"
	"github.com/chainsafe/audit-register-recon/pkg/audit/service/mocks"
)

const validBody = `{"auditRegisterTxns":[{
	"transactionType":"SAL001","transactionDateTime":"2025-10-15T09:00:00Z","equipmentId":"EQ","deviceId":"DEV-1",
	"beId":1,"auditRegisterSeqNum":7,"businessDate":"2025-10-15",
	"auditRegisterEntries":[{"arTypeIdentifier":"FARE","count":10,"value":1000.50}]}]}`

func newAuditTestServer(svc Service) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, svc, zap.NewNop())
	return r
}

func doAuditRequest(t *testing.T, h http.Handler, body, clientID string) (*httptest.ResponseRecorder, audit.Response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/ar/auditRegister", bytes.NewBufferString(body))
	if clientID != "" {
		req.Header.Set(ClientRequestHeader, clientID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var got audit.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	return rec, got
}

func TestAuditRegisterHTTP_InvalidJSON_ReturnsValidationError(t *testing.T) {
	svc := mocks.NewService(t)

	rec, got := doAuditRequest(t, newAuditTestServer(svc), "{invalid", "CLIENT-1")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if got.ResponseCode != audit.CodeValidationError {
		t.Fatalf("expected code %s, got %s", audit.CodeValidationError, got.ResponseCode)
	}
	if got.ResponseMessage != "Request validation failed" {
		t.Fatalf("unexpected message %q", got.ResponseMessage)
	}
	if rec.Header().Get(ClientRequestHeader) != "CLIENT-1" {
		t.Fatalf("expected client request id to be echoed, got %q", rec.Header().Get(ClientRequestHeader))
	}
}

func TestAuditRegisterHTTP_EmptyBatch_ReturnsValidationError(t *testing.T) {
	svc := mocks.NewService(t)

	rec, got := doAuditRequest(t, newAuditTestServer(svc), `{"auditRegisterTxns":[]}`, "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if len(got.Errors) != 1 || got.Errors[0] != "auditRegisterTxns: must contain at least 1 element(s)" {
		t.Fatalf("unexpected errors %v", got.Errors)
	}
}

func TestAuditRegisterHTTP_Success_ReturnsOK(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		Process(mock.Anything, "CLIENT-1", mock.MatchedBy(func(txns []audit.Txn) bool {
			return len(txns) == 1 && txns[0].DeviceID == "DEV-1"
		})).
		Return(&audit.Response{ResponseCode: audit.CodeSuccess, ResponseMessage: "Successfully processed 1 transaction(s)"}, nil).
		Once()

	rec, got := doAuditRequest(t, newAuditTestServer(svc), validBody, "CLIENT-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got.ResponseCode != audit.CodeSuccess {
		t.Fatalf("expected code %s, got %s", audit.CodeSuccess, got.ResponseCode)
	}
	if rec.Header().Get(ClientRequestHeader) != "CLIENT-1" {
		t.Fatalf("expected echoed client request id")
	}
}

func TestAuditRegisterHTTP_MissingClientID_DefaultsToUnknown(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		Process(mock.Anything, "UNKNOWN", mock.Anything).
		Return(&audit.Response{ResponseCode: audit.CodeSuccess}, nil).
		Once()

	rec, _ := doAuditRequest(t, newAuditTestServer(svc), validBody, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if values, ok := rec.Header()[ClientRequestHeader]; !ok || values[0] != "" {
		t.Fatalf("expected empty echoed header, got %v", values)
	}
}

func TestAuditRegisterHTTP_PartialAndError_ReturnAccepted(t *testing.T) {
	for _, code := range []audit.ResponseCode{audit.CodePartialSuccess, audit.CodeError} {
		t.Run(string(code), func(t *testing.T) {
			svc := mocks.NewService(t)
			svc.EXPECT().
				Process(mock.Anything, mock.Anything, mock.Anything).
				Return(&audit.Response{ResponseCode: code, Errors: []string{"x"}}, nil).
				Once()

			rec, got := doAuditRequest(t, newAuditTestServer(svc), validBody, "CLIENT-1")

			if rec.Code != http.StatusAccepted {
				t.Fatalf("expected status %d, got %d", http.StatusAccepted, rec.Code)
			}
			if got.ResponseCode != code {
				t.Fatalf("expected code %s, got %s", code, got.ResponseCode)
			}
		})
	}
}

func TestAuditRegisterHTTP_UnexpectedError_ReturnsInternalServerError(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		Process(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("interrupted")).
		Once()

	rec, got := doAuditRequest(t, newAuditTestServer(svc), validBody, "CLIENT-1")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if got.ResponseCode != audit.CodeError {
		t.Fatalf("expected code %s, got %s", audit.CodeError, got.ResponseCode)
	}
	if got.ResponseMessage != "An unexpected error occurred: interrupted" {
		t.Fatalf("unexpected message %q", got.ResponseMessage)
	}
}

func largeBatch(reports int) string {
	txn := `{"transactionType":"SAL001","transactionDateTime":"2025-10-15T09:00:00Z","equipmentId":"EQ","deviceId":"DEV-1",` +
		`"beId":1,"auditRegisterSeqNum":7,"businessDate":"2025-10-15",` +
		`"auditRegisterEntries":[{"arTypeIdentifier":"FARE","count":10,"value":1000.50}]}`
	txns := make([]string, reports)
	for i := range txns {
		txns[i] = txn
	}
	return `{"auditRegisterTxns":[` + strings.Join(txns, ",") + `]}`
}

func TestAuditRegisterHTTP_LargeWellFormedBatchIsProcessed(t *testing.T) {
	body := largeBatch(6000)
	if len(body) <= 1<<20 {
		t.Fatalf("batch should exceed 1MB, got %d bytes", len(body))
	}

	svc := mocks.NewService(t)
	svc.EXPECT().
		Process(mock.Anything, "CLIENT-1", mock.MatchedBy(func(txns []audit.Txn) bool { return len(txns) == 6000 })).
		Return(&audit.Response{ResponseCode: audit.CodeSuccess, ResponseMessage: "Successfully processed 6000 transaction(s)"}, nil).
		Once()

	rec, got := doAuditRequest(t, newAuditTestServer(svc), body, "CLIENT-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got.ResponseCode != audit.CodeSuccess {
		t.Fatalf("expected code %s, got %s", audit.CodeSuccess, got.ResponseCode)
	}
}

func TestAuditRegisterHTTP_OversizedBody_ReturnsPayloadTooLarge(t *testing.T) {
	svc := mocks.NewService(t)

	body := largeBatch(25000)
	if len(body) <= MaxBodyBytes {
		t.Fatalf("batch should exceed %d bytes, got %d", MaxBodyBytes, len(body))
	}

	rec, got := doAuditRequest(t, newAuditTestServer(svc), body, "CLIENT-1")

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status %d, got %d", http.StatusRequestEntityTooLarge, rec.Code)
	}
	if got.ResponseCode != audit.CodeError {
		t.Fatalf("expected code %s, got %s", audit.CodeError, got.ResponseCode)
	}
	if got.ResponseMessage != fmt.Sprintf("Request body exceeds %d bytes", MaxBodyBytes) {
		t.Fatalf("unexpected message %q", got.ResponseMessage)
	}
}
