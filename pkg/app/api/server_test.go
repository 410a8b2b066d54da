package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	auditmocks "github.com/chainsafe/audit-register-recon/pkg/audit/service/mocks"
	"github.com/chainsafe/audit-register-recon/pkg/config"
	settlementmocks "github.com/chainsafe/audit-register-recon/pkg/settlement/service/mocks"
)

func newTestRouter(t *testing.T, monitoring bool) http.Handler {
	t.Helper()
	s := NewServer(&config.Config{Monitoring: config.MonitoringConfig{Enabled: monitoring}})
	return s.setupRouter(auditmocks.NewService(t), settlementmocks.NewService(t), time.UTC, zap.NewNop())
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestRouter_MetricsOnlyWhenMonitoringEnabled(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Fatalf("expected prometheus exposition format")
	}

	rec = httptest.NewRecorder()
	newTestRouter(t, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d without monitoring, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestRouter_RegistersDomainRoutes(t *testing.T) {
	router := newTestRouter(t, false)

	for _, path := range []string{"/v1/ar/auditRegister", "/v1/batch/transactionTotal", "/v1/batch/udArReconciliation"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: expected status %d for GET, got %d", path, http.StatusMethodNotAllowed, rec.Code)
		}
	}
}

func TestRun_NilConfig(t *testing.T) {
	if err := NewServer(nil).Run(); err == nil {
		t.Fatal("expected error for nil config")
	}
}
