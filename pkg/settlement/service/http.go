package service

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/audit-register-recon/pkg/app/errors"
	apphttp "github.com/chainsafe/audit-register-recon/pkg/app/http"
	"github.com/chainsafe/audit-register-recon/pkg/bizdate"
	"github.com/chainsafe/audit-register-recon/pkg/settlement"
	"github.com/chainsafe/audit-register-recon/pkg/sweep"
)

const settlementDateParam = "settlementDate"

// TriggerResponse is the body of every batch trigger response
type TriggerResponse struct {
	Status         settlement.Status `json:"status"`
	Message        string            `json:"message"`
	SettlementDate string            `json:"settlementDate,omitempty"`
	Outcome        sweep.Status      `json:"outcome,omitempty"`
	SucceededDays  int               `json:"succeededDays,omitempty"`
	FailedDays     int               `json:"failedDays,omitempty"`
	RowsWritten    int               `json:"rowsWritten,omitempty"`
}

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service  Service
	logger   *zap.Logger
	location *time.Location
	now      func() time.Time
}

// RegisterRoutes registers the batch trigger endpoints on the given chi router.
// A request without settlementDate runs for today in loc.
func RegisterRoutes(r chi.Router, service Service, loc *time.Location, logger *zap.Logger) {
	h := &HTTP{
		service:  service,
		logger:   logger,
		location: loc,
		now:      time.Now,
	}
	h.routes(r)
}

func (h *HTTP) routes(r chi.Router) {
	for _, job := range settlement.Jobs {
		r.Post("/v1/batch/"+string(job), apphttp.HandleErrorWith(h.trigger(job), h.renderError(job)))
	}
}

func (h *HTTP) trigger(job settlement.JobName) apphttp.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		settlementDate, err := settlement.ParseSettlementDate(r.URL.Query().Get(settlementDateParam), h.today())
		if err != nil {
			return apperrors.BadRequestError(err, "Invalid settlement date")
		}

		outcome, err := h.service.Trigger(r.Context(), job, settlementDate)
		if err != nil {
			switch {
			case errors.Is(err, sweep.ErrLockNotObtained):
				return apperrors.LockedError(err, job.Title()+" batch job is already running")
			case errors.Is(err, sweep.ErrLockUnavailable):
				return apperrors.DependencyError(err, "Sweep lock is unavailable")
			}
			return apperrors.GeneralError(err)
		}

		message := job.Title() + " batch job completed successfully"
		if outcome.Status == sweep.StatusPartial {
			message = job.Title() + " batch job completed with failed days"
		}

		apphttp.WriteJSON(w, http.StatusOK, &TriggerResponse{
			Status:         settlement.StatusSuccess,
			Message:        message,
			SettlementDate: bizdate.Format(settlementDate),
			Outcome:        outcome.Status,
			SucceededDays:  outcome.Succeeded,
			FailedDays:     outcome.Failed,
			RowsWritten:    outcome.RowsWritten,
		})
		return nil
	}
}

// renderError writes failures in the trigger response shape
func (h *HTTP) renderError(job settlement.JobName) apphttp.ErrorRenderer {
	return func(w http.ResponseWriter, r *http.Request, svcErr *apperrors.ServiceError) {
		settlementDate := r.URL.Query().Get(settlementDateParam)
		if settlementDate == "" {
			settlementDate = bizdate.Format(h.today())
		}

		message := "Failed to run " + job.Title() + " batch job: " + svcErr.Error()
		if apperrors.Is(svcErr, apperrors.CategoryLocked) {
			message = svcErr.Message
		}
		if apperrors.IsInternalError(svcErr) {
			h.logger.Error("Batch job failed",
				zap.String("job", string(job)),
				zap.String("settlement_date", settlementDate),
				zap.Error(svcErr))
		}

		apphttp.WriteJSON(w, svcErr.StatusCode(), &TriggerResponse{
			Status:         settlement.StatusError,
			Message:        message,
			SettlementDate: settlementDate,
		})
	}
}

func (h *HTTP) today() time.Time {
	return bizdate.Today(h.now(), h.location)
}
