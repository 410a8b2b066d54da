package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/audit-register-recon/internal/metrics"
	"github.com/chainsafe/audit-register-recon/pkg/audit"
	"github.com/chainsafe/audit-register-recon/pkg/auditstore"
	"github.com/chainsafe/audit-register-recon/pkg/bizdate"
)

// Store is the narrow data-access interface for audit register ingestion.
// Defined here to keep the pipeline decoupled from auditstore implementation details.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	MaxSeqNum(ctx context.Context, deviceID string, beID int, businessDate time.Time) (int64, bool, error)
	SaveException(ctx context.Context, x *audit.ExceptionRecord) error
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx auditstore.Tx) error) error
}

// Service defines the audit register ingestion pipeline
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	// Process ingests the reports in submission order. A failing report is recorded
	// and skipped; the returned error is reserved for failures of the whole batch.
	Process(ctx context.Context, clientRequestID string, txns []audit.Txn) (*audit.Response, error)
}

// Option configures the audit service
type Option func(*auditService)

// WithClock sets the time source used for received times and "today"
func WithClock(now func() time.Time) Option {
	return func(s *auditService) {
		s.now = now
	}
}

// WithLocation sets the location in which "today" is evaluated
func WithLocation(loc *time.Location) Option {
	return func(s *auditService) {
		s.location = loc
	}
}

type auditService struct {
	store    Store
	logger   *zap.Logger
	now      func() time.Time
	location *time.Location
}

// NewService creates a new audit register ingestion service
func NewService(store Store, logger *zap.Logger, opts ...Option) Service {
	s := &auditService{
		store:    store,
		logger:   logger,
		now:      time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *auditService) Process(ctx context.Context, clientRequestID string, txns []audit.Txn) (*audit.Response, error) {
	start := time.Now()
	s.logger.Info(audit.Message(audit.MsgRequestReceived, clientRequestID, len(txns)))

	var (
		succeeded int
		errs      []string
	)
	for i := range txns {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("audit register request interrupted after %d of %d transaction(s): %w", i, len(txns), err)
		}

		txn := &txns[i]
		if err := s.processTxn(ctx, clientRequestID, txn); err != nil {
			deviceID, seqNum := txn.DeviceLabel()
			msg := audit.Message(audit.MsgTransactionFailed, deviceID, seqNum, err.Error())
			errs = append(errs, msg)
			s.logger.Error(msg, zap.String("client_request_id", clientRequestID), zap.Error(err))
			metrics.ReportsTotal.WithLabelValues("failure").Inc()

			s.saveException(ctx, clientRequestID, txn, err)
			continue
		}
		succeeded++
		metrics.ReportsTotal.WithLabelValues("success").Inc()
	}

	resp := classify(succeeded, errs)
	metrics.RequestsTotal.WithLabelValues(string(resp.ResponseCode)).Inc()
	metrics.RequestDuration.WithLabelValues(string(resp.ResponseCode)).Observe(time.Since(start).Seconds())
	return resp, nil
}

// processTxn accumulates one report and writes its mirror record. Accumulation and
// the mirror write share a transaction, so a failed report leaves no totals behind.
func (s *auditService) processTxn(ctx context.Context, clientRequestID string, txn *audit.Txn) error {
	report, err := txn.ToReport()
	if err != nil {
		return err
	}

	now := s.now()
	today := bizdate.Today(now, s.location)

	maxSeq, found, err := s.store.MaxSeqNum(ctx, report.DeviceID, report.BEID, report.BusinessDate)
	if err != nil {
		return err
	}
	detection := audit.Detect(report, maxSeq, found, today)
	s.observe(report, detection)

	mirror := audit.NewMirrorRecord(report, audit.NewReferenceID(), clientRequestID, now)

	return s.store.RunInTx(ctx, func(ctx context.Context, tx auditstore.Tx) error {
		for _, entry := range report.Entries {
			summary, err := ApplyEntry(ctx, tx, report.KeyFor(entry), report.SeqNum, entry, now)
			if err != nil {
				return err
			}
			if detection.CrossDate != audit.CrossDateNone {
				s.observeCrossDateSummary(report, detection, entry, summary)
			}
		}
		return tx.SaveMirror(ctx, mirror)
	})
}

// saveException keeps the failed report in the exception tables. Its own failure is only logged.
func (s *auditService) saveException(ctx context.Context, clientRequestID string, txn *audit.Txn, cause error) {
	x := audit.NewExceptionRecord(txn, clientRequestID, cause.Error(), s.now())
	if err := s.store.SaveException(ctx, x); err != nil {
		deviceID, seqNum := txn.DeviceLabel()
		s.logger.Error(audit.Message(audit.MsgExceptionSaveFailed, deviceID, seqNum), zap.Error(err))
		metrics.ExceptionWriteFailures.Inc()
	}
}

func (s *auditService) observe(r *audit.Report, d audit.Detection) {
	businessDate := bizdate.Format(r.BusinessDate)
	today := bizdate.Format(d.Today)

	if d.Restarted {
		s.logger.Warn(audit.Message(audit.MsgDeviceRestart, r.DeviceID, r.BEID, businessDate, r.SeqNum, d.MaxSeqNum))
		metrics.DeviceRestarts.Inc()
	}

	switch d.CrossDate {
	case audit.CrossDateOutstanding:
		s.logger.Info(audit.Message(audit.MsgOutstandingTransactions,
			r.DeviceID, businessDate, r.TransactionDateTime.Format(time.RFC3339), today))
		metrics.CrossDateReports.WithLabelValues(string(d.CrossDate)).Inc()
	case audit.CrossDateFuture:
		s.logger.Warn(audit.Message(audit.MsgFutureBusinessDate, r.DeviceID, businessDate, today))
		metrics.CrossDateReports.WithLabelValues(string(d.CrossDate)).Inc()
	}

	if d.DateMismatch {
		s.logger.Warn(audit.Message(audit.MsgDateMismatch,
			r.DeviceID, businessDate, bizdate.Format(bizdate.Of(r.TransactionDateTime))))
		metrics.DateMismatches.Inc()
	}
}

func (s *auditService) observeCrossDateSummary(r *audit.Report, d audit.Detection, e audit.Entry, sum *audit.Summary) {
	businessDate := bizdate.Format(r.BusinessDate)
	today := bizdate.Format(d.Today)

	if sum.Created {
		s.logger.Info(audit.Message(audit.MsgCrossDateSummaryCreated,
			r.DeviceID, businessDate, today, e.ARTypeIdentifier, e.CardMediaTypeID, e.Count, e.Amount().String()))
		return
	}
	s.logger.Info(audit.Message(audit.MsgCrossDateSummaryUpdated,
		r.DeviceID, businessDate, today, e.ARTypeIdentifier, e.CardMediaTypeID, sum.TotalCount, sum.TotalValue.String()))
}

func classify(succeeded int, errs []string) *audit.Response {
	failed := len(errs)
	switch {
	case failed == 0:
		return &audit.Response{
			ResponseCode:    audit.CodeSuccess,
			ResponseMessage: audit.Message(audit.MsgProcessSuccess, succeeded),
		}
	case succeeded == 0:
		return &audit.Response{
			ResponseCode:    audit.CodeError,
			ResponseMessage: audit.Message(audit.MsgProcessFailed, fmt.Sprintf("all %d transaction(s) failed", failed)),
			Errors:          errs,
		}
	default:
		return &audit.Response{
			ResponseCode:    audit.CodePartialSuccess,
			ResponseMessage: audit.Message(audit.MsgProcessPartial, succeeded, failed),
			Errors:          errs,
		}
	}
}
