// Package sweep runs a per-day settlement job backwards over a window of days.
//
// Late data makes earlier settlement days change after they were first processed,
// so every run recomputes the whole window ending at the requested settlement date.
// Days are processed oldest first, one at a time. A failing day is recorded and the
// sweep moves on; the sweep only fails when no day succeeded.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/audit-register-recon/internal/metrics"
	"github.com/chainsafe/audit-register-recon/pkg/bizdate"
	"github.com/chainsafe/audit-register-recon/pkg/settlement"
)

// DefaultWindowDays is the number of days swept when Params.WindowDays is not set
const DefaultWindowDays = 7

// ErrAllDaysFailed is returned when every day of the window failed
var ErrAllDaysFailed = errors.New("all settlement days failed")

// Status summarizes a finished sweep
type Status string

const (
	StatusCompleted Status = "COMPLETED"
	StatusPartial   Status = "PARTIAL"
	StatusFailed    Status = "FAILED"
)

// Params selects the window of a sweep
type Params struct {
	SettlementDate time.Time
	WindowDays     int
}

// DayResult is the result of one day of the window
type DayResult struct {
	Date time.Time
	Rows int
	Err  error
}

// Outcome reports what a sweep did
type Outcome struct {
	Job            settlement.JobName
	SettlementDate time.Time
	Status         Status
	Succeeded      int
	Failed         int
	RowsWritten    int
	Days           []DayResult
}

// Sweeper runs jobs over a window of days under an optional lock
type Sweeper struct {
	locker Locker
	logger *zap.Logger
}

// New creates a Sweeper. A nil locker disables locking.
func New(locker Locker, logger *zap.Logger) *Sweeper {
	if locker == nil {
		locker = NoopLocker{}
	}
	return &Sweeper{
		locker: locker,
		logger: logger,
	}
}

// Sweep runs job for every day of the window ending at p.SettlementDate.
//
// The returned Outcome is non-nil whenever the window was started, including when
// the error is ErrAllDaysFailed or the context was canceled part way; days written
// before a cancellation are kept.
func (s *Sweeper) Sweep(ctx context.Context, job settlement.Job, p Params) (outcome *Outcome, err error) {
	windowDays := p.WindowDays
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	settlementDate := bizdate.Of(p.SettlementDate)
	name := job.Name()

	lease, err := s.locker.Obtain(ctx, LockKey(string(name), settlementDate))
	if err != nil {
		return nil, err
	}
	defer func() {
		// release on a fresh context so a canceled sweep still frees the lock
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if relErr := lease.Release(releaseCtx); relErr != nil {
			s.logger.Warn("Failed to release sweep lock", zap.String("job", string(name)), zap.Error(relErr))
		}
	}()

	start := time.Now()
	days := bizdate.Window(settlementDate, windowDays)

	s.logger.Info("Starting backward sweep",
		zap.String("job", string(name)),
		zap.String("from", bizdate.Format(days[0])),
		zap.String("to", bizdate.Format(settlementDate)),
		zap.Int("days", windowDays))

	outcome = &Outcome{
		Job:            name,
		SettlementDate: settlementDate,
		Days:           make([]DayResult, 0, windowDays),
	}
	defer func() {
		metrics.SweepDuration.WithLabelValues(string(name), string(outcome.Status)).Observe(time.Since(start).Seconds())
	}()

	for i, day := range days {
		if ctxErr := ctx.Err(); ctxErr != nil {
			outcome.Status = StatusFailed
			return outcome, fmt.Errorf("sweep of %s interrupted after %d of %d day(s): %w", name, i, windowDays, ctxErr)
		}

		// A day may take close to the TTL, so the lease is renewed before each one after the first.
		if i > 0 {
			if lockErr := lease.Refresh(ctx); lockErr != nil {
				outcome.Status = StatusFailed
				s.logger.Error("Sweep lock could not be refreshed",
					zap.String("job", string(name)),
					zap.Int("processed_days", i),
					zap.Error(lockErr))
				return outcome, fmt.Errorf("sweep of %s stopped after %d of %d day(s): %w", name, i, windowDays, lockErr)
			}
		}

		s.logger.Info("Processing settlement day",
			zap.String("job", string(name)),
			zap.String("settlement_date", bizdate.Format(day)),
			zap.Int("day", i+1),
			zap.Int("of", windowDays))

		rows, runErr := job.Run(ctx, day)
		outcome.Days = append(outcome.Days, DayResult{Date: day, Rows: rows, Err: runErr})

		if runErr != nil {
			outcome.Failed++
			metrics.SweepDays.WithLabelValues(string(name), "failure").Inc()
			s.logger.Error("Settlement day failed",
				zap.String("job", string(name)),
				zap.String("settlement_date", bizdate.Format(day)),
				zap.Error(runErr))
			continue
		}

		outcome.Succeeded++
		outcome.RowsWritten += rows
		metrics.SweepDays.WithLabelValues(string(name), "success").Inc()
		metrics.SweepRowsWritten.WithLabelValues(string(name)).Add(float64(rows))
		if rows == 0 {
			s.logger.Warn("No data found for settlement day",
				zap.String("job", string(name)),
				zap.String("settlement_date", bizdate.Format(day)))
		}
	}

	switch {
	case outcome.Succeeded == 0:
		outcome.Status = StatusFailed
		s.logger.Error("All settlement days failed",
			zap.String("job", string(name)),
			zap.Int("failed", outcome.Failed))
		return outcome, fmt.Errorf("%s sweep ending %s: %w", name, bizdate.Format(settlementDate), ErrAllDaysFailed)
	case outcome.Failed > 0:
		outcome.Status = StatusPartial
		s.logger.Warn("Backward sweep partially failed",
			zap.String("job", string(name)),
			zap.Int("succeeded", outcome.Succeeded),
			zap.Int("failed", outcome.Failed))
	default:
		outcome.Status = StatusCompleted
	}

	metrics.LastSweepSuccess.WithLabelValues(string(name)).SetToCurrentTime()
	s.logger.Info("Backward sweep completed",
		zap.String("job", string(name)),
		zap.String("status", string(outcome.Status)),
		zap.Int("succeeded", outcome.Succeeded),
		zap.Int("failed", outcome.Failed),
		zap.Int("rows_written", outcome.RowsWritten),
		zap.Duration("duration", time.Since(start)))

	return outcome, nil
}
