package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/audit-register-recon/pkg/bizdate"
	"github.com/chainsafe/audit-register-recon/pkg/settlement"
	"github.com/chainsafe/audit-register-recon/pkg/sweep"
)

// Sweeper runs one job over the window ending at a settlement date
type Sweeper interface {
	Sweep(ctx context.Context, job settlement.Job, p sweep.Params) (*sweep.Outcome, error)
}

// Config controls the periodic sweep
type Config struct {
	WindowDays   int
	Interval     time.Duration
	RunTimeout   time.Duration
	RunOnStartup bool
	Location     *time.Location
}

// Reconciler sweeps every settlement job for today's settlement date on a schedule
type Reconciler struct {
	sweeper Sweeper
	jobs    []settlement.Job
	cfg     Config
	logger  *zap.Logger
	now     func() time.Time

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a new Reconciler
func New(sweeper Sweeper, jobs []settlement.Job, cfg Config, logger *zap.Logger) *Reconciler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 10 * time.Minute
	}
	return &Reconciler{
		sweeper: sweeper,
		jobs:    jobs,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
}

// SweepAll runs every job for today's settlement date, one after another.
// A job that fails does not stop the others; the joined error of all failures is returned.
func (r *Reconciler) SweepAll(ctx context.Context) error {
	settlementDate := bizdate.Today(r.now(), r.cfg.Location)
	r.logger.Info("Starting scheduled settlement sweep",
		zap.String("settlement_date", bizdate.Format(settlementDate)),
		zap.Int("jobs", len(r.jobs)))
	start := time.Now()

	var errs []error
	for _, job := range r.jobs {
		outcome, err := r.sweeper.Sweep(ctx, job, sweep.Params{
			SettlementDate: settlementDate,
			WindowDays:     r.cfg.WindowDays,
		})
		if errors.Is(err, sweep.ErrLockNotObtained) {
			r.logger.Info("Skipping sweep held by another instance", zap.String("job", string(job.Name())))
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", job.Name(), err))
			continue
		}
		r.logger.Debug("Sweep finished",
			zap.String("job", string(job.Name())),
			zap.String("status", string(outcome.Status)),
			zap.Int("rows_written", outcome.RowsWritten))
	}

	r.logger.Info("Scheduled settlement sweep completed",
		zap.Int("failed_jobs", len(errs)),
		zap.Duration("duration", time.Since(start)))

	return errors.Join(errs...)
}

// StartPeriodicSweep starts a background goroutine that sweeps on the configured interval
func (r *Reconciler) StartPeriodicSweep() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(r.cfg.Interval)
		defer ticker.Stop()

		r.logger.Info("Started periodic settlement sweep", zap.Duration("interval", r.cfg.Interval))

		if r.cfg.RunOnStartup {
			r.runOnce()
		}

		for {
			select {
			case <-ticker.C:
				r.runOnce()
			case <-r.stopCh:
				r.logger.Info("Stopping periodic settlement sweep")
				return
			}
		}
	}()
}

func (r *Reconciler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.RunTimeout)
	defer cancel()

	go func() {
		select {
		case <-r.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := r.SweepAll(ctx); err != nil {
		r.logger.Error("Periodic settlement sweep failed", zap.Error(err))
	}
}

// Stop stops the periodic sweep and waits for a running sweep to return
func (r *Reconciler) Stop() {
	close(r.stopCh)
	r.wg.Wait()
}
