package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chainsafe/audit-register-recon/pkg/settlement"
	"github.com/chainsafe/audit-register-recon/pkg/sweep"
)

// ErrUnknownJob is returned when a trigger names a job that is not registered
var ErrUnknownJob = errors.New("unknown settlement job")

// Store is the narrow data-access interface backing the settlement jobs
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	AggregateTransactionTotals(ctx context.Context, settlementDate time.Time) (int, error)
	ReconcileAuditRegisters(ctx context.Context, settlementDate time.Time) (int, error)
	MatchDeviceUsage(ctx context.Context, businessDate time.Time) (int, error)
}

// Sweeper runs one job over the window ending at a settlement date
type Sweeper interface {
	Sweep(ctx context.Context, job settlement.Job, p sweep.Params) (*sweep.Outcome, error)
}

// Service defines the settlement batch operations
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	// Trigger sweeps the named job backwards from settlementDate and waits for it to finish
	Trigger(ctx context.Context, job settlement.JobName, settlementDate time.Time) (*sweep.Outcome, error)
}

// NewJobs builds the settlement jobs on top of the store
func NewJobs(store Store) []settlement.Job {
	return []settlement.Job{
		settlement.JobFunc{JobName: settlement.JobTransactionTotal, Fn: store.AggregateTransactionTotals},
		settlement.JobFunc{JobName: settlement.JobUdArReconciliation, Fn: store.ReconcileAuditRegisters},
		settlement.JobFunc{JobName: settlement.JobDeviceUsageMatch, Fn: store.MatchDeviceUsage},
	}
}

type settlementService struct {
	sweeper    Sweeper
	jobs       map[settlement.JobName]settlement.Job
	windowDays int
}

// NewService creates a new settlement service over the given jobs
func NewService(sweeper Sweeper, jobs []settlement.Job, windowDays int) Service {
	byName := make(map[settlement.JobName]settlement.Job, len(jobs))
	for _, j := range jobs {
		byName[j.Name()] = j
	}
	return &settlementService{
		sweeper:    sweeper,
		jobs:       byName,
		windowDays: windowDays,
	}
}

func (s *settlementService) Trigger(ctx context.Context, name settlement.JobName, settlementDate time.Time) (*sweep.Outcome, error) {
	job, ok := s.jobs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return s.sweeper.Sweep(ctx, job, sweep.Params{
		SettlementDate: settlementDate,
		WindowDays:     s.windowDays,
	})
}
