package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/audit-register-recon/pkg/bizdate"
	"github.com/chainsafe/audit-register-recon/pkg/settlement"
	"github.com/chainsafe/audit-register-recon/pkg/sweep"
)

const serviceName = "SettlementService"

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the settlement Service.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// Trigger wraps the service method with logging
func (ls *logService) Trigger(
	ctx context.Context,
	job settlement.JobName,
	settlementDate time.Time,
) (outcome *sweep.Outcome, err error) {
	start := time.Now()

	ls.logger.Info("Trigger started",
		zap.String("service", serviceName),
		zap.String("method", "Trigger"),
		zap.String("job", string(job)),
		zap.String("settlement_date", bizdate.Format(settlementDate)),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("Trigger failed",
				zap.String("service", serviceName),
				zap.String("method", "Trigger"),
				zap.String("job", string(job)),
				zap.String("settlement_date", bizdate.Format(settlementDate)),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			return
		}
		ls.logger.Info("Trigger completed",
			zap.String("service", serviceName),
			zap.String("method", "Trigger"),
			zap.String("job", string(job)),
			zap.String("settlement_date", bizdate.Format(settlementDate)),
			zap.String("status", string(outcome.Status)),
			zap.Int("failed_days", outcome.Failed),
			zap.Duration("duration", duration),
		)
	}()

	return ls.svc.Trigger(ctx, job, settlementDate)
}
