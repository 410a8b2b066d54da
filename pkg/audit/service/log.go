package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/audit-register-recon/pkg/audit"
)

const serviceName = "AuditRegisterService"

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the audit register Service.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// Process wraps the service method with logging
func (ls *logService) Process(
	ctx context.Context,
	clientRequestID string,
	txns []audit.Txn,
) (resp *audit.Response, err error) {
	start := time.Now()

	ls.logger.Info("Process started",
		zap.String("service", serviceName),
		zap.String("method", "Process"),
		zap.String("client_request_id", clientRequestID),
		zap.Int("transactions", len(txns)),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("Process failed",
				zap.String("service", serviceName),
				zap.String("method", "Process"),
				zap.String("client_request_id", clientRequestID),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			return
		}
		ls.logger.Info("Process completed",
			zap.String("service", serviceName),
			zap.String("method", "Process"),
			zap.String("client_request_id", clientRequestID),
			zap.String("response_code", string(resp.ResponseCode)),
			zap.Int("errors", len(resp.Errors)),
			zap.Duration("duration", duration),
		)
	}()

	return ls.svc.Process(ctx, clientRequestID, txns)
}
