package settlementstore

import (
	"context"
	"time"

	"github.com/chainsafe/audit-register-recon/pkg/settlement"
)

// Store defines the per-day settlement jobs and read access to their output.
//
// Every job replaces whatever it previously wrote for the date inside one
// transaction that holds a per-job, per-date advisory lock. Re-runs and
// concurrent runs for the same day never duplicate rows, and a failed run
// leaves the previous output in place.
type Store interface {
	// AggregateTransactionTotals groups the raw mirrored transactions of the date into
	// transaction_total rows and returns the number of rows written.
	AggregateTransactionTotals(ctx context.Context, settlementDate time.Time) (int, error)
	// ReconcileAuditRegisters totals the mirrored audit register details whose business
	// date equals the settlement date into ud_ar_reconciliation rows.
	ReconcileAuditRegisters(ctx context.Context, settlementDate time.Time) (int, error)
	// MatchDeviceUsage compares each device's audit register totals for the business date
	// with its raw mirrored transactions and writes one device_usage_match verdict per device.
	MatchDeviceUsage(ctx context.Context, businessDate time.Time) (int, error)
	ListTransactionTotals(ctx context.Context, settlementDate time.Time) ([]settlement.TransactionTotal, error)
	ListReconciliations(ctx context.Context, settlementDate time.Time) ([]settlement.Reconciliation, error)
	ListDeviceUsageMatches(ctx context.Context, businessDate time.Time) ([]settlement.DeviceUsageMatch, error)
}
