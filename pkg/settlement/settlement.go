package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainsafe/audit-register-recon/pkg/bizdate"
)

// JobName identifies a per-day settlement job
type JobName string

const (
	JobTransactionTotal   JobName = "transactionTotal"
	JobUdArReconciliation JobName = "udArReconciliation"
	JobDeviceUsageMatch   JobName = "deviceUsageMatch"
)

// Jobs lists every settlement job in the order a scheduled sweep runs them
var Jobs = []JobName{JobTransactionTotal, JobUdArReconciliation, JobDeviceUsageMatch}

// Title is the human readable job name used in trigger messages
func (n JobName) Title() string {
	switch n {
	case JobTransactionTotal:
		return "Transaction total summary"
	case JobUdArReconciliation:
		return "UD AR reconciliation"
	case JobDeviceUsageMatch:
		return "Device usage match"
	default:
		return string(n)
	}
}

// Status is the outcome field of a trigger response
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusError   Status = "ERROR"
)

// ReconciliationStatusSuccess is written on every reconciliation row. Per-device comparison is done by JobDeviceUsageMatch.
const ReconciliationStatusSuccess = "SUCCESS"

// SettledStatus marks a raw mirrored transaction as settled
const SettledStatus = "SETTLED"

// ErrInvalidSettlementDate is returned when a settlement date is not YYYY-MM-DD
var ErrInvalidSettlementDate = errors.New("invalid settlement date")

// ParseSettlementDate parses s as YYYY-MM-DD. An empty string means today.
func ParseSettlementDate(s string, today time.Time) (time.Time, error) {
	if s == "" {
		return bizdate.Of(today), nil
	}
	d, err := bizdate.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q must be formatted as %s", ErrInvalidSettlementDate, s, bizdate.Layout)
	}
	return d, nil
}

// Job processes a single settlement day and reports how many rows it wrote.
// Zero rows is a successful run.
type Job interface {
	Name() JobName
	Run(ctx context.Context, settlementDate time.Time) (int, error)
}

// JobFunc adapts a function to the Job interface
type JobFunc struct {
	JobName JobName
	Fn      func(ctx context.Context, settlementDate time.Time) (int, error)
}

func (j JobFunc) Name() JobName { return j.JobName }

func (j JobFunc) Run(ctx context.Context, settlementDate time.Time) (int, error) {
	return j.Fn(ctx, settlementDate)
}

// TransactionTotal is one aggregated group of raw mirrored transactions for a settlement date
type TransactionTotal struct {
	SettlementDate     time.Time
	TxnType            string
	TxnSubtype         string
	BEID               *int
	DebtorBEID         *int
	CreditorBEID       *int
	IssuerID           string
	DeviceID           string
	BEBusinessDate     *time.Time
	ProductCode        string
	ApportionmentValue decimal.NullDecimal
	SettledCount       int64
	SettledAmount      decimal.Decimal
	UnsettledCount     int64
	UnsettledAmount    decimal.Decimal
	CreatedAt          time.Time
}

// Reconciliation is one audit register total per business entity, register and media type
type Reconciliation struct {
	BEID             int
	SettlementDate   time.Time
	ARTypeIdentifier string
	CardMediaTypeID  string
	TransactionCount int
	TotalCount       int64
	TotalValue       decimal.Decimal
	DeviceCount      int
	Status           string
	CreatedAt        time.Time
	LastUpdateAt     time.Time
}

// MatchStatus is the verdict of comparing a device's audit totals with its usage
type MatchStatus string

const (
	MatchStatusMatched          MatchStatus = "MATCHED"
	MatchStatusMismatched       MatchStatus = "MISMATCHED"
	MatchStatusMissingUsageData MatchStatus = "MISSING_USAGE_DATA"
)

// ClassifyUsage compares audit-declared totals with mirrored usage totals.
// usageCount is nil when the device has no mirrored transaction for the date.
func ClassifyUsage(auditCount int64, auditValue decimal.Decimal, usageCount *int64, usageValue decimal.Decimal) MatchStatus {
	if usageCount == nil {
		return MatchStatusMissingUsageData
	}
	if auditCount == *usageCount && auditValue.Equal(usageValue) {
		return MatchStatusMatched
	}
	return MatchStatusMismatched
}

// DeviceUsageMatch compares one device's audit register totals for a business date
// with the raw mirrored transactions of that device and date
type DeviceUsageMatch struct {
	DeviceID     string
	BEID         int
	BusinessDate time.Time
	AuditCount   int64
	AuditValue   decimal.Decimal
	UsageCount   *int64
	UsageValue   decimal.NullDecimal
	Status       MatchStatus
	CreatedAt    time.Time
}
