package auditstore

import (
	"context"
	"errors"
	"time"

	"github.com/chainsafe/audit-register-recon/pkg/audit"
)

// ErrSummaryNotFound is returned when no summary row matches a key.
var ErrSummaryNotFound = errors.New("summary not found")

// Tx is the part of the store used inside a single report's unit of work
//
//go:generate mockery --name Tx --output mocks --outpkg mocks --filename mock_tx.go --with-expecter
type Tx interface {
	// AddToSummary adds the delta to the running totals of its key, creating the
	// row on first use, and returns the row as stored after the change.
	AddToSummary(ctx context.Context, delta audit.SummaryDelta) (*audit.Summary, error)
	SaveMirror(ctx context.Context, m *audit.MirrorRecord) error
}

// Store defines device summary and mirror record persistence
type Store interface {
	Tx
	// MaxSeqNum returns the highest sequence number recorded for the device, business
	// entity and business date. found is false when no summary exists yet.
	MaxSeqNum(ctx context.Context, deviceID string, beID int, businessDate time.Time) (seq int64, found bool, err error)
	GetSummary(ctx context.Context, key audit.SummaryKey) (*audit.Summary, error)
	SaveException(ctx context.Context, x *audit.ExceptionRecord) error
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
