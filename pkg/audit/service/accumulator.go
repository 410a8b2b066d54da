package service

import (
	"context"
	"time"

	"github.com/chainsafe/audit-register-recon/internal/metrics"
	"github.com/chainsafe/audit-register-recon/pkg/audit"
	"github.com/chainsafe/audit-register-recon/pkg/auditstore"
)

// ApplyEntry adds one entry to the running summary of key and returns the stored row.
//
// Accumulation is unconditional: a restarted device keeps adding to the same
// business date row because summaries are keyed by date, not by device session.
// A missing value adds zero.
func ApplyEntry(
	ctx context.Context,
	tx auditstore.Tx,
	key audit.SummaryKey,
	seqNum int64,
	entry audit.Entry,
	now time.Time,
) (*audit.Summary, error) {
	summary, err := tx.AddToSummary(ctx, audit.SummaryDelta{
		Key:       key,
		Count:     entry.Count,
		Value:     entry.Amount(),
		SeqNum:    seqNum,
		AppliedAt: now,
	})
	if err != nil {
		return nil, err
	}

	if summary.Created {
		metrics.SummaryEntries.WithLabelValues("create").Inc()
	} else {
		metrics.SummaryEntries.WithLabelValues("update").Inc()
	}
	return summary, nil
}
