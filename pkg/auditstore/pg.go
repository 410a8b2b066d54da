package auditstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/chainsafe/audit-register-recon/pkg/audit"
)

const summaryConflictTarget = "CONFLICT (device_id, be_id, business_date, ar_type_identifier, card_media_type_id) DO UPDATE"

type pgStore struct {
	db bun.IDB
}

// NewStore creates a new postgres implementation of the audit store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &pgStore{db: tx})
	})
}

func (s *pgStore) MaxSeqNum(ctx context.Context, deviceID string, beID int, businessDate time.Time) (int64, bool, error) {
	var maxSeq sql.NullInt64
	err := s.db.NewSelect().
		Model((*DeviceSummaryDao)(nil)).
		ColumnExpr("MAX(last_ar_seq_num)").
		Where("device_id = ?", deviceID).
		Where("be_id = ?", beID).
		Where("business_date = ?", businessDate).
		Scan(ctx, &maxSeq)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get max sequence number: %w", err)
	}
	return maxSeq.Int64, maxSeq.Valid, nil
}

// AddToSummary is a single INSERT ... ON CONFLICT DO UPDATE so that concurrent
// reports for the same key add to each other instead of racing on the insert.
func (s *pgStore) AddToSummary(ctx context.Context, delta audit.SummaryDelta) (*audit.Summary, error) {
	dao := toDeviceSummaryDao(delta)

	_, err := s.db.NewInsert().
		Model(dao).
		On(summaryConflictTarget).
		Set("total_count = ?TableAlias.total_count + EXCLUDED.total_count").
		Set("total_value = ?TableAlias.total_value + EXCLUDED.total_value").
		Set("last_ar_seq_num = EXCLUDED.last_ar_seq_num").
		Set("last_updated_time = EXCLUDED.last_updated_time").
		Returning("*, (xmax = 0) AS inserted").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to add to device summary: %w", err)
	}

	return toSummary(dao), nil
}

func (s *pgStore) GetSummary(ctx context.Context, key audit.SummaryKey) (*audit.Summary, error) {
	dao := new(DeviceSummaryDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("device_id = ?", key.DeviceID).
		Where("be_id = ?", key.BEID).
		Where("business_date = ?", key.BusinessDate).
		Where("ar_type_identifier = ?", key.ARTypeIdentifier).
		Where("card_media_type_id = ?", key.CardMediaTypeID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("failed to get device summary: %w", err)
	}
	return toSummary(dao), nil
}

func (s *pgStore) SaveMirror(ctx context.Context, m *audit.MirrorRecord) error {
	header, details := toMirrorDaos(m)

	if _, err := s.db.NewInsert().Model(header).Exec(ctx); err != nil {
		return fmt.Errorf("failed to save mirror record: %w", err)
	}
	if len(details) == 0 {
		return nil
	}
	if _, err := s.db.NewInsert().Model(&details).Exec(ctx); err != nil {
		return fmt.Errorf("failed to save mirror details: %w", err)
	}
	return nil
}

func (s *pgStore) SaveException(ctx context.Context, x *audit.ExceptionRecord) error {
	header, details := toExceptionDaos(x)

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(header).Exec(ctx); err != nil {
			return fmt.Errorf("failed to save exception record: %w", err)
		}
		if len(details) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&details).Exec(ctx); err != nil {
			return fmt.Errorf("failed to save exception details: %w", err)
		}
		return nil
	})
}
