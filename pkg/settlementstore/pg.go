package settlementstore

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/chainsafe/audit-register-recon/pkg/bizdate"
	"github.com/chainsafe/audit-register-recon/pkg/settlement"
)

const transactionTotalGroupBy = "mrt.device_id, mrt.txn_type, mrt.txn_subtype, mrt.be_business_date, mrt.settlement_date, " +
	"mrt.be_id, mrt.debtor_be_id, mrt.creditor_be_id, mrt.issuer_id, mrt.product_code, mrt.apportionment_value"

type pgStore struct {
	db bun.IDB
}

// NewStore creates a new postgres implementation of the settlement store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

// lockDay serializes runs of one job for one date. The lock is released when tx ends.
func lockDay(ctx context.Context, tx bun.Tx, job settlement.JobName, date time.Time) error {
	key := string(job) + ":" + bizdate.Format(date)
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext(?))", key); err != nil {
		return fmt.Errorf("failed to lock %s: %w", key, err)
	}
	return nil
}

func (s *pgStore) AggregateTransactionTotals(ctx context.Context, settlementDate time.Time) (int, error) {
	var written int
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockDay(ctx, tx, settlement.JobTransactionTotal, settlementDate); err != nil {
			return err
		}

		var rows []TransactionTotalDao
		err := tx.NewSelect().
			Model((*MirrorRawTxnDao)(nil)).
			ColumnExpr(transactionTotalGroupBy).
			ColumnExpr("SUM(CASE WHEN mrt.settlement_status = ? THEN 1 ELSE 0 END) AS ud_settle_count", settlement.SettledStatus).
			ColumnExpr("SUM(CASE WHEN mrt.settlement_status = ? THEN COALESCE(mrt.txn_amount, 0) ELSE 0 END) AS ud_settle_amount", settlement.SettledStatus).
			ColumnExpr("SUM(CASE WHEN mrt.settlement_status IS DISTINCT FROM ? THEN 1 ELSE 0 END) AS ud_not_settle_count", settlement.SettledStatus).
			ColumnExpr("SUM(CASE WHEN mrt.settlement_status IS DISTINCT FROM ? THEN COALESCE(mrt.txn_amount, 0) ELSE 0 END) AS ud_not_settle_amount", settlement.SettledStatus).
			Where("mrt.settlement_date = ?", settlementDate).
			GroupExpr(transactionTotalGroupBy).
			Scan(ctx, &rows)
		if err != nil {
			return fmt.Errorf("failed to aggregate raw transactions: %w", err)
		}

		if _, err := tx.NewDelete().
			Model((*TransactionTotalDao)(nil)).
			Where("settlement_date = ?", settlementDate).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to clear transaction totals: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		now := time.Now().UTC()
		for i := range rows {
			rows[i].CreatedTime = now
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert transaction totals: %w", err)
		}
		written = len(rows)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

func (s *pgStore) ReconcileAuditRegisters(ctx context.Context, settlementDate time.Time) (int, error) {
	var written int
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockDay(ctx, tx, settlement.JobUdArReconciliation, settlementDate); err != nil {
			return err
		}

		var rows []UdArReconciliationDao
		err := tx.NewSelect().
			TableExpr("mirror_ar AS ma").
			Join("JOIN mirror_ar_detail AS mad ON mad.reference_id = ma.reference_id").
			ColumnExpr("ma.be_id").
			ColumnExpr("mad.ar_id AS ar_type_identifier").
			ColumnExpr("CAST(mad.id_type AS varchar) AS card_media_type_id").
			ColumnExpr("COUNT(DISTINCT ma.reference_id) AS transaction_count").
			ColumnExpr("COALESCE(SUM(mad.count), 0) AS total_count").
			ColumnExpr("COALESCE(SUM(mad.value), 0) AS total_value").
			ColumnExpr("COUNT(DISTINCT ma.device_id) AS device_count").
			Where("ma.business_date = ?", settlementDate).
			GroupExpr("ma.be_id, ma.business_date, mad.ar_id, mad.id_type").
			Scan(ctx, &rows)
		if err != nil {
			return fmt.Errorf("failed to total audit register details: %w", err)
		}

		if _, err := tx.NewDelete().
			Model((*UdArReconciliationDao)(nil)).
			Where("settlement_date = ?", settlementDate).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to clear reconciliation results: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		now := time.Now().UTC()
		for i := range rows {
			rows[i].SettlementDate = settlementDate
			rows[i].ReconciliationStatus = settlement.ReconciliationStatusSuccess
			rows[i].CreatedTime = now
			rows[i].LastUpdatedTime = now
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert reconciliation results: %w", err)
		}
		written = len(rows)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

type usageComparison struct {
	DeviceID   string              `bun:"device_id"`
	BEID       int                 `bun:"be_id"`
	AuditCount int64               `bun:"audit_count"`
	AuditValue decimal.Decimal     `bun:"audit_value"`
	UsageCount *int64              `bun:"usage_count"`
	UsageValue decimal.NullDecimal `bun:"usage_value"`
}

func (s *pgStore) MatchDeviceUsage(ctx context.Context, businessDate time.Time) (int, error) {
	var written int
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockDay(ctx, tx, settlement.JobDeviceUsageMatch, businessDate); err != nil {
			return err
		}

		auditTotals := tx.NewSelect().
			TableExpr("device_ar_summary AS das").
			ColumnExpr("das.device_id, das.be_id").
			ColumnExpr("SUM(das.total_count) AS audit_count").
			ColumnExpr("SUM(das.total_value) AS audit_value").
			Where("das.business_date = ?", businessDate).
			GroupExpr("das.device_id, das.be_id")

		usageTotals := tx.NewSelect().
			Model((*MirrorRawTxnDao)(nil)).
			ColumnExpr("mrt.device_id, mrt.be_id").
			ColumnExpr("COUNT(*) AS usage_count").
			ColumnExpr("COALESCE(SUM(mrt.txn_amount), 0) AS usage_value").
			Where("mrt.be_business_date = ?", businessDate).
			GroupExpr("mrt.device_id, mrt.be_id")

		var compared []usageComparison
		err := tx.NewSelect().
			With("audit_totals", auditTotals).
			With("usage_totals", usageTotals).
			TableExpr("audit_totals AS a").
			Join("LEFT JOIN usage_totals AS u ON u.device_id = a.device_id AND u.be_id = a.be_id").
			ColumnExpr("a.device_id, a.be_id, a.audit_count, a.audit_value, u.usage_count, u.usage_value").
			OrderExpr("a.device_id ASC, a.be_id ASC").
			Scan(ctx, &compared)
		if err != nil {
			return fmt.Errorf("failed to compare device usage: %w", err)
		}

		if _, err := tx.NewDelete().
			Model((*DeviceUsageMatchDao)(nil)).
			Where("business_date = ?", businessDate).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to clear device usage matches: %w", err)
		}

		if len(compared) == 0 {
			return nil
		}

		now := time.Now().UTC()
		rows := make([]DeviceUsageMatchDao, 0, len(compared))
		for _, c := range compared {
			status := settlement.ClassifyUsage(c.AuditCount, c.AuditValue, c.UsageCount, c.UsageValue.Decimal)
			rows = append(rows, DeviceUsageMatchDao{
				DeviceID:     c.DeviceID,
				BEID:         c.BEID,
				BusinessDate: businessDate,
				AuditCount:   c.AuditCount,
				AuditValue:   c.AuditValue,
				UsageCount:   c.UsageCount,
				UsageValue:   c.UsageValue,
				MatchStatus:  string(status),
				CreatedTime:  now,
			})
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert device usage matches: %w", err)
		}
		written = len(rows)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

func (s *pgStore) ListTransactionTotals(ctx context.Context, settlementDate time.Time) ([]settlement.TransactionTotal, error) {
	var daos []TransactionTotalDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("settlement_date = ?", settlementDate).
		OrderExpr("device_id ASC, txn_type ASC, txn_subtype ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction totals: %w", err)
	}

	totals := make([]settlement.TransactionTotal, 0, len(daos))
	for i := range daos {
		totals = append(totals, toTransactionTotal(&daos[i]))
	}
	return totals, nil
}

func (s *pgStore) ListReconciliations(ctx context.Context, settlementDate time.Time) ([]settlement.Reconciliation, error) {
	var daos []UdArReconciliationDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("settlement_date = ?", settlementDate).
		OrderExpr("be_id ASC, ar_type_identifier ASC, card_media_type_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliation results: %w", err)
	}

	results := make([]settlement.Reconciliation, 0, len(daos))
	for i := range daos {
		results = append(results, toReconciliation(&daos[i]))
	}
	return results, nil
}

func (s *pgStore) ListDeviceUsageMatches(ctx context.Context, businessDate time.Time) ([]settlement.DeviceUsageMatch, error) {
	var daos []DeviceUsageMatchDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("business_date = ?", businessDate).
		OrderExpr("device_id ASC, be_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list device usage matches: %w", err)
	}

	matches := make([]settlement.DeviceUsageMatch, 0, len(daos))
	for i := range daos {
		matches = append(matches, toDeviceUsageMatch(&daos[i]))
	}
	return matches, nil
}
