package settlementstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/chainsafe/audit-register-recon/pkg/audit"
	"github.com/chainsafe/audit-register-recon/pkg/auditstore"
	"github.com/chainsafe/audit-register-recon/pkg/pgutil"
	mghelper "github.com/chainsafe/audit-register-recon/pkg/pgutil/migrations"
	"github.com/chainsafe/audit-register-recon/pkg/settlement"
)

func setupStore(t *testing.T) (context.Context, *bun.DB, *pgStore) {
	t.Helper()

	ctx := context.Background()
	db, cleanup := pgutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	if err := mghelper.CreateSchema(ctx, db,
		&MirrorRawTxnDao{},
		&TransactionTotalDao{},
		&UdArReconciliationDao{},
		&auditstore.MirrorArDao{},
		&auditstore.MirrorArDetailDao{},
		&auditstore.DeviceSummaryDao{},
		&DeviceUsageMatchDao{},
	); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return ctx, db, NewStore(db)
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func intPtr(v int) *int { return &v }

func rawTxn(date, device, status, amount string) *MirrorRawTxnDao {
	return &MirrorRawTxnDao{
		SettlementDate:   day(date),
		TxnType:          "SAL",
		TxnSubtype:       "001",
		BEID:             intPtr(1),
		DeviceID:         device,
		SettlementStatus: status,
		TxnAmount:        decimal.NewNullDecimal(decimal.RequireFromString(amount)),
	}
}

func insertRaw(t *testing.T, ctx context.Context, db *bun.DB, rows ...*MirrorRawTxnDao) {
	t.Helper()
	for _, r := range rows {
		if _, err := db.NewInsert().Model(r).Exec(ctx); err != nil {
			t.Fatalf("failed to insert raw txn: %v", err)
		}
	}
}

func saveMirror(t *testing.T, ctx context.Context, db *bun.DB, device string, beID int, businessDate string, details ...audit.Entry) {
	t.Helper()

	report := &audit.Report{
		TransactionType:     "SAL001",
		TransactionDateTime: day(businessDate).Add(9 * time.Hour),
		DeviceID:            device,
		BEID:                beID,
		SeqNum:              1,
		BusinessDate:        day(businessDate),
		Entries:             details,
	}
	m := audit.NewMirrorRecord(report, audit.NewReferenceID(), "CLIENT", time.Now().UTC())
	if err := auditstore.NewStore(db).SaveMirror(ctx, m); err != nil {
		t.Fatalf("failed to save mirror record: %v", err)
	}
}

func fare(count int64, value string) audit.Entry {
	return audit.Entry{
		ARTypeIdentifier: "FARE",
		CardMediaTypeID:  "2",
		Count:            count,
		Value:            decimal.NewNullDecimal(decimal.RequireFromString(value)),
	}
}

func TestPGStore_AggregateTransactionTotals_SplitsSettledAndUnsettled(t *testing.T) {
	ctx, db, store := setupStore(t)

	insertRaw(t, ctx, db,
		rawTxn("2025-10-15", "DEV-1", settlement.SettledStatus, "10.00"),
		rawTxn("2025-10-15", "DEV-1", settlement.SettledStatus, "5.50"),
		rawTxn("2025-10-15", "DEV-1", "PENDING", "3.00"),
		rawTxn("2025-10-15", "DEV-1", "", "2.00"), // NULL status counts as unsettled
		rawTxn("2025-10-15", "DEV-2", settlement.SettledStatus, "1.00"),
		rawTxn("2025-10-14", "DEV-1", settlement.SettledStatus, "99.00"),
	)

	n, err := store.AggregateTransactionTotals(ctx, day("2025-10-15"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	totals, err := store.ListTransactionTotals(ctx, day("2025-10-15"))
	require.NoError(t, err)
	require.Len(t, totals, 2)

	dev1 := totals[0]
	assert.Equal(t, "DEV-1", dev1.DeviceID)
	assert.Equal(t, int64(2), dev1.SettledCount)
	assert.True(t, dev1.SettledAmount.Equal(decimal.RequireFromString("15.50")), "settled amount %s", dev1.SettledAmount)
	assert.Equal(t, int64(2), dev1.UnsettledCount)
	assert.True(t, dev1.UnsettledAmount.Equal(decimal.RequireFromString("5.00")), "unsettled amount %s", dev1.UnsettledAmount)
	require.NotNil(t, dev1.BEID)
	assert.Equal(t, 1, *dev1.BEID)

	dev2 := totals[1]
	assert.Equal(t, "DEV-2", dev2.DeviceID)
	assert.Equal(t, int64(1), dev2.SettledCount)
	assert.Equal(t, int64(0), dev2.UnsettledCount)
}

func TestPGStore_AggregateTransactionTotals_EmptyDateSucceeds(t *testing.T) {
	ctx, db, store := setupStore(t)

	n, err := store.AggregateTransactionTotals(ctx, day("2025-10-15"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	pgutil.AssertRowCount(t, db, "transaction_total", 0)
}

func TestPGStore_AggregateTransactionTotals_RerunReplacesRows(t *testing.T) {
	ctx, db, store := setupStore(t)

	insertRaw(t, ctx, db, rawTxn("2025-10-15", "DEV-1", settlement.SettledStatus, "10.00"))

	_, err := store.AggregateTransactionTotals(ctx, day("2025-10-15"))
	require.NoError(t, err)

	insertRaw(t, ctx, db, rawTxn("2025-10-15", "DEV-1", settlement.SettledStatus, "2.00"))

	n, err := store.AggregateTransactionTotals(ctx, day("2025-10-15"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	pgutil.AssertRowCount(t, db, "transaction_total", 1)

	totals, err := store.ListTransactionTotals(ctx, day("2025-10-15"))
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, int64(2), totals[0].SettledCount)
	assert.True(t, totals[0].SettledAmount.Equal(decimal.RequireFromString("12.00")))
}

func TestPGStore_AggregateTransactionTotals_ConcurrentRunsDoNotDuplicate(t *testing.T) {
	ctx, db, store := setupStore(t)

	insertRaw(t, ctx, db,
		rawTxn("2025-10-15", "DEV-1", settlement.SettledStatus, "10.00"),
		rawTxn("2025-10-15", "DEV-2", settlement.SettledStatus, "4.00"),
		rawTxn("2025-10-15", "DEV-3", "PENDING", "1.00"),
	)

	const workers = 4
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.AggregateTransactionTotals(ctx, day("2025-10-15"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	pgutil.AssertRowCount(t, db, "transaction_total", 3)
}

func TestPGStore_ReconcileAuditRegisters_ConcurrentRunsDoNotDuplicate(t *testing.T) {
	ctx, db, store := setupStore(t)

	saveMirror(t, ctx, db, "DEV-1", 1, "2025-10-15", fare(10, "10.00"))
	saveMirror(t, ctx, db, "DEV-2", 2, "2025-10-15", fare(1, "1.00"))

	const workers = 4
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.ReconcileAuditRegisters(ctx, day("2025-10-15"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	pgutil.AssertRowCount(t, db, "ud_ar_reconciliation", 2)
}

func TestPGStore_ReconcileAuditRegisters_GroupsByEntityAndRegister(t *testing.T) {
	ctx, db, store := setupStore(t)

	saveMirror(t, ctx, db, "DEV-1", 1, "2025-10-15", fare(10, "1000.50"), fare(15, "1500.00"))
	saveMirror(t, ctx, db, "DEV-2", 1, "2025-10-15", fare(5, "50.00"))
	saveMirror(t, ctx, db, "DEV-3", 2, "2025-10-15", fare(1, "1.00"))
	saveMirror(t, ctx, db, "DEV-1", 1, "2025-10-14", fare(100, "100.00"))

	n, err := store.ReconcileAuditRegisters(ctx, day("2025-10-15"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	results, err := store.ListReconciliations(ctx, day("2025-10-15"))
	require.NoError(t, err)
	require.Len(t, results, 2)

	be1 := results[0]
	assert.Equal(t, 1, be1.BEID)
	assert.Equal(t, "FARE", be1.ARTypeIdentifier)
	assert.Equal(t, "2", be1.CardMediaTypeID)
	assert.Equal(t, 2, be1.TransactionCount) // DEV-1 and DEV-2 headers; details are not counted
	assert.Equal(t, int64(30), be1.TotalCount)
	assert.True(t, be1.TotalValue.Equal(decimal.RequireFromString("2550.50")), "total value %s", be1.TotalValue)
	assert.Equal(t, 2, be1.DeviceCount)
	assert.Equal(t, settlement.ReconciliationStatusSuccess, be1.Status)
	assert.True(t, be1.SettlementDate.Equal(day("2025-10-15")))

	assert.Equal(t, 2, results[1].BEID)
	assert.Equal(t, 1, results[1].DeviceCount)
}

func TestPGStore_ReconcileAuditRegisters_EmptyDateSucceeds(t *testing.T) {
	ctx, db, store := setupStore(t)

	n, err := store.ReconcileAuditRegisters(ctx, day("2025-10-15"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	pgutil.AssertRowCount(t, db, "ud_ar_reconciliation", 0)
}

func TestPGStore_ReconcileAuditRegisters_RerunIsIdempotent(t *testing.T) {
	ctx, db, store := setupStore(t)

	saveMirror(t, ctx, db, "DEV-1", 1, "2025-10-15", fare(10, "10.00"))

	for i := 0; i < 3; i++ {
		_, err := store.ReconcileAuditRegisters(ctx, day("2025-10-15"))
		require.NoError(t, err)
	}
	pgutil.AssertRowCount(t, db, "ud_ar_reconciliation", 1)
}

func TestPGStore_ReconcileAuditRegisters_CanceledContext(t *testing.T) {
	ctx, _, store := setupStore(t)

	canceled, cancel := context.WithCancel(ctx)
	cancel()

	_, err := store.ReconcileAuditRegisters(canceled, day("2025-10-15"))
	require.Error(t, err)
}

func insertSummary(t *testing.T, ctx context.Context, db *bun.DB, device string, beID int, businessDate, arType string, count int64, value string) {
	t.Helper()
	now := time.Now().UTC()
	row := &auditstore.DeviceSummaryDao{
		DeviceID:         device,
		BEID:             beID,
		BusinessDate:     day(businessDate),
		ARTypeIdentifier: arType,
		CardMediaTypeID:  "2",
		TotalCount:       count,
		TotalValue:       decimal.RequireFromString(value),
		LastARSeqNum:     1,
		CreatedTime:      now,
		LastUpdatedTime:  now,
	}
	if _, err := db.NewInsert().Model(row).Exec(ctx); err != nil {
		t.Fatalf("failed to insert summary: %v", err)
	}
}

func usageTxn(businessDate, device string, beID int, amount string) *MirrorRawTxnDao {
	r := rawTxn(businessDate, device, settlement.SettledStatus, amount)
	r.BEID = intPtr(beID)
	bd := day(businessDate)
	r.BEBusinessDate = &bd
	return r
}

func TestPGStore_MatchDeviceUsage_Matched(t *testing.T) {
	ctx, db, store := setupStore(t)

	insertSummary(t, ctx, db, "DEV-1", 1, "2025-10-15", "FARE", 2, "300.00")
	insertSummary(t, ctx, db, "DEV-1", 1, "2025-10-15", "CHARGE", 1, "1000.00")
	insertRaw(t, ctx, db,
		usageTxn("2025-10-15", "DEV-1", 1, "150.00"),
		usageTxn("2025-10-15", "DEV-1", 1, "150.00"),
		usageTxn("2025-10-15", "DEV-1", 1, "1000.00"),
	)

	n, err := store.MatchDeviceUsage(ctx, day("2025-10-15"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	matches, err := store.ListDeviceUsageMatches(ctx, day("2025-10-15"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Equal(t, settlement.MatchStatusMatched, m.Status)
	assert.Equal(t, "DEV-1", m.DeviceID)
	assert.Equal(t, 1, m.BEID)
	assert.Equal(t, int64(3), m.AuditCount)
	assert.True(t, m.AuditValue.Equal(decimal.RequireFromString("1300.00")), "audit value %s", m.AuditValue)
	require.NotNil(t, m.UsageCount)
	assert.Equal(t, int64(3), *m.UsageCount)
	assert.True(t, m.UsageValue.Valid)
	assert.True(t, m.BusinessDate.Equal(day("2025-10-15")))
}

func TestPGStore_MatchDeviceUsage_Mismatched(t *testing.T) {
	ctx, db, store := setupStore(t)

	insertSummary(t, ctx, db, "DEV-1", 1, "2025-10-15", "FARE", 2, "300.00")
	insertSummary(t, ctx, db, "DEV-2", 1, "2025-10-15", "FARE", 1, "50.00")
	insertRaw(t, ctx, db,
		// count agrees, value does not
		usageTxn("2025-10-15", "DEV-1", 1, "150.00"),
		usageTxn("2025-10-15", "DEV-1", 1, "100.00"),
		// value agrees, count does not
		usageTxn("2025-10-15", "DEV-2", 1, "25.00"),
		usageTxn("2025-10-15", "DEV-2", 1, "25.00"),
	)

	n, err := store.MatchDeviceUsage(ctx, day("2025-10-15"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	matches, err := store.ListDeviceUsageMatches(ctx, day("2025-10-15"))
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.Equal(t, settlement.MatchStatusMismatched, m.Status, m.DeviceID)
	}
	require.NotNil(t, matches[0].UsageCount)
	assert.True(t, matches[0].UsageValue.Decimal.Equal(decimal.RequireFromString("250.00")))
	require.NotNil(t, matches[1].UsageCount)
	assert.Equal(t, int64(2), *matches[1].UsageCount)
}

func TestPGStore_MatchDeviceUsage_MissingUsageData(t *testing.T) {
	ctx, db, store := setupStore(t)

	insertSummary(t, ctx, db, "DEV-1", 1, "2025-10-15", "FARE", 2, "300.00")
	// same device under another entity and another day must not count as usage
	insertRaw(t, ctx, db,
		usageTxn("2025-10-15", "DEV-1", 2, "300.00"),
		usageTxn("2025-10-14", "DEV-1", 1, "300.00"),
	)

	n, err := store.MatchDeviceUsage(ctx, day("2025-10-15"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	matches, err := store.ListDeviceUsageMatches(ctx, day("2025-10-15"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, settlement.MatchStatusMissingUsageData, matches[0].Status)
	assert.Nil(t, matches[0].UsageCount)
	assert.False(t, matches[0].UsageValue.Valid)
}

func TestPGStore_MatchDeviceUsage_RerunReplacesVerdicts(t *testing.T) {
	ctx, db, store := setupStore(t)

	insertSummary(t, ctx, db, "DEV-1", 1, "2025-10-15", "FARE", 1, "150.00")

	_, err := store.MatchDeviceUsage(ctx, day("2025-10-15"))
	require.NoError(t, err)

	insertRaw(t, ctx, db, usageTxn("2025-10-15", "DEV-1", 1, "150.00"))

	n, err := store.MatchDeviceUsage(ctx, day("2025-10-15"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	pgutil.AssertRowCount(t, db, "device_usage_match", 1)

	matches, err := store.ListDeviceUsageMatches(ctx, day("2025-10-15"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, settlement.MatchStatusMatched, matches[0].Status)
}

func TestPGStore_MatchDeviceUsage_EmptyDateSucceeds(t *testing.T) {
	ctx, db, store := setupStore(t)

	n, err := store.MatchDeviceUsage(ctx, day("2025-10-15"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	pgutil.AssertRowCount(t, db, "device_usage_match", 0)
}
