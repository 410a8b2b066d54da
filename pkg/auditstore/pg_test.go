package auditstore

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/chainsafe/audit-register-recon/pkg/audit"
	"github.com/chainsafe/audit-register-recon/pkg/pgutil"
	mghelper "github.com/chainsafe/audit-register-recon/pkg/pgutil/migrations"
)

func setupStore(t *testing.T) (context.Context, *bun.DB, *pgStore) {
	t.Helper()

	ctx := context.Background()
	db, cleanup := pgutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	if err := mghelper.CreateSchema(ctx, db,
		&DeviceSummaryDao{},
		&MirrorArDao{},
		&MirrorArDetailDao{},
		&MirrorArExDao{},
		&MirrorArDetailExDao{},
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

func delta(device string, businessDate string, count int64, value string, seq int64) audit.SummaryDelta {
	return audit.SummaryDelta{
		Key: audit.SummaryKey{
			DeviceID:         device,
			BEID:             1,
			BusinessDate:     day(businessDate),
			ARTypeIdentifier: "FARE",
			CardMediaTypeID:  "",
		},
		Count:     count,
		Value:     decimal.RequireFromString(value),
		SeqNum:    seq,
		AppliedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func assertDecimalEqual(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("decimal mismatch: got %s want %s", got.String(), want)
	}
}

func TestPGStore_AddToSummary_Accumulates(t *testing.T) {
	ctx, _, store := setupStore(t)

	first, err := store.AddToSummary(ctx, delta("DEV-1", "2025-10-15", 10, "1000.50", 1))
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, int64(10), first.TotalCount)
	assertDecimalEqual(t, first.TotalValue, "1000.50")

	second, err := store.AddToSummary(ctx, delta("DEV-1", "2025-10-15", 15, "1500.00", 2))
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, int64(25), second.TotalCount)
	assertDecimalEqual(t, second.TotalValue, "2500.50")
	assert.Equal(t, int64(2), second.LastSeqNum)
	assert.Equal(t, day("2025-10-15"), second.Key.BusinessDate)
}

func TestPGStore_AddToSummary_RestartDoesNotReset(t *testing.T) {
	ctx, _, store := setupStore(t)

	_, err := store.AddToSummary(ctx, delta("DEV-1", "2025-10-15", 100, "50.00", 500))
	require.NoError(t, err)

	// sequence number went backwards after a reboot
	got, err := store.AddToSummary(ctx, delta("DEV-1", "2025-10-15", 1, "0.50", 1))
	require.NoError(t, err)
	assert.Equal(t, int64(101), got.TotalCount)
	assertDecimalEqual(t, got.TotalValue, "50.50")
	assert.Equal(t, int64(1), got.LastSeqNum)

	maxSeq, found, err := store.MaxSeqNum(ctx, "DEV-1", 1, day("2025-10-15"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(1), maxSeq)
}

func TestPGStore_AddToSummary_IndependentKeys(t *testing.T) {
	ctx, _, store := setupStore(t)

	_, err := store.AddToSummary(ctx, delta("DEV-1", "2025-10-14", 3, "3.00", 1))
	require.NoError(t, err)
	_, err = store.AddToSummary(ctx, delta("DEV-1", "2025-10-15", 5, "5.00", 2))
	require.NoError(t, err)
	_, err = store.AddToSummary(ctx, delta("DEV-2", "2025-10-15", 7, "7.00", 1))
	require.NoError(t, err)

	tests := []struct {
		device string
		date   string
		count  int64
		value  string
	}{
		{"DEV-1", "2025-10-14", 3, "3.00"},
		{"DEV-1", "2025-10-15", 5, "5.00"},
		{"DEV-2", "2025-10-15", 7, "7.00"},
	}
	for _, tt := range tests {
		got, err := store.GetSummary(ctx, delta(tt.device, tt.date, 0, "0", 0).Key)
		require.NoError(t, err)
		assert.Equal(t, tt.count, got.TotalCount, "%s %s", tt.device, tt.date)
		assertDecimalEqual(t, got.TotalValue, tt.value)
	}
}

func TestPGStore_AddToSummary_Concurrent(t *testing.T) {
	ctx, _, store := setupStore(t)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(seq int64) {
			defer wg.Done()
			_, err := store.AddToSummary(ctx, delta("DEV-1", "2025-10-15", 1, "1.25", seq))
			errs <- err
		}(int64(i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := store.GetSummary(ctx, delta("DEV-1", "2025-10-15", 0, "0", 0).Key)
	require.NoError(t, err)
	assert.Equal(t, int64(workers), got.TotalCount)
	assertDecimalEqual(t, got.TotalValue, "10.00")
}

func TestPGStore_MaxSeqNum_NotFound(t *testing.T) {
	ctx, _, store := setupStore(t)

	seq, found, err := store.MaxSeqNum(ctx, "NOPE", 1, day("2025-10-15"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, int64(0), seq)
}

func TestPGStore_MaxSeqNum_AcrossEntryKeys(t *testing.T) {
	ctx, _, store := setupStore(t)

	d := delta("DEV-1", "2025-10-15", 1, "1", 40)
	_, err := store.AddToSummary(ctx, d)
	require.NoError(t, err)

	d.Key.ARTypeIdentifier = "TOPUP"
	d.SeqNum = 41
	_, err = store.AddToSummary(ctx, d)
	require.NoError(t, err)

	seq, found, err := store.MaxSeqNum(ctx, "DEV-1", 1, day("2025-10-15"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(41), seq)

	_, found, err = store.MaxSeqNum(ctx, "DEV-1", 1, day("2025-10-14"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPGStore_GetSummary_NotFound(t *testing.T) {
	ctx, _, store := setupStore(t)

	_, err := store.GetSummary(ctx, delta("DEV-1", "2025-10-15", 0, "0", 0).Key)
	assert.ErrorIs(t, err, ErrSummaryNotFound)
}

func newMirror(t *testing.T) *audit.MirrorRecord {
	t.Helper()
	now := time.Now().UTC()
	r := &audit.Report{
		TransactionType:     "SAL001",
		TransactionDateTime: now,
		EquipmentID:         "EQ-1",
		DeviceID:            "DEV-1",
		BEID:                1,
		SeqNum:              9,
		BusinessDate:        day("2025-10-15"),
		Entries: []audit.Entry{
			{ARTypeIdentifier: "FARE", Count: 2, Value: decimal.NewNullDecimal(decimal.RequireFromString("4.20"))},
			{ARTypeIdentifier: "TOPUP", CardMediaTypeID: "3", Count: 1},
		},
	}
	return audit.NewMirrorRecord(r, audit.NewReferenceID(), "CLIENT-1", now)
}

func TestPGStore_SaveMirror(t *testing.T) {
	ctx, db, store := setupStore(t)

	m := newMirror(t)
	require.NoError(t, store.SaveMirror(ctx, m))

	pgutil.AssertRowCount(t, db, "mirror_ar", 1)
	pgutil.AssertRowCount(t, db, "mirror_ar_detail", 2)

	var details []MirrorArDetailDao
	require.NoError(t, db.NewSelect().Model(&details).Order("ar_entry_id").Scan(ctx))
	require.Len(t, details, 2)
	assert.Equal(t, "001", details[0].AREntryID)
	assertDecimalEqual(t, details[0].Value.Decimal, "4.20")
	assert.False(t, details[1].Value.Valid)
	assert.Equal(t, 3, details[1].IDType)

	// same reference id twice violates the primary key
	assert.Error(t, store.SaveMirror(ctx, m))
}

func TestPGStore_RunInTx_RollsBack(t *testing.T) {
	ctx, db, store := setupStore(t)

	boom := errors.New("boom")
	err := store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		if _, err := tx.AddToSummary(ctx, delta("DEV-1", "2025-10-15", 5, "5", 1)); err != nil {
			return err
		}
		if err := tx.SaveMirror(ctx, newMirror(t)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	pgutil.AssertRowCount(t, db, "device_ar_summary", 0)
	pgutil.AssertRowCount(t, db, "mirror_ar", 0)
	pgutil.AssertRowCount(t, db, "mirror_ar_detail", 0)

	err = store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		_, err := tx.AddToSummary(ctx, delta("DEV-1", "2025-10-15", 5, "5", 1))
		return err
	})
	require.NoError(t, err)
	pgutil.AssertRowCount(t, db, "device_ar_summary", 1)
}

func TestPGStore_SaveException(t *testing.T) {
	ctx, db, store := setupStore(t)

	var seq int64 = 4
	x := &audit.ExceptionRecord{
		ReferenceID:     audit.NewReferenceID(),
		RefRecordID:     audit.RefRecordID,
		RefTotalCount:   1,
		TxnType:         "UNK",
		TxnSubtype:      "000",
		DeviceID:        "DEV-1",
		SeqNum:          &seq,
		SettlementDate:  time.Now().UTC(),
		ReceivedTime:    time.Now().UTC(),
		LastUpdatedTime: time.Now().UTC(),
		ClientRequestID: "UNKNOWN",
		ErrorMessage:    "validation failed: beId: must not be null",
		Details: []audit.ExceptionDetail{
			{ReferenceID: "", RefRecordID: audit.RefRecordID, AREntryID: "001", ARID: "FARE", IDType: "CONTACTLESS"},
		},
	}
	x.Details[0].ReferenceID = x.ReferenceID

	require.NoError(t, store.SaveException(ctx, x))

	pgutil.AssertRowCount(t, db, "mirror_ar_ex", 1)
	pgutil.AssertRowCount(t, db, "mirror_ar_detail_ex", 1)

	got := new(MirrorArExDao)
	require.NoError(t, db.NewSelect().Model(got).Where("reference_id = ?", x.ReferenceID).Scan(ctx))
	assert.Nil(t, got.BEID)
	assert.Nil(t, got.BusinessDate)
	require.NotNil(t, got.ARSeqNum)
	assert.Equal(t, int64(4), *got.ARSeqNum)
	assert.Equal(t, x.ErrorMessage, got.ErrorMessage)
}

func TestPGStore_SaveException_KeepsOversizedFields(t *testing.T) {
	ctx, db, store := setupStore(t)

	beID := 1
	var seq, count int64 = 9, 2
	mediaType := "CONTACTLESS-OPEN-LOOP-EMV-TRANSIT"
	txn := &audit.Txn{
		TransactionType:     "SAL001",
		TransactionDateTime: "2025-10-15T08:30:00Z",
		EquipmentID:         "EQ-1",
		DeviceID:            strings.Repeat("D", 64),
		BEID:                &beID,
		SeqNum:              &seq,
		BusinessDate:        "2025-10-15",
		Entries: []audit.TxnEntry{
			{ARTypeIdentifier: strings.Repeat("A", 24), CardMediaTypeID: &mediaType, Count: &count},
		},
	}

	_, err := txn.ToReport()
	var verr *audit.ValidationError
	require.ErrorAs(t, err, &verr)

	x := audit.NewExceptionRecord(txn, strings.Repeat("R", 150), err.Error(), time.Now().UTC())
	require.NoError(t, store.SaveException(ctx, x))

	detail := new(MirrorArDetailExDao)
	require.NoError(t, db.NewSelect().Model(detail).Where("reference_id = ?", x.ReferenceID).Scan(ctx))
	assert.Equal(t, mediaType, detail.IDType)
	assert.Equal(t, strings.Repeat("A", 24), detail.ARID)

	header := new(MirrorArExDao)
	require.NoError(t, db.NewSelect().Model(header).Where("reference_id = ?", x.ReferenceID).Scan(ctx))
	assert.Equal(t, txn.DeviceID, header.DeviceID)
	assert.Contains(t, header.ErrorMessage, "cardMediaTypeId: size must be at most 20")
}
