// Package audit defines the device audit register domain: reports submitted by
// terminals, the per-device running summaries they accumulate into, and the
// mirror records kept as the audit trail.
package audit

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainsafe/audit-register-recon/pkg/bizdate"
)

// Report is one terminal's validated audit register submission.
type Report struct {
	TransactionType     string
	TransactionDateTime time.Time
	EquipmentID         string
	DeviceID            string
	DeviceTypeID        string
	DeviceSpecialMode   string
	ServiceID           string
	BEID                int
	SeqNum              int64
	BusinessDate        time.Time
	Entries             []Entry
}

// Entry is a single audit register line of a report.
// CardMediaTypeID is already normalized: a missing media type is "".
type Entry struct {
	ARTypeIdentifier string
	CardMediaTypeID  string
	Count            int64
	Value            decimal.NullDecimal
}

// Amount returns the entry value, treating a missing value as zero
func (e Entry) Amount() decimal.Decimal {
	if !e.Value.Valid {
		return decimal.Zero
	}
	return e.Value.Decimal
}

// SummaryKey identifies one running total row
type SummaryKey struct {
	DeviceID         string
	BEID             int
	BusinessDate     time.Time
	ARTypeIdentifier string
	CardMediaTypeID  string
}

// KeyFor builds the summary key an entry of the report accumulates into
func (r *Report) KeyFor(e Entry) SummaryKey {
	return SummaryKey{
		DeviceID:         r.DeviceID,
		BEID:             r.BEID,
		BusinessDate:     r.BusinessDate,
		ARTypeIdentifier: e.ARTypeIdentifier,
		CardMediaTypeID:  e.CardMediaTypeID,
	}
}

// SummaryDelta is the additive change applied to a summary row
type SummaryDelta struct {
	Key       SummaryKey
	Count     int64
	Value     decimal.Decimal
	SeqNum    int64
	AppliedAt time.Time
}

// Summary is the running total of counts and values for one key.
// TotalCount and TotalValue only ever grow during a business date.
type Summary struct {
	Key          SummaryKey
	TotalCount   int64
	TotalValue   decimal.Decimal
	LastSeqNum   int64
	CreatedAt    time.Time
	LastUpdateAt time.Time
	// Created is set when the delta that returned this summary inserted the row
	Created bool
}

// CrossDate classifies a report's business date against the ingestion date
type CrossDate string

const (
	CrossDateNone        CrossDate = ""
	CrossDateOutstanding CrossDate = "OUTSTANDING"
	CrossDateFuture      CrossDate = "FUTURE"
)

// Detection holds the informational signals computed for a report.
// None of them changes how the report accumulates.
type Detection struct {
	Restarted    bool
	MaxSeqNum    int64
	CrossDate    CrossDate
	DateMismatch bool
	Today        time.Time
}

// Detect computes restart, cross-date and date-mismatch signals for a report.
// maxSeq/found is the sequence tracker's answer for the report's device, entity and date.
func Detect(r *Report, maxSeq int64, found bool, today time.Time) Detection {
	today = bizdate.Of(today)
	d := Detection{
		Restarted: found && r.SeqNum < maxSeq,
		MaxSeqNum: maxSeq,
		Today:     today,
	}

	switch {
	case r.BusinessDate.Before(today):
		d.CrossDate = CrossDateOutstanding
	case r.BusinessDate.After(today):
		d.CrossDate = CrossDateFuture
	}

	if !r.TransactionDateTime.IsZero() {
		txnDate := bizdate.Of(r.TransactionDateTime)
		if !txnDate.Equal(r.BusinessDate) &&
			!txnDate.Equal(bizdate.AddDays(r.BusinessDate, -1)) &&
			!txnDate.Equal(bizdate.AddDays(r.BusinessDate, 1)) {
			d.DateMismatch = true
		}
	}

	return d
}
