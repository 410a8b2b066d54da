package audit

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chainsafe/audit-register-recon/pkg/bizdate"
)

const (
	// RefRecordID is the record id of the single header a report produces
	RefRecordID = "001"

	unknownTxnType     = "UNK"
	defaultTxnSubtype  = "000"
	mediaTypeHashSpace = 1_000_000
)

// MirrorRecord is the audit trail header of a processed report
type MirrorRecord struct {
	ReferenceID      string
	RefRecordID      string
	RefTotalCount    int
	TxnType          string
	TxnSubtype       string
	EndTxnTime       time.Time
	UDSN             string
	DeviceID         string
	HardwareType     string
	ServiceMode      string
	BEID             int
	SeqNum           int64
	BusinessDate     time.Time
	SettlementDate   time.Time
	ReceivedTime     time.Time
	LastUpdatedTime  time.Time
	PhysicalDeviceID string
	ClientRequestID  string
	Details          []MirrorDetail
}

// MirrorDetail is one audit register line of a mirror record
type MirrorDetail struct {
	ReferenceID     string
	RefRecordID     string
	AREntryID       string
	ARID            string
	IDType          int
	Count           int64
	Value           decimal.NullDecimal
	LastUpdatedTime time.Time
}

// ExceptionRecord keeps a report that failed processing. Every field is
// optional because the report may have failed validation.
type ExceptionRecord struct {
	ReferenceID      string
	RefRecordID      string
	RefTotalCount    int
	TxnType          string
	TxnSubtype       string
	EndTxnTime       *time.Time
	UDSN             string
	DeviceID         string
	HardwareType     string
	ServiceMode      string
	BEID             *int
	SeqNum           *int64
	BusinessDate     *time.Time
	SettlementDate   time.Time
	ReceivedTime     time.Time
	LastUpdatedTime  time.Time
	PhysicalDeviceID string
	ClientRequestID  string
	ErrorMessage     string
	Details          []ExceptionDetail
}

// ExceptionDetail keeps the raw media type instead of the derived id type
type ExceptionDetail struct {
	ReferenceID     string
	RefRecordID     string
	AREntryID       string
	ARID            string
	IDType          string
	Count           *int64
	Value           decimal.NullDecimal
	LastUpdatedTime time.Time
}

// NewReferenceID returns a fresh 32 character upper-case hex id
func NewReferenceID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// TxnType is the first three characters of the transaction type
func TxnType(transactionType string) string {
	if transactionType == "" {
		return unknownTxnType
	}
	if len(transactionType) < 3 {
		return transactionType
	}
	return transactionType[:3]
}

// TxnSubtype is characters 3 to 6 of the transaction type
func TxnSubtype(transactionType string) string {
	if len(transactionType) < 6 {
		return defaultTxnSubtype
	}
	return transactionType[3:6]
}

// UDSN builds the unique device sequence number of a report received at t
func UDSN(deviceID string, seqNum int64, t time.Time) string {
	return fmt.Sprintf("%s-%d-%d", deviceID, seqNum, t.UnixMilli())
}

// IDType maps a media type to its integer id: "" is 0, numeric ids that fit in 32
// bits keep their value and anything else hashes into [0, 1000000).
func IDType(mediaType string) int {
	if mediaType == "" {
		return 0
	}
	if n, err := strconv.ParseInt(mediaType, 10, 32); err == nil {
		return int(n)
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(mediaType))
	return int(h.Sum32() % mediaTypeHashSpace)
}

// EntryID formats the 1-based index of an entry
func EntryID(i int) string {
	return fmt.Sprintf("%03d", i)
}

// NewMirrorRecord builds the header and detail rows for a report received at now
func NewMirrorRecord(r *Report, referenceID, clientRequestID string, now time.Time) *MirrorRecord {
	m := &MirrorRecord{
		ReferenceID:      referenceID,
		RefRecordID:      RefRecordID,
		RefTotalCount:    len(r.Entries),
		TxnType:          TxnType(r.TransactionType),
		TxnSubtype:       TxnSubtype(r.TransactionType),
		EndTxnTime:       r.TransactionDateTime,
		UDSN:             UDSN(r.DeviceID, r.SeqNum, now),
		DeviceID:         r.DeviceID,
		HardwareType:     r.DeviceTypeID,
		ServiceMode:      r.DeviceSpecialMode,
		BEID:             r.BEID,
		SeqNum:           r.SeqNum,
		BusinessDate:     r.BusinessDate,
		SettlementDate:   now,
		ReceivedTime:     now,
		LastUpdatedTime:  now,
		PhysicalDeviceID: r.EquipmentID,
		ClientRequestID:  clientRequestID,
		Details:          make([]MirrorDetail, 0, len(r.Entries)),
	}
	for i, e := range r.Entries {
		m.Details = append(m.Details, MirrorDetail{
			ReferenceID:     referenceID,
			RefRecordID:     RefRecordID,
			AREntryID:       EntryID(i + 1),
			ARID:            e.ARTypeIdentifier,
			IDType:          IDType(e.CardMediaTypeID),
			Count:           e.Count,
			Value:           e.Value,
			LastUpdatedTime: now,
		})
	}
	return m
}

// NewExceptionRecord builds the exception rows for a raw transaction that failed with cause
func NewExceptionRecord(t *Txn, clientRequestID, cause string, now time.Time) *ExceptionRecord {
	referenceID := NewReferenceID()
	x := &ExceptionRecord{
		ReferenceID:      referenceID,
		RefRecordID:      RefRecordID,
		RefTotalCount:    len(t.Entries),
		TxnType:          TxnType(t.TransactionType),
		TxnSubtype:       TxnSubtype(t.TransactionType),
		DeviceID:         t.DeviceID,
		HardwareType:     t.DeviceTypeID,
		ServiceMode:      t.DeviceSpecialMode,
		BEID:             t.BEID,
		SeqNum:           t.SeqNum,
		SettlementDate:   now,
		ReceivedTime:     now,
		LastUpdatedTime:  now,
		PhysicalDeviceID: t.EquipmentID,
		ClientRequestID:  clientRequestID,
		ErrorMessage:     cause,
		Details:          make([]ExceptionDetail, 0, len(t.Entries)),
	}
	if ts, err := time.Parse(DateTimeLayout, t.TransactionDateTime); err == nil {
		x.EndTxnTime = &ts
	}
	if d, err := bizdate.Parse(t.BusinessDate); err == nil {
		x.BusinessDate = &d
	}
	if t.SeqNum != nil {
		x.UDSN = UDSN(t.DeviceID, *t.SeqNum, now)
	}

	for i, e := range t.Entries {
		d := ExceptionDetail{
			ReferenceID:     referenceID,
			RefRecordID:     RefRecordID,
			AREntryID:       EntryID(i + 1),
			ARID:            e.ARTypeIdentifier,
			IDType:          NormalizeMediaType(e.CardMediaTypeID),
			Count:           e.Count,
			LastUpdatedTime: now,
		}
		if e.Value != nil {
			d.Value = decimal.NewNullDecimal(decimal.NewFromFloat(*e.Value))
		}
		x.Details = append(x.Details, d)
	}
	return x
}
