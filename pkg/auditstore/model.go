package auditstore

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/chainsafe/audit-register-recon/pkg/audit"
)

// DeviceSummaryDao maps to the 'device_ar_summary' table.
// The summary_key unique group backs the ON CONFLICT target of the additive upsert.
type DeviceSummaryDao struct {
	bun.BaseModel    `bun:"table:device_ar_summary,alias:das"`
	ID               int64           `bun:"id,pk,autoincrement"`
	DeviceID         string          `bun:"device_id,notnull,unique:summary_key,type:varchar(50)"`
	BEID             int             `bun:"be_id,notnull,unique:summary_key"`
	BusinessDate     time.Time       `bun:"business_date,notnull,unique:summary_key,type:date"`
	ARTypeIdentifier string          `bun:"ar_type_identifier,notnull,unique:summary_key,type:varchar(20)"`
	CardMediaTypeID  string          `bun:"card_media_type_id,notnull,unique:summary_key,type:varchar(20),default:''"`
	TotalCount       int64           `bun:"total_count,notnull,default:0"`
	TotalValue       decimal.Decimal `bun:"total_value,notnull,type:numeric(19,2),default:0"`
	LastARSeqNum     int64           `bun:"last_ar_seq_num,notnull"`
	CreatedTime      time.Time       `bun:"created_time,notnull"`
	LastUpdatedTime  time.Time       `bun:"last_updated_time,notnull"`

	Inserted bool `bun:"inserted,scanonly"`
}

func toDeviceSummaryDao(d audit.SummaryDelta) *DeviceSummaryDao {
	return &DeviceSummaryDao{
		DeviceID:         d.Key.DeviceID,
		BEID:             d.Key.BEID,
		BusinessDate:     d.Key.BusinessDate,
		ARTypeIdentifier: d.Key.ARTypeIdentifier,
		CardMediaTypeID:  d.Key.CardMediaTypeID,
		TotalCount:       d.Count,
		TotalValue:       d.Value,
		LastARSeqNum:     d.SeqNum,
		CreatedTime:      d.AppliedAt,
		LastUpdatedTime:  d.AppliedAt,
	}
}

func toSummary(dao *DeviceSummaryDao) *audit.Summary {
	return &audit.Summary{
		Key: audit.SummaryKey{
			DeviceID:         dao.DeviceID,
			BEID:             dao.BEID,
			BusinessDate:     dao.BusinessDate,
			ARTypeIdentifier: dao.ARTypeIdentifier,
			CardMediaTypeID:  dao.CardMediaTypeID,
		},
		TotalCount:   dao.TotalCount,
		TotalValue:   dao.TotalValue,
		LastSeqNum:   dao.LastARSeqNum,
		CreatedAt:    dao.CreatedTime,
		LastUpdateAt: dao.LastUpdatedTime,
		Created:      dao.Inserted,
	}
}

// MirrorArDao maps to the 'mirror_ar' table, one row per processed report
type MirrorArDao struct {
	bun.BaseModel    `bun:"table:mirror_ar,alias:ma"`
	ReferenceID      string    `bun:"reference_id,pk,type:varchar(64)"`
	RefRecordID      string    `bun:"ref_record_id,notnull,type:varchar(5)"`
	RefTotalCount    int       `bun:"ref_total_count,notnull"`
	TxnType          string    `bun:"txn_type,notnull,type:varchar(10)"`
	TxnSubtype       string    `bun:"txn_subtype,notnull,type:varchar(10)"`
	EndTxnTime       time.Time `bun:"end_txn_time,notnull"`
	UDSN             string    `bun:"udsn,notnull,type:varchar(100)"`
	DeviceID         string    `bun:"device_id,notnull,type:varchar(50)"`
	HardwareType     string    `bun:"hardware_type,nullzero,type:varchar(50)"`
	ServiceMode      string    `bun:"service_mode,nullzero,type:varchar(50)"`
	BEID             int       `bun:"be_id,notnull"`
	ARSeqNum         int64     `bun:"audit_register_seq_num,notnull"`
	BusinessDate     time.Time `bun:"business_date,notnull,type:date"`
	SettlementDate   time.Time `bun:"settlement_date,notnull"`
	ReceivedTime     time.Time `bun:"received_time,notnull"`
	LastUpdatedTime  time.Time `bun:"last_updated_time,notnull"`
	PhysicalDeviceID string    `bun:"physical_device_id,nullzero,type:varchar(50)"`
	ClientRequestID  string    `bun:"client_request_id,nullzero,type:text"`
}

// MirrorArDetailDao maps to the 'mirror_ar_detail' table, one row per audit register entry
type MirrorArDetailDao struct {
	bun.BaseModel   `bun:"table:mirror_ar_detail,alias:mad"`
	ReferenceID     string              `bun:"reference_id,pk,type:varchar(64)"`
	RefRecordID     string              `bun:"ref_record_id,pk,type:varchar(5)"`
	AREntryID       string              `bun:"ar_entry_id,pk,type:varchar(5)"`
	ARID            string              `bun:"ar_id,notnull,type:varchar(20)"`
	IDType          int                 `bun:"id_type,notnull"`
	Count           int64               `bun:"count,notnull"`
	Value           decimal.NullDecimal `bun:"value,type:numeric(19,2)"`
	LastUpdatedTime time.Time           `bun:"last_updated_time,notnull"`
}

func toMirrorDaos(m *audit.MirrorRecord) (*MirrorArDao, []MirrorArDetailDao) {
	header := &MirrorArDao{
		ReferenceID:      m.ReferenceID,
		RefRecordID:      m.RefRecordID,
		RefTotalCount:    m.RefTotalCount,
		TxnType:          m.TxnType,
		TxnSubtype:       m.TxnSubtype,
		EndTxnTime:       m.EndTxnTime,
		UDSN:             m.UDSN,
		DeviceID:         m.DeviceID,
		HardwareType:     m.HardwareType,
		ServiceMode:      m.ServiceMode,
		BEID:             m.BEID,
		ARSeqNum:         m.SeqNum,
		BusinessDate:     m.BusinessDate,
		SettlementDate:   m.SettlementDate,
		ReceivedTime:     m.ReceivedTime,
		LastUpdatedTime:  m.LastUpdatedTime,
		PhysicalDeviceID: m.PhysicalDeviceID,
		ClientRequestID:  m.ClientRequestID,
	}

	details := make([]MirrorArDetailDao, len(m.Details))
	for i, d := range m.Details {
		details[i] = MirrorArDetailDao{
			ReferenceID:     d.ReferenceID,
			RefRecordID:     d.RefRecordID,
			AREntryID:       d.AREntryID,
			ARID:            d.ARID,
			IDType:          d.IDType,
			Count:           d.Count,
			Value:           d.Value,
			LastUpdatedTime: d.LastUpdatedTime,
		}
	}
	return header, details
}

// MirrorArExDao maps to the 'mirror_ar_ex' table holding reports that failed processing.
// Columns are nullable since the report may have failed validation.
type MirrorArExDao struct {
	bun.BaseModel    `bun:"table:mirror_ar_ex,alias:mae"`
	ReferenceID      string     `bun:"reference_id,pk,type:varchar(64)"`
	RefRecordID      string     `bun:"ref_record_id,nullzero,type:text"`
	RefTotalCount    int        `bun:"ref_total_count"`
	TxnType          string     `bun:"txn_type,nullzero,type:text"`
	TxnSubtype       string     `bun:"txn_subtype,nullzero,type:text"`
	EndTxnTime       *time.Time `bun:"end_txn_time"`
	UDSN             string     `bun:"udsn,nullzero,type:text"`
	DeviceID         string     `bun:"device_id,nullzero,type:text"`
	HardwareType     string     `bun:"hardware_type,nullzero,type:text"`
	ServiceMode      string     `bun:"service_mode,nullzero,type:text"`
	BEID             *int       `bun:"be_id"`
	ARSeqNum         *int64     `bun:"audit_register_seq_num"`
	BusinessDate     *time.Time `bun:"business_date,type:date"`
	SettlementDate   time.Time  `bun:"settlement_date,nullzero"`
	ReceivedTime     time.Time  `bun:"received_time,nullzero"`
	LastUpdatedTime  time.Time  `bun:"last_updated_time,nullzero"`
	PhysicalDeviceID string     `bun:"physical_device_id,nullzero,type:text"`
	ClientRequestID  string     `bun:"client_request_id,nullzero,type:text"`
	ErrorMessage     string     `bun:"error_message,nullzero,type:text"`
}

// MirrorArDetailExDao maps to the 'mirror_ar_detail_ex' table.
// id_type keeps the raw media type string. Strings are unbounded so that a report
// rejected for an oversized field can still be kept.
type MirrorArDetailExDao struct {
	bun.BaseModel   `bun:"table:mirror_ar_detail_ex,alias:made"`
	ReferenceID     string              `bun:"reference_id,pk,type:varchar(64)"`
	RefRecordID     string              `bun:"ref_record_id,pk,type:varchar(5)"`
	AREntryID       string              `bun:"ar_entry_id,pk,type:varchar(5)"`
	ARID            string              `bun:"ar_id,nullzero,type:text"`
	IDType          string              `bun:"id_type,nullzero,type:text"`
	Count           *int64              `bun:"count"`
	Value           decimal.NullDecimal `bun:"value,type:numeric(19,2)"`
	LastUpdatedTime time.Time           `bun:"last_updated_time,nullzero"`
}

func toExceptionDaos(x *audit.ExceptionRecord) (*MirrorArExDao, []MirrorArDetailExDao) {
	header := &MirrorArExDao{
		ReferenceID:      x.ReferenceID,
		RefRecordID:      x.RefRecordID,
		RefTotalCount:    x.RefTotalCount,
		TxnType:          x.TxnType,
		TxnSubtype:       x.TxnSubtype,
		EndTxnTime:       x.EndTxnTime,
		UDSN:             x.UDSN,
		DeviceID:         x.DeviceID,
		HardwareType:     x.HardwareType,
		ServiceMode:      x.ServiceMode,
		BEID:             x.BEID,
		ARSeqNum:         x.SeqNum,
		BusinessDate:     x.BusinessDate,
		SettlementDate:   x.SettlementDate,
		ReceivedTime:     x.ReceivedTime,
		LastUpdatedTime:  x.LastUpdatedTime,
		PhysicalDeviceID: x.PhysicalDeviceID,
		ClientRequestID:  x.ClientRequestID,
		ErrorMessage:     x.ErrorMessage,
	}

	details := make([]MirrorArDetailExDao, len(x.Details))
	for i, d := range x.Details {
		details[i] = MirrorArDetailExDao{
			ReferenceID:     d.ReferenceID,
			RefRecordID:     d.RefRecordID,
			AREntryID:       d.AREntryID,
			ARID:            d.ARID,
			IDType:          d.IDType,
			Count:           d.Count,
			Value:           d.Value,
			LastUpdatedTime: d.LastUpdatedTime,
		}
	}
	return header, details
}
