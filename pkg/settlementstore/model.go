package settlementstore

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/chainsafe/audit-register-recon/pkg/settlement"
)

// MirrorRawTxnDao maps to the 'mirror_raw_txn' table.
// Rows are written by the upstream transaction mirror; this service only reads them.
type MirrorRawTxnDao struct {
	bun.BaseModel      `bun:"table:mirror_raw_txn,alias:mrt"`
	ID                 int64               `bun:"id,pk,autoincrement"`
	SettlementDate     time.Time           `bun:"settlement_date,notnull,type:date"`
	TxnType            string              `bun:"txn_type,nullzero,type:varchar(10)"`
	TxnSubtype         string              `bun:"txn_subtype,nullzero,type:varchar(10)"`
	BEID               *int                `bun:"be_id"`
	DebtorBEID         *int                `bun:"debtor_be_id"`
	CreditorBEID       *int                `bun:"creditor_be_id"`
	IssuerID           string              `bun:"issuer_id,nullzero,type:varchar(50)"`
	DeviceID           string              `bun:"device_id,nullzero,type:varchar(50)"`
	BEBusinessDate     *time.Time          `bun:"be_business_date,type:date"`
	ProductCode        string              `bun:"product_code,nullzero,type:varchar(50)"`
	ApportionmentValue decimal.NullDecimal `bun:"apportionment_value,type:numeric(19,2)"`
	SettlementStatus   string              `bun:"settlement_status,nullzero,type:varchar(20)"`
	TxnAmount          decimal.NullDecimal `bun:"txn_amount,type:numeric(19,2)"`
}

// TransactionTotalDao maps to the 'transaction_total' table
type TransactionTotalDao struct {
	bun.BaseModel      `bun:"table:transaction_total,alias:tt"`
	ID                 int64               `bun:"id,pk,autoincrement"`
	SettlementDate     time.Time           `bun:"settlement_date,notnull,type:date"`
	TxnType            string              `bun:"txn_type,nullzero,type:varchar(10)"`
	TxnSubtype         string              `bun:"txn_subtype,nullzero,type:varchar(10)"`
	BEID               *int                `bun:"be_id"`
	DebtorBEID         *int                `bun:"debtor_be_id"`
	CreditorBEID       *int                `bun:"creditor_be_id"`
	IssuerID           string              `bun:"issuer_id,nullzero,type:varchar(50)"`
	DeviceID           string              `bun:"device_id,nullzero,type:varchar(50)"`
	UDSettleCount      int64               `bun:"ud_settle_count,notnull,default:0"`
	UDSettleAmount     decimal.Decimal     `bun:"ud_settle_amount,notnull,type:numeric(19,2),default:0"`
	UDNotSettleCount   int64               `bun:"ud_not_settle_count,notnull,default:0"`
	UDNotSettleAmount  decimal.Decimal     `bun:"ud_not_settle_amount,notnull,type:numeric(19,2),default:0"`
	BEBusinessDate     *time.Time          `bun:"be_business_date,type:date"`
	ProductCode        string              `bun:"product_code,nullzero,type:varchar(50)"`
	ApportionmentValue decimal.NullDecimal `bun:"apportionment_value,type:numeric(19,2)"`
	CreatedTime        time.Time           `bun:"created_time,notnull"`
}

// UdArReconciliationDao maps to the 'ud_ar_reconciliation' table
type UdArReconciliationDao struct {
	bun.BaseModel        `bun:"table:ud_ar_reconciliation,alias:uar"`
	ID                   int64           `bun:"id,pk,autoincrement"`
	BEID                 int             `bun:"be_id,notnull"`
	SettlementDate       time.Time       `bun:"settlement_date,notnull,type:date"`
	ARTypeIdentifier     string          `bun:"ar_type_identifier,notnull,type:varchar(20)"`
	CardMediaTypeID      string          `bun:"card_media_type_id,notnull,type:varchar(20)"`
	TransactionCount     int             `bun:"transaction_count,notnull"`
	TotalCount           int64           `bun:"total_count,notnull"`
	TotalValue           decimal.Decimal `bun:"total_value,notnull,type:numeric(19,2)"`
	DeviceCount          int             `bun:"device_count,notnull"`
	ReconciliationStatus string          `bun:"reconciliation_status,notnull,type:varchar(20)"`
	CreatedTime          time.Time       `bun:"created_time,notnull"`
	LastUpdatedTime      time.Time       `bun:"last_updated_time,notnull"`
}

// DeviceUsageMatchDao maps to the 'device_usage_match' table.
// usage_count and usage_value are NULL when the device has no mirrored transaction for the date.
type DeviceUsageMatchDao struct {
	bun.BaseModel `bun:"table:device_usage_match,alias:dum"`
	ID            int64               `bun:"id,pk,autoincrement"`
	DeviceID      string              `bun:"device_id,notnull,type:varchar(50)"`
	BEID          int                 `bun:"be_id,notnull"`
	BusinessDate  time.Time           `bun:"business_date,notnull,type:date"`
	AuditCount    int64               `bun:"audit_count,notnull"`
	AuditValue    decimal.Decimal     `bun:"audit_value,notnull,type:numeric(19,2)"`
	UsageCount    *int64              `bun:"usage_count"`
	UsageValue    decimal.NullDecimal `bun:"usage_value,type:numeric(19,2)"`
	MatchStatus   string              `bun:"match_status,notnull,type:varchar(20)"`
	CreatedTime   time.Time           `bun:"created_time,notnull"`
}

func toTransactionTotal(dao *TransactionTotalDao) settlement.TransactionTotal {
	return settlement.TransactionTotal{
		SettlementDate:     dao.SettlementDate,
		TxnType:            dao.TxnType,
		TxnSubtype:         dao.TxnSubtype,
		BEID:               dao.BEID,
		DebtorBEID:         dao.DebtorBEID,
		CreditorBEID:       dao.CreditorBEID,
		IssuerID:           dao.IssuerID,
		DeviceID:           dao.DeviceID,
		BEBusinessDate:     dao.BEBusinessDate,
		ProductCode:        dao.ProductCode,
		ApportionmentValue: dao.ApportionmentValue,
		SettledCount:       dao.UDSettleCount,
		SettledAmount:      dao.UDSettleAmount,
		UnsettledCount:     dao.UDNotSettleCount,
		UnsettledAmount:    dao.UDNotSettleAmount,
		CreatedAt:          dao.CreatedTime,
	}
}

func toReconciliation(dao *UdArReconciliationDao) settlement.Reconciliation {
	return settlement.Reconciliation{
		BEID:             dao.BEID,
		SettlementDate:   dao.SettlementDate,
		ARTypeIdentifier: dao.ARTypeIdentifier,
		CardMediaTypeID:  dao.CardMediaTypeID,
		TransactionCount: dao.TransactionCount,
		TotalCount:       dao.TotalCount,
		TotalValue:       dao.TotalValue,
		DeviceCount:      dao.DeviceCount,
		Status:           dao.ReconciliationStatus,
		CreatedAt:        dao.CreatedTime,
		LastUpdateAt:     dao.LastUpdatedTime,
	}
}

func toDeviceUsageMatch(dao *DeviceUsageMatchDao) settlement.DeviceUsageMatch {
	return settlement.DeviceUsageMatch{
		DeviceID:     dao.DeviceID,
		BEID:         dao.BEID,
		BusinessDate: dao.BusinessDate,
		AuditCount:   dao.AuditCount,
		AuditValue:   dao.AuditValue,
		UsageCount:   dao.UsageCount,
		UsageValue:   dao.UsageValue,
		Status:       settlement.MatchStatus(dao.MatchStatus),
		CreatedAt:    dao.CreatedTime,
	}
}
