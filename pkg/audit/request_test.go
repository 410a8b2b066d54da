package audit

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTxnJSON = `{
	"transactionType": "SAL001X",
	"transactionDateTime": "2025-10-15T08:30:00+08:00",
	"equipmentId": "EQ-9",
	"deviceId": "DEV-1",
	"deviceTypeId": "GATE",
	"deviceSpecialMode": "NORMAL",
	"beId": 42,
	"serviceId": "SVC",
	"auditRegisterSeqNum": 1001,
	"businessDate": "2025-10-15",
	"auditRegisterEntries": [
		{"arTypeIdentifier": "FARE", "cardMediaTypeId": "2", "count": 10, "value": 1000.50},
		{"arTypeIdentifier": "TOPUP", "count": 3}
	]
}`

func decodeTxn(t *testing.T, body string) Txn {
	t.Helper()
	var txn Txn
	require.NoError(t, json.Unmarshal([]byte(body), &txn))
	return txn
}

func TestTxnToReport(t *testing.T) {
	txn := decodeTxn(t, validTxnJSON)

	r, err := txn.ToReport()
	require.NoError(t, err)

	assert.Equal(t, "DEV-1", r.DeviceID)
	assert.Equal(t, "EQ-9", r.EquipmentID)
	assert.Equal(t, 42, r.BEID)
	assert.Equal(t, int64(1001), r.SeqNum)
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), r.BusinessDate)
	assert.True(t, r.TransactionDateTime.Equal(time.Date(2025, 10, 15, 0, 30, 0, 0, time.UTC)))

	require.Len(t, r.Entries, 2)
	assert.Equal(t, "2", r.Entries[0].CardMediaTypeID)
	assert.Equal(t, int64(10), r.Entries[0].Count)
	assert.Equal(t, "1000.5", r.Entries[0].Amount().String())

	assert.Equal(t, "", r.Entries[1].CardMediaTypeID)
	assert.False(t, r.Entries[1].Value.Valid)
	assert.True(t, r.Entries[1].Amount().IsZero())
}

func TestTxnValidate(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{
			name:  "missing device id",
			body:  `{"transactionType":"SAL","transactionDateTime":"2025-10-15T08:30:00Z","equipmentId":"EQ","beId":1,"auditRegisterSeqNum":1,"businessDate":"2025-10-15","auditRegisterEntries":[{"arTypeIdentifier":"A","count":1}]}`,
			field: "deviceId: must not be null",
		},
		{
			name:  "missing be id",
			body:  `{"transactionType":"SAL","transactionDateTime":"2025-10-15T08:30:00Z","equipmentId":"EQ","deviceId":"D","auditRegisterSeqNum":1,"businessDate":"2025-10-15","auditRegisterEntries":[{"arTypeIdentifier":"A","count":1}]}`,
			field: "beId: must not be null",
		},
		{
			name:  "empty entries",
			body:  `{"transactionType":"SAL","transactionDateTime":"2025-10-15T08:30:00Z","equipmentId":"EQ","deviceId":"D","beId":1,"auditRegisterSeqNum":1,"businessDate":"2025-10-15","auditRegisterEntries":[]}`,
			field: "auditRegisterEntries: must contain at least 1 element(s)",
		},
		{
			name:  "entry without count",
			body:  `{"transactionType":"SAL","transactionDateTime":"2025-10-15T08:30:00Z","equipmentId":"EQ","deviceId":"D","beId":1,"auditRegisterSeqNum":1,"businessDate":"2025-10-15","auditRegisterEntries":[{"arTypeIdentifier":"A"}]}`,
			field: "auditRegisterEntries[0].count: must not be null",
		},
		{
			name:  "malformed business date",
			body:  `{"transactionType":"SAL","transactionDateTime":"2025-10-15T08:30:00Z","equipmentId":"EQ","deviceId":"D","beId":1,"auditRegisterSeqNum":1,"businessDate":"15/10/2025","auditRegisterEntries":[{"arTypeIdentifier":"A","count":1}]}`,
			field: "businessDate: must match format 2006-01-02",
		},
		{
			name:  "device id longer than 50",
			body:  `{"transactionType":"SAL","transactionDateTime":"2025-10-15T08:30:00Z","equipmentId":"EQ","deviceId":"` + strings.Repeat("D", 51) + `","beId":1,"auditRegisterSeqNum":1,"businessDate":"2025-10-15","auditRegisterEntries":[{"arTypeIdentifier":"A","count":1}]}`,
			field: "deviceId: size must be at most 50",
		},
		{
			name:  "ar type longer than 20",
			body:  `{"transactionType":"SAL","transactionDateTime":"2025-10-15T08:30:00Z","equipmentId":"EQ","deviceId":"D","beId":1,"auditRegisterSeqNum":1,"businessDate":"2025-10-15","auditRegisterEntries":[{"arTypeIdentifier":"` + strings.Repeat("A", 21) + `","count":1}]}`,
			field: "auditRegisterEntries[0].arTypeIdentifier: size must be at most 20",
		},
		{
			name:  "media type longer than 20",
			body:  `{"transactionType":"SAL","transactionDateTime":"2025-10-15T08:30:00Z","equipmentId":"EQ","deviceId":"D","beId":1,"auditRegisterSeqNum":1,"businessDate":"2025-10-15","auditRegisterEntries":[{"arTypeIdentifier":"A","cardMediaTypeId":"CONTACTLESS-OPEN-LOOP-EMV","count":1}]}`,
			field: "auditRegisterEntries[0].cardMediaTypeId: size must be at most 20",
		},
		{
			name:  "zero sequence number is present",
			body:  `{"transactionType":"SAL","transactionDateTime":"2025-10-15T08:30:00Z","equipmentId":"EQ","deviceId":"D","beId":0,"auditRegisterSeqNum":0,"businessDate":"2025-10-15","auditRegisterEntries":[{"arTypeIdentifier":"A","count":0}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := decodeTxn(t, tt.body)
			errs := txn.Validate()
			if tt.field == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Contains(t, errs, tt.field)

			_, err := txn.ToReport()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Error(), tt.field)
		})
	}
}

func TestRequestValidate(t *testing.T) {
	var empty Request
	require.NoError(t, json.Unmarshal([]byte(`{"auditRegisterTxns":[]}`), &empty))
	assert.Equal(t, []string{"auditRegisterTxns: must contain at least 1 element(s)"}, empty.Validate())

	var missing Request
	require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
	assert.Equal(t, []string{"auditRegisterTxns: must not be null"}, missing.Validate())

	// element errors are not part of envelope validation
	var partial Request
	require.NoError(t, json.Unmarshal([]byte(`{"auditRegisterTxns":[{"deviceId":"D"}]}`), &partial))
	assert.Empty(t, partial.Validate())
}

func TestDeviceLabel(t *testing.T) {
	txn := decodeTxn(t, `{"deviceId":"D"}`)
	device, seq := txn.DeviceLabel()
	assert.Equal(t, "D", device)
	assert.Equal(t, int64(0), seq)

	txn = decodeTxn(t, validTxnJSON)
	_, seq = txn.DeviceLabel()
	assert.Equal(t, int64(1001), seq)
}

func TestValidationResponse(t *testing.T) {
	resp := ValidationResponse([]string{"auditRegisterTxns: must not be null"})
	assert.Equal(t, CodeValidationError, resp.ResponseCode)
	assert.Equal(t, "Request validation failed", resp.ResponseMessage)
	assert.Len(t, resp.Errors, 1)
}
