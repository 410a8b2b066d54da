package audit

import "fmt"

// MessageKind identifies an operational event or a user-facing outcome
type MessageKind string

const (
	MsgRequestReceived         MessageKind = "REQUEST_RECEIVED"
	MsgProcessSuccess          MessageKind = "PROCESS_SUCCESS"
	MsgProcessPartial          MessageKind = "PROCESS_PARTIAL"
	MsgProcessFailed           MessageKind = "PROCESS_FAILED"
	MsgValidationFailed        MessageKind = "VALIDATION_FAILED"
	MsgTransactionFailed       MessageKind = "TRANSACTION_FAILED"
	MsgOutstandingTransactions MessageKind = "OUTSTANDING_TRANSACTIONS"
	MsgFutureBusinessDate      MessageKind = "FUTURE_BUSINESS_DATE"
	MsgDateMismatch            MessageKind = "DATE_MISMATCH"
	MsgDeviceRestart           MessageKind = "DEVICE_RESTART"
	MsgCrossDateSummaryCreated MessageKind = "CROSS_DATE_SUMMARY_CREATED"
	MsgCrossDateSummaryUpdated MessageKind = "CROSS_DATE_SUMMARY_UPDATED"
	MsgExceptionSaveFailed     MessageKind = "EXCEPTION_SAVE_FAILED"
	MsgSettlementDateDefaulted MessageKind = "SETTLEMENT_DATE_DEFAULTED"
	MsgJobCompleted            MessageKind = "JOB_COMPLETED"
	MsgJobPartiallyCompleted   MessageKind = "JOB_PARTIALLY_COMPLETED"
	MsgJobFailed               MessageKind = "JOB_FAILED"
	MsgJobNoData               MessageKind = "JOB_NO_DATA"
)

var messages = map[MessageKind]string{
	MsgRequestReceived:         "Received audit register request. ClientRequestId: %s, TransactionCount: %d",
	MsgProcessSuccess:          "Successfully processed %d transaction(s)",
	MsgProcessPartial:          "Processed %d success, %d failure(s)",
	MsgProcessFailed:           "Failed to process audit register request: %s",
	MsgValidationFailed:        "Request validation failed",
	MsgTransactionFailed:       "Transaction processing failed for deviceId: %s, seqNum: %d - %s",
	MsgOutstandingTransactions: "Processing outstanding transactions from a prior business date. DeviceId: %s, BusinessDate: %s, TransactionDateTime: %s, CurrentDate: %s",
	MsgFutureBusinessDate:      "Business date is after the current date. DeviceId: %s, BusinessDate: %s, CurrentDate: %s",
	MsgDateMismatch:            "Transaction date is more than one day away from the business date. DeviceId: %s, BusinessDate: %s, TransactionDate: %s",
	MsgDeviceRestart:           "Device restart detected. DeviceId: %s, BeId: %d, BusinessDate: %s, SeqNum: %d, MaxSeqNum: %d",
	MsgCrossDateSummaryCreated: "Created cross-date summary. DeviceId: %s, BusinessDate: %s, CurrentDate: %s, ArType: %s, MediaType: %s, Count: %d, Value: %s",
	MsgCrossDateSummaryUpdated: "Updated cross-date summary. DeviceId: %s, BusinessDate: %s, CurrentDate: %s, ArType: %s, MediaType: %s, TotalCount: %d, TotalValue: %s",
	MsgExceptionSaveFailed:     "Failed to save audit register to exception tables. DeviceId: %s, SeqNum: %d",
	MsgSettlementDateDefaulted: "Settlement date not provided, using current date: %s",
	MsgJobCompleted:            "%s batch job completed successfully",
	MsgJobPartiallyCompleted:   "%s batch job partially completed: %d day(s) succeeded, %d day(s) failed",
	MsgJobFailed:               "Failed to run %s batch job: %s",
	MsgJobNoData:               "No data found for %s, settlement date: %s",
}

// Message renders the template registered for kind with args.
// Unknown kinds render as the kind itself so a missing entry never panics a request.
func Message(kind MessageKind, args ...any) string {
	tmpl, ok := messages[kind]
	if !ok {
		return string(kind)
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
