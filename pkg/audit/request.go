package audit

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/chainsafe/audit-register-recon/pkg/bizdate"
)

// DateTimeLayout is the accepted transactionDateTime format
const DateTimeLayout = time.RFC3339

// ResponseCode is the outcome class of an audit register request
type ResponseCode string

const (
	CodeSuccess         ResponseCode = "SUCCESS"
	CodePartialSuccess  ResponseCode = "PARTIAL_SUCCESS"
	CodeError           ResponseCode = "ERROR"
	CodeValidationError ResponseCode = "VALIDATION_ERROR"
)

// Request is the body of POST /v1/ar/auditRegister
type Request struct {
	Transactions []Txn `json:"auditRegisterTxns" validate:"required,min=1"`
}

// Txn is one device report as received on the wire.
// Required numerics are pointers so that a missing field is distinguishable from zero.
type Txn struct {
	TransactionType     string     `json:"transactionType" validate:"required"`
	TransactionDateTime string     `json:"transactionDateTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EquipmentID         string     `json:"equipmentId" validate:"required,max=50"`
	DeviceID            string     `json:"deviceId" validate:"required,max=50"`
	DeviceTypeID        string     `json:"deviceTypeId,omitempty" validate:"omitempty,max=50"`
	DeviceSpecialMode   string     `json:"deviceSpecialMode,omitempty" validate:"omitempty,max=50"`
	BEID                *int       `json:"beId" validate:"required"`
	ServiceID           string     `json:"serviceId,omitempty"`
	SeqNum              *int64     `json:"auditRegisterSeqNum" validate:"required"`
	BusinessDate        string     `json:"businessDate" validate:"required,datetime=2006-01-02"`
	Entries             []TxnEntry `json:"auditRegisterEntries" validate:"required,min=1,dive"`
}

// TxnEntry is one audit register line as received on the wire
type TxnEntry struct {
	ARTypeIdentifier string   `json:"arTypeIdentifier" validate:"required,max=20"`
	CardMediaTypeID  *string  `json:"cardMediaTypeId,omitempty" validate:"omitempty,max=20"`
	Count            *int64   `json:"count" validate:"required,gte=0"`
	Value            *float64 `json:"value,omitempty" validate:"omitempty,gte=0"`
}

// Response is the body returned for an audit register request
type Response struct {
	ResponseCode    ResponseCode `json:"responseCode"`
	ResponseMessage string       `json:"responseMessage"`
	Errors          []string     `json:"errors,omitempty"`
}

// ValidationResponse builds the VALIDATION_ERROR response for the given field errors
func ValidationResponse(errs []string) *Response {
	return &Response{
		ResponseCode:    CodeValidationError,
		ResponseMessage: Message(MsgValidationFailed),
		Errors:          errs,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the request envelope only. Individual transactions are validated
// one by one during processing so that a bad report does not reject its neighbours.
func (r *Request) Validate() []string {
	return fieldErrors(validate.Struct(r))
}

// Validate returns the field errors of a single device report, formatted "field: message"
func (t *Txn) Validate() []string {
	return fieldErrors(validate.Struct(t))
}

// DeviceLabel returns the device id and sequence number used in error strings
func (t *Txn) DeviceLabel() (string, int64) {
	var seq int64
	if t.SeqNum != nil {
		seq = *t.SeqNum
	}
	return t.DeviceID, seq
}

// ToReport validates the transaction and converts it to a domain report
func (t *Txn) ToReport() (*Report, error) {
	if errs := t.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	txnTime, err := time.Parse(DateTimeLayout, t.TransactionDateTime)
	if err != nil {
		return nil, fmt.Errorf("invalid transactionDateTime: %w", err)
	}
	businessDate, err := bizdate.Parse(t.BusinessDate)
	if err != nil {
		return nil, fmt.Errorf("invalid businessDate: %w", err)
	}

	entries := make([]Entry, 0, len(t.Entries))
	for _, e := range t.Entries {
		entries = append(entries, e.toEntry())
	}

	return &Report{
		TransactionType:     t.TransactionType,
		TransactionDateTime: txnTime,
		EquipmentID:         t.EquipmentID,
		DeviceID:            t.DeviceID,
		DeviceTypeID:        t.DeviceTypeID,
		DeviceSpecialMode:   t.DeviceSpecialMode,
		ServiceID:           t.ServiceID,
		BEID:                *t.BEID,
		SeqNum:              *t.SeqNum,
		BusinessDate:        businessDate,
		Entries:             entries,
	}, nil
}

func (e TxnEntry) toEntry() Entry {
	entry := Entry{
		ARTypeIdentifier: e.ARTypeIdentifier,
		CardMediaTypeID:  NormalizeMediaType(e.CardMediaTypeID),
	}
	if e.Count != nil {
		entry.Count = *e.Count
	}
	if e.Value != nil {
		entry.Value = decimal.NewNullDecimal(decimal.NewFromFloat(*e.Value))
	}
	return entry
}

// NormalizeMediaType maps a missing media type to the empty string
func NormalizeMediaType(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ValidationError carries the field errors of a rejected device report
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

func fieldErrors(err error) []string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Sprintf("%s: %s", fieldPath(fe), fieldMessage(fe)))
	}
	return out
}

// fieldPath drops the root struct name from the namespace, e.g. Txn.deviceId -> deviceId
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s element(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("size must be at most %s", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "datetime":
		return fmt.Sprintf("must match format %s", fe.Param())
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
