package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind groups error codes into the categories reported to callers.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindReference  Kind = "REFERENCE"
	KindState      Kind = "STATE"
	KindConflict   Kind = "CONFLICT"
	KindInternal   Kind = "INTERNAL"
)

// Code identifies a specific failure within a Kind.
type Code string

// Validation codes.
const (
	CodeEmptyEntry             Code = "EmptyEntry"
	CodeInvalidLineAmounts     Code = "InvalidLineAmounts"
	CodeUnbalancedEntry        Code = "UnbalancedEntry"
	CodeOverlappingPeriod      Code = "OverlappingPeriod"
	CodeDuplicateAccountCode   Code = "DuplicateAccountCode"
	CodeDuplicateRate          Code = "DuplicateRate"
	CodeDuplicateCurrency      Code = "DuplicateCurrency"
	CodeDuplicateJournalCode   Code = "DuplicateJournalCode"
	CodeDuplicateInvoiceNumber Code = "DuplicateInvoiceNumber"
	CodeInvalidInput           Code = "InvalidInput"
	CodeInvalidRate            Code = "InvalidRate"
	CodeInvalidDateRange       Code = "InvalidDateRange"
	CodePeriodOutsideYear      Code = "PeriodOutsideYear"
	CodeInvalidPaymentAmount   Code = "InvalidPaymentAmount"
)

// Reference codes.
const (
	CodeUnknownAccount      Code = "UnknownAccount"
	CodeAccountInUse        Code = "AccountInUse"
	CodeNoRateAvailable     Code = "NoRateAvailable"
	CodeUnknownCurrency     Code = "UnknownCurrency"
	CodeCurrencyInUse       Code = "CurrencyInUse"
	CodeUnknownJournal      Code = "UnknownJournal"
	CodeUnknownPartner      Code = "UnknownPartner"
	CodePartnerInUse        Code = "PartnerInUse"
	CodeUnknownVATRate      Code = "UnknownVATRate"
	CodeUnknownFiscalYear   Code = "UnknownFiscalYear"
	CodeUnknownFiscalPeriod Code = "UnknownFiscalPeriod"
	CodeUnknownEntry        Code = "UnknownEntry"
	CodeUnknownInvoice      Code = "UnknownInvoice"
	CodeUnknownPayment      Code = "UnknownPayment"
)

// State codes.
const (
	CodePeriodClosed           Code = "PeriodClosed"
	CodeNoFiscalPeriod         Code = "NoFiscalPeriod"
	CodeEntryAlreadyReversed   Code = "EntryAlreadyReversed"
	CodePaymentAlreadyReversed Code = "PaymentAlreadyReversed"
)

// Conflict and internal codes.
const (
	CodeSettlementConflict Code = "SettlementConflict"
	CodeInternal           Code = "Internal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrReference indicates that a referenced resource is missing or still referenced elsewhere.
var ErrReference = errors.New("reference error")

// ErrInUse indicates that a shared resource cannot be removed while it is referenced.
var ErrInUse = errors.New("resource in use")

// ErrState indicates that the target is in a state that forbids the operation.
var ErrState = errors.New("state error")

// ErrConflict indicates a concurrent modification that the caller may retry.
var ErrConflict = errors.New("conflict")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// AppError is the error type returned by every engine operation.
type AppError struct {
	Kind    Kind
	Code    Code
	Message string
	// LineIndex is the zero-based offending line for InvalidLineAmounts, -1 otherwise.
	LineIndex int
	// Amount carries the imbalance for UnbalancedEntry.
	Amount decimal.Decimal
	Err    error
}

func (e *AppError) Error() string {
	msg := string(e.Code)
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match an AppError against the kind sentinels.
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrReference:
		return e.Kind == KindReference
	case ErrState:
		return e.Kind == KindState
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrInternal:
		return e.Kind == KindInternal
	case ErrNotFound:
		return e.Kind == KindReference && isUnknownCode(e.Code)
	case ErrInUse:
		return e.Code == CodeAccountInUse || e.Code == CodeCurrencyInUse || e.Code == CodePartnerInUse
	case ErrDuplicate:
		switch e.Code {
		case CodeDuplicateAccountCode, CodeDuplicateRate, CodeDuplicateCurrency,
			CodeDuplicateJournalCode, CodeDuplicateInvoiceNumber:
			return true
		}
	}
	return false
}

func isUnknownCode(c Code) bool {
	switch c {
	case CodeUnknownAccount, CodeUnknownCurrency, CodeUnknownJournal, CodeUnknownPartner,
		CodeUnknownVATRate, CodeUnknownFiscalYear, CodeUnknownFiscalPeriod, CodeUnknownEntry,
		CodeUnknownInvoice, CodeUnknownPayment:
		return true
	}
	return false
}

func newError(kind Kind, code Code, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...), LineIndex: -1}
}

// NewValidationError creates a validation failure with the given code.
func NewValidationError(code Code, format string, args ...any) *AppError {
	return newError(KindValidation, code, format, args...)
}

// NewReferenceError creates a reference failure with the given code.
func NewReferenceError(code Code, format string, args ...any) *AppError {
	return newError(KindReference, code, format, args...)
}

// NewStateError creates a state failure with the given code.
func NewStateError(code Code, format string, args ...any) *AppError {
	return newError(KindState, code, format, args...)
}

// NewConflictError creates a retryable concurrency failure.
func NewConflictError(code Code, format string, args ...any) *AppError {
	return newError(KindConflict, code, format, args...)
}

// NewInternalError wraps an infrastructure failure.
func NewInternalError(msg string, err error) *AppError {
	return &AppError{Kind: KindInternal, Code: CodeInternal, Message: msg, LineIndex: -1, Err: err}
}

// NewInvalidLineAmounts reports an offending line by index.
func NewInvalidLineAmounts(index int, reason string) *AppError {
	e := newError(KindValidation, CodeInvalidLineAmounts, "line %d: %s", index, reason)
	e.LineIndex = index
	return e
}

// NewUnbalancedEntry reports the debit minus credit difference.
func NewUnbalancedEntry(imbalance decimal.Decimal) *AppError {
	e := newError(KindValidation, CodeUnbalancedEntry, "debits exceed credits by %s", imbalance.String())
	e.Amount = imbalance
	return e
}

// PeriodClosed reports a posting or payment against a closed fiscal period or year.
func PeriodClosed(format string, args ...any) *AppError {
	return newError(KindState, CodePeriodClosed, format, args...)
}

// AsAppError extracts the AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
