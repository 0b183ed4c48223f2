package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is derived from the applied payment total.
type InvoiceStatus string

const (
	InvoiceOpen          InvoiceStatus = "OPEN"
	InvoicePartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoicePaid          InvoiceStatus = "PAID"
)

// Invoice exclusively owns its payments. AmountPaid is the sum of the applied amounts of
// all its payments, in the invoice currency. Version increases on every settlement.
type Invoice struct {
	InvoiceID      string          `json:"invoiceID"`
	Number         string          `json:"number"`
	PartnerID      string          `json:"partnerID"`
	InvoiceDate    time.Time       `json:"invoiceDate"`
	DueDate        time.Time       `json:"dueDate"`
	FiscalYearID   string          `json:"fiscalYearID"`
	FiscalPeriodID *string         `json:"fiscalPeriodID,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	CurrencyCode   string          `json:"currencyCode"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	Version        int64           `json:"version"`
	AuditFields
}

// IsPaid is true once the applied total reaches the invoice total. Exact comparison.
func (i Invoice) IsPaid() bool {
	return i.AmountPaid.GreaterThanOrEqual(i.TotalAmount)
}

// Status derives the settlement state.
func (i Invoice) Status() InvoiceStatus {
	switch {
	case i.IsPaid():
		return InvoicePaid
	case i.AmountPaid.IsPositive():
		return InvoicePartiallyPaid
	default:
		return InvoiceOpen
	}
}

// Outstanding is the part of the total not yet covered, never negative.
func (i Invoice) Outstanding() decimal.Decimal {
	out := i.TotalAmount.Sub(i.AmountPaid)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// CreditBalance is the overpaid part, never negative.
func (i Invoice) CreditBalance() decimal.Decimal {
	over := i.AmountPaid.Sub(i.TotalAmount)
	if over.IsNegative() {
		return decimal.Zero
	}
	return over
}

// Payment is an append-only settlement record. A negative Amount reverses an earlier
// payment; ReversesPaymentID links it to the payment it undoes.
type Payment struct {
	PaymentID             string          `json:"paymentID"`
	InvoiceID             string          `json:"invoiceID"`
	PaymentDate           time.Time       `json:"paymentDate"`
	Amount                decimal.Decimal `json:"amount"`
	CurrencyCode          string          `json:"currencyCode"`
	AppliedAmount         decimal.Decimal `json:"appliedAmount"` // in invoice currency
	ExchangeRate          decimal.Decimal `json:"exchangeRate"`
	PaymentMethod         string          `json:"paymentMethod"`
	PriorPeriodSettlement bool            `json:"priorPeriodSettlement"`
	ReversesPaymentID     *string         `json:"reversesPaymentID,omitempty"`
	AuditFields
}

// PaymentRequest is the caller input for applying a payment.
type PaymentRequest struct {
	PaymentDate           time.Time       `json:"paymentDate"`
	Amount                decimal.Decimal `json:"amount"`
	CurrencyCode          string          `json:"currencyCode"`
	PaymentMethod         string          `json:"paymentMethod"`
	PriorPeriodSettlement bool            `json:"priorPeriodSettlement"`
	CreatedBy             string          `json:"createdBy"`
}

// InvoiceState is the read model returned after every settlement.
type InvoiceState struct {
	Invoice       Invoice         `json:"invoice"`
	Status        InvoiceStatus   `json:"status"`
	IsPaid        bool            `json:"isPaid"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	Payments      []Payment       `json:"payments"`
}

// NewInvoiceState derives the read model from an invoice and its payments.
func NewInvoiceState(inv Invoice, payments []Payment) InvoiceState {
	return InvoiceState{
		Invoice:       inv,
		Status:        inv.Status(),
		IsPaid:        inv.IsPaid(),
		AmountPaid:    inv.AmountPaid,
		Outstanding:   inv.Outstanding(),
		CreditBalance: inv.CreditBalance(),
		Payments:      payments,
	}
}
