package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	InvoiceID      string          `db:"invoice_id"`
	Number         string          `db:"number"`
	PartnerID      string          `db:"partner_id"`
	InvoiceDate    time.Time       `db:"invoice_date"`
	DueDate        time.Time       `db:"due_date"`
	FiscalYearID   string          `db:"fiscal_year_id"`
	FiscalPeriodID *string         `db:"fiscal_period_id"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	CurrencyCode   string          `db:"currency_code"`
	AmountPaid     decimal.Decimal `db:"amount_paid"`
	Version        int64           `db:"version"`
	AuditFields
}

// Payment rows are append-only; Seq orders them per invoice.
type Payment struct {
	PaymentID             string          `db:"payment_id"`
	Seq                   int64           `db:"seq"`
	InvoiceID             string          `db:"invoice_id"`
	PaymentDate           time.Time       `db:"payment_date"`
	Amount                decimal.Decimal `db:"amount"`
	CurrencyCode          string          `db:"currency_code"`
	AppliedAmount         decimal.Decimal `db:"applied_amount"`
	ExchangeRate          decimal.Decimal `db:"exchange_rate"`
	PaymentMethod         string          `db:"payment_method"`
	PriorPeriodSettlement bool            `db:"prior_period_settlement"`
	ReversesPaymentID     *string         `db:"reverses_payment_id"`
	AuditFields
}
