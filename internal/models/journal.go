package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of journal_entries; lines live in journal_entry_lines.
type JournalEntry struct {
	EntryID        string    `db:"entry_id"`
	EntryNumber    int64     `db:"entry_number"`
	JournalCode    string    `db:"journal_code"`
	EntryDate      time.Time `db:"entry_date"`
	Description    string    `db:"description"`
	FiscalYearID   string    `db:"fiscal_year_id"`
	FiscalPeriodID *string   `db:"fiscal_period_id"`
	ReversalOfID   *string   `db:"reversal_of_id"`
	AuditFields
}

type JournalEntryLine struct {
	EntryID          string          `db:"entry_id"`
	LineNo           int             `db:"line_no"`
	AccountCode      string          `db:"account_code"`
	Debit            decimal.Decimal `db:"debit"`
	Credit           decimal.Decimal `db:"credit"`
	OriginalCurrency string          `db:"original_currency"`
	OriginalAmount   decimal.Decimal `db:"original_amount"`
	ExchangeRate     decimal.Decimal `db:"exchange_rate"`
	Description      string          `db:"description"`
	VATRateID        *string         `db:"vat_rate_id"`
	PartnerID        *string         `db:"partner_id"`
}
