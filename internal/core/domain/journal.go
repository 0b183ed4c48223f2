package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DraftLine is a caller-supplied line. Debit and Credit are expressed in CurrencyCode,
// which defaults to the base currency when empty.
type DraftLine struct {
	AccountCode  string          `json:"accountCode"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CurrencyCode string          `json:"currencyCode,omitempty"`
	Description  string          `json:"description,omitempty"`
	VATRateID    *string         `json:"vatRateID,omitempty"`
	PartnerID    *string         `json:"partnerID,omitempty"`
}

// DraftEntry is a journal entry submitted for posting.
type DraftEntry struct {
	JournalCode string      `json:"journalCode"`
	Date        time.Time   `json:"date"`
	Description string      `json:"description"`
	Lines       []DraftLine `json:"lines"`
	CreatedBy   string      `json:"createdBy"`
}

// JournalEntryLine is a posted line. Debit and Credit are in the base currency; the
// amount as submitted is kept in OriginalCurrency/OriginalAmount with the rate applied.
type JournalEntryLine struct {
	LineNo           int             `json:"lineNo"`
	AccountCode      string          `json:"accountCode"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	OriginalCurrency string          `json:"originalCurrency"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	Description      string          `json:"description,omitempty"`
	VATRateID        *string         `json:"vatRateID,omitempty"`
	PartnerID        *string         `json:"partnerID,omitempty"`
}

// IsDebit reports whether the line sits on the debit side.
func (l JournalEntryLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Reversed returns the line with debit and credit swapped.
func (l JournalEntryLine) Reversed() JournalEntryLine {
	r := l
	r.Debit, r.Credit = l.Credit, l.Debit
	return r
}

// JournalEntry is a posted, immutable entry. It exclusively owns its lines.
type JournalEntry struct {
	EntryID        string             `json:"entryID"`
	EntryNumber    int64              `json:"entryNumber"` // assigned at commit, strictly increasing
	JournalCode    string             `json:"journalCode"`
	Date           time.Time          `json:"date"`
	Description    string             `json:"description"`
	FiscalYearID   string             `json:"fiscalYearID"`
	FiscalPeriodID *string            `json:"fiscalPeriodID,omitempty"`
	ReversalOfID   *string            `json:"reversalOfID,omitempty"`
	Lines          []JournalEntryLine `json:"lines"`
	AuditFields
}

// TotalDebit sums the debit side in base currency.
func (e JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side in base currency.
func (e JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// AccountCodes returns the distinct account codes in line order.
func (e JournalEntry) AccountCodes() []string {
	seen := make(map[string]struct{}, len(e.Lines))
	codes := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		if _, ok := seen[l.AccountCode]; ok {
			continue
		}
		seen[l.AccountCode] = struct{}{}
		codes = append(codes, l.AccountCode)
	}
	return codes
}
