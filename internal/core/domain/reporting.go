package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists per-account totals ordered by account code.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// LedgerLine is a posted line as it appears in an account ledger.
type LedgerLine struct {
	EntryID     string          `json:"entryID"`
	EntryNumber int64           `json:"entryNumber"`
	Date        time.Time       `json:"date"`
	JournalCode string          `json:"journalCode"`
	LineNo      int             `json:"lineNo"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"` // running, on the account's normal side
}

// AccountLedgerReport lists posted lines of one account, ordered by
// (date, entry number, line number).
type AccountLedgerReport struct {
	Account        Account         `json:"account"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Lines          []LedgerLine    `json:"lines"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// AccountTotals are the debit and credit sums of an account.
type AccountTotals struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// OpenItem is an invoice with an outstanding balance.
type OpenItem struct {
	Invoice     Invoice         `json:"invoice"`
	Status      InvoiceStatus   `json:"status"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// OpenItemsReport lists a partner's unsettled invoices by due date then number.
type OpenItemsReport struct {
	Partner          Partner                    `json:"partner"`
	Items            []OpenItem                 `json:"items"`
	TotalsByCurrency map[string]decimal.Decimal `json:"totalsByCurrency"`
}
