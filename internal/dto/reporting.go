package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils"
	"github.com/shopspring/decimal"
)

// LedgerParams binds the inclusive date range of an account ledger.
type LedgerParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02" time_utc:"1"`
}

// TrialBalanceRowResponse amounts are formatted at the base currency precision.
type TrialBalanceRowResponse struct {
	AccountCode string             `json:"accountCode"`
	AccountName string             `json:"accountName"`
	AccountType domain.AccountType `json:"accountType"`
	Debit       string             `json:"debit"`
	Credit      string             `json:"credit"`
}

type TrialBalanceResponse struct {
	AsOf         Date                      `json:"asOf"`
	CurrencyCode string                    `json:"currencyCode"`
	Rows         []TrialBalanceRowResponse `json:"rows"`
	TotalDebit   string                    `json:"totalDebit"`
	TotalCredit  string                    `json:"totalCredit"`
}

func ToTrialBalanceResponse(r *domain.TrialBalanceReport, base domain.Currency) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: row.AccountType,
			Debit:       utils.FormatWithCurrencyPrecision(row.Debit, base),
			Credit:      utils.FormatWithCurrencyPrecision(row.Credit, base),
		}
	}
	return TrialBalanceResponse{
		AsOf:         NewDate(r.AsOf),
		CurrencyCode: base.CurrencyCode,
		Rows:         rows,
		TotalDebit:   utils.FormatWithCurrencyPrecision(r.TotalDebit, base),
		TotalCredit:  utils.FormatWithCurrencyPrecision(r.TotalCredit, base),
	}
}

type LedgerLineResponse struct {
	EntryID     string `json:"entryID"`
	EntryNumber int64  `json:"entryNumber"`
	Date        Date   `json:"date"`
	JournalCode string `json:"journalCode"`
	LineNo      int    `json:"lineNo"`
	Description string `json:"description,omitempty"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	Balance     string `json:"balance"`
}

type AccountLedgerResponse struct {
	Account        AccountResponse      `json:"account"`
	From           Date                 `json:"from"`
	To             Date                 `json:"to"`
	CurrencyCode   string               `json:"currencyCode"`
	OpeningBalance string               `json:"openingBalance"`
	Lines          []LedgerLineResponse `json:"lines"`
	ClosingBalance string               `json:"closingBalance"`
}

func ToAccountLedgerResponse(r *domain.AccountLedgerReport, base domain.Currency) AccountLedgerResponse {
	lines := make([]LedgerLineResponse, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = LedgerLineResponse{
			EntryID:     l.EntryID,
			EntryNumber: l.EntryNumber,
			Date:        NewDate(l.Date),
			JournalCode: l.JournalCode,
			LineNo:      l.LineNo,
			Description: l.Description,
			Debit:       utils.FormatWithCurrencyPrecision(l.Debit, base),
			Credit:      utils.FormatWithCurrencyPrecision(l.Credit, base),
			Balance:     utils.FormatWithCurrencyPrecision(l.Balance, base),
		}
	}
	return AccountLedgerResponse{
		Account:        ToAccountResponse(&r.Account),
		From:           NewDate(r.From),
		To:             NewDate(r.To),
		CurrencyCode:   base.CurrencyCode,
		OpeningBalance: utils.FormatWithCurrencyPrecision(r.OpeningBalance, base),
		Lines:          lines,
		ClosingBalance: utils.FormatWithCurrencyPrecision(r.ClosingBalance, base),
	}
}

type OpenItemResponse struct {
	Invoice     InvoiceResponse      `json:"invoice"`
	Status      domain.InvoiceStatus `json:"status"`
	Outstanding decimal.Decimal      `json:"outstanding"`
}

type OpenItemsResponse struct {
	Partner          PartnerResponse            `json:"partner"`
	Items            []OpenItemResponse         `json:"items"`
	TotalsByCurrency map[string]decimal.Decimal `json:"totalsByCurrency"`
}

func ToOpenItemsResponse(r *domain.OpenItemsReport) OpenItemsResponse {
	items := make([]OpenItemResponse, len(r.Items))
	for i := range r.Items {
		items[i] = OpenItemResponse{
			Invoice:     ToInvoiceResponse(&r.Items[i].Invoice),
			Status:      r.Items[i].Status,
			Outstanding: r.Items[i].Outstanding,
		}
	}
	return OpenItemsResponse{
		Partner:          ToPartnerResponse(&r.Partner),
		Items:            items,
		TotalsByCurrency: r.TotalsByCurrency,
	}
}
