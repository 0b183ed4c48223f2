package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one line of a draft entry. Exactly one of debit or credit must be
// positive; the ledger enforces this so the offending line index can be reported.
type EntryLineRequest struct {
	AccountCode  string           `json:"accountCode"`
	Debit        *decimal.Decimal `json:"debit"`
	Credit       *decimal.Decimal `json:"credit"`
	CurrencyCode string           `json:"currencyCode" binding:"omitempty,currency"` // defaults to the base currency
	Description  string           `json:"description"`
	VATRateID    *string          `json:"vatRateID"`
	PartnerID    *string          `json:"partnerID"`
}

// PostEntryRequest defines a journal entry to post.
type PostEntryRequest struct {
	JournalCode string             `json:"journalCode" binding:"required"`
	Date        Date               `json:"date" binding:"required"`
	Description string             `json:"description"`
	Lines       []EntryLineRequest `json:"lines" binding:"dive"`
}

// ToDomain converts the request into a draft. Missing amounts are zero.
func (r PostEntryRequest) ToDomain(userID string) domain.DraftEntry {
	lines := make([]domain.DraftLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.DraftLine{
			AccountCode:  l.AccountCode,
			Debit:        orZero(l.Debit),
			Credit:       orZero(l.Credit),
			CurrencyCode: l.CurrencyCode,
			Description:  l.Description,
			VATRateID:    l.VATRateID,
			PartnerID:    l.PartnerID,
		}
	}
	return domain.DraftEntry{
		JournalCode: r.JournalCode,
		Date:        r.Date.Time(),
		Description: r.Description,
		Lines:       lines,
		CreatedBy:   userID,
	}
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// ReverseEntryRequest optionally dates the reversal; the original date is used otherwise.
type ReverseEntryRequest struct {
	Date *Date `json:"date"`
}

type EntryLineResponse struct {
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

// EntryResponse defines the data returned for a posted entry.
type EntryResponse struct {
	EntryID        string              `json:"entryID"`
	EntryNumber    int64               `json:"entryNumber"`
	JournalCode    string              `json:"journalCode"`
	Date           Date                `json:"date"`
	Description    string              `json:"description"`
	FiscalYearID   string              `json:"fiscalYearID"`
	FiscalPeriodID *string             `json:"fiscalPeriodID,omitempty"`
	ReversalOfID   *string             `json:"reversalOfID,omitempty"`
	TotalDebit     decimal.Decimal     `json:"totalDebit"`
	TotalCredit    decimal.Decimal     `json:"totalCredit"`
	Lines          []EntryLineResponse `json:"lines"`
	CreatedAt      time.Time           `json:"createdAt"`
	CreatedBy      string              `json:"createdBy"`
}

func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
			LineNo:           l.LineNo,
			AccountCode:      l.AccountCode,
			Debit:            l.Debit,
			Credit:           l.Credit,
			OriginalCurrency: l.OriginalCurrency,
			OriginalAmount:   l.OriginalAmount,
			ExchangeRate:     l.ExchangeRate,
			Description:      l.Description,
			VATRateID:        l.VATRateID,
			PartnerID:        l.PartnerID,
		}
	}
	return EntryResponse{
		EntryID:        e.EntryID,
		EntryNumber:    e.EntryNumber,
		JournalCode:    e.JournalCode,
		Date:           NewDate(e.Date),
		Description:    e.Description,
		FiscalYearID:   e.FiscalYearID,
		FiscalPeriodID: e.FiscalPeriodID,
		ReversalOfID:   e.ReversalOfID,
		TotalDebit:     e.TotalDebit(),
		TotalCredit:    e.TotalCredit(),
		Lines:          lines,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
}
