package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelJournalEntry converts the entry header; lines go through ToModelJournalEntryLine.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:        d.EntryID,
		EntryNumber:    d.EntryNumber,
		JournalCode:    d.JournalCode,
		EntryDate:      d.Date,
		Description:    d.Description,
		FiscalYearID:   d.FiscalYearID,
		FiscalPeriodID: d.FiscalPeriodID,
		ReversalOfID:   d.ReversalOfID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a header row together with its ordered line rows.
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalEntryLine) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:        m.EntryID,
		EntryNumber:    m.EntryNumber,
		JournalCode:    m.JournalCode,
		Date:           domain.DateOf(m.EntryDate),
		Description:    m.Description,
		FiscalYearID:   m.FiscalYearID,
		FiscalPeriodID: m.FiscalPeriodID,
		ReversalOfID:   m.ReversalOfID,
		Lines:          toDomainSlice(lines, ToDomainJournalEntryLine),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelJournalEntryLine(entryID string, d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		EntryID:          entryID,
		LineNo:           d.LineNo,
		AccountCode:      d.AccountCode,
		Debit:            d.Debit,
		Credit:           d.Credit,
		OriginalCurrency: d.OriginalCurrency,
		OriginalAmount:   d.OriginalAmount,
		ExchangeRate:     d.ExchangeRate,
		Description:      d.Description,
		VATRateID:        d.VATRateID,
		PartnerID:        d.PartnerID,
	}
}

func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineNo:           m.LineNo,
		AccountCode:      m.AccountCode,
		Debit:            m.Debit,
		Credit:           m.Credit,
		OriginalCurrency: m.OriginalCurrency,
		OriginalAmount:   m.OriginalAmount,
		ExchangeRate:     m.ExchangeRate,
		Description:      m.Description,
		VATRateID:        m.VATRateID,
		PartnerID:        m.PartnerID,
	}
}
