package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

func ToModelFiscalYear(d domain.FiscalYear) models.FiscalYear {
	return models.FiscalYear{
		FiscalYearID: d.FiscalYearID,
		Name:         d.Name,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		IsClosed:     d.IsClosed,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalYear converts a year row; periods are attached by the caller.
func ToDomainFiscalYear(m models.FiscalYear) domain.FiscalYear {
	return domain.FiscalYear{
		FiscalYearID: m.FiscalYearID,
		Name:         m.Name,
		StartDate:    domain.DateOf(m.StartDate),
		EndDate:      domain.DateOf(m.EndDate),
		IsClosed:     m.IsClosed,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		FiscalPeriodID: d.FiscalPeriodID,
		FiscalYearID:   d.FiscalYearID,
		Name:           d.Name,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		IsClosed:       d.IsClosed,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		FiscalPeriodID: m.FiscalPeriodID,
		FiscalYearID:   m.FiscalYearID,
		Name:           m.Name,
		StartDate:      domain.DateOf(m.StartDate),
		EndDate:        domain.DateOf(m.EndDate),
		IsClosed:       m.IsClosed,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainFiscalPeriodSlice(ms []models.FiscalPeriod) []domain.FiscalPeriod {
	return toDomainSlice(ms, ToDomainFiscalPeriod)
}
