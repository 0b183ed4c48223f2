package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{Code: d.Code, Name: d.Name, AuditFields: ToModelAuditFields(d.AuditFields)}
}

func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{Code: m.Code, Name: m.Name, AuditFields: ToDomainAuditFields(m.AuditFields)}
}

func ToDomainJournalSlice(ms []models.Journal) []domain.Journal {
	return toDomainSlice(ms, ToDomainJournal)
}

func ToModelPartner(d domain.Partner) models.Partner {
	return models.Partner{
		PartnerID:   d.PartnerID,
		Name:        d.Name,
		VATNumber:   d.VATNumber,
		Address:     d.Address,
		Email:       d.Email,
		Phone:       d.Phone,
		IsCustomer:  d.IsCustomer,
		IsSupplier:  d.IsSupplier,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainPartner(m models.Partner) domain.Partner {
	return domain.Partner{
		PartnerID:   m.PartnerID,
		Name:        m.Name,
		VATNumber:   m.VATNumber,
		Address:     m.Address,
		Email:       m.Email,
		Phone:       m.Phone,
		IsCustomer:  m.IsCustomer,
		IsSupplier:  m.IsSupplier,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainPartnerSlice(ms []models.Partner) []domain.Partner {
	return toDomainSlice(ms, ToDomainPartner)
}

func ToModelVATRate(d domain.VATRate) models.VATRate {
	return models.VATRate{VATRateID: d.VATRateID, Name: d.Name, Rate: d.Rate, AuditFields: ToModelAuditFields(d.AuditFields)}
}

func ToDomainVATRate(m models.VATRate) domain.VATRate {
	return domain.VATRate{VATRateID: m.VATRateID, Name: m.Name, Rate: m.Rate, AuditFields: ToDomainAuditFields(m.AuditFields)}
}

func ToDomainVATRateSlice(ms []models.VATRate) []domain.VATRate {
	return toDomainSlice(ms, ToDomainVATRate)
}
