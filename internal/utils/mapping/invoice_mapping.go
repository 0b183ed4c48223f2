package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:      d.InvoiceID,
		Number:         d.Number,
		PartnerID:      d.PartnerID,
		InvoiceDate:    d.InvoiceDate,
		DueDate:        d.DueDate,
		FiscalYearID:   d.FiscalYearID,
		FiscalPeriodID: d.FiscalPeriodID,
		TotalAmount:    d.TotalAmount,
		CurrencyCode:   d.CurrencyCode,
		AmountPaid:     d.AmountPaid,
		Version:        d.Version,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:      m.InvoiceID,
		Number:         m.Number,
		PartnerID:      m.PartnerID,
		InvoiceDate:    domain.DateOf(m.InvoiceDate),
		DueDate:        domain.DateOf(m.DueDate),
		FiscalYearID:   m.FiscalYearID,
		FiscalPeriodID: m.FiscalPeriodID,
		TotalAmount:    m.TotalAmount,
		CurrencyCode:   m.CurrencyCode,
		AmountPaid:     m.AmountPaid,
		Version:        m.Version,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	return toDomainSlice(ms, ToDomainInvoice)
}

func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:             d.PaymentID,
		InvoiceID:             d.InvoiceID,
		PaymentDate:           d.PaymentDate,
		Amount:                d.Amount,
		CurrencyCode:          d.CurrencyCode,
		AppliedAmount:         d.AppliedAmount,
		ExchangeRate:          d.ExchangeRate,
		PaymentMethod:         d.PaymentMethod,
		PriorPeriodSettlement: d.PriorPeriodSettlement,
		ReversesPaymentID:     d.ReversesPaymentID,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:             m.PaymentID,
		InvoiceID:             m.InvoiceID,
		PaymentDate:           domain.DateOf(m.PaymentDate),
		Amount:                m.Amount,
		CurrencyCode:          m.CurrencyCode,
		AppliedAmount:         m.AppliedAmount,
		ExchangeRate:          m.ExchangeRate,
		PaymentMethod:         m.PaymentMethod,
		PriorPeriodSettlement: m.PriorPeriodSettlement,
		ReversesPaymentID:     m.ReversesPaymentID,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	return toDomainSlice(ms, ToDomainPayment)
}
