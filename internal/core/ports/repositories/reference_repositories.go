package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ReferenceReader defines read operations for journals, partners and VAT rates
type ReferenceReader interface {
	FindJournalByCode(ctx context.Context, code string) (*domain.Journal, error)
	ListJournals(ctx context.Context) ([]domain.Journal, error)
	FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error)
	ListPartners(ctx context.Context) ([]domain.Partner, error)
	FindVATRateByID(ctx context.Context, vatRateID string) (*domain.VATRate, error)
	ListVATRates(ctx context.Context) ([]domain.VATRate, error)
}

// ReferenceWriter defines write operations for journals, partners and VAT rates
type ReferenceWriter interface {
	// SaveJournal returns apperrors.ErrDuplicate when the code exists.
	SaveJournal(ctx context.Context, journal domain.Journal) error
	SavePartner(ctx context.Context, partner domain.Partner) error
	// DeletePartner returns apperrors.ErrInUse while invoices or lines reference it.
	DeletePartner(ctx context.Context, partnerID string) error
	SaveVATRate(ctx context.Context, rate domain.VATRate) error
}

// ReferenceRepositoryFacade combines all reference data repository interfaces
type ReferenceRepositoryFacade interface {
	ReferenceReader
	ReferenceWriter
}
