package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalSvc manages entry sources
type JournalSvc interface {
	CreateJournal(ctx context.Context, code, name, userID string) (*domain.Journal, error)
	GetJournal(ctx context.Context, code string) (*domain.Journal, error)
	ListJournals(ctx context.Context) ([]domain.Journal, error)
}

// PartnerSvc manages invoice counterparts
type PartnerSvc interface {
	CreatePartner(ctx context.Context, partner domain.Partner, userID string) (*domain.Partner, error)
	GetPartner(ctx context.Context, partnerID string) (*domain.Partner, error)
	ListPartners(ctx context.Context) ([]domain.Partner, error)
	// DeletePartner fails with PartnerInUse while invoices or lines reference the partner.
	DeletePartner(ctx context.Context, partnerID string) error
}

// VATRateSvc manages VAT percentages
type VATRateSvc interface {
	CreateVATRate(ctx context.Context, name string, rate decimal.Decimal, userID string) (*domain.VATRate, error)
	GetVATRate(ctx context.Context, vatRateID string) (*domain.VATRate, error)
	ListVATRates(ctx context.Context) ([]domain.VATRate, error)
}

// ReferenceSvcFacade combines journal, partner and VAT rate services
type ReferenceSvcFacade interface {
	JournalSvc
	PartnerSvc
	VATRateSvc
}
