package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

var maxVATRate = decimal.NewFromInt(100)

// referenceService manages journals, partners and VAT rates.
type referenceService struct {
	BaseService
	repo portsrepo.ReferenceRepositoryFacade
}

// NewReferenceService creates a reference data service.
func NewReferenceService(repo portsrepo.ReferenceRepositoryFacade, opts ...Option) portssvc.ReferenceSvcFacade {
	return &referenceService{
		BaseService: newBaseService(opts),
		repo:        repo,
	}
}

var _ portssvc.ReferenceSvcFacade = (*referenceService)(nil)

func (s *referenceService) CreateJournal(ctx context.Context, code, name, userID string) (*domain.Journal, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := requireText("code", code); err != nil {
		return nil, s.Reject(ctx, "create_journal", err)
	}
	if err := requireText("name", name); err != nil {
		return nil, s.Reject(ctx, "create_journal", err)
	}
	journal := domain.Journal{Code: code, Name: name, AuditFields: domain.NewAuditFields(userID, s.Now())}
	if err := s.repo.SaveJournal(ctx, journal); err != nil {
		return nil, s.Reject(ctx, "create_journal", err, slog.String("journal_code", code))
	}
	s.LogInfo(ctx, "Journal created", slog.String("journal_code", code))
	return &journal, nil
}

func (s *referenceService) GetJournal(ctx context.Context, code string) (*domain.Journal, error) {
	return s.repo.FindJournalByCode(ctx, strings.ToUpper(code))
}

func (s *referenceService) ListJournals(ctx context.Context) ([]domain.Journal, error) {
	return s.repo.ListJournals(ctx)
}

func (s *referenceService) CreatePartner(ctx context.Context, partner domain.Partner, userID string) (*domain.Partner, error) {
	if err := requireText("name", partner.Name); err != nil {
		return nil, s.Reject(ctx, "create_partner", err)
	}
	partner.PartnerID = uuid.NewString()
	partner.AuditFields = domain.NewAuditFields(userID, s.Now())
	if err := s.repo.SavePartner(ctx, partner); err != nil {
		return nil, s.Reject(ctx, "create_partner", err)
	}
	s.LogInfo(ctx, "Partner created", slog.String("partner_id", partner.PartnerID))
	return &partner, nil
}

func (s *referenceService) GetPartner(ctx context.Context, partnerID string) (*domain.Partner, error) {
	return s.repo.FindPartnerByID(ctx, partnerID)
}

func (s *referenceService) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	return s.repo.ListPartners(ctx)
}

func (s *referenceService) DeletePartner(ctx context.Context, partnerID string) error {
	if err := s.repo.DeletePartner(ctx, partnerID); err != nil {
		return s.Reject(ctx, "delete_partner", err, slog.String("partner_id", partnerID))
	}
	s.LogInfo(ctx, "Partner deleted", slog.String("partner_id", partnerID))
	return nil
}

func (s *referenceService) CreateVATRate(ctx context.Context, name string, rate decimal.Decimal, userID string) (*domain.VATRate, error) {
	if err := requireText("name", name); err != nil {
		return nil, s.Reject(ctx, "create_vat_rate", err)
	}
	if rate.IsNegative() || rate.GreaterThan(maxVATRate) {
		return nil, s.Reject(ctx, "create_vat_rate", apperrors.NewValidationError(apperrors.CodeInvalidRate,
			"VAT rate must be between 0 and 100, got %s", rate))
	}
	vat := domain.VATRate{
		VATRateID:   uuid.NewString(),
		Name:        name,
		Rate:        rate,
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}
	if err := s.repo.SaveVATRate(ctx, vat); err != nil {
		return nil, s.Reject(ctx, "create_vat_rate", err)
	}
	s.LogInfo(ctx, "VAT rate created", slog.String("vat_rate_id", vat.VATRateID), slog.String("rate", rate.String()))
	return &vat, nil
}

func (s *referenceService) GetVATRate(ctx context.Context, vatRateID string) (*domain.VATRate, error) {
	return s.repo.FindVATRateByID(ctx, vatRateID)
}

func (s *referenceService) ListVATRates(ctx context.Context) ([]domain.VATRate, error) {
	return s.repo.ListVATRates(ctx)
}
