package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

// fiscalService is the fiscal calendar. There is no "current period": every caller
// resolves its own date.
type fiscalService struct {
	BaseService
	repo portsrepo.FiscalRepositoryFacade
}

// NewFiscalService creates a fiscal calendar service.
func NewFiscalService(repo portsrepo.FiscalRepositoryFacade, opts ...Option) portssvc.FiscalCalendarSvcFacade {
	return &fiscalService{
		BaseService: newBaseService(opts),
		repo:        repo,
	}
}

var _ portssvc.FiscalCalendarSvcFacade = (*fiscalService)(nil)

func (s *fiscalService) CreateFiscalYear(ctx context.Context, name string, start, end time.Time, userID string) (*domain.FiscalYear, error) {
	if err := requireText("name", name); err != nil {
		return nil, s.Reject(ctx, "create_fiscal_year", err)
	}
	year := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		Name:         name,
		StartDate:    domain.DateOf(start),
		EndDate:      domain.DateOf(end),
		AuditFields:  domain.NewAuditFields(userID, s.Now()),
	}
	if !year.Range().Valid() {
		return nil, s.Reject(ctx, "create_fiscal_year", apperrors.NewValidationError(apperrors.CodeInvalidDateRange,
			"fiscal year ends before it starts"))
	}
	if err := s.repo.SaveFiscalYear(ctx, year); err != nil {
		return nil, s.Reject(ctx, "create_fiscal_year", err, slog.String("name", name))
	}
	s.LogInfo(ctx, "Fiscal year created", slog.String("fiscal_year_id", year.FiscalYearID), slog.String("name", name))
	return &year, nil
}

func (s *fiscalService) AddPeriod(ctx context.Context, fiscalYearID, name string, start, end time.Time, userID string) (*domain.FiscalPeriod, error) {
	if err := requireText("name", name); err != nil {
		return nil, s.Reject(ctx, "add_period", err)
	}
	year, err := s.repo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, s.Reject(ctx, "add_period", err)
	}
	if year.IsClosed {
		return nil, s.Reject(ctx, "add_period", apperrors.PeriodClosed("fiscal year %s is closed", year.Name))
	}

	period := domain.FiscalPeriod{
		FiscalPeriodID: uuid.NewString(),
		FiscalYearID:   fiscalYearID,
		Name:           name,
		StartDate:      domain.DateOf(start),
		EndDate:        domain.DateOf(end),
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}
	if !period.Range().Valid() {
		return nil, s.Reject(ctx, "add_period", apperrors.NewValidationError(apperrors.CodeInvalidDateRange,
			"fiscal period ends before it starts"))
	}
	if !year.Range().Contains(period.StartDate) || !year.Range().Contains(period.EndDate) {
		return nil, s.Reject(ctx, "add_period", apperrors.NewValidationError(apperrors.CodePeriodOutsideYear,
			"period %s lies outside fiscal year %s", name, year.Name))
	}
	if err := s.repo.SaveFiscalPeriod(ctx, period); err != nil {
		return nil, s.Reject(ctx, "add_period", err, slog.String("name", name))
	}
	s.LogInfo(ctx, "Fiscal period added",
		slog.String("fiscal_year_id", fiscalYearID),
		slog.String("fiscal_period_id", period.FiscalPeriodID))
	return &period, nil
}

func (s *fiscalService) ClosePeriod(ctx context.Context, fiscalPeriodID string, userID string) (*domain.FiscalPeriod, error) {
	period, err := s.repo.FindFiscalPeriodByID(ctx, fiscalPeriodID)
	if err != nil {
		return nil, s.Reject(ctx, "close_period", err)
	}
	if period.IsClosed {
		return period, nil
	}
	period.IsClosed = true
	period.Touch(userID, s.Now())
	if err := s.repo.CloseFiscalPeriod(ctx, fiscalPeriodID, period.AuditFields); err != nil {
		return nil, s.Reject(ctx, "close_period", err)
	}
	s.LogInfo(ctx, "Fiscal period closed", slog.String("fiscal_period_id", fiscalPeriodID))
	return period, nil
}

func (s *fiscalService) CloseYear(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	year, err := s.repo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, s.Reject(ctx, "close_year", err)
	}
	if year.IsClosed {
		return year, nil
	}
	year.Touch(userID, s.Now())
	if err := s.repo.CloseFiscalYear(ctx, fiscalYearID, year.AuditFields); err != nil {
		return nil, s.Reject(ctx, "close_year", err)
	}
	s.LogInfo(ctx, "Fiscal year closed", slog.String("fiscal_year_id", fiscalYearID))
	return s.repo.FindFiscalYearByID(ctx, fiscalYearID)
}

func (s *fiscalService) Resolve(ctx context.Context, date time.Time) (*domain.FiscalPosition, error) {
	date = domain.DateOf(date)
	year, err := s.repo.FindFiscalYearForDate(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewStateError(apperrors.CodeNoFiscalPeriod,
				"no fiscal year covers %s", date.Format(time.DateOnly))
		}
		return nil, err
	}

	pos := &domain.FiscalPosition{Year: *year}
	if len(year.Periods) == 0 {
		return pos, nil
	}
	for i := range year.Periods {
		if year.Periods[i].Range().Contains(date) {
			p := year.Periods[i]
			pos.Period = &p
			return pos, nil
		}
	}
	return nil, apperrors.NewStateError(apperrors.CodeNoFiscalPeriod,
		"%s falls between the periods of fiscal year %s", date.Format(time.DateOnly), year.Name)
}

func (s *fiscalService) PeriodFor(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	pos, err := s.Resolve(ctx, date)
	if apperrors.HasCode(err, apperrors.CodeNoFiscalPeriod) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return pos.Period, nil
}

func (s *fiscalService) IsPostable(ctx context.Context, date time.Time) (bool, error) {
	pos, err := s.Resolve(ctx, date)
	if apperrors.HasCode(err, apperrors.CodeNoFiscalPeriod) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !pos.IsClosed(), nil
}

func (s *fiscalService) GetFiscalYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	return s.repo.FindFiscalYearByID(ctx, fiscalYearID)
}

func (s *fiscalService) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	return s.repo.ListFiscalYears(ctx)
}
