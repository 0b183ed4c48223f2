package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// FiscalReader defines read operations for the fiscal calendar
type FiscalReader interface {
	// FindFiscalYearByID returns the year with its periods, or apperrors.ErrNotFound.
	FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)
	// FindFiscalYearForDate returns the year containing date with its periods, or
	// apperrors.ErrNotFound.
	FindFiscalYearForDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error)
	FindFiscalPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error)
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)
}

// FiscalWriter defines write operations for the fiscal calendar
type FiscalWriter interface {
	// SaveFiscalYear returns an OverlappingPeriod AppError when the range intersects an
	// existing year.
	SaveFiscalYear(ctx context.Context, year domain.FiscalYear) error
	// SaveFiscalPeriod returns an OverlappingPeriod AppError when the range intersects a
	// sibling period.
	SaveFiscalPeriod(ctx context.Context, period domain.FiscalPeriod) error
	// CloseFiscalPeriod marks the period closed.
	CloseFiscalPeriod(ctx context.Context, fiscalPeriodID string, audit domain.AuditFields) error
	// CloseFiscalYear marks the year and all its periods closed.
	CloseFiscalYear(ctx context.Context, fiscalYearID string, audit domain.AuditFields) error
}

// FiscalRepositoryFacade combines all fiscal calendar repository interfaces
type FiscalRepositoryFacade interface {
	FiscalReader
	FiscalWriter
}
