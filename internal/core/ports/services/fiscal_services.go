package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// FiscalReaderSvc resolves dates against the fiscal calendar
type FiscalReaderSvc interface {
	// Resolve returns the year and, when the year has periods, the period containing date.
	// Fails with NoFiscalPeriod when nothing covers the date.
	Resolve(ctx context.Context, date time.Time) (*domain.FiscalPosition, error)
	// PeriodFor returns the period containing date, or nil when none does.
	PeriodFor(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error)
	// IsPostable reports whether date falls in an open period, or an open year without periods.
	IsPostable(ctx context.Context, date time.Time) (bool, error)
	GetFiscalYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)
}

// FiscalWriterSvc maintains the fiscal calendar
type FiscalWriterSvc interface {
	CreateFiscalYear(ctx context.Context, name string, start, end time.Time, userID string) (*domain.FiscalYear, error)
	AddPeriod(ctx context.Context, fiscalYearID, name string, start, end time.Time, userID string) (*domain.FiscalPeriod, error)
	// ClosePeriod is one-way.
	ClosePeriod(ctx context.Context, fiscalPeriodID string, userID string) (*domain.FiscalPeriod, error)
	// CloseYear closes the year and all of its periods. One-way.
	CloseYear(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error)
}

// FiscalCalendarSvcFacade combines all fiscal calendar service interfaces
type FiscalCalendarSvcFacade interface {
	FiscalReaderSvc
	FiscalWriterSvc
}
