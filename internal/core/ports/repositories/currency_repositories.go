package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByCode returns apperrors.ErrNotFound when the code is unknown.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency returns apperrors.ErrDuplicate when the code exists.
	SaveCurrency(ctx context.Context, currency domain.Currency) error
	// DeleteCurrency returns apperrors.ErrInUse while rates, lines, invoices or payments
	// reference the currency, and apperrors.ErrNotFound when it does not exist.
	DeleteCurrency(ctx context.Context, code string) error
}

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindRateOnOrBefore returns the latest rate dated at or before asOf, or a
	// NoRateAvailable AppError.
	FindRateOnOrBefore(ctx context.Context, currencyCode string, asOf time.Time) (*domain.ExchangeRate, error)
	ListRates(ctx context.Context, currencyCode string) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate returns apperrors.ErrDuplicate when (currency, date) exists.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// CurrencyRepositoryFacade combines all currency and rate repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
	ExchangeRateReader
	ExchangeRateWriter
}
