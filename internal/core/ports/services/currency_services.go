package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currencies
type CurrencyReaderSvc interface {
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
	// BaseCurrency returns the fixed reference currency all rates are expressed in.
	BaseCurrency(ctx context.Context) (*domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currencies
type CurrencyWriterSvc interface {
	CreateCurrency(ctx context.Context, currency domain.Currency, userID string) (*domain.Currency, error)
	DeleteCurrency(ctx context.Context, code string) error
}

// ExchangeRateSvc defines operations on the dated rate table
type ExchangeRateSvc interface {
	// RecordRate stores the value of one unit of currencyCode in the base currency as of date.
	RecordRate(ctx context.Context, currencyCode string, date time.Time, rate decimal.Decimal, userID string) (*domain.ExchangeRate, error)
	ListRates(ctx context.Context, currencyCode string) ([]domain.ExchangeRate, error)
	// Quote resolves the rates in force on asOf for both currencies. Never looks forward.
	Quote(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (*domain.RateQuote, error)
	// Convert converts amount and rounds it to the target currency precision.
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error)
}

// CurrencySvcFacade combines all currency and rate service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
	ExchangeRateSvc
}
