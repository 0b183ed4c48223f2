package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

const maxMinorUnits = 8

// currencyService is the currency and dated rate table. Every rate is the value of one
// unit of a currency in the base currency; the base currency itself is fixed at 1.
type currencyService struct {
	BaseService
	repo     portsrepo.CurrencyRepositoryFacade
	baseCode string
}

// NewCurrencyService creates a currency service anchored on baseCurrency.
func NewCurrencyService(repo portsrepo.CurrencyRepositoryFacade, baseCurrency string, opts ...Option) portssvc.CurrencySvcFacade {
	return &currencyService{
		BaseService: newBaseService(opts),
		repo:        repo,
		baseCode:    strings.ToUpper(baseCurrency),
	}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, currency domain.Currency, userID string) (*domain.Currency, error) {
	currency.CurrencyCode = strings.ToUpper(strings.TrimSpace(currency.CurrencyCode))
	if !isCurrencyCode(currency.CurrencyCode) {
		return nil, s.Reject(ctx, "create_currency", apperrors.NewValidationError(apperrors.CodeInvalidInput,
			"currency code must be 3 letters, got %q", currency.CurrencyCode))
	}
	if err := requireText("name", currency.Name); err != nil {
		return nil, s.Reject(ctx, "create_currency", err)
	}
	if currency.MinorUnits < 0 || currency.MinorUnits > maxMinorUnits {
		return nil, s.Reject(ctx, "create_currency", apperrors.NewValidationError(apperrors.CodeInvalidInput,
			"minor units must be between 0 and %d", maxMinorUnits))
	}
	currency.AuditFields = domain.NewAuditFields(userID, s.Now())

	if err := s.repo.SaveCurrency(ctx, currency); err != nil {
		return nil, s.Reject(ctx, "create_currency", err, slog.String("currency_code", currency.CurrencyCode))
	}
	s.LogInfo(ctx, "Currency created", slog.String("currency_code", currency.CurrencyCode))
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	return s.repo.FindCurrencyByCode(ctx, strings.ToUpper(code))
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.repo.ListCurrencies(ctx)
}

func (s *currencyService) BaseCurrency(ctx context.Context) (*domain.Currency, error) {
	return s.repo.FindCurrencyByCode(ctx, s.baseCode)
}

func (s *currencyService) DeleteCurrency(ctx context.Context, code string) error {
	code = strings.ToUpper(code)
	if code == s.baseCode {
		return s.Reject(ctx, "delete_currency", apperrors.NewReferenceError(apperrors.CodeCurrencyInUse,
			"%s is the base currency", code))
	}
	if err := s.repo.DeleteCurrency(ctx, code); err != nil {
		return s.Reject(ctx, "delete_currency", err, slog.String("currency_code", code))
	}
	s.LogInfo(ctx, "Currency deleted", slog.String("currency_code", code))
	return nil
}

func (s *currencyService) RecordRate(ctx context.Context, currencyCode string, date time.Time, rate decimal.Decimal, userID string) (*domain.ExchangeRate, error) {
	currencyCode = strings.ToUpper(currencyCode)
	if currencyCode == s.baseCode {
		return nil, s.Reject(ctx, "record_rate", apperrors.NewValidationError(apperrors.CodeInvalidRate,
			"the base currency %s has a fixed rate of 1", currencyCode))
	}
	if !rate.IsPositive() {
		return nil, s.Reject(ctx, "record_rate", apperrors.NewValidationError(apperrors.CodeInvalidRate,
			"rate must be positive, got %s", rate))
	}
	if _, err := s.repo.FindCurrencyByCode(ctx, currencyCode); err != nil {
		return nil, s.Reject(ctx, "record_rate", err)
	}

	er := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		CurrencyCode:   currencyCode,
		RateDate:       domain.DateOf(date),
		Rate:           rate,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}
	if err := s.repo.SaveExchangeRate(ctx, er); err != nil {
		return nil, s.Reject(ctx, "record_rate", err, slog.String("currency_code", currencyCode))
	}
	s.LogInfo(ctx, "Exchange rate recorded",
		slog.String("currency_code", currencyCode),
		slog.String("date", er.RateDate.Format(time.DateOnly)),
		slog.String("rate", rate.String()))
	return &er, nil
}

func (s *currencyService) ListRates(ctx context.Context, currencyCode string) ([]domain.ExchangeRate, error) {
	return s.repo.ListRates(ctx, strings.ToUpper(currencyCode))
}

func (s *currencyService) Quote(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (*domain.RateQuote, error) {
	fromCurrency, toCurrency = strings.ToUpper(fromCurrency), strings.ToUpper(toCurrency)
	asOf = domain.DateOf(asOf)
	fromRate, err := s.baseRate(ctx, fromCurrency, asOf)
	if err != nil {
		return nil, err
	}
	toRate, err := s.baseRate(ctx, toCurrency, asOf)
	if err != nil {
		return nil, err
	}
	return &domain.RateQuote{
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
		AsOf:         asOf,
		FromRate:     fromRate,
		ToRate:       toRate,
	}, nil
}

func (s *currencyService) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error) {
	target, err := s.repo.FindCurrencyByCode(ctx, strings.ToUpper(toCurrency))
	if err != nil {
		return decimal.Zero, err
	}
	q, err := s.Quote(ctx, fromCurrency, toCurrency, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Apply(amount, *target), nil
}

// baseRate is the latest rate dated on or before asOf. Never looks forward.
func (s *currencyService) baseRate(ctx context.Context, code string, asOf time.Time) (decimal.Decimal, error) {
	if _, err := s.repo.FindCurrencyByCode(ctx, code); err != nil {
		return decimal.Zero, err
	}
	if code == s.baseCode {
		return decimal.NewFromInt(1), nil
	}
	r, err := s.repo.FindRateOnOrBefore(ctx, code, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return r.Rate, nil
}
