package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func (s *Store) SaveCurrency(_ context.Context, currency domain.Currency) error {
	return s.write(func(next *state) error {
		if _, exists := next.currencies[currency.CurrencyCode]; exists {
			return apperrors.NewValidationError(apperrors.CodeDuplicateCurrency, "currency %s already exists", currency.CurrencyCode)
		}
		next.currencies = cloned(next.currencies)
		next.currencies[currency.CurrencyCode] = currency
		return nil
	})
}

func (s *Store) FindCurrencyByCode(_ context.Context, code string) (*domain.Currency, error) {
	c, ok := s.read().currencies[code]
	if !ok {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownCurrency, "currency %s not found", code)
	}
	return &c, nil
}

func (s *Store) ListCurrencies(_ context.Context) ([]domain.Currency, error) {
	st := s.read()
	out := make([]domain.Currency, 0, len(st.currencies))
	for _, c := range st.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out, nil
}

func (s *Store) DeleteCurrency(_ context.Context, code string) error {
	return s.write(func(next *state) error {
		if _, ok := next.currencies[code]; !ok {
			return apperrors.NewReferenceError(apperrors.CodeUnknownCurrency, "currency %s not found", code)
		}
		if next.currencyInUse(code) {
			return apperrors.NewReferenceError(apperrors.CodeCurrencyInUse, "currency %s is referenced", code)
		}
		next.currencies = cloned(next.currencies)
		delete(next.currencies, code)
		return nil
	})
}

func (st *state) currencyInUse(code string) bool {
	if len(st.rates[code]) > 0 {
		return true
	}
	for _, e := range st.entries {
		for _, l := range e.Lines {
			if l.OriginalCurrency == code {
				return true
			}
		}
	}
	for _, inv := range st.invoices {
		if inv.CurrencyCode == code {
			return true
		}
	}
	for _, p := range st.paymentIndex {
		if p.CurrencyCode == code {
			return true
		}
	}
	return false
}

func (s *Store) SaveExchangeRate(_ context.Context, rate domain.ExchangeRate) error {
	return s.write(func(next *state) error {
		existing := next.rates[rate.CurrencyCode]
		i, found := slices.BinarySearchFunc(existing, rate.RateDate, func(r domain.ExchangeRate, d time.Time) int {
			return r.RateDate.Compare(d)
		})
		if found {
			return apperrors.NewValidationError(apperrors.CodeDuplicateRate, "rate for %s on %s already recorded",
				rate.CurrencyCode, rate.RateDate.Format(time.DateOnly))
		}
		next.rates = cloned(next.rates)
		next.rates[rate.CurrencyCode] = slices.Insert(slices.Clone(existing), i, rate)
		return nil
	})
}

func (s *Store) FindRateOnOrBefore(_ context.Context, currencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	rates := s.read().rates[currencyCode]
	// first index with RateDate > asOf
	i := sort.Search(len(rates), func(i int) bool { return rates[i].RateDate.After(asOf) })
	if i == 0 {
		return nil, apperrors.NewReferenceError(apperrors.CodeNoRateAvailable, "no %s rate on or before %s",
			currencyCode, asOf.Format(time.DateOnly))
	}
	r := rates[i-1]
	return &r, nil
}

func (s *Store) ListRates(_ context.Context, currencyCode string) ([]domain.ExchangeRate, error) {
	return slices.Clone(s.read().rates[currencyCode]), nil
}
