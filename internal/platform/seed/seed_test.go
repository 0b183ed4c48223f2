package seed_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/platform/seed"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/memory"
)

const sample = `
currencies:
  - {code: EUR, name: Euro, symbol: "€"}
  - {code: USD, name: US Dollar, symbol: "$"}
  - {code: JPY, name: Yen, minor_units: 0}
rates:
  - {currency: USD, date: "2024-01-01", rate: "0.90"}
accounts:
  - {code: "512", name: Bank, type: ASSET}
  - {code: "707", name: Sales, type: REVENUE, vat_applicable: true}
journals:
  - {code: SAL, name: Sales}
vat_rates:
  - {name: Standard, rate: "21"}
partners:
  - {name: ACME, email: billing@acme.test, customer: true}
fiscal_years:
  - name: "2024"
    start: "2024-01-01"
    end: "2024-12-31"
    periods:
      - {name: Q1, start: "2024-01-01", end: "2024-03-31"}
      - {name: Q2, start: "2024-04-01", end: "2024-06-30"}
`

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown key", doc: "currencies:\n  - {code: EUR, name: Euro, digits: 2}\n"},
		{name: "bad account type", doc: "accounts:\n  - {code: \"1\", name: X, type: INCOME}\n"},
		{name: "bad date", doc: "rates:\n  - {currency: USD, date: 01/02/2024, rate: \"1\"}\n"},
		{name: "non numeric rate", doc: "vat_rates:\n  - {name: Std, rate: twenty}\n"},
		{name: "missing name", doc: "journals:\n  - {code: SAL}\n"},
		{name: "not yaml", doc: "currencies: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seed.Load(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EmptyDocument(t *testing.T) {
	file, err := seed.Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, file.Currencies)
}

func TestSeeder_ApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := services.NewServiceContainer(&config.Config{BaseCurrency: "EUR", SettlementMaxRetries: 5},
		memory.NewRepositoryProvider(store))

	file, err := seed.Load(strings.NewReader(sample))
	require.NoError(t, err)

	seeder := seed.NewSeeder(svc, "seed")
	first, err := seeder.Apply(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, 12, first.Created)
	assert.Equal(t, 0, first.Skipped)

	second, err := seeder.Apply(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 12, second.Skipped)

	jpy, err := svc.Currency.GetCurrencyByCode(ctx, "JPY")
	require.NoError(t, err)
	assert.Equal(t, int32(0), jpy.MinorUnits)
	usd, err := svc.Currency.GetCurrencyByCode(ctx, "USD")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMinorUnits, usd.MinorUnits)

	years, err := svc.Fiscal.ListFiscalYears(ctx)
	require.NoError(t, err)
	require.Len(t, years, 1)
	assert.Len(t, years[0].Periods, 2)

	ok, err := svc.Fiscal.IsPostable(ctx, domain.NewDate(2024, 2, 10))
	require.NoError(t, err)
	assert.True(t, ok)

	converted, err := svc.Currency.Convert(ctx, decimal.NewFromInt(100), "USD", "EUR", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, converted.Equal(decimal.RequireFromString("90.00")), converted.String())
}

func TestSeeder_StopsOnRealFailure(t *testing.T) {
	ctx := context.Background()
	svc := services.NewServiceContainer(&config.Config{BaseCurrency: "EUR", SettlementMaxRetries: 5},
		memory.NewRepositoryProvider(memory.NewStore()))

	file, err := seed.Load(strings.NewReader("rates:\n  - {currency: USD, date: \"2024-01-01\", rate: \"0.9\"}\n"))
	require.NoError(t, err)

	_, err = seed.NewSeeder(svc, "seed").Apply(ctx, file)
	assert.ErrorContains(t, err, "rate USD 2024-01-01")
}
