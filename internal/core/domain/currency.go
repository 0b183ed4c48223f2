package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyCodeRule is the validator tag a currency code must satisfy.
const CurrencyCodeRule = "len=3,alpha"

// DefaultMinorUnits is used when a currency is registered without an explicit precision.
const DefaultMinorUnits int32 = 2

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	MinorUnits   int32  `json:"minorUnits"`   // digits after the decimal point
	AuditFields
}

// Round rounds an amount half away from zero to the currency precision.
func (c Currency) Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(c.MinorUnits)
}

// FitsPrecision reports whether amount has no digits beyond the currency precision.
func (c Currency) FitsPrecision(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(c.MinorUnits))
}

// ExchangeRate is the value of one unit of CurrencyCode expressed in the base currency,
// effective from RateDate until the next recorded date.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyCode   string          `json:"currencyCode"`
	RateDate       time.Time       `json:"rateDate"`
	Rate           decimal.Decimal `json:"rate"`
	AuditFields
}

// RateQuote holds the two base-relative rates needed to convert between currencies.
type RateQuote struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	AsOf         time.Time       `json:"asOf"`
	FromRate     decimal.Decimal `json:"fromRate"` // base per unit of FromCurrency
	ToRate       decimal.Decimal `json:"toRate"`   // base per unit of ToCurrency
}

// Effective returns the number of ToCurrency units per FromCurrency unit.
func (q RateQuote) Effective() decimal.Decimal {
	if q.FromRate.Equal(q.ToRate) {
		return decimal.NewFromInt(1)
	}
	return q.FromRate.Div(q.ToRate)
}

// Exact converts amount without rounding.
func (q RateQuote) Exact(amount decimal.Decimal) decimal.Decimal {
	if q.FromCurrency == q.ToCurrency {
		return amount
	}
	return amount.Mul(q.FromRate).Div(q.ToRate)
}

// Apply converts amount and rounds it to the target currency precision.
func (q RateQuote) Apply(amount decimal.Decimal, target Currency) decimal.Decimal {
	if q.FromCurrency == q.ToCurrency {
		return amount
	}
	return target.Round(q.Exact(amount))
}
