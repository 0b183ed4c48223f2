package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is a row of the currencies table.
type Currency struct {
	CurrencyCode string `db:"currency_code"`
	Symbol       string `db:"symbol"`
	Name         string `db:"name"`
	MinorUnits   int32  `db:"minor_units"`
	AuditFields
}

// ExchangeRate stores the base-currency value of one unit of CurrencyCode from RateDate on.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	CurrencyCode   string          `db:"currency_code"`
	RateDate       time.Time       `db:"rate_date"`
	Rate           decimal.Decimal `db:"rate"`
	AuditFields
}
