package utils

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with exactly the currency's minor units.
// Example: amount 12.3 with EUR (2 minor units) returns "12.30"
// Example: amount 1200 with JPY (0 minor units) returns "1200"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.StringFixed(currency.MinorUnits)
}

// FormatWithPrecision formats an amount with the given number of decimal places.
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.StringFixed(precision)
}
