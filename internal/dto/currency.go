package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest defines the structure for creating a new currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,currency"`
	Symbol       string `json:"symbol" binding:"max=8"`
	Name         string `json:"name" binding:"required"`
	MinorUnits   *int32 `json:"minorUnits" binding:"omitempty,min=0,max=8"` // defaults to 2
}

// ToDomain converts the request into a domain currency.
func (r CreateCurrencyRequest) ToDomain() domain.Currency {
	minor := domain.DefaultMinorUnits
	if r.MinorUnits != nil {
		minor = *r.MinorUnits
	}
	return domain.Currency{
		CurrencyCode: r.CurrencyCode,
		Symbol:       r.Symbol,
		Name:         r.Name,
		MinorUnits:   minor,
	}
}

// CurrencyResponse defines the structure for API responses containing currency details.
type CurrencyResponse struct {
	CurrencyCode  string    `json:"currencyCode"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	MinorUnits    int32     `json:"minorUnits"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  c.CurrencyCode,
		Symbol:        c.Symbol,
		Name:          c.Name,
		MinorUnits:    c.MinorUnits,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}

func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return res
}

// RecordRateRequest records the value of one unit of the path currency in the base currency.
type RecordRateRequest struct {
	Date Date            `json:"date" binding:"required"`
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyCode   string          `json:"currencyCode"`
	Date           Date            `json:"date"`
	Rate           decimal.Decimal `json:"rate"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		CurrencyCode:   rate.CurrencyCode,
		Date:           NewDate(rate.RateDate),
		Rate:           rate.Rate,
		CreatedAt:      rate.CreatedAt,
		CreatedBy:      rate.CreatedBy,
	}
}

func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	res := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		res[i] = ToExchangeRateResponse(&rates[i])
	}
	return res
}

// QuoteParams are the query parameters of the quote and convert endpoints.
type QuoteParams struct {
	From   string    `form:"from" binding:"required,currency"`
	To     string    `form:"to" binding:"required,currency"`
	AsOf   time.Time `form:"asOf" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	Amount string    `form:"amount" binding:"omitempty,numeric"`
}

// QuoteResponse carries both base-relative rates and the effective cross rate.
type QuoteResponse struct {
	FromCurrency  string          `json:"fromCurrency"`
	ToCurrency    string          `json:"toCurrency"`
	AsOf          Date            `json:"asOf"`
	FromRate      decimal.Decimal `json:"fromRate"`
	ToRate        decimal.Decimal `json:"toRate"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`
}

func ToQuoteResponse(q *domain.RateQuote) QuoteResponse {
	return QuoteResponse{
		FromCurrency:  q.FromCurrency,
		ToCurrency:    q.ToCurrency,
		AsOf:          NewDate(q.AsOf),
		FromRate:      q.FromRate,
		ToRate:        q.ToRate,
		EffectiveRate: q.Effective(),
	}
}

// ConversionResponse is an amount converted and formatted at the target currency precision.
type ConversionResponse struct {
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
	AsOf         Date   `json:"asOf"`
	Amount       string `json:"amount"`
	Converted    string `json:"converted"`
}
