package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/utils"
)

// currencyHandler handles HTTP requests related to currencies and exchange rates.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: cs}
}

// registerCurrencyRoutes registers routes related to currencies and their rate tables.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/base", h.getBaseCurrency)
		currencies.GET("/:currencyCode", h.getCurrency)
		currencies.DELETE("/:currencyCode", h.deleteCurrency)
		currencies.POST("/:currencyCode/rates", h.recordRate)
		currencies.GET("/:currencyCode/rates", h.listRates)
	}

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("/quote", h.quote)
		rates.GET("/convert", h.convert)
	}
}

// createCurrency godoc
// @Summary Register a currency
// @Tags currencies
// @Accept json
// @Produce json
// @Param currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or duplicate code"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateCurrency")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), req.ToDomain(), userID)
	if err != nil {
		respondError(c, err, "Failed to create currency")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary List currencies
// @Tags currencies
// @Produce json
// @Success 200 {array} dto.CurrencyResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list currencies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// getBaseCurrency godoc
// @Summary Get the base currency
// @Description The reference currency every rate is expressed in
// @Tags currencies
// @Produce json
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} dto.ErrorResponse "Base currency not registered"
// @Security BearerAuth
// @Router /currencies/base [get]
func (h *currencyHandler) getBaseCurrency(c *gin.Context) {
	currency, err := h.currencyService.BaseCurrency(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve base currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// getCurrency godoc
// @Summary Get a currency by code
// @Tags currencies
// @Produce json
// @Param currencyCode path string true "ISO 4217 code"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /currencies/{currencyCode} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), c.Param("currencyCode"))
	if err != nil {
		respondError(c, err, "Failed to retrieve currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// deleteCurrency godoc
// @Summary Delete a currency
// @Description Fails while the currency is the base or is referenced by rates, lines, invoices or payments
// @Tags currencies
// @Param currencyCode path string true "ISO 4217 code"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Currency in use"
// @Security BearerAuth
// @Router /currencies/{currencyCode} [delete]
func (h *currencyHandler) deleteCurrency(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	code := c.Param("currencyCode")
	if err := h.currencyService.DeleteCurrency(c.Request.Context(), code); err != nil {
		respondError(c, err, "Failed to delete currency")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Currency deleted", slog.String("currency_code", code))
	c.Status(http.StatusNoContent)
}

// recordRate godoc
// @Summary Record an exchange rate
// @Description Stores the value of one unit of the currency in the base currency, effective from the date
// @Tags currencies
// @Accept json
// @Produce json
// @Param currencyCode path string true "ISO 4217 code"
// @Param rate body dto.RecordRateRequest true "Rate"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid or duplicate rate"
// @Failure 404 {object} dto.ErrorResponse "Unknown currency"
// @Security BearerAuth
// @Router /currencies/{currencyCode}/rates [post]
func (h *currencyHandler) recordRate(c *gin.Context) {
	var req dto.RecordRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "RecordRate")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	rate, err := h.currencyService.RecordRate(c.Request.Context(), c.Param("currencyCode"), req.Date.Time(), req.Rate, userID)
	if err != nil {
		respondError(c, err, "Failed to record exchange rate")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// listRates godoc
// @Summary List the rate table of a currency
// @Tags currencies
// @Produce json
// @Param currencyCode path string true "ISO 4217 code"
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /currencies/{currencyCode}/rates [get]
func (h *currencyHandler) listRates(c *gin.Context) {
	rates, err := h.currencyService.ListRates(c.Request.Context(), c.Param("currencyCode"))
	if err != nil {
		respondError(c, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// quote godoc
// @Summary Resolve the rates in force on a date
// @Tags exchange-rates
// @Produce json
// @Param from query string true "Source currency"
// @Param to query string true "Target currency"
// @Param asOf query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown currency or no rate available"
// @Security BearerAuth
// @Router /exchange-rates/quote [get]
func (h *currencyHandler) quote(c *gin.Context) {
	var params dto.QuoteParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "Quote query")
		return
	}
	q, err := h.currencyService.Quote(c.Request.Context(), params.From, params.To, params.AsOf)
	if err != nil {
		respondError(c, err, "Failed to quote exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToQuoteResponse(q))
}

// convert godoc
// @Summary Convert an amount
// @Description Converts at the rates in force on asOf, rounded half away from zero to the target precision
// @Tags exchange-rates
// @Produce json
// @Param from query string true "Source currency"
// @Param to query string true "Target currency"
// @Param asOf query string true "Date (YYYY-MM-DD)"
// @Param amount query string true "Decimal amount"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown currency or no rate available"
// @Security BearerAuth
// @Router /exchange-rates/convert [get]
func (h *currencyHandler) convert(c *gin.Context) {
	var params dto.QuoteParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "Convert query")
		return
	}
	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		respondBindError(c, err, "Convert amount")
		return
	}

	ctx := c.Request.Context()
	converted, err := h.currencyService.Convert(ctx, amount, params.From, params.To, params.AsOf)
	if err != nil {
		respondError(c, err, "Failed to convert amount")
		return
	}
	target, err := h.currencyService.GetCurrencyByCode(ctx, params.To)
	if err != nil {
		respondError(c, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, dto.ConversionResponse{
		FromCurrency: params.From,
		ToCurrency:   target.CurrencyCode,
		AsOf:         dto.NewDate(params.AsOf),
		Amount:       amount.String(),
		Converted:    utils.FormatWithCurrencyPrecision(converted, *target),
	})
}
