package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// reportingHandler serves ledger-wide reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	currencyService  portssvc.CurrencyReaderSvc
	today            func() dto.Date
}

func registerReportingRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, today func() dto.Date) {
	h := &reportingHandler{reportingService: services.Reporting, currencyService: services.Currency, today: today}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
	}
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Per-account debit and credit totals over entries dated on or before asOf (default today)
// @Tags reports
// @Produce json
// @Param asOf query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "TrialBalance query")
		return
	}
	asOf := dto.NewDate(params.AsOf)
	if params.AsOf.IsZero() {
		asOf = h.today()
	}

	ctx := c.Request.Context()
	report, err := h.reportingService.TrialBalance(ctx, asOf.Time())
	if err != nil {
		respondError(c, err, "Failed to build trial balance")
		return
	}
	base, err := h.currencyService.BaseCurrency(ctx)
	if err != nil {
		respondError(c, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report, *base))
}
