package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// fiscalHandler handles HTTP requests related to the fiscal calendar.
type fiscalHandler struct {
	fiscalService portssvc.FiscalCalendarSvcFacade
}

func registerFiscalRoutes(rg *gin.RouterGroup, fiscalService portssvc.FiscalCalendarSvcFacade) {
	h := &fiscalHandler{fiscalService: fiscalService}

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/resolve", h.resolveDate)
		years.GET("/:fiscalYearID", h.getFiscalYear)
		years.POST("/:fiscalYearID/periods", h.addPeriod)
		years.POST("/:fiscalYearID/close", h.closeYear)
	}
	rg.POST("/fiscal-periods/:fiscalPeriodID/close", h.closePeriod)
}

// createFiscalYear godoc
// @Summary Create a fiscal year
// @Tags fiscal
// @Accept json
// @Produce json
// @Param year body dto.CreateFiscalYearRequest true "Fiscal year"
// @Success 201 {object} dto.FiscalYearResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid or overlapping range"
// @Security BearerAuth
// @Router /fiscal-years [post]
func (h *fiscalHandler) createFiscalYear(c *gin.Context) {
	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateFiscalYear")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	year, err := h.fiscalService.CreateFiscalYear(c.Request.Context(), req.Name, req.StartDate.Time(), req.EndDate.Time(), userID)
	if err != nil {
		respondError(c, err, "Failed to create fiscal year")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(year))
}

// listFiscalYears godoc
// @Summary List fiscal years with their periods
// @Tags fiscal
// @Produce json
// @Success 200 {array} dto.FiscalYearResponse
// @Security BearerAuth
// @Router /fiscal-years [get]
func (h *fiscalHandler) listFiscalYears(c *gin.Context) {
	years, err := h.fiscalService.ListFiscalYears(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list fiscal years")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFiscalYearResponse(years))
}

// getFiscalYear godoc
// @Summary Get a fiscal year
// @Tags fiscal
// @Produce json
// @Param fiscalYearID path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /fiscal-years/{fiscalYearID} [get]
func (h *fiscalHandler) getFiscalYear(c *gin.Context) {
	year, err := h.fiscalService.GetFiscalYear(c.Request.Context(), c.Param("fiscalYearID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// resolveDate godoc
// @Summary Resolve a date against the fiscal calendar
// @Tags fiscal
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.FiscalPositionResponse
// @Failure 409 {object} dto.ErrorResponse "No fiscal period covers the date"
// @Security BearerAuth
// @Router /fiscal-years/resolve [get]
func (h *fiscalHandler) resolveDate(c *gin.Context) {
	var params dto.ResolveDateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "Resolve query")
		return
	}
	date, _ := time.Parse(time.DateOnly, params.Date)

	pos, err := h.fiscalService.Resolve(c.Request.Context(), date)
	if err != nil {
		respondError(c, err, "Failed to resolve date")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalPositionResponse(pos))
}

// addPeriod godoc
// @Summary Add a period to a fiscal year
// @Tags fiscal
// @Accept json
// @Produce json
// @Param fiscalYearID path string true "Fiscal year ID"
// @Param period body dto.AddFiscalPeriodRequest true "Period"
// @Success 201 {object} dto.FiscalPeriodResponse
// @Failure 400 {object} dto.ErrorResponse "Overlapping or outside the year"
// @Failure 404 {object} dto.ErrorResponse "Unknown fiscal year"
// @Failure 409 {object} dto.ErrorResponse "Fiscal year closed"
// @Security BearerAuth
// @Router /fiscal-years/{fiscalYearID}/periods [post]
func (h *fiscalHandler) addPeriod(c *gin.Context) {
	var req dto.AddFiscalPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "AddPeriod")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	period, err := h.fiscalService.AddPeriod(c.Request.Context(), c.Param("fiscalYearID"), req.Name, req.StartDate.Time(), req.EndDate.Time(), userID)
	if err != nil {
		respondError(c, err, "Failed to add fiscal period")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFiscalPeriodResponse(period))
}

// closePeriod godoc
// @Summary Close a fiscal period
// @Description One-way; closing an already closed period succeeds
// @Tags fiscal
// @Produce json
// @Param fiscalPeriodID path string true "Fiscal period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /fiscal-periods/{fiscalPeriodID}/close [post]
func (h *fiscalHandler) closePeriod(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	period, err := h.fiscalService.ClosePeriod(c.Request.Context(), c.Param("fiscalPeriodID"), userID)
	if err != nil {
		respondError(c, err, "Failed to close fiscal period")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Fiscal period closed", slog.String("fiscal_period_id", period.FiscalPeriodID))
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// closeYear godoc
// @Summary Close a fiscal year and all of its periods
// @Tags fiscal
// @Produce json
// @Param fiscalYearID path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /fiscal-years/{fiscalYearID}/close [post]
func (h *fiscalHandler) closeYear(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	year, err := h.fiscalService.CloseYear(c.Request.Context(), c.Param("fiscalYearID"), userID)
	if err != nil {
		respondError(c, err, "Failed to close fiscal year")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Fiscal year closed", slog.String("fiscal_year_id", year.FiscalYearID))
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}
