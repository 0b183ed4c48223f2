package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// referenceHandler serves journals, partners and VAT rates.
type referenceHandler struct {
	referenceService portssvc.ReferenceSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

func registerReferenceRoutes(rg *gin.RouterGroup, referenceService portssvc.ReferenceSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := &referenceHandler{referenceService: referenceService, reportingService: reportingService}

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:code", h.getJournal)
	}

	partners := rg.Group("/partners")
	{
		partners.POST("", h.createPartner)
		partners.GET("", h.listPartners)
		partners.GET("/:partnerID", h.getPartner)
		partners.DELETE("/:partnerID", h.deletePartner)
		partners.GET("/:partnerID/open-items", h.getOpenItems)
	}

	vat := rg.Group("/vat-rates")
	{
		vat.POST("", h.createVATRate)
		vat.GET("", h.listVATRates)
		vat.GET("/:vatRateID", h.getVATRate)
	}
}

// createJournal godoc
// @Summary Create a journal
// @Tags journals
// @Accept json
// @Produce json
// @Param journal body dto.CreateJournalRequest true "Journal"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or duplicate code"
// @Security BearerAuth
// @Router /journals [post]
func (h *referenceHandler) createJournal(c *gin.Context) {
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateJournal")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	journal, err := h.referenceService.CreateJournal(c.Request.Context(), req.Code, req.Name, userID)
	if err != nil {
		respondError(c, err, "Failed to create journal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journals
// @Tags journals
// @Produce json
// @Success 200 {array} dto.JournalResponse
// @Security BearerAuth
// @Router /journals [get]
func (h *referenceHandler) listJournals(c *gin.Context) {
	journals, err := h.referenceService.ListJournals(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalResponse(journals))
}

// getJournal godoc
// @Summary Get a journal by code
// @Tags journals
// @Produce json
// @Param code path string true "Journal code"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journals/{code} [get]
func (h *referenceHandler) getJournal(c *gin.Context) {
	journal, err := h.referenceService.GetJournal(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// createPartner godoc
// @Summary Create a partner
// @Tags partners
// @Accept json
// @Produce json
// @Param partner body dto.CreatePartnerRequest true "Partner"
// @Success 201 {object} dto.PartnerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /partners [post]
func (h *referenceHandler) createPartner(c *gin.Context) {
	var req dto.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreatePartner")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	partner, err := h.referenceService.CreatePartner(c.Request.Context(), req.ToDomain(), userID)
	if err != nil {
		respondError(c, err, "Failed to create partner")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPartnerResponse(partner))
}

// listPartners godoc
// @Summary List partners
// @Tags partners
// @Produce json
// @Success 200 {array} dto.PartnerResponse
// @Security BearerAuth
// @Router /partners [get]
func (h *referenceHandler) listPartners(c *gin.Context) {
	partners, err := h.referenceService.ListPartners(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list partners")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPartnerResponse(partners))
}

// getPartner godoc
// @Summary Get a partner
// @Tags partners
// @Produce json
// @Param partnerID path string true "Partner ID"
// @Success 200 {object} dto.PartnerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /partners/{partnerID} [get]
func (h *referenceHandler) getPartner(c *gin.Context) {
	partner, err := h.referenceService.GetPartner(c.Request.Context(), c.Param("partnerID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve partner")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

// deletePartner godoc
// @Summary Delete a partner
// @Description Fails while invoices or posted lines reference the partner
// @Tags partners
// @Param partnerID path string true "Partner ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Partner in use"
// @Security BearerAuth
// @Router /partners/{partnerID} [delete]
func (h *referenceHandler) deletePartner(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	if err := h.referenceService.DeletePartner(c.Request.Context(), c.Param("partnerID")); err != nil {
		respondError(c, err, "Failed to delete partner")
		return
	}
	c.Status(http.StatusNoContent)
}

// getOpenItems godoc
// @Summary List a partner's open items
// @Description Invoices with an outstanding balance, by due date then number, with totals per currency
// @Tags partners
// @Produce json
// @Param partnerID path string true "Partner ID"
// @Success 200 {object} dto.OpenItemsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /partners/{partnerID}/open-items [get]
func (h *referenceHandler) getOpenItems(c *gin.Context) {
	report, err := h.reportingService.OpenItems(c.Request.Context(), c.Param("partnerID"))
	if err != nil {
		respondError(c, err, "Failed to list open items")
		return
	}
	c.JSON(http.StatusOK, dto.ToOpenItemsResponse(report))
}

// createVATRate godoc
// @Summary Create a VAT rate
// @Tags vat-rates
// @Accept json
// @Produce json
// @Param rate body dto.CreateVATRateRequest true "VAT rate"
// @Success 201 {object} dto.VATRateResponse
// @Failure 400 {object} dto.ErrorResponse "Rate outside [0, 100]"
// @Security BearerAuth
// @Router /vat-rates [post]
func (h *referenceHandler) createVATRate(c *gin.Context) {
	var req dto.CreateVATRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateVATRate")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	rate, err := h.referenceService.CreateVATRate(c.Request.Context(), req.Name, req.Rate, userID)
	if err != nil {
		respondError(c, err, "Failed to create VAT rate")
		return
	}
	c.JSON(http.StatusCreated, dto.ToVATRateResponse(rate))
}

// listVATRates godoc
// @Summary List VAT rates
// @Tags vat-rates
// @Produce json
// @Success 200 {array} dto.VATRateResponse
// @Security BearerAuth
// @Router /vat-rates [get]
func (h *referenceHandler) listVATRates(c *gin.Context) {
	rates, err := h.referenceService.ListVATRates(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list VAT rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListVATRateResponse(rates))
}

// getVATRate godoc
// @Summary Get a VAT rate
// @Tags vat-rates
// @Produce json
// @Param vatRateID path string true "VAT rate ID"
// @Success 200 {object} dto.VATRateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /vat-rates/{vatRateID} [get]
func (h *referenceHandler) getVATRate(c *gin.Context) {
	rate, err := h.referenceService.GetVATRate(c.Request.Context(), c.Param("vatRateID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve VAT rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToVATRateResponse(rate))
}
