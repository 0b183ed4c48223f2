package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// invoiceHandler registers invoices and settles them.
type invoiceHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func registerInvoiceRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := &invoiceHandler{reconciliationService: reconciliationService}

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("/:invoiceID", h.getInvoiceState)
		invoices.POST("/:invoiceID/payments", h.applyPayment)
	}
	rg.POST("/payments/:paymentID/reverse", h.reversePayment)
}

// createInvoice godoc
// @Summary Create an invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice"
// @Success 201 {object} dto.InvoiceStateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or duplicate number"
// @Failure 404 {object} dto.ErrorResponse "Unknown partner or currency"
// @Failure 409 {object} dto.ErrorResponse "Period closed or no fiscal period"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateInvoice")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	invoice, err := h.reconciliationService.CreateInvoice(ctx, req.ToDomain(), userID)
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}
	middleware.GetLoggerFromCtx(ctx).Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("number", invoice.Number))

	state, err := h.reconciliationService.GetInvoiceState(ctx, invoice.InvoiceID)
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceStateResponse(state))
}

// getInvoiceState godoc
// @Summary Get an invoice with its settlement state
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceStateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoiceState(c *gin.Context) {
	state, err := h.reconciliationService.GetInvoiceState(c.Request.Context(), c.Param("invoiceID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceStateResponse(state))
}

// applyPayment godoc
// @Summary Apply a payment to an invoice
// @Description Converts the payment into the invoice currency as of its date and accumulates it
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param payment body dto.ApplyPaymentRequest true "Payment"
// @Success 200 {object} dto.InvoiceStateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid payment amount"
// @Failure 404 {object} dto.ErrorResponse "Unknown invoice or no rate available"
// @Failure 409 {object} dto.ErrorResponse "Period closed or settlement conflict"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/payments [post]
func (h *invoiceHandler) applyPayment(c *gin.Context) {
	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "ApplyPayment")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	state, err := h.reconciliationService.ApplyPayment(c.Request.Context(), c.Param("invoiceID"), req.ToDomain(userID))
	if err != nil {
		respondError(c, err, "Failed to apply payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceStateResponse(state))
}

// reversePayment godoc
// @Summary Reverse a payment
// @Description Appends a negative payment undoing the original applied amount
// @Tags invoices
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} dto.InvoiceStateResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown payment"
// @Failure 409 {object} dto.ErrorResponse "Already reversed"
// @Security BearerAuth
// @Router /payments/{paymentID}/reverse [post]
func (h *invoiceHandler) reversePayment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	state, err := h.reconciliationService.ReversePayment(c.Request.Context(), c.Param("paymentID"), userID)
	if err != nil {
		respondError(c, err, "Failed to reverse payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceStateResponse(state))
}
