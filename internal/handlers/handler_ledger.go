package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// ledgerHandler posts, reverses and reads journal entries.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.postEntry)
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID/reverse", h.reverseEntry)
	}
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Validates the entry (lines, balance, accounts, fiscal period) and commits it atomically
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.PostEntryRequest true "Draft entry"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} dto.ErrorResponse "Empty, invalid or unbalanced entry"
// @Failure 404 {object} dto.ErrorResponse "Unknown account, journal, currency or rate"
// @Failure 409 {object} dto.ErrorResponse "Period closed or no fiscal period"
// @Security BearerAuth
// @Router /entries [post]
func (h *ledgerHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "PostEntry")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	logger.Info("Received request to post entry", slog.String("journal_code", req.JournalCode), slog.Int("line_count", len(req.Lines)))

	entry, err := h.ledgerService.PostEntry(c.Request.Context(), req.ToDomain(userID))
	if err != nil {
		respondError(c, err, "Failed to post entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a posted entry
// @Tags entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /entries/{entryID} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	entry, err := h.ledgerService.GetEntry(c.Request.Context(), c.Param("entryID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted entry
// @Description Posts the debit/credit mirror of the entry, dated as requested or on the original date
// @Tags entries
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param reversal body dto.ReverseEntryRequest false "Optional reversal date"
// @Success 201 {object} dto.EntryResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown entry"
// @Failure 409 {object} dto.ErrorResponse "Already reversed or period closed"
// @Security BearerAuth
// @Router /entries/{entryID}/reverse [post]
func (h *ledgerHandler) reverseEntry(c *gin.Context) {
	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err, "ReverseEntry")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	reversal, err := h.ledgerService.ReverseEntry(c.Request.Context(), c.Param("entryID"), dto.OptionalDate(req.Date), userID)
	if err != nil {
		respondError(c, err, "Failed to reverse entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}
