package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService   portssvc.AccountSvcFacade
	reportingService portssvc.ReportingSvcFacade
	currencyService  portssvc.CurrencyReaderSvc
	today            func() dto.Date
}

// registerAccountRoutes registers routes related to accounts, including per-account reports.
func registerAccountRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, today func() dto.Date) {
	h := &accountHandler{
		accountService:   services.Account,
		reportingService: services.Reporting,
		currencyService:  services.Currency,
		today:            today,
	}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:code", h.getAccount)
		accounts.POST("/:code/deactivate", h.deactivateAccount)
		accounts.DELETE("/:code", h.deleteAccount)
		accounts.GET("/:code/balance", h.getAccountBalance)
		accounts.GET("/:code/ledger", h.getAccountLedger)
	}
}

// createAccount godoc
// @Summary Register an account
// @Description Adds an account to the chart; the code must be unique
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or duplicate code"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateAccount")
		return
	}
	creatorUserID, ok := requireUser(c)
	if !ok {
		return
	}

	logger.Info("Received request to create account", slog.String("account_code", req.Code), slog.String("account_type", string(req.AccountType)))

	newAccount, err := h.accountService.RegisterAccount(c.Request.Context(), req.ToDomain(), creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", newAccount.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(newAccount))
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccount godoc
// @Summary Get an account by code
// @Tags accounts
// @Produce  json
// @Param   code path string true "Account code"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{code} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Further postings to the account are rejected; posted history is kept
// @Tags accounts
// @Produce  json
// @Param   code path string true "Account code"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{code}/deactivate [post]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	account, err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("code"), userID)
	if err != nil {
		respondError(c, err, "Failed to deactivate account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Only accounts no posted line references can be deleted
// @Tags accounts
// @Param   code path string true "Account code"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Account in use"
// @Security BearerAuth
// @Router /accounts/{code} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := requireUser(c); !ok {
		return
	}
	code := c.Param("code")
	if err := h.accountService.DeleteAccount(c.Request.Context(), code); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}
	logger.Info("Account deleted successfully", slog.String("account_code", code))
	c.Status(http.StatusNoContent)
}

// getAccountBalance godoc
// @Summary Get account balance
// @Description Normal-side balance over entries dated on or before asOf (default today)
// @Tags accounts
// @Produce json
// @Param code path string true "Account code"
// @Param asOf query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{code}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "AccountBalance query")
		return
	}
	asOf := dto.NewDate(params.AsOf)
	if params.AsOf.IsZero() {
		asOf = h.today()
	}

	code := c.Param("code")
	balance, err := h.reportingService.AccountBalance(c.Request.Context(), code, asOf.Time())
	if err != nil {
		respondError(c, err, "Failed to calculate balance")
		return
	}
	c.JSON(http.StatusOK, dto.AccountBalanceResponse{AccountCode: code, AsOf: asOf, Balance: balance})
}

// getAccountLedger godoc
// @Summary Get an account ledger
// @Description Lines dated within [from, to] with opening, running and closing balances
// @Tags accounts
// @Produce json
// @Param code path string true "Account code"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountLedgerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid date range"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{code}/ledger [get]
func (h *accountHandler) getAccountLedger(c *gin.Context) {
	var params dto.LedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "AccountLedger query")
		return
	}

	ctx := c.Request.Context()
	report, err := h.reportingService.AccountLedger(ctx, c.Param("code"), params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to build account ledger")
		return
	}
	base, err := h.currencyService.BaseCurrency(ctx)
	if err != nil {
		respondError(c, err, "Failed to build account ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountLedgerResponse(report, *base))
}
