package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// statusFor maps an error to its HTTP status: validation 400, missing references 404,
// references still in use 409, state and concurrency conflicts 409, anything else 500.
func statusFor(err error) int {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindReference:
		if errors.Is(err, apperrors.ErrInUse) {
			return http.StatusConflict
		}
		return http.StatusNotFound
	case apperrors.KindState, apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body. Internal failures are logged with the cause and
// reported with failMsg only.
func respondError(c *gin.Context, err error, failMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(failMsg, slog.String("error", err.Error()))
		c.JSON(status, dto.ErrorResponse{Error: failMsg, Kind: string(apperrors.KindInternal), Code: string(apperrors.CodeInternal)})
		return
	}

	appErr, _ := apperrors.AsAppError(err)
	logger.Warn("Request rejected", slog.String("code", string(appErr.Code)), slog.String("error", err.Error()))
	body := dto.ErrorResponse{Error: appErr.Error(), Kind: string(appErr.Kind), Code: string(appErr.Code)}
	if appErr.LineIndex >= 0 {
		idx := appErr.LineIndex
		body.LineIndex = &idx
	}
	if appErr.Code == apperrors.CodeUnbalancedEntry {
		body.Amount = appErr.Amount.String()
	}
	c.JSON(status, body)
}

// respondBindError reports a malformed body or query string.
func respondBindError(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request format: " + err.Error(),
		Kind:  string(apperrors.KindValidation),
		Code:  string(apperrors.CodeInvalidInput),
	})
}

// requireUser returns the authenticated actor or aborts with 401.
func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
