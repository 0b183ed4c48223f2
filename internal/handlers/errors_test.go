package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.NewValidationError(apperrors.CodeEmptyEntry, "no lines"), http.StatusBadRequest},
		{"unknown reference", apperrors.NewReferenceError(apperrors.CodeUnknownJournal, "XX"), http.StatusNotFound},
		{"no rate", apperrors.NewReferenceError(apperrors.CodeNoRateAvailable, "USD"), http.StatusNotFound},
		{"in use", apperrors.NewReferenceError(apperrors.CodeCurrencyInUse, "USD"), http.StatusConflict},
		{"state", apperrors.NewStateError(apperrors.CodeNoFiscalPeriod, "2031-01-01"), http.StatusConflict},
		{"conflict", apperrors.NewConflictError(apperrors.CodeSettlementConflict, "retry"), http.StatusConflict},
		{"wrapped", fmt.Errorf("outer: %w", apperrors.PeriodClosed("H1")), http.StatusConflict},
		{"internal", apperrors.NewInternalError("db", errors.New("boom")), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestIsCurrencyCode(t *testing.T) {
	RegisterValidators()
	type req struct {
		Code string `binding:"currency"`
	}
	for code, ok := range map[string]bool{"EUR": true, "usd": true, "EU": false, "EURO": false, "E1R": false, "": false} {
		err := binding.Validator.ValidateStruct(req{Code: code})
		assert.Equal(t, ok, err == nil, code)
	}
}
