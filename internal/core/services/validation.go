package services

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

var validate = validator.New()

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationError(apperrors.CodeInvalidInput, "%s is required", field)
	}
	return nil
}

func isCurrencyCode(code string) bool {
	return validate.Var(code, domain.CurrencyCodeRule) == nil
}
