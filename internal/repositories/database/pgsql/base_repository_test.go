package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		constraint string
		want       apperrors.Code
	}{
		{"overlapping year", pgExclusionViolation, "fiscal_years_no_overlap", apperrors.CodeOverlappingPeriod},
		{"overlapping period", pgExclusionViolation, "fiscal_periods_no_overlap", apperrors.CodeOverlappingPeriod},
		{"duplicate currency", pgUniqueViolation, "currencies_pkey", apperrors.CodeDuplicateCurrency},
		{"duplicate rate", pgUniqueViolation, "exchange_rates_currency_date_key", apperrors.CodeDuplicateRate},
		{"duplicate account", pgUniqueViolation, "accounts_code_key", apperrors.CodeDuplicateAccountCode},
		{"duplicate journal", pgUniqueViolation, "journals_pkey", apperrors.CodeDuplicateJournalCode},
		{"duplicate invoice", pgUniqueViolation, "invoices_number_key", apperrors.CodeDuplicateInvoiceNumber},
		{"second reversal", pgUniqueViolation, "journal_entries_reversal_of_key", apperrors.CodeEntryAlreadyReversed},
		{"second payment reversal", pgUniqueViolation, "payments_reverses_payment_key", apperrors.CodePaymentAlreadyReversed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fmt.Errorf("exec: %w", &pgconn.PgError{Code: tt.code, ConstraintName: tt.constraint})
			appErr := translate(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.want, appErr.Code)
		})
	}

	assert.Nil(t, translate(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "other"}))
	assert.Nil(t, translate(errors.New("boom")))
}

func TestWrap(t *testing.T) {
	assert.NoError(t, wrap(nil, "unused"))

	known := apperrors.NewStateError(apperrors.CodePeriodClosed, "closed")
	assert.Same(t, known, wrap(known, "unused"))

	err := wrap(errors.New("connection reset"), "failed to list accounts")
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	assert.Contains(t, err.Error(), "connection reset")

	err = notFound(pgx.ErrNoRows, apperrors.CodeUnknownAccount, "account %s not found", "999")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnknownAccount))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestHelpers(t *testing.T) {
	assert.True(t, isForeignKeyViolation(fmt.Errorf("delete: %w", &pgconn.PgError{Code: pgForeignKeyViolation})))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: pgUniqueViolation}))
	assert.True(t, isUUID("1b4e28ba-2fa1-11d2-883f-0016d3cca427"))
	assert.False(t, isUUID("nobody"))
}
