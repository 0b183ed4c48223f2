package pgsql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// PostgreSQL SQLSTATE codes translated into AppErrors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgExclusionViolation  = "23P01"
)

// entryCommitLock serializes entry commits so entry numbers follow commit order.
const entryCommitLock int64 = 0x6c6564676572

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		if appErr := translate(err); appErr != nil {
			return appErr
		}
		return apperrors.NewInternalError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewInternalError("failed to rollback transaction", err)
	}
	return nil
}

// withTx runs fn inside a transaction, committing on success.
func (r *BaseRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isForeignKeyViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == pgForeignKeyViolation
}

// translate maps constraint violations with a single domain meaning to AppErrors.
// It returns nil when err needs call-site context.
func translate(err error) *apperrors.AppError {
	pgErr, ok := pgError(err)
	if !ok {
		return nil
	}
	switch pgErr.Code {
	case pgExclusionViolation:
		return apperrors.NewValidationError(apperrors.CodeOverlappingPeriod, "date range overlaps an existing one")
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case "currencies_pkey":
			return apperrors.NewValidationError(apperrors.CodeDuplicateCurrency, "currency already exists")
		case "exchange_rates_currency_date_key":
			return apperrors.NewValidationError(apperrors.CodeDuplicateRate, "a rate already exists for this currency and date")
		case "accounts_code_key":
			return apperrors.NewValidationError(apperrors.CodeDuplicateAccountCode, "account code already exists")
		case "journals_pkey":
			return apperrors.NewValidationError(apperrors.CodeDuplicateJournalCode, "journal code already exists")
		case "invoices_number_key":
			return apperrors.NewValidationError(apperrors.CodeDuplicateInvoiceNumber, "invoice number already exists")
		case "journal_entries_reversal_of_key":
			return apperrors.NewStateError(apperrors.CodeEntryAlreadyReversed, "entry is already reversed")
		case "payments_reverses_payment_key":
			return apperrors.NewStateError(apperrors.CodePaymentAlreadyReversed, "payment is already reversed")
		}
	}
	return nil
}

// wrap returns the translated AppError for err, or an internal error carrying msg.
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	if appErr := translate(err); appErr != nil {
		return appErr
	}
	return apperrors.NewInternalError(msg, err)
}

// notFound converts pgx.ErrNoRows to a reference error with code.
func notFound(err error, code apperrors.Code, format string, args ...any) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewReferenceError(code, format, args...)
	}
	return err
}

// isUUID guards UUID-keyed lookups; a malformed ID is simply unknown.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
