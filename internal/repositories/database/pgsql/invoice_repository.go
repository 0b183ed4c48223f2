package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
)

const invoiceColumns = `invoice_id, number, partner_id, invoice_date, due_date, fiscal_year_id, fiscal_period_id, total_amount, currency_code, amount_paid, version, created_at, created_by, last_updated_at, last_updated_by`

const paymentColumns = `payment_id, seq, invoice_id, payment_date, amount, currency_code, applied_amount, exchange_rate, payment_method, prior_period_settlement, reverses_payment_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	if !isUUID(invoice.PartnerID) {
		return apperrors.NewReferenceError(apperrors.CodeUnknownPartner, "partner %s not found", invoice.PartnerID)
	}
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID, m.Number, m.PartnerID, m.InvoiceDate, m.DueDate, m.FiscalYearID, m.FiscalPeriodID,
		m.TotalAmount, m.CurrencyCode, m.AmountPaid, m.Version,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if isForeignKeyViolation(err) {
		return apperrors.NewReferenceError(apperrors.CodeUnknownPartner, "partner %s not found", m.PartnerID)
	}
	return wrap(err, "failed to save invoice "+m.Number)
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if !isUUID(invoiceID) {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownInvoice, "invoice %s not found", invoiceID)
	}
	rows, _ := r.Pool.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1;`, invoiceID)
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Invoice])
	if err != nil {
		return nil, wrap(notFound(err, apperrors.CodeUnknownInvoice, "invoice %s not found", invoiceID),
			"failed to find invoice "+invoiceID)
	}
	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

func (r *PgxInvoiceRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if !isUUID(paymentID) {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownPayment, "payment %s not found", paymentID)
	}
	rows, _ := r.Pool.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1;`, paymentID)
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Payment])
	if err != nil {
		return nil, wrap(notFound(err, apperrors.CodeUnknownPayment, "payment %s not found", paymentID),
			"failed to find payment "+paymentID)
	}
	p := mapping.ToDomainPayment(m)
	return &p, nil
}

func (r *PgxInvoiceRepository) ListPayments(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE invoice_id = $1 ORDER BY seq;`, invoiceID)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Payment])
	if err != nil {
		return nil, wrap(err, "failed to list payments of invoice "+invoiceID)
	}
	return mapping.ToDomainPaymentSlice(ms), nil
}

func (r *PgxInvoiceRepository) ListOpenInvoicesByPartner(ctx context.Context, partnerID string) ([]domain.Invoice, error) {
	if !isUUID(partnerID) {
		return []domain.Invoice{}, nil
	}
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE partner_id = $1 AND amount_paid < total_amount
		ORDER BY due_date, number;
	`
	rows, _ := r.Pool.Query(ctx, query, partnerID)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Invoice])
	if err != nil {
		return nil, wrap(err, "failed to list open invoices of partner "+partnerID)
	}
	return mapping.ToDomainInvoiceSlice(ms), nil
}

// SaveSettlement bumps the invoice version only if it still equals ExpectedVersion and
// appends the payment in the same transaction.
func (r *PgxInvoiceRepository) SaveSettlement(ctx context.Context, s portsrepo.Settlement) (*domain.Invoice, error) {
	var saved models.Invoice
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var fiscalYearID string
		var fiscalPeriodID *string
		err := tx.QueryRow(ctx, `SELECT fiscal_year_id, fiscal_period_id FROM invoices WHERE invoice_id = $1;`, s.InvoiceID).
			Scan(&fiscalYearID, &fiscalPeriodID)
		if err != nil {
			return wrap(notFound(err, apperrors.CodeUnknownInvoice, "invoice %s not found", s.InvoiceID),
				"failed to read invoice "+s.InvoiceID)
		}
		if s.RequireOpenPeriod {
			if err := checkOpen(ctx, tx, fiscalYearID, fiscalPeriodID); err != nil {
				return err
			}
		}

		rows, _ := tx.Query(ctx, `
			UPDATE invoices
			SET amount_paid = $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
			WHERE invoice_id = $4 AND version = $5
			RETURNING `+invoiceColumns+`;
		`, s.AmountPaid, s.Audit.LastUpdatedAt, s.Audit.LastUpdatedBy, s.InvoiceID, s.ExpectedVersion)
		saved, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Invoice])
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewConflictError(apperrors.CodeSettlementConflict,
					"invoice %s moved past version %d", s.InvoiceID, s.ExpectedVersion)
			}
			return wrap(err, "failed to update invoice "+s.InvoiceID)
		}

		p := mapping.ToModelPayment(s.Payment)
		_, err = tx.Exec(ctx, `
			INSERT INTO payments (
				payment_id, invoice_id, payment_date, amount, currency_code, applied_amount, exchange_rate,
				payment_method, prior_period_settlement, reverses_payment_id,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
		`,
			p.PaymentID, p.InvoiceID, p.PaymentDate, p.Amount, p.CurrencyCode, p.AppliedAmount, p.ExchangeRate,
			p.PaymentMethod, p.PriorPeriodSettlement, p.ReversesPaymentID,
			p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
		)
		return wrap(err, "failed to insert payment "+p.PaymentID)
	})
	if err != nil {
		return nil, err
	}
	inv := mapping.ToDomainInvoice(saved)
	return &inv, nil
}
