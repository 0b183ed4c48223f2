package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// Settlement is one payment applied to an invoice under optimistic concurrency.
type Settlement struct {
	InvoiceID       string
	ExpectedVersion int64
	// AmountPaid is the invoice's new applied total after Payment.
	AmountPaid decimal.Decimal
	Payment    domain.Payment
	// RequireOpenPeriod re-checks the invoice's fiscal period inside the commit.
	RequireOpenPeriod bool
	Audit             domain.AuditFields
}

// InvoiceReader defines read operations for invoices and payments
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	// ListPayments returns the invoice's payments in the order they were recorded.
	ListPayments(ctx context.Context, invoiceID string) ([]domain.Payment, error)
	// ListOpenInvoicesByPartner returns invoices with outstanding > 0 ordered by due date
	// then number.
	ListOpenInvoicesByPartner(ctx context.Context, partnerID string) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices and payments
type InvoiceWriter interface {
	// SaveInvoice returns apperrors.ErrDuplicate when the number exists.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	// SaveSettlement appends the payment and updates the applied total atomically. It
	// returns an apperrors.ErrConflict error when the invoice version moved, a
	// PaymentAlreadyReversed AppError when the reversed payment already has a reversal,
	// and PeriodClosed when RequireOpenPeriod is set and the period has closed.
	SaveSettlement(ctx context.Context, s Settlement) (*domain.Invoice, error)
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
