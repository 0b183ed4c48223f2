package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// InvoiceSvc manages invoices
type InvoiceSvc interface {
	// CreateInvoice registers an invoice; Number, PartnerID, dates, TotalAmount and
	// CurrencyCode are taken from invoice, everything else is derived.
	CreateInvoice(ctx context.Context, invoice domain.Invoice, userID string) (*domain.Invoice, error)
	GetInvoiceState(ctx context.Context, invoiceID string) (*domain.InvoiceState, error)
}

// SettlementSvc applies and reverses payments
type SettlementSvc interface {
	// ApplyPayment converts the payment into the invoice currency as of its date and
	// accumulates it. Concurrent settlements of one invoice are serialized.
	ApplyPayment(ctx context.Context, invoiceID string, req domain.PaymentRequest) (*domain.InvoiceState, error)
	// ReversePayment appends a negative payment undoing paymentID.
	ReversePayment(ctx context.Context, paymentID string, userID string) (*domain.InvoiceState, error)
}

// ReconciliationSvcFacade combines invoice and settlement services
type ReconciliationSvcFacade interface {
	InvoiceSvc
	SettlementSvc
}
