package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

func (s *Store) SaveInvoice(_ context.Context, invoice domain.Invoice) error {
	return s.write(func(next *state) error {
		if _, exists := next.invoiceNumbers[invoice.Number]; exists {
			return apperrors.NewValidationError(apperrors.CodeDuplicateInvoiceNumber, "invoice number %s already exists", invoice.Number)
		}
		if _, ok := next.partners[invoice.PartnerID]; !ok {
			return apperrors.NewReferenceError(apperrors.CodeUnknownPartner, "partner %s not found", invoice.PartnerID)
		}
		next.invoiceNumbers = cloned(next.invoiceNumbers)
		next.invoiceNumbers[invoice.Number] = invoice.InvoiceID
		next.invoices = cloned(next.invoices)
		next.invoices[invoice.InvoiceID] = invoice
		return nil
	})
}

func (s *Store) FindInvoiceByID(_ context.Context, invoiceID string) (*domain.Invoice, error) {
	inv, ok := s.read().invoices[invoiceID]
	if !ok {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownInvoice, "invoice %s not found", invoiceID)
	}
	return &inv, nil
}

func (s *Store) FindPaymentByID(_ context.Context, paymentID string) (*domain.Payment, error) {
	p, ok := s.read().paymentIndex[paymentID]
	if !ok {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownPayment, "payment %s not found", paymentID)
	}
	return &p, nil
}

func (s *Store) ListPayments(_ context.Context, invoiceID string) ([]domain.Payment, error) {
	return slices.Clone(s.read().payments[invoiceID]), nil
}

func (s *Store) ListOpenInvoicesByPartner(_ context.Context, partnerID string) ([]domain.Invoice, error) {
	var out []domain.Invoice
	for _, inv := range s.read().invoices {
		if inv.PartnerID == partnerID && inv.Outstanding().IsPositive() {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

func (s *Store) SaveSettlement(_ context.Context, st portsrepo.Settlement) (*domain.Invoice, error) {
	var saved domain.Invoice
	err := s.write(func(next *state) error {
		inv, ok := next.invoices[st.InvoiceID]
		if !ok {
			return apperrors.NewReferenceError(apperrors.CodeUnknownInvoice, "invoice %s not found", st.InvoiceID)
		}
		if inv.Version != st.ExpectedVersion {
			return apperrors.NewConflictError(apperrors.CodeSettlementConflict,
				"invoice %s changed: version %d, expected %d", inv.InvoiceID, inv.Version, st.ExpectedVersion)
		}
		if st.RequireOpenPeriod {
			if err := next.checkOpen(inv.FiscalYearID, inv.FiscalPeriodID); err != nil {
				return err
			}
		}
		if rev := st.Payment.ReversesPaymentID; rev != nil {
			if _, done := next.paymentReversals[*rev]; done {
				return apperrors.NewStateError(apperrors.CodePaymentAlreadyReversed, "payment %s is already reversed", *rev)
			}
			next.paymentReversals = cloned(next.paymentReversals)
			next.paymentReversals[*rev] = st.Payment.PaymentID
		}

		inv.AmountPaid = st.AmountPaid
		inv.Version++
		inv.LastUpdatedAt, inv.LastUpdatedBy = st.Audit.LastUpdatedAt, st.Audit.LastUpdatedBy

		next.invoices = cloned(next.invoices)
		next.invoices[inv.InvoiceID] = inv
		next.payments = cloned(next.payments)
		next.payments[inv.InvoiceID] = append(slices.Clone(next.payments[inv.InvoiceID]), st.Payment)
		next.paymentIndex = cloned(next.paymentIndex)
		next.paymentIndex[st.Payment.PaymentID] = st.Payment
		saved = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
