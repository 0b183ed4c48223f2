package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

// DefaultSettlementRetries bounds optimistic settlement attempts when none is configured.
const DefaultSettlementRetries = 3

// reconciliationService matches payments against invoices. Settlements of one invoice
// are serialized through the invoice version; losers re-read and re-validate.
type reconciliationService struct {
	BaseService
	invoiceRepo   portsrepo.InvoiceRepositoryFacade
	referenceRepo portsrepo.ReferenceReader
	currencySvc   portssvc.CurrencySvcFacade
	fiscalSvc     portssvc.FiscalReaderSvc
	maxRetries    int
}

// NewReconciliationService creates the invoice/payment reconciler.
func NewReconciliationService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	referenceRepo portsrepo.ReferenceReader,
	currencySvc portssvc.CurrencySvcFacade,
	fiscalSvc portssvc.FiscalReaderSvc,
	maxRetries int,
	opts ...Option,
) portssvc.ReconciliationSvcFacade {
	if maxRetries < 1 {
		maxRetries = DefaultSettlementRetries
	}
	return &reconciliationService{
		BaseService:   newBaseService(opts),
		invoiceRepo:   invoiceRepo,
		referenceRepo: referenceRepo,
		currencySvc:   currencySvc,
		fiscalSvc:     fiscalSvc,
		maxRetries:    maxRetries,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) CreateInvoice(ctx context.Context, invoice domain.Invoice, userID string) (*domain.Invoice, error) {
	const op = "create_invoice"
	invoice.Number = strings.TrimSpace(invoice.Number)
	invoice.CurrencyCode = strings.ToUpper(invoice.CurrencyCode)
	invoice.InvoiceDate = domain.DateOf(invoice.InvoiceDate)
	invoice.DueDate = domain.DateOf(invoice.DueDate)

	if err := requireText("number", invoice.Number); err != nil {
		return nil, s.Reject(ctx, op, err)
	}
	if invoice.DueDate.Before(invoice.InvoiceDate) {
		return nil, s.Reject(ctx, op, apperrors.NewValidationError(apperrors.CodeInvalidDateRange,
			"due date is before invoice date"))
	}
	if _, err := s.referenceRepo.FindPartnerByID(ctx, invoice.PartnerID); err != nil {
		return nil, s.Reject(ctx, op, err)
	}
	currency, err := s.currencySvc.GetCurrencyByCode(ctx, invoice.CurrencyCode)
	if err != nil {
		return nil, s.Reject(ctx, op, err)
	}
	if !invoice.TotalAmount.IsPositive() || !currency.FitsPrecision(invoice.TotalAmount) {
		return nil, s.Reject(ctx, op, apperrors.NewValidationError(apperrors.CodeInvalidInput,
			"total amount must be positive with at most %d decimal places", currency.MinorUnits))
	}

	pos, err := s.fiscalSvc.Resolve(ctx, invoice.InvoiceDate)
	if err != nil {
		return nil, s.Reject(ctx, op, err)
	}
	if pos.IsClosed() {
		return nil, s.Reject(ctx, op, apperrors.PeriodClosed("%s falls in a closed fiscal period",
			invoice.InvoiceDate.Format(time.DateOnly)))
	}

	invoice.InvoiceID = uuid.NewString()
	invoice.FiscalYearID = pos.Year.FiscalYearID
	invoice.FiscalPeriodID = pos.PeriodID()
	invoice.AmountPaid = decimal.Zero
	invoice.Version = 0
	invoice.AuditFields = domain.NewAuditFields(userID, s.Now())

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		return nil, s.Reject(ctx, op, err, slog.String("number", invoice.Number))
	}
	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("number", invoice.Number),
		slog.String("total", invoice.TotalAmount.String()))
	return &invoice, nil
}

func (s *reconciliationService) GetInvoiceState(ctx context.Context, invoiceID string) (*domain.InvoiceState, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.state(ctx, *inv)
}

func (s *reconciliationService) ApplyPayment(ctx context.Context, invoiceID string, req domain.PaymentRequest) (*domain.InvoiceState, error) {
	const op = "apply_payment"
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, s.Reject(ctx, op, err)
	}
	if req.Amount.IsZero() {
		return nil, s.Reject(ctx, op, apperrors.NewValidationError(apperrors.CodeInvalidPaymentAmount, "payment amount must not be zero"))
	}

	code := strings.ToUpper(req.CurrencyCode)
	if code == "" {
		code = inv.CurrencyCode
	}
	payCurrency, err := s.currencySvc.GetCurrencyByCode(ctx, code)
	if err != nil {
		return nil, s.Reject(ctx, op, err)
	}
	if !payCurrency.FitsPrecision(req.Amount) {
		return nil, s.Reject(ctx, op, apperrors.NewValidationError(apperrors.CodeInvalidPaymentAmount,
			"amount exceeds %d decimal places of %s", payCurrency.MinorUnits, code))
	}

	paymentDate := domain.DateOf(req.PaymentDate)
	applied, rate := req.Amount, decimal.NewFromInt(1)
	if code != inv.CurrencyCode {
		invCurrency, err := s.currencySvc.GetCurrencyByCode(ctx, inv.CurrencyCode)
		if err != nil {
			return nil, s.Reject(ctx, op, err)
		}
		q, err := s.currencySvc.Quote(ctx, code, inv.CurrencyCode, paymentDate)
		if err != nil {
			return nil, s.Reject(ctx, op, err, slog.String("invoice_id", invoiceID))
		}
		applied, rate = q.Apply(req.Amount, *invCurrency), q.Effective()
	}

	payment := domain.Payment{
		PaymentID:             uuid.NewString(),
		InvoiceID:             invoiceID,
		PaymentDate:           paymentDate,
		Amount:                req.Amount,
		CurrencyCode:          code,
		AppliedAmount:         applied,
		ExchangeRate:          rate,
		PaymentMethod:         req.PaymentMethod,
		PriorPeriodSettlement: req.PriorPeriodSettlement,
		AuditFields:           domain.NewAuditFields(req.CreatedBy, s.Now()),
	}
	state, err := s.settle(ctx, payment)
	if err != nil {
		return nil, s.Reject(ctx, op, err, slog.String("invoice_id", invoiceID))
	}
	s.Metrics.PaymentApplied(false)
	s.LogInfo(ctx, "Payment applied",
		slog.String("invoice_id", invoiceID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("applied", applied.String()),
		slog.String("status", string(state.Status)))
	return state, nil
}

func (s *reconciliationService) ReversePayment(ctx context.Context, paymentID string, userID string) (*domain.InvoiceState, error) {
	const op = "reverse_payment"
	original, err := s.invoiceRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, s.Reject(ctx, op, err)
	}
	if original.ReversesPaymentID != nil {
		return nil, s.Reject(ctx, op, apperrors.NewValidationError(apperrors.CodeInvalidPaymentAmount,
			"payment %s is itself a reversal", paymentID))
	}
	payments, err := s.invoiceRepo.ListPayments(ctx, original.InvoiceID)
	if err != nil {
		return nil, s.Reject(ctx, op, err)
	}
	for _, p := range payments {
		if p.ReversesPaymentID != nil && *p.ReversesPaymentID == paymentID {
			return nil, s.Reject(ctx, op, apperrors.NewStateError(apperrors.CodePaymentAlreadyReversed,
				"payment %s is already reversed", paymentID))
		}
	}

	now := s.Now()
	reversedID := original.PaymentID
	reversal := domain.Payment{
		PaymentID:             uuid.NewString(),
		InvoiceID:             original.InvoiceID,
		PaymentDate:           domain.DateOf(now),
		Amount:                original.Amount.Neg(),
		CurrencyCode:          original.CurrencyCode,
		AppliedAmount:         original.AppliedAmount.Neg(),
		ExchangeRate:          original.ExchangeRate,
		PaymentMethod:         original.PaymentMethod,
		PriorPeriodSettlement: original.PriorPeriodSettlement,
		ReversesPaymentID:     &reversedID,
		AuditFields:           domain.NewAuditFields(userID, now),
	}
	state, err := s.settle(ctx, reversal)
	if err != nil {
		return nil, s.Reject(ctx, op, err, slog.String("payment_id", paymentID))
	}
	s.Metrics.PaymentApplied(true)
	s.LogInfo(ctx, "Payment reversed",
		slog.String("invoice_id", original.InvoiceID),
		slog.String("payment_id", paymentID),
		slog.String("status", string(state.Status)))
	return state, nil
}

// settle appends payment under optimistic concurrency, re-reading and re-validating
// the invoice on every attempt.
func (s *reconciliationService) settle(ctx context.Context, payment domain.Payment) (*domain.InvoiceState, error) {
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		inv, err := s.invoiceRepo.FindInvoiceByID(ctx, payment.InvoiceID)
		if err != nil {
			return nil, err
		}
		if !payment.PriorPeriodSettlement {
			closed, err := s.invoicePeriodClosed(ctx, *inv)
			if err != nil {
				return nil, err
			}
			if closed {
				return nil, apperrors.PeriodClosed("the fiscal period of invoice %s is closed", inv.Number)
			}
		}
		total := inv.AmountPaid.Add(payment.AppliedAmount)
		if total.IsNegative() {
			return nil, apperrors.NewValidationError(apperrors.CodeInvalidPaymentAmount,
				"payment would bring the applied total of invoice %s below zero", inv.Number)
		}

		saved, err := s.invoiceRepo.SaveSettlement(ctx, portsrepo.Settlement{
			InvoiceID:         inv.InvoiceID,
			ExpectedVersion:   inv.Version,
			AmountPaid:        total,
			Payment:           payment,
			RequireOpenPeriod: !payment.PriorPeriodSettlement,
			Audit:             payment.AuditFields,
		})
		if errors.Is(err, apperrors.ErrConflict) {
			s.Metrics.SettlementConflict()
			s.LogDebug(ctx, "Settlement conflict, retrying",
				slog.String("invoice_id", inv.InvoiceID), slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, err
		}
		return s.state(ctx, *saved)
	}
	return nil, apperrors.NewConflictError(apperrors.CodeSettlementConflict,
		"invoice %s changed concurrently %d times", payment.InvoiceID, s.maxRetries)
}

func (s *reconciliationService) invoicePeriodClosed(ctx context.Context, inv domain.Invoice) (bool, error) {
	year, err := s.fiscalSvc.GetFiscalYear(ctx, inv.FiscalYearID)
	if err != nil {
		return false, fmt.Errorf("fiscal year of invoice %s: %w", inv.Number, err)
	}
	if year.IsClosed {
		return true, nil
	}
	if inv.FiscalPeriodID == nil {
		return false, nil
	}
	for _, p := range year.Periods {
		if p.FiscalPeriodID == *inv.FiscalPeriodID {
			return p.IsClosed, nil
		}
	}
	return false, apperrors.NewReferenceError(apperrors.CodeUnknownFiscalPeriod,
		"fiscal period %s of invoice %s not found", *inv.FiscalPeriodID, inv.Number)
}

func (s *reconciliationService) state(ctx context.Context, inv domain.Invoice) (*domain.InvoiceState, error) {
	payments, err := s.invoiceRepo.ListPayments(ctx, inv.InvoiceID)
	if err != nil {
		return nil, err
	}
	st := domain.NewInvoiceState(inv, payments)
	return &st, nil
}
