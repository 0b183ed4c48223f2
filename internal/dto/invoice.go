package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines a new invoice. Status and amounts paid are derived.
type CreateInvoiceRequest struct {
	Number       string          `json:"number" binding:"required,max=64"`
	PartnerID    string          `json:"partnerID" binding:"required"`
	InvoiceDate  Date            `json:"invoiceDate" binding:"required"`
	DueDate      Date            `json:"dueDate" binding:"required"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currency"`
}

func (r CreateInvoiceRequest) ToDomain() domain.Invoice {
	return domain.Invoice{
		Number:       r.Number,
		PartnerID:    r.PartnerID,
		InvoiceDate:  r.InvoiceDate.Time(),
		DueDate:      r.DueDate.Time(),
		TotalAmount:  r.TotalAmount,
		CurrencyCode: r.CurrencyCode,
	}
}

// ApplyPaymentRequest defines a payment against an invoice. Negative amounts are refunds.
type ApplyPaymentRequest struct {
	PaymentDate           Date            `json:"paymentDate" binding:"required"`
	Amount                decimal.Decimal `json:"amount"`
	CurrencyCode          string          `json:"currencyCode" binding:"omitempty,currency"` // defaults to the invoice currency
	PaymentMethod         string          `json:"paymentMethod"`
	PriorPeriodSettlement bool            `json:"priorPeriodSettlement"`
}

func (r ApplyPaymentRequest) ToDomain(userID string) domain.PaymentRequest {
	return domain.PaymentRequest{
		PaymentDate:           r.PaymentDate.Time(),
		Amount:                r.Amount,
		CurrencyCode:          r.CurrencyCode,
		PaymentMethod:         r.PaymentMethod,
		PriorPeriodSettlement: r.PriorPeriodSettlement,
		CreatedBy:             userID,
	}
}

type InvoiceResponse struct {
	InvoiceID      string          `json:"invoiceID"`
	Number         string          `json:"number"`
	PartnerID      string          `json:"partnerID"`
	InvoiceDate    Date            `json:"invoiceDate"`
	DueDate        Date            `json:"dueDate"`
	FiscalYearID   string          `json:"fiscalYearID"`
	FiscalPeriodID *string         `json:"fiscalPeriodID,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	CurrencyCode   string          `json:"currencyCode"`
	Version        int64           `json:"version"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:      inv.InvoiceID,
		Number:         inv.Number,
		PartnerID:      inv.PartnerID,
		InvoiceDate:    NewDate(inv.InvoiceDate),
		DueDate:        NewDate(inv.DueDate),
		FiscalYearID:   inv.FiscalYearID,
		FiscalPeriodID: inv.FiscalPeriodID,
		TotalAmount:    inv.TotalAmount,
		CurrencyCode:   inv.CurrencyCode,
		Version:        inv.Version,
		CreatedAt:      inv.CreatedAt,
		CreatedBy:      inv.CreatedBy,
	}
}

type PaymentResponse struct {
	PaymentID             string          `json:"paymentID"`
	PaymentDate           Date            `json:"paymentDate"`
	Amount                decimal.Decimal `json:"amount"`
	CurrencyCode          string          `json:"currencyCode"`
	AppliedAmount         decimal.Decimal `json:"appliedAmount"`
	ExchangeRate          decimal.Decimal `json:"exchangeRate"`
	PaymentMethod         string          `json:"paymentMethod,omitempty"`
	PriorPeriodSettlement bool            `json:"priorPeriodSettlement"`
	ReversesPaymentID     *string         `json:"reversesPaymentID,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	CreatedBy             string          `json:"createdBy"`
}

func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:             p.PaymentID,
		PaymentDate:           NewDate(p.PaymentDate),
		Amount:                p.Amount,
		CurrencyCode:          p.CurrencyCode,
		AppliedAmount:         p.AppliedAmount,
		ExchangeRate:          p.ExchangeRate,
		PaymentMethod:         p.PaymentMethod,
		PriorPeriodSettlement: p.PriorPeriodSettlement,
		ReversesPaymentID:     p.ReversesPaymentID,
		CreatedAt:             p.CreatedAt,
		CreatedBy:             p.CreatedBy,
	}
}

// InvoiceStateResponse is returned after every settlement.
type InvoiceStateResponse struct {
	Invoice       InvoiceResponse      `json:"invoice"`
	Status        domain.InvoiceStatus `json:"status"`
	IsPaid        bool                 `json:"isPaid"`
	AmountPaid    decimal.Decimal      `json:"amountPaid"`
	Outstanding   decimal.Decimal      `json:"outstanding"`
	CreditBalance decimal.Decimal      `json:"creditBalance"`
	Payments      []PaymentResponse    `json:"payments"`
}

func ToInvoiceStateResponse(s *domain.InvoiceState) InvoiceStateResponse {
	payments := make([]PaymentResponse, len(s.Payments))
	for i := range s.Payments {
		payments[i] = ToPaymentResponse(&s.Payments[i])
	}
	return InvoiceStateResponse{
		Invoice:       ToInvoiceResponse(&s.Invoice),
		Status:        s.Status,
		IsPaid:        s.IsPaid,
		AmountPaid:    s.AmountPaid,
		Outstanding:   s.Outstanding,
		CreditBalance: s.CreditBalance,
		Payments:      payments,
	}
}
