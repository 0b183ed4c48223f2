package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

var assertErr = errors.New("connection reset by peer")

func ptr[T any](v T) *T { return &v }

type InvoiceHandlerTestSuite struct {
	handlerSuite
}

func TestInvoiceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}

func invoiceState(paid string) *domain.InvoiceState {
	inv := domain.Invoice{
		InvoiceID:    "inv-1",
		Number:       "F-001",
		PartnerID:    "p-1",
		InvoiceDate:  domain.NewDate(2024, 3, 1),
		DueDate:      domain.NewDate(2024, 4, 1),
		TotalAmount:  decimal.NewFromInt(500),
		CurrencyCode: "EUR",
		AmountPaid:   decimal.RequireFromString(paid),
	}
	state := domain.NewInvoiceState(inv, nil)
	return &state
}

func (s *InvoiceHandlerTestSuite) TestCreateInvoice() {
	isInvoice := func(inv domain.Invoice) bool {
		return inv.Number == "F-001" &&
			inv.InvoiceDate.Equal(domain.NewDate(2024, 3, 1)) &&
			inv.DueDate.Equal(domain.NewDate(2024, 4, 1)) &&
			inv.TotalAmount.Equal(decimal.NewFromInt(500))
	}
	s.reconciliation.On("CreateInvoice", mock.Anything, mock.MatchedBy(isInvoice), testUserID).
		Return(&invoiceState("0").Invoice, nil).Once()
	s.reconciliation.On("GetInvoiceState", mock.Anything, "inv-1").Return(invoiceState("0"), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/invoices",
		`{"number":"F-001","partnerID":"p-1","invoiceDate":"2024-03-01","dueDate":"2024-04-01","totalAmount":"500","currencyCode":"EUR"}`)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	var body dto.InvoiceStateResponse
	s.decode(w, &body)
	s.Equal(domain.InvoiceOpen, body.Status)
	s.True(body.Outstanding.Equal(decimal.NewFromInt(500)))
}

func (s *InvoiceHandlerTestSuite) TestApplyPayment() {
	isPayment := func(p domain.PaymentRequest) bool {
		return p.Amount.Equal(decimal.NewFromInt(500)) &&
			p.CurrencyCode == "" &&
			p.PaymentDate.Equal(domain.NewDate(2024, 3, 5)) &&
			p.PriorPeriodSettlement &&
			p.CreatedBy == testUserID
	}
	s.reconciliation.On("ApplyPayment", mock.Anything, "inv-1", mock.MatchedBy(isPayment)).Return(invoiceState("500"), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/invoices/inv-1/payments",
		`{"paymentDate":"2024-03-05","amount":"500","priorPeriodSettlement":true}`)

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	var body dto.InvoiceStateResponse
	s.decode(w, &body)
	s.Equal(domain.InvoicePaid, body.Status)
	s.True(body.IsPaid)
}

func (s *InvoiceHandlerTestSuite) TestApplyPayment_Rejections() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "conflict", err: apperrors.NewConflictError(apperrors.CodeSettlementConflict, "gave up after 3 attempts"), status: http.StatusConflict},
		{name: "no rate", err: apperrors.NewReferenceError(apperrors.CodeNoRateAvailable, "no USD rate on 2023-12-31"), status: http.StatusNotFound},
		{name: "closed", err: apperrors.PeriodClosed("period closed"), status: http.StatusConflict},
		{name: "bad amount", err: apperrors.NewValidationError(apperrors.CodeInvalidPaymentAmount, "zero"), status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.reconciliation.On("ApplyPayment", mock.Anything, "inv-1", mock.Anything).Return(nil, tt.err).Once()
			w := s.do(http.MethodPost, "/api/v1/invoices/inv-1/payments", `{"paymentDate":"2024-03-05","amount":"1"}`)
			s.Equal(tt.status, w.Code)
		})
	}
}

func (s *InvoiceHandlerTestSuite) TestReversePayment() {
	s.reconciliation.On("ReversePayment", mock.Anything, "pay-1", testUserID).Return(invoiceState("0"), nil).Once()
	s.reconciliation.On("ReversePayment", mock.Anything, "pay-1", testUserID).
		Return(nil, apperrors.NewStateError(apperrors.CodePaymentAlreadyReversed, "payment pay-1 is already reversed")).Once()

	s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/v1/payments/pay-1/reverse", "").Code)
	w := s.do(http.MethodPost, "/api/v1/payments/pay-1/reverse", "")
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("PaymentAlreadyReversed", s.errorBody(w).Code)
}
