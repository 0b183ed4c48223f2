package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

type LedgerHandlerTestSuite struct {
	handlerSuite
}

func TestLedgerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}

const purchaseBody = `{
	"journalCode": "MISC",
	"date": "2024-01-10",
	"description": "office supplies",
	"lines": [
		{"accountCode": "600", "debit": "120.50"},
		{"accountCode": "440", "credit": "120.50", "currencyCode": "eur"}
	]
}`

func posted() *domain.JournalEntry {
	period := "p-1"
	return &domain.JournalEntry{
		EntryID:        "e-1",
		EntryNumber:    7,
		JournalCode:    "MISC",
		Date:           domain.NewDate(2024, 1, 10),
		FiscalYearID:   "y-1",
		FiscalPeriodID: &period,
		Lines: []domain.JournalEntryLine{
			{LineNo: 1, AccountCode: "600", Debit: decimal.RequireFromString("120.50"), Credit: decimal.Zero},
			{LineNo: 2, AccountCode: "440", Debit: decimal.Zero, Credit: decimal.RequireFromString("120.50")},
		},
	}
}

func (s *LedgerHandlerTestSuite) TestPostEntry_Success() {
	isDraft := func(d domain.DraftEntry) bool {
		return d.JournalCode == "MISC" &&
			d.Date.Equal(domain.NewDate(2024, 1, 10)) &&
			d.CreatedBy == testUserID &&
			len(d.Lines) == 2 &&
			d.Lines[0].Debit.Equal(decimal.RequireFromString("120.50")) &&
			d.Lines[0].Credit.IsZero() &&
			d.Lines[1].CurrencyCode == "eur"
	}
	s.ledger.On("PostEntry", mock.Anything, mock.MatchedBy(isDraft)).Return(posted(), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/entries", purchaseBody)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	var body dto.EntryResponse
	s.decode(w, &body)
	s.Equal(int64(7), body.EntryNumber)
	s.Equal("2024-01-10", body.Date.String())
	s.True(body.TotalDebit.Equal(body.TotalCredit))
}

func (s *LedgerHandlerTestSuite) TestPostEntry_Rejections() {
	tests := []struct {
		name      string
		err       error
		status    int
		code      string
		lineIndex *int
		amount    string
	}{
		{
			name:   "unbalanced",
			err:    apperrors.NewUnbalancedEntry(decimal.NewFromInt(10)),
			status: http.StatusBadRequest,
			code:   "UnbalancedEntry",
			amount: "10",
		},
		{
			name:      "invalid line",
			err:       apperrors.NewInvalidLineAmounts(1, "both debit and credit are set"),
			status:    http.StatusBadRequest,
			code:      "InvalidLineAmounts",
			lineIndex: ptr(1),
		},
		{
			name:   "unknown account",
			err:    apperrors.NewReferenceError(apperrors.CodeUnknownAccount, "account 999 does not exist"),
			status: http.StatusNotFound,
			code:   "UnknownAccount",
		},
		{
			name:   "period closed",
			err:    apperrors.PeriodClosed("period 2024-H1 is closed"),
			status: http.StatusConflict,
			code:   "PeriodClosed",
		},
		{
			name:   "storage failure",
			err:    apperrors.NewInternalError("failed to save entry", assertErr),
			status: http.StatusInternalServerError,
			code:   "Internal",
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.ledger.On("PostEntry", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := s.do(http.MethodPost, "/api/v1/entries", purchaseBody)

			s.Equal(tt.status, w.Code)
			body := s.errorBody(w)
			s.Equal(tt.code, body.Code)
			s.Equal(tt.lineIndex, body.LineIndex)
			s.Equal(tt.amount, body.Amount)
		})
	}
}

func (s *LedgerHandlerTestSuite) TestPostEntry_InternalErrorHidesCause() {
	s.ledger.On("PostEntry", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewInternalError("failed to save entry", assertErr)).Once()

	w := s.do(http.MethodPost, "/api/v1/entries", purchaseBody)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.NotContains(w.Body.String(), assertErr.Error())
}

func (s *LedgerHandlerTestSuite) TestPostEntry_BadCurrencyTag() {
	body := `{"journalCode":"MISC","date":"2024-01-10","lines":[{"accountCode":"600","debit":"1","currencyCode":"EURO"}]}`

	w := s.do(http.MethodPost, "/api/v1/entries", body)

	s.Equal(http.StatusBadRequest, w.Code)
	s.ledger.AssertNotCalled(s.T(), "PostEntry", mock.Anything, mock.Anything)
}

func (s *LedgerHandlerTestSuite) TestPostEntry_BadDate() {
	body := `{"journalCode":"MISC","date":"10/01/2024","lines":[]}`
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/v1/entries", body).Code)
}

func (s *LedgerHandlerTestSuite) TestReverseEntry() {
	onDate := domain.NewDate(2024, 2, 1)
	s.ledger.On("ReverseEntry", mock.Anything, "e-1", (*time.Time)(nil), testUserID).Return(posted(), nil).Once()
	s.ledger.On("ReverseEntry", mock.Anything, "e-2", &onDate, testUserID).Return(posted(), nil).Once()
	s.ledger.On("ReverseEntry", mock.Anything, "e-3", (*time.Time)(nil), testUserID).
		Return(nil, apperrors.NewStateError(apperrors.CodeEntryAlreadyReversed, "entry e-3 is already reversed")).Once()

	s.Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/entries/e-1/reverse", "").Code)
	s.Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/entries/e-2/reverse", `{"date":"2024-02-01"}`).Code)

	w := s.do(http.MethodPost, "/api/v1/entries/e-3/reverse", "{}")
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("EntryAlreadyReversed", s.errorBody(w).Code)
}

func (s *LedgerHandlerTestSuite) TestGetEntry() {
	s.ledger.On("GetEntry", mock.Anything, "e-1").Return(posted(), nil).Once()
	s.ledger.On("GetEntry", mock.Anything, "nope").
		Return(nil, apperrors.NewReferenceError(apperrors.CodeUnknownEntry, "entry nope does not exist")).Once()

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/entries/e-1", "").Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/v1/entries/nope", "").Code)
}

func (s *LedgerHandlerTestSuite) TestTrialBalance() {
	s.reporting.On("TrialBalance", mock.Anything, today).Return(&domain.TrialBalanceReport{
		AsOf:        today,
		Rows:        []domain.TrialBalanceRow{{AccountCode: "512", Debit: decimal.RequireFromString("450"), Credit: decimal.Zero}},
		TotalDebit:  decimal.RequireFromString("450"),
		TotalCredit: decimal.RequireFromString("450"),
	}, nil).Once()
	s.currency.On("BaseCurrency", mock.Anything).Return(&domain.Currency{CurrencyCode: "EUR", MinorUnits: 2}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/trial-balance", "")

	s.Equal(http.StatusOK, w.Code)
	var body dto.TrialBalanceResponse
	s.decode(w, &body)
	s.Equal("450.00", body.TotalDebit)
	s.Equal("450.00", body.Rows[0].Debit)
}
