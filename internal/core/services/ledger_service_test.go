package services_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
)

type LedgerServiceTestSuite struct {
	engineSuite
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) TestPostEntry_Balanced() {
	e := s.post(date(2024, 2, 10), line("600", "100.00", ""), line("440", "", "100.00"))

	s.NotEmpty(e.EntryID)
	s.Positive(e.EntryNumber)
	s.Equal(s.fy2024.FiscalYearID, e.FiscalYearID)
	s.Require().NotNil(e.FiscalPeriodID)
	s.Equal(s.h1.FiscalPeriodID, *e.FiscalPeriodID)
	s.Require().Len(e.Lines, 2)
	s.Equal(1, e.Lines[0].LineNo)
	s.Equal("EUR", e.Lines[0].OriginalCurrency)
	s.True(e.TotalDebit().Equal(e.TotalCredit()))

	got, err := s.svc.Ledger.GetEntry(s.ctx, e.EntryID)
	s.Require().NoError(err)
	s.Equal(e.EntryNumber, got.EntryNumber)
}

func (s *LedgerServiceTestSuite) TestPostEntry_UnbalancedCarriesImbalance() {
	_, err := s.svc.Ledger.PostEntry(s.ctx, draft(date(2024, 2, 10), line("600", "100.00", ""), line("440", "", "90.00")))

	appErr, ok := apperrors.AsAppError(err)
	s.Require().True(ok)
	s.Equal(apperrors.CodeUnbalancedEntry, appErr.Code)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.True(appErr.Amount.Equal(dec("10.00")), "imbalance %s", appErr.Amount)
}

func (s *LedgerServiceTestSuite) TestPostEntry_Rejections() {
	tests := []struct {
		name  string
		draft domain.DraftEntry
		code  apperrors.Code
		line  int
	}{
		{"empty", draft(date(2024, 2, 10)), apperrors.CodeEmptyEntry, -1},
		{"both sides", draft(date(2024, 2, 10), line("600", "10", "10"), line("440", "", "10")), apperrors.CodeInvalidLineAmounts, 0},
		{"neither side", draft(date(2024, 2, 10), line("600", "10", ""), line("440", "", "")), apperrors.CodeInvalidLineAmounts, 1},
		{"negative", draft(date(2024, 2, 10), line("600", "-10", ""), line("440", "", "-10")), apperrors.CodeInvalidLineAmounts, 0},
		{"unknown account", draft(date(2024, 2, 10), line("600", "10", ""), line("999", "", "10")), apperrors.CodeUnknownAccount, -1},
		{"too precise", draft(date(2024, 2, 10), line("600", "10.001", ""), line("440", "", "10.001")), apperrors.CodeInvalidLineAmounts, 0},
		{"no fiscal year", draft(date(2025, 2, 10), line("600", "10", ""), line("440", "", "10")), apperrors.CodeNoFiscalPeriod, -1},
		{"period gap", draft(date(2024, 7, 1), line("600", "10", ""), line("440", "", "10")), apperrors.CodeNoFiscalPeriod, -1},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Ledger.PostEntry(s.ctx, tt.draft)
			appErr, ok := apperrors.AsAppError(err)
			s.Require().True(ok, "got %v", err)
			s.Equal(tt.code, appErr.Code)
			s.Equal(tt.line, appErr.LineIndex)
		})
	}
}

func (s *LedgerServiceTestSuite) TestPostEntry_RuleOrderIsFixed() {
	// unknown account and unbalanced: the reference rule runs first
	_, err := s.svc.Ledger.PostEntry(s.ctx, draft(date(2025, 2, 10), line("999", "10", ""), line("440", "", "5")))
	s.True(apperrors.HasCode(err, apperrors.CodeUnknownAccount), "got %v", err)

	// unbalanced and outside any fiscal year: balance is checked before the calendar
	_, err = s.svc.Ledger.PostEntry(s.ctx, draft(date(2025, 2, 10), line("600", "10", ""), line("440", "", "5")))
	s.True(apperrors.HasCode(err, apperrors.CodeUnbalancedEntry), "got %v", err)
}

func (s *LedgerServiceTestSuite) TestPostEntry_InactiveAccount() {
	_, err := s.svc.Account.DeactivateAccount(s.ctx, "440", testUser)
	s.Require().NoError(err)

	_, err = s.svc.Ledger.PostEntry(s.ctx, draft(date(2024, 2, 10), line("600", "10", ""), line("440", "", "10")))
	s.True(apperrors.HasCode(err, apperrors.CodeUnknownAccount))
}

func (s *LedgerServiceTestSuite) TestPostEntry_UnknownJournal() {
	d := draft(date(2024, 2, 10), line("600", "10", ""), line("440", "", "10"))
	d.JournalCode = "NOPE"
	_, err := s.svc.Ledger.PostEntry(s.ctx, d)
	s.True(apperrors.HasCode(err, apperrors.CodeUnknownJournal))
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestPostEntry_ClosedPeriod() {
	_, err := s.svc.Fiscal.ClosePeriod(s.ctx, s.h1.FiscalPeriodID, testUser)
	s.Require().NoError(err)

	_, err = s.svc.Ledger.PostEntry(s.ctx, draft(date(2024, 2, 10), line("600", "10", ""), line("440", "", "10")))
	s.True(apperrors.HasCode(err, apperrors.CodePeriodClosed))
	s.ErrorIs(err, apperrors.ErrState)

	// the other half is still open
	s.post(date(2024, 8, 10), line("600", "10", ""), line("440", "", "10"))
}

func (s *LedgerServiceTestSuite) TestPostEntry_ClosedYear() {
	_, err := s.svc.Fiscal.CloseYear(s.ctx, s.fy2024.FiscalYearID, testUser)
	s.Require().NoError(err)

	_, err = s.svc.Ledger.PostEntry(s.ctx, draft(date(2024, 8, 10), line("600", "10", ""), line("440", "", "10")))
	s.True(apperrors.HasCode(err, apperrors.CodePeriodClosed))
}

func (s *LedgerServiceTestSuite) TestPostEntry_ForeignCurrencyConverted() {
	usd := line("600", "100.00", "")
	usd.CurrencyCode = "USD"
	e := s.post(date(2024, 2, 10), usd, line("440", "", "90.00"))

	s.True(e.Lines[0].Debit.Equal(dec("90.00")))
	s.Equal("USD", e.Lines[0].OriginalCurrency)
	s.True(e.Lines[0].OriginalAmount.Equal(dec("100.00")))
	s.True(e.Lines[0].ExchangeRate.Equal(dec("0.90")))
}

func (s *LedgerServiceTestSuite) TestPostEntry_SingleForeignCurrencyBalancesAfterRounding() {
	usd := func(account, debit, credit string) domain.DraftLine {
		l := line(account, debit, credit)
		l.CurrencyCode = "USD"
		return l
	}
	// 0.10 USD at 0.95 is 0.095 EUR per line; rounding each line alone gives 0.30 vs 0.29
	e := s.post(date(2024, 3, 5),
		usd("600", "0.10", ""), usd("600", "0.10", ""), usd("600", "0.10", ""),
		usd("440", "", "0.30"))

	s.True(e.TotalDebit().Equal(e.TotalCredit()))
	s.True(e.TotalCredit().Equal(dec("0.29")), e.TotalCredit().String())
	s.True(e.Lines[0].Debit.Equal(dec("0.10")))
	s.True(e.Lines[1].Debit.Equal(dec("0.10")))
	s.True(e.Lines[2].Debit.Equal(dec("0.09")))
	for _, l := range e.Lines {
		s.True(l.ExchangeRate.Equal(dec("0.95")))
	}
}

func (s *LedgerServiceTestSuite) TestPostEntry_MixedCurrenciesStillCheckedInBase() {
	usd := line("600", "0.10", "")
	usd.CurrencyCode = "USD"
	_, err := s.svc.Ledger.PostEntry(s.ctx, draft(date(2024, 3, 5), usd, line("440", "", "0.09")))
	appErr, ok := apperrors.AsAppError(err)
	s.Require().True(ok, "got %v", err)
	s.Equal(apperrors.CodeUnbalancedEntry, appErr.Code)
	s.True(appErr.Amount.Equal(dec("0.01")), appErr.Amount.String())
}

func (s *LedgerServiceTestSuite) TestPostEntry_UsesRateInForceNotLater() {
	usd := line("600", "100.00", "")
	usd.CurrencyCode = "USD"
	// 2024-02-29 is before the 0.95 rate of 2024-03-01
	_, err := s.svc.Ledger.PostEntry(s.ctx, draft(date(2024, 2, 29), usd, line("440", "", "95.00")))
	appErr, ok := apperrors.AsAppError(err)
	s.Require().True(ok)
	s.Equal(apperrors.CodeUnbalancedEntry, appErr.Code)
	s.True(appErr.Amount.Equal(dec("-5.00")))
}

func (s *LedgerServiceTestSuite) TestPostEntry_NoRateBeforeFirstRecorded() {
	_, err := s.svc.Fiscal.CreateFiscalYear(s.ctx, "2023", date(2023, 1, 1), date(2023, 12, 31), testUser)
	s.Require().NoError(err)

	usd := line("600", "100.00", "")
	usd.CurrencyCode = "USD"
	_, err = s.svc.Ledger.PostEntry(s.ctx, draft(date(2023, 12, 31), usd, line("440", "", "90.00")))
	s.True(apperrors.HasCode(err, apperrors.CodeNoRateAvailable), "got %v", err)
	s.ErrorIs(err, apperrors.ErrReference)
}

func (s *LedgerServiceTestSuite) TestPostEntry_RandomBalancedEntriesAlwaysBalance() {
	rng := rand.New(rand.NewSource(42))
	accounts := []string{"600", "440", "411", "512", "707"}

	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(5)
		var lines []domain.DraftLine
		total := decimal.Zero
		for j := 0; j < n; j++ {
			amt := decimal.New(int64(1+rng.Intn(1_000_000)), -2)
			total = total.Add(amt)
			lines = append(lines, domain.DraftLine{AccountCode: accounts[rng.Intn(len(accounts))], Debit: amt, Credit: decimal.Zero})
		}
		// split the credit side in two uneven parts
		part := total.Div(decimal.NewFromInt(3)).Round(2)
		if part.IsPositive() && part.LessThan(total) {
			lines = append(lines,
				domain.DraftLine{AccountCode: accounts[rng.Intn(len(accounts))], Debit: decimal.Zero, Credit: part},
				domain.DraftLine{AccountCode: accounts[rng.Intn(len(accounts))], Debit: decimal.Zero, Credit: total.Sub(part)})
		} else {
			lines = append(lines, domain.DraftLine{AccountCode: accounts[rng.Intn(len(accounts))], Debit: decimal.Zero, Credit: total})
		}

		e, err := s.svc.Ledger.PostEntry(s.ctx, draft(date(2024, randomMonth(rng), 1+rng.Intn(28)), lines...))
		s.Require().NoError(err)
		s.True(accounting.Imbalance(e.Lines).IsZero())
	}

	tb, err := s.svc.Reporting.TrialBalance(s.ctx, date(2024, 12, 31))
	s.Require().NoError(err)
	s.True(tb.TotalDebit.Equal(tb.TotalCredit))
}

// randomMonth never returns July, which holds the calendar gap.
func randomMonth(rng *rand.Rand) time.Month {
	m := time.Month(1 + rng.Intn(12))
	if m == time.July {
		return time.August
	}
	return m
}

func (s *LedgerServiceTestSuite) TestReverseEntry_NetsToZero() {
	usd := line("600", "123.45", "")
	usd.CurrencyCode = "USD"
	original := s.post(date(2024, 2, 10), usd, line("440", "", "111.11"))

	reversal, err := s.svc.Ledger.ReverseEntry(s.ctx, original.EntryID, nil, testUser)
	s.Require().NoError(err)

	s.Require().NotNil(reversal.ReversalOfID)
	s.Equal(original.EntryID, *reversal.ReversalOfID)
	s.True(reversal.Date.Equal(original.Date))
	s.Greater(reversal.EntryNumber, original.EntryNumber)
	for i := range original.Lines {
		s.True(reversal.Lines[i].Debit.Equal(original.Lines[i].Credit))
		s.True(reversal.Lines[i].Credit.Equal(original.Lines[i].Debit))
	}
	for acct, net := range accounting.NetEffect(*original, *reversal) {
		s.True(net.IsZero(), "account %s nets to %s", acct, net)
	}
}

func (s *LedgerServiceTestSuite) TestReverseEntry_OnlyOnce() {
	original := s.post(date(2024, 2, 10), line("600", "10", ""), line("440", "", "10"))
	_, err := s.svc.Ledger.ReverseEntry(s.ctx, original.EntryID, nil, testUser)
	s.Require().NoError(err)

	_, err = s.svc.Ledger.ReverseEntry(s.ctx, original.EntryID, nil, testUser)
	s.True(apperrors.HasCode(err, apperrors.CodeEntryAlreadyReversed))
}

func (s *LedgerServiceTestSuite) TestReverseEntry_DatedIntoOpenPeriod() {
	original := s.post(date(2024, 2, 10), line("600", "10", ""), line("440", "", "10"))
	_, err := s.svc.Fiscal.ClosePeriod(s.ctx, s.h1.FiscalPeriodID, testUser)
	s.Require().NoError(err)

	_, err = s.svc.Ledger.ReverseEntry(s.ctx, original.EntryID, nil, testUser)
	s.True(apperrors.HasCode(err, apperrors.CodePeriodClosed))

	on := date(2024, 8, 1)
	reversal, err := s.svc.Ledger.ReverseEntry(s.ctx, original.EntryID, &on, testUser)
	s.Require().NoError(err)
	s.Equal(s.h2.FiscalPeriodID, *reversal.FiscalPeriodID)
}

func (s *LedgerServiceTestSuite) TestReverseEntry_AfterAccountDeactivated() {
	original := s.post(date(2024, 2, 10), line("600", "10", ""), line("440", "", "10"))
	_, err := s.svc.Account.DeactivateAccount(s.ctx, "600", testUser)
	s.Require().NoError(err)

	_, err = s.svc.Ledger.PostEntry(s.ctx, draft(date(2024, 2, 11), line("600", "10", ""), line("440", "", "10")))
	s.True(apperrors.HasCode(err, apperrors.CodeUnknownAccount), "new postings stay blocked")

	reversal, err := s.svc.Ledger.ReverseEntry(s.ctx, original.EntryID, nil, testUser)
	s.Require().NoError(err)
	s.True(reversal.Lines[0].Credit.Equal(dec("10")))
}

func (s *LedgerServiceTestSuite) TestReverseEntry_Unknown() {
	_, err := s.svc.Ledger.ReverseEntry(s.ctx, "missing", nil, testUser)
	s.True(apperrors.HasCode(err, apperrors.CodeUnknownEntry))
}
