package memory

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seededStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.SaveAccount(ctx, domain.Account{Code: "600", Name: "Expenses", AccountType: domain.Expense, IsActive: true}))
	require.NoError(t, s.SaveAccount(ctx, domain.Account{Code: "440", Name: "Suppliers", AccountType: domain.Liability, IsActive: true}))
	require.NoError(t, s.SaveFiscalYear(ctx, domain.FiscalYear{
		FiscalYearID: "fy24", Name: "2024",
		StartDate: domain.NewDate(2024, 1, 1), EndDate: domain.NewDate(2024, 12, 31),
	}))
	require.NoError(t, s.SaveFiscalPeriod(ctx, domain.FiscalPeriod{
		FiscalPeriodID: "p1", FiscalYearID: "fy24", Name: "2024-01",
		StartDate: domain.NewDate(2024, 1, 1), EndDate: domain.NewDate(2024, 1, 31),
	}))
	return s
}

func entry(id string, date time.Time, amount string) domain.JournalEntry {
	period := "p1"
	return domain.JournalEntry{
		EntryID: id, JournalCode: "MISC", Date: date, FiscalYearID: "fy24", FiscalPeriodID: &period,
		Lines: []domain.JournalEntryLine{
			{LineNo: 1, AccountCode: "600", Debit: d(amount), Credit: decimal.Zero},
			{LineNo: 2, AccountCode: "440", Debit: decimal.Zero, Credit: d(amount)},
		},
	}
}

func TestSaveEntryAssignsIncreasingNumbers(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	first, err := s.SaveEntry(ctx, entry("e1", domain.NewDate(2024, 1, 5), "10"))
	require.NoError(t, err)
	second, err := s.SaveEntry(ctx, entry("e2", domain.NewDate(2024, 1, 3), "20"))
	require.NoError(t, err)

	assert.Less(t, first.EntryNumber, second.EntryNumber)

	lines, err := s.ListAccountLines(ctx, "600", domain.NewDate(2024, 1, 1), domain.NewDate(2024, 1, 31))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "e2", lines[0].EntryID, "ordered by date first")
	assert.Equal(t, "e1", lines[1].EntryID)
}

func TestSaveEntryRechecksAtCommit(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	require.NoError(t, s.UpdateAccount(ctx, domain.Account{Code: "440", Name: "Suppliers", AccountType: domain.Liability, IsActive: false}))
	_, err := s.SaveEntry(ctx, entry("e1", domain.NewDate(2024, 1, 5), "10"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnknownAccount))

	require.NoError(t, s.UpdateAccount(ctx, domain.Account{Code: "440", Name: "Suppliers", AccountType: domain.Liability, IsActive: true}))
	require.NoError(t, s.CloseFiscalPeriod(ctx, "p1", domain.AuditFields{}))
	_, err = s.SaveEntry(ctx, entry("e1", domain.NewDate(2024, 1, 5), "10"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodePeriodClosed))

	tb, err := s.TrialBalance(ctx, domain.NewDate(2024, 12, 31))
	require.NoError(t, err)
	assert.Empty(t, tb, "rejected entries leave no trace")
}

func TestReversalIsUnique(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	_, err := s.SaveEntry(ctx, entry("e1", domain.NewDate(2024, 1, 5), "10"))
	require.NoError(t, err)

	original := "e1"
	rev := entry("r1", domain.NewDate(2024, 1, 6), "10")
	rev.ReversalOfID = &original
	_, err = s.SaveEntry(ctx, rev)
	require.NoError(t, err)

	rev.EntryID = "r2"
	_, err = s.SaveEntry(ctx, rev)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeEntryAlreadyReversed))

	found, err := s.FindReversalOf(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "r1", found.EntryID)
}

func TestReversalAllowedOnInactiveAccount(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	_, err := s.SaveEntry(ctx, entry("e1", domain.NewDate(2024, 1, 5), "10"))
	require.NoError(t, err)
	require.NoError(t, s.UpdateAccount(ctx, domain.Account{Code: "440", Name: "Suppliers", AccountType: domain.Liability, IsActive: false}))

	_, err = s.SaveEntry(ctx, entry("e2", domain.NewDate(2024, 1, 6), "10"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnknownAccount))

	original := "e1"
	rev := entry("r1", domain.NewDate(2024, 1, 6), "10")
	rev.ReversalOfID = &original
	_, err = s.SaveEntry(ctx, rev)
	require.NoError(t, err)
}

func TestSnapshotsIsolateReaders(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	before := s.read()

	_, err := s.SaveEntry(ctx, entry("e1", domain.NewDate(2024, 1, 5), "10"))
	require.NoError(t, err)

	assert.Empty(t, before.entries)
	assert.NotContains(t, before.entryIndex, "e1")
	assert.Len(t, s.read().entries, 1)
}

func TestConcurrentPostsAreAllVisible(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.SaveEntry(ctx, entry("c"+strconv.Itoa(i), domain.NewDate(2024, 1, 10), "1"))
			assert.NoError(t, err)
		}(i)
	}
	// readers run alongside writers and must always see balanced totals
	for i := 0; i < 50; i++ {
		rows, err := s.TrialBalance(ctx, domain.NewDate(2024, 12, 31))
		require.NoError(t, err)
		debit, credit := decimal.Zero, decimal.Zero
		for _, r := range rows {
			debit, credit = debit.Add(r.Debit), credit.Add(r.Credit)
		}
		assert.True(t, debit.Equal(credit))
	}
	wg.Wait()

	rows, err := s.TrialBalance(ctx, domain.NewDate(2024, 12, 31))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[1].Debit.Equal(d("50")), "600 sorts after 440")
}

func TestRates(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.SaveExchangeRate(ctx, domain.ExchangeRate{CurrencyCode: "USD", RateDate: domain.NewDate(2024, 3, 1), Rate: d("0.92")}))
	require.NoError(t, s.SaveExchangeRate(ctx, domain.ExchangeRate{CurrencyCode: "USD", RateDate: domain.NewDate(2024, 1, 1), Rate: d("0.90")}))

	err := s.SaveExchangeRate(ctx, domain.ExchangeRate{CurrencyCode: "USD", RateDate: domain.NewDate(2024, 1, 1), Rate: d("0.91")})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDuplicateRate))

	_, err = s.FindRateOnOrBefore(ctx, "USD", domain.NewDate(2023, 12, 31))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNoRateAvailable))

	r, err := s.FindRateOnOrBefore(ctx, "USD", domain.NewDate(2024, 2, 15))
	require.NoError(t, err)
	assert.True(t, r.Rate.Equal(d("0.90")))

	r, err = s.FindRateOnOrBefore(ctx, "USD", domain.NewDate(2024, 3, 1))
	require.NoError(t, err)
	assert.True(t, r.Rate.Equal(d("0.92")))
}

func TestFiscalOverlapAndClose(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	err := s.SaveFiscalYear(ctx, domain.FiscalYear{FiscalYearID: "x", StartDate: domain.NewDate(2024, 12, 31), EndDate: domain.NewDate(2025, 12, 30)})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeOverlappingPeriod))

	err = s.SaveFiscalPeriod(ctx, domain.FiscalPeriod{FiscalPeriodID: "p1b", FiscalYearID: "fy24", StartDate: domain.NewDate(2024, 1, 31), EndDate: domain.NewDate(2024, 2, 28)})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeOverlappingPeriod))

	require.NoError(t, s.CloseFiscalYear(ctx, "fy24", domain.AuditFields{}))
	y, err := s.FindFiscalYearForDate(ctx, domain.NewDate(2024, 6, 1))
	require.NoError(t, err)
	assert.True(t, y.IsClosed)
	require.Len(t, y.Periods, 1)
	assert.True(t, y.Periods[0].IsClosed)
}

func TestReferencedDataCannotBeDeleted(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	_, err := s.SaveEntry(ctx, entry("e1", domain.NewDate(2024, 1, 5), "10"))
	require.NoError(t, err)

	err = s.DeleteAccount(ctx, "600")
	assert.True(t, errors.Is(err, apperrors.ErrInUse))

	require.NoError(t, s.SaveAccount(ctx, domain.Account{Code: "999", AccountType: domain.Asset, IsActive: true}))
	assert.NoError(t, s.DeleteAccount(ctx, "999"))
}

func TestSettlementVersioning(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	require.NoError(t, s.SavePartner(ctx, domain.Partner{PartnerID: "acme", Name: "ACME"}))
	require.NoError(t, s.SaveInvoice(ctx, domain.Invoice{
		InvoiceID: "inv1", Number: "F-1", PartnerID: "acme", FiscalYearID: "fy24",
		TotalAmount: d("500"), CurrencyCode: "EUR", AmountPaid: decimal.Zero,
	}))

	pay := func(id string, version int64, total string) error {
		_, err := s.SaveSettlement(ctx, portsrepo.Settlement{
			InvoiceID: "inv1", ExpectedVersion: version, AmountPaid: d(total),
			Payment: domain.Payment{PaymentID: id, InvoiceID: "inv1", CurrencyCode: "EUR"},
		})
		return err
	}

	require.NoError(t, pay("pay1", 0, "200"))
	err := pay("pay2", 0, "200")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	inv, err := s.FindInvoiceByID(ctx, "inv1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, inv.Version)
	assert.True(t, inv.AmountPaid.Equal(d("200")))

	payments, err := s.ListPayments(ctx, "inv1")
	require.NoError(t, err)
	assert.Len(t, payments, 1)

	err = s.SaveInvoice(ctx, domain.Invoice{InvoiceID: "inv2", Number: "F-1", PartnerID: "acme"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDuplicateInvoiceNumber))
}
