package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestInvoice_Status(t *testing.T) {
	tests := []struct {
		name        string
		paid        string
		want        domain.InvoiceStatus
		outstanding string
		credit      string
	}{
		{name: "nothing paid", paid: "0", want: domain.InvoiceOpen, outstanding: "500", credit: "0"},
		{name: "partially paid", paid: "200", want: domain.InvoicePartiallyPaid, outstanding: "300", credit: "0"},
		{name: "exactly paid", paid: "500.00", want: domain.InvoicePaid, outstanding: "0", credit: "0"},
		{name: "overpaid", paid: "520", want: domain.InvoicePaid, outstanding: "0", credit: "20"},
		{name: "one cent short", paid: "499.99", want: domain.InvoicePartiallyPaid, outstanding: "0.01", credit: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := domain.Invoice{TotalAmount: d("500"), AmountPaid: d(tt.paid)}
			assert.Equal(t, tt.want, inv.Status())
			assert.Equal(t, tt.want == domain.InvoicePaid, inv.IsPaid())
			assert.True(t, inv.Outstanding().Equal(d(tt.outstanding)), inv.Outstanding().String())
			assert.True(t, inv.CreditBalance().Equal(d(tt.credit)), inv.CreditBalance().String())
		})
	}
}

func TestDateRange(t *testing.T) {
	jan := domain.DateRange{From: domain.NewDate(2024, 1, 1), To: domain.NewDate(2024, 1, 31)}

	assert.True(t, jan.Valid())
	assert.True(t, jan.Contains(domain.NewDate(2024, 1, 1)))
	assert.True(t, jan.Contains(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, jan.Contains(domain.NewDate(2024, 2, 1)))

	assert.True(t, jan.Overlaps(domain.DateRange{From: domain.NewDate(2024, 1, 31), To: domain.NewDate(2024, 2, 5)}))
	assert.False(t, jan.Overlaps(domain.DateRange{From: domain.NewDate(2024, 2, 1), To: domain.NewDate(2024, 2, 5)}))
	assert.False(t, domain.DateRange{From: domain.NewDate(2024, 2, 1), To: domain.NewDate(2024, 1, 1)}.Valid())
}

func TestCurrency_RoundAndPrecision(t *testing.T) {
	eur := domain.Currency{CurrencyCode: "EUR", MinorUnits: 2}
	jpy := domain.Currency{CurrencyCode: "JPY", MinorUnits: 0}

	assert.True(t, eur.Round(d("1.005")).Equal(d("1.01")))
	assert.True(t, eur.Round(d("-1.005")).Equal(d("-1.01")))
	assert.True(t, jpy.Round(d("1532.5")).Equal(d("1533")))

	assert.True(t, eur.FitsPrecision(d("10.50")))
	assert.False(t, eur.FitsPrecision(d("10.505")))
	assert.False(t, jpy.FitsPrecision(d("1.5")))
}

func TestRateQuote(t *testing.T) {
	eur := domain.Currency{CurrencyCode: "EUR", MinorUnits: 2}
	q := domain.RateQuote{FromCurrency: "USD", ToCurrency: "EUR", FromRate: d("0.9"), ToRate: d("1")}

	assert.True(t, q.Effective().Equal(d("0.9")))
	assert.True(t, q.Apply(d("33.33"), eur).Equal(d("30.00")))

	same := domain.RateQuote{FromCurrency: "EUR", ToCurrency: "EUR", FromRate: d("1"), ToRate: d("1")}
	assert.True(t, same.Effective().Equal(d("1")))
	assert.True(t, same.Apply(d("1.234"), eur).Equal(d("1.234")))
}

func TestFiscalPosition(t *testing.T) {
	year := domain.FiscalYear{FiscalYearID: "y"}
	open := domain.FiscalPeriod{FiscalPeriodID: "p"}
	closed := domain.FiscalPeriod{FiscalPeriodID: "q", IsClosed: true}

	assert.False(t, domain.FiscalPosition{Year: year}.IsClosed())
	assert.Nil(t, domain.FiscalPosition{Year: year}.PeriodID())
	assert.False(t, domain.FiscalPosition{Year: year, Period: &open}.IsClosed())
	assert.Equal(t, "p", *domain.FiscalPosition{Year: year, Period: &open}.PeriodID())
	assert.True(t, domain.FiscalPosition{Year: year, Period: &closed}.IsClosed())

	year.IsClosed = true
	assert.True(t, domain.FiscalPosition{Year: year, Period: &open}.IsClosed())
}

func TestJournalEntry_Totals(t *testing.T) {
	e := domain.JournalEntry{Lines: []domain.JournalEntryLine{
		{AccountCode: "600", Debit: d("60"), Credit: decimal.Zero},
		{AccountCode: "600", Debit: d("40"), Credit: decimal.Zero},
		{AccountCode: "440", Debit: decimal.Zero, Credit: d("100")},
	}}
	assert.True(t, e.TotalDebit().Equal(d("100")))
	assert.True(t, e.TotalCredit().Equal(d("100")))
	assert.Equal(t, []string{"600", "440"}, e.AccountCodes())

	r := e.Lines[2].Reversed()
	assert.True(t, r.IsDebit())
	assert.True(t, r.Debit.Equal(d("100")))
}

func TestAccountType(t *testing.T) {
	assert.True(t, domain.Asset.DebitNormal())
	assert.True(t, domain.Expense.DebitNormal())
	assert.False(t, domain.Revenue.DebitNormal())
	assert.False(t, domain.AccountType("INCOME").Valid())
}
