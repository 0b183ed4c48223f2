package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/memory"
)

const testUser = "user-1"

var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, d int) time.Time { return domain.NewDate(y, m, d) }

// engineSuite wires every service over a fresh in-memory store with a small chart,
// EUR as base, a USD rate table starting 2024-01-01 and fiscal year 2024 split in
// two halves with a gap on 2024-07-01.
type engineSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	svc   *portssvc.ServiceContainer

	fy2024  *domain.FiscalYear
	h1, h2  *domain.FiscalPeriod
	partner *domain.Partner
}

func (s *engineSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	cfg := &config.Config{BaseCurrency: "EUR", SettlementMaxRetries: 50}
	s.svc = services.NewServiceContainer(cfg, memory.NewRepositoryProvider(s.store),
		services.WithClock(func() time.Time { return fixedNow }))

	for _, c := range []domain.Currency{
		{CurrencyCode: "EUR", Name: "Euro", Symbol: "€", MinorUnits: 2},
		{CurrencyCode: "USD", Name: "US Dollar", Symbol: "$", MinorUnits: 2},
		{CurrencyCode: "JPY", Name: "Yen", Symbol: "¥", MinorUnits: 0},
	} {
		_, err := s.svc.Currency.CreateCurrency(s.ctx, c, testUser)
		s.Require().NoError(err)
	}
	_, err := s.svc.Currency.RecordRate(s.ctx, "USD", date(2024, 1, 1), dec("0.90"), testUser)
	s.Require().NoError(err)
	_, err = s.svc.Currency.RecordRate(s.ctx, "USD", date(2024, 3, 1), dec("0.95"), testUser)
	s.Require().NoError(err)
	_, err = s.svc.Currency.RecordRate(s.ctx, "JPY", date(2024, 1, 1), dec("0.0062"), testUser)
	s.Require().NoError(err)

	for _, a := range []domain.Account{
		{Code: "600", Name: "Purchases", AccountType: domain.Expense, VATApplicable: true},
		{Code: "440", Name: "Suppliers", AccountType: domain.Liability},
		{Code: "411", Name: "Customers", AccountType: domain.Asset},
		{Code: "512", Name: "Bank", AccountType: domain.Asset},
		{Code: "707", Name: "Sales", AccountType: domain.Revenue, VATApplicable: true},
	} {
		_, err := s.svc.Account.RegisterAccount(s.ctx, a, testUser)
		s.Require().NoError(err)
	}

	for _, code := range []string{"MISC", "SAL", "BNK"} {
		_, err := s.svc.Reference.CreateJournal(s.ctx, code, code+" journal", testUser)
		s.Require().NoError(err)
	}
	s.partner, err = s.svc.Reference.CreatePartner(s.ctx, domain.Partner{Name: "ACME", IsCustomer: true}, testUser)
	s.Require().NoError(err)

	s.fy2024, err = s.svc.Fiscal.CreateFiscalYear(s.ctx, "2024", date(2024, 1, 1), date(2024, 12, 31), testUser)
	s.Require().NoError(err)
	s.h1, err = s.svc.Fiscal.AddPeriod(s.ctx, s.fy2024.FiscalYearID, "2024-H1", date(2024, 1, 1), date(2024, 6, 30), testUser)
	s.Require().NoError(err)
	s.h2, err = s.svc.Fiscal.AddPeriod(s.ctx, s.fy2024.FiscalYearID, "2024-H2", date(2024, 7, 2), date(2024, 12, 31), testUser)
	s.Require().NoError(err)
}

func line(account string, debit, credit string) domain.DraftLine {
	l := domain.DraftLine{AccountCode: account, Debit: decimal.Zero, Credit: decimal.Zero}
	if debit != "" {
		l.Debit = dec(debit)
	}
	if credit != "" {
		l.Credit = dec(credit)
	}
	return l
}

func draft(on time.Time, lines ...domain.DraftLine) domain.DraftEntry {
	return domain.DraftEntry{JournalCode: "MISC", Date: on, Description: "test entry", Lines: lines, CreatedBy: testUser}
}

func (s *engineSuite) post(on time.Time, lines ...domain.DraftLine) *domain.JournalEntry {
	e, err := s.svc.Ledger.PostEntry(s.ctx, draft(on, lines...))
	s.Require().NoError(err)
	return e
}

func (s *engineSuite) invoice(number, total, currency string, on time.Time) *domain.Invoice {
	inv, err := s.svc.Reconciliation.CreateInvoice(s.ctx, domain.Invoice{
		Number:       number,
		PartnerID:    s.partner.PartnerID,
		InvoiceDate:  on,
		DueDate:      on.AddDate(0, 1, 0),
		TotalAmount:  dec(total),
		CurrencyCode: currency,
	}, testUser)
	s.Require().NoError(err)
	return inv
}

func payment(amount, currency string, on time.Time) domain.PaymentRequest {
	return domain.PaymentRequest{PaymentDate: on, Amount: dec(amount), CurrencyCode: currency, PaymentMethod: "transfer", CreatedBy: testUser}
}
