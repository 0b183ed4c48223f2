package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
)

// reportingService provides read-only aggregations over committed state.
type reportingService struct {
	BaseService
	ledgerRepo    portsrepo.LedgerQueries
	accountRepo   portsrepo.AccountReader
	invoiceRepo   portsrepo.InvoiceReader
	referenceRepo portsrepo.ReferenceReader
}

// NewReportingService creates a new reporting service
func NewReportingService(
	ledgerRepo portsrepo.LedgerQueries,
	accountRepo portsrepo.AccountReader,
	invoiceRepo portsrepo.InvoiceReader,
	referenceRepo portsrepo.ReferenceReader,
	opts ...Option,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		BaseService:   newBaseService(opts),
		ledgerRepo:    ledgerRepo,
		accountRepo:   accountRepo,
		invoiceRepo:   invoiceRepo,
		referenceRepo: referenceRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	asOf = domain.DateOf(asOf)
	rows, err := s.ledgerRepo.TrialBalance(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute trial balance")
		return nil, err
	}
	report := &domain.TrialBalanceReport{AsOf: asOf, Rows: rows, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, r := range rows {
		report.TotalDebit = report.TotalDebit.Add(r.Debit)
		report.TotalCredit = report.TotalCredit.Add(r.Credit)
	}
	return report, nil
}

func (s *reportingService) AccountLedger(ctx context.Context, accountCode string, from, to time.Time) (*domain.AccountLedgerReport, error) {
	from, to = domain.DateOf(from), domain.DateOf(to)
	if to.Before(from) {
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidDateRange, "ledger range ends before it starts")
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		return nil, err
	}

	opening, err := s.balanceBefore(ctx, *account, from)
	if err != nil {
		return nil, err
	}
	lines, err := s.ledgerRepo.ListAccountLines(ctx, accountCode, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account lines")
		return nil, err
	}

	running := opening
	for i := range lines {
		delta, err := accounting.CalculateSignedAmount(lines[i].Debit, lines[i].Credit, account.AccountType)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", accountCode, err)
		}
		running = running.Add(delta)
		lines[i].Balance = running
	}

	return &domain.AccountLedgerReport{
		Account:        *account,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		Lines:          lines,
		ClosingBalance: running,
	}, nil
}

func (s *reportingService) AccountBalance(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		return decimal.Zero, err
	}
	return s.balanceBefore(ctx, *account, domain.DateOf(asOf).AddDate(0, 0, 1))
}

func (s *reportingService) OpenItems(ctx context.Context, partnerID string) (*domain.OpenItemsReport, error) {
	partner, err := s.referenceRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListOpenInvoicesByPartner(ctx, partnerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list open invoices")
		return nil, err
	}

	report := &domain.OpenItemsReport{
		Partner:          *partner,
		Items:            make([]domain.OpenItem, 0, len(invoices)),
		TotalsByCurrency: map[string]decimal.Decimal{},
	}
	for _, inv := range invoices {
		out := inv.Outstanding()
		report.Items = append(report.Items, domain.OpenItem{Invoice: inv, Status: inv.Status(), Outstanding: out})
		report.TotalsByCurrency[inv.CurrencyCode] = report.TotalsByCurrency[inv.CurrencyCode].Add(out)
	}
	return report, nil
}

// balanceBefore is the normal-side balance of lines dated strictly before date.
func (s *reportingService) balanceBefore(ctx context.Context, account domain.Account, date time.Time) (decimal.Decimal, error) {
	totals, err := s.ledgerRepo.AccountTotalsBefore(ctx, account.Code, date)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.CalculateSignedAmount(totals.Debit, totals.Credit, account.AccountType)
}
