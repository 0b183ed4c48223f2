package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingSvcFacade defines the read-only reports. Nothing here mutates state.
type ReportingSvcFacade interface {
	// TrialBalance sums posted lines per account over entries dated on or before asOf.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)
	// AccountLedger lists the account's lines dated within [from, to].
	AccountLedger(ctx context.Context, accountCode string, from, to time.Time) (*domain.AccountLedgerReport, error)
	// OpenItems lists the partner's invoices with an outstanding balance.
	OpenItems(ctx context.Context, partnerID string) (*domain.OpenItemsReport, error)
	// AccountBalance is the normal-side balance of the account as of asOf.
	AccountBalance(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error)
}
