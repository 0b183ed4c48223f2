package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// Resolve returns the account with the given code or fails with UnknownAccount.
	Resolve(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// RegisterAccount fails with DuplicateAccountCode if the code exists.
	RegisterAccount(ctx context.Context, account domain.Account, userID string) (*domain.Account, error)
	// DeactivateAccount stops further postings to the account.
	DeactivateAccount(ctx context.Context, code string, userID string) (*domain.Account, error)
	// DeleteAccount fails with AccountInUse once any posted line references the account.
	DeleteAccount(ctx context.Context, code string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
