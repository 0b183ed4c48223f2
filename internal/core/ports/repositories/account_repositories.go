package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByCode returns apperrors.ErrNotFound when the code is unknown.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	// FindAccountsByCodes returns the accounts found, keyed by code.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount returns apperrors.ErrDuplicate when the code exists.
	SaveAccount(ctx context.Context, account domain.Account) error
	// UpdateAccount replaces mutable fields (name, active flag, audit).
	UpdateAccount(ctx context.Context, account domain.Account) error
	// DeleteAccount returns apperrors.ErrInUse while any posted line references it.
	DeleteAccount(ctx context.Context, code string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
