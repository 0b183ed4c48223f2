package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

// accountService is the chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, opts ...Option) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(opts),
		accountRepo: repo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) RegisterAccount(ctx context.Context, account domain.Account, userID string) (*domain.Account, error) {
	account.Code = strings.TrimSpace(account.Code)
	if err := requireText("code", account.Code); err != nil {
		return nil, s.Reject(ctx, "register_account", err)
	}
	if err := requireText("name", account.Name); err != nil {
		return nil, s.Reject(ctx, "register_account", err)
	}
	if !account.AccountType.Valid() {
		return nil, s.Reject(ctx, "register_account", apperrors.NewValidationError(apperrors.CodeInvalidInput,
			"unknown account type %q", account.AccountType))
	}

	account.AccountID = uuid.NewString()
	account.IsActive = true
	account.AuditFields = domain.NewAuditFields(userID, s.Now())

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, s.Reject(ctx, "register_account", err, slog.String("account_code", account.Code))
	}
	s.LogInfo(ctx, "Account registered",
		slog.String("account_code", account.Code),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func (s *accountService) Resolve(ctx context.Context, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, code)
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx)
}

func (s *accountService) DeactivateAccount(ctx context.Context, code string, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, s.Reject(ctx, "deactivate_account", err)
	}
	if !account.IsActive {
		return account, nil
	}
	account.IsActive = false
	account.Touch(userID, s.Now())
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, s.Reject(ctx, "deactivate_account", err, slog.String("account_code", code))
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_code", code))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, code string) error {
	if err := s.accountRepo.DeleteAccount(ctx, code); err != nil {
		return s.Reject(ctx, "delete_account", err, slog.String("account_code", code))
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_code", code))
	return nil
}
