package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	return s.write(func(next *state) error {
		if _, exists := next.accounts[account.Code]; exists {
			return apperrors.NewValidationError(apperrors.CodeDuplicateAccountCode, "account code %s already exists", account.Code)
		}
		next.accounts = cloned(next.accounts)
		next.accounts[account.Code] = account
		return nil
	})
}

func (s *Store) UpdateAccount(_ context.Context, account domain.Account) error {
	return s.write(func(next *state) error {
		if _, ok := next.accounts[account.Code]; !ok {
			return apperrors.NewReferenceError(apperrors.CodeUnknownAccount, "account %s not found", account.Code)
		}
		next.accounts = cloned(next.accounts)
		next.accounts[account.Code] = account
		return nil
	})
}

func (s *Store) DeleteAccount(_ context.Context, code string) error {
	return s.write(func(next *state) error {
		if _, ok := next.accounts[code]; !ok {
			return apperrors.NewReferenceError(apperrors.CodeUnknownAccount, "account %s not found", code)
		}
		for _, e := range next.entries {
			for _, l := range e.Lines {
				if l.AccountCode == code {
					return apperrors.NewReferenceError(apperrors.CodeAccountInUse, "account %s has posted lines", code)
				}
			}
		}
		next.accounts = cloned(next.accounts)
		delete(next.accounts, code)
		return nil
	})
}

func (s *Store) FindAccountByCode(_ context.Context, code string) (*domain.Account, error) {
	a, ok := s.read().accounts[code]
	if !ok {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownAccount, "account %s not found", code)
	}
	return &a, nil
}

func (s *Store) FindAccountsByCodes(_ context.Context, codes []string) (map[string]domain.Account, error) {
	st := s.read()
	out := make(map[string]domain.Account, len(codes))
	for _, code := range codes {
		if a, ok := st.accounts[code]; ok {
			out[code] = a
		}
	}
	return out, nil
}

func (s *Store) ListAccounts(_ context.Context) ([]domain.Account, error) {
	st := s.read()
	out := make([]domain.Account, 0, len(st.accounts))
	for _, a := range st.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
