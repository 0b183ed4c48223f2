package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
)

const accountColumns = `account_id, code, name, account_type, vat_applicable, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for the chart of accounts.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.Code, m.Name, m.AccountType, m.VATApplicable, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return wrap(err, "failed to save account "+m.Code)
}

// UpdateAccount updates mutable fields of an existing account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $1, vat_applicable = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE code = $6;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Name, m.VATApplicable, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy, m.Code)
	if err != nil {
		return wrap(err, "failed to update account "+m.Code)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewReferenceError(apperrors.CodeUnknownAccount, "account %s not found", m.Code)
	}
	return nil
}

func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, code string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE code = $1;`, code)
	if isForeignKeyViolation(err) {
		return apperrors.NewReferenceError(apperrors.CodeAccountInUse, "account %s has posted lines", code)
	}
	if err != nil {
		return wrap(err, "failed to delete account "+code)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewReferenceError(apperrors.CodeUnknownAccount, "account %s not found", code)
	}
	return nil
}

// FindAccountByCode retrieves a single account by its code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = $1;`, code)
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, wrap(notFound(err, apperrors.CodeUnknownAccount, "account %s not found", code),
			"failed to find account "+code)
	}
	a := mapping.ToDomainAccount(m)
	return &a, nil
}

// FindAccountsByCodes retrieves multiple accounts in one round trip.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	return findAccountsByCodes(ctx, r.Pool, codes, false)
}

// ListAccounts retrieves the chart of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY code;`)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, wrap(err, "failed to list accounts")
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// findAccountsByCodes optionally takes FOR SHARE row locks, which block a concurrent
// deactivation until the caller's transaction ends.
func findAccountsByCodes(ctx context.Context, q querier, codes []string, share bool) (map[string]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = ANY($1)`
	if share {
		query += ` FOR SHARE`
	}
	rows, _ := q.Query(ctx, query, codes)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, wrap(err, "failed to find accounts")
	}
	out := make(map[string]domain.Account, len(ms))
	for _, m := range ms {
		out[m.Code] = mapping.ToDomainAccount(m)
	}
	return out, nil
}
