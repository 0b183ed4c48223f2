package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
)

const currencyColumns = `currency_code, symbol, name, minor_units, created_at, created_by, last_updated_at, last_updated_by`

const rateColumns = `exchange_rate_id, currency_code, rate_date, rate, created_at, created_by, last_updated_at, last_updated_by`

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency and rate data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CurrencyCode, m.Symbol, m.Name, m.MinorUnits,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return wrap(err, "failed to save currency "+m.CurrencyCode)
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+currencyColumns+` FROM currencies WHERE currency_code = $1;`, code)
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		return nil, wrap(notFound(err, apperrors.CodeUnknownCurrency, "currency %s not found", code),
			"failed to find currency "+code)
	}
	c := mapping.ToDomainCurrency(m)
	return &c, nil
}

// ListCurrencies retrieves all currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+currencyColumns+` FROM currencies ORDER BY currency_code;`)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		return nil, wrap(err, "failed to list currencies")
	}
	return mapping.ToDomainCurrencySlice(ms), nil
}

func (r *PgxCurrencyRepository) DeleteCurrency(ctx context.Context, code string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM currencies WHERE currency_code = $1;`, code)
	if isForeignKeyViolation(err) {
		return apperrors.NewReferenceError(apperrors.CodeCurrencyInUse, "currency %s is referenced", code)
	}
	if err != nil {
		return wrap(err, "failed to delete currency "+code)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewReferenceError(apperrors.CodeUnknownCurrency, "currency %s not found", code)
	}
	return nil
}

func (r *PgxCurrencyRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		INSERT INTO exchange_rates (` + rateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExchangeRateID, m.CurrencyCode, m.RateDate, m.Rate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if isForeignKeyViolation(err) {
		return apperrors.NewReferenceError(apperrors.CodeUnknownCurrency, "currency %s not found", m.CurrencyCode)
	}
	return wrap(err, "failed to save exchange rate for "+m.CurrencyCode)
}

// FindRateOnOrBefore never looks at rates dated after asOf.
func (r *PgxCurrencyRepository) FindRateOnOrBefore(ctx context.Context, currencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM exchange_rates
		WHERE currency_code = $1 AND rate_date <= $2
		ORDER BY rate_date DESC
		LIMIT 1;
	`
	rows, _ := r.Pool.Query(ctx, query, currencyCode, asOf)
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ExchangeRate])
	if err != nil {
		return nil, wrap(notFound(err, apperrors.CodeNoRateAvailable, "no %s rate on or before %s",
			currencyCode, asOf.Format(time.DateOnly)), "failed to find rate for "+currencyCode)
	}
	er := mapping.ToDomainExchangeRate(m)
	return &er, nil
}

func (r *PgxCurrencyRepository) ListRates(ctx context.Context, currencyCode string) ([]domain.ExchangeRate, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+rateColumns+` FROM exchange_rates WHERE currency_code = $1 ORDER BY rate_date;`, currencyCode)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ExchangeRate])
	if err != nil {
		return nil, wrap(err, "failed to list rates for "+currencyCode)
	}
	return mapping.ToDomainExchangeRateSlice(ms), nil
}
