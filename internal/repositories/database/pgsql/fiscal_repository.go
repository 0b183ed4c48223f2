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

const fiscalYearColumns = `fiscal_year_id, name, start_date, end_date, is_closed, created_at, created_by, last_updated_at, last_updated_by`

const fiscalPeriodColumns = `fiscal_period_id, fiscal_year_id, name, start_date, end_date, is_closed, created_at, created_by, last_updated_at, last_updated_by`

type PgxFiscalRepository struct {
	BaseRepository
}

func newPgxFiscalRepository(pool *pgxpool.Pool) portsrepo.FiscalRepositoryFacade {
	return &PgxFiscalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.FiscalRepositoryFacade = (*PgxFiscalRepository)(nil)

func (r *PgxFiscalRepository) SaveFiscalYear(ctx context.Context, year domain.FiscalYear) error {
	m := mapping.ToModelFiscalYear(year)
	query := `
		INSERT INTO fiscal_years (` + fiscalYearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FiscalYearID, m.Name, m.StartDate, m.EndDate, m.IsClosed,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return wrap(err, "failed to save fiscal year "+m.Name)
}

// SaveFiscalPeriod inserts the period while holding a share lock on its year, so a
// concurrent year close cannot slip in between.
func (r *PgxFiscalRepository) SaveFiscalPeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)
	return r.withTx(ctx, func(tx pgx.Tx) error {
		var closed bool
		err := tx.QueryRow(ctx, `SELECT is_closed FROM fiscal_years WHERE fiscal_year_id = $1 FOR SHARE;`, m.FiscalYearID).Scan(&closed)
		if err != nil {
			return wrap(notFound(err, apperrors.CodeUnknownFiscalYear, "fiscal year %s not found", m.FiscalYearID),
				"failed to lock fiscal year")
		}
		if closed {
			return apperrors.PeriodClosed("fiscal year %s is closed", m.FiscalYearID)
		}
		query := `
			INSERT INTO fiscal_periods (` + fiscalPeriodColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
		`
		_, err = tx.Exec(ctx, query,
			m.FiscalPeriodID, m.FiscalYearID, m.Name, m.StartDate, m.EndDate, m.IsClosed,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		return wrap(err, "failed to save fiscal period "+m.Name)
	})
}

func (r *PgxFiscalRepository) CloseFiscalPeriod(ctx context.Context, fiscalPeriodID string, audit domain.AuditFields) error {
	query := `
		UPDATE fiscal_periods
		SET is_closed = TRUE, last_updated_at = $1, last_updated_by = $2
		WHERE fiscal_period_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, audit.LastUpdatedAt, audit.LastUpdatedBy, fiscalPeriodID)
	if err != nil {
		return wrap(err, "failed to close fiscal period")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewReferenceError(apperrors.CodeUnknownFiscalPeriod, "fiscal period %s not found", fiscalPeriodID)
	}
	return nil
}

func (r *PgxFiscalRepository) CloseFiscalYear(ctx context.Context, fiscalYearID string, audit domain.AuditFields) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE fiscal_years
			SET is_closed = TRUE, last_updated_at = $1, last_updated_by = $2
			WHERE fiscal_year_id = $3;
		`, audit.LastUpdatedAt, audit.LastUpdatedBy, fiscalYearID)
		if err != nil {
			return wrap(err, "failed to close fiscal year")
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewReferenceError(apperrors.CodeUnknownFiscalYear, "fiscal year %s not found", fiscalYearID)
		}
		_, err = tx.Exec(ctx, `
			UPDATE fiscal_periods
			SET is_closed = TRUE, last_updated_at = $1, last_updated_by = $2
			WHERE fiscal_year_id = $3 AND NOT is_closed;
		`, audit.LastUpdatedAt, audit.LastUpdatedBy, fiscalYearID)
		return wrap(err, "failed to close fiscal periods")
	})
}

func (r *PgxFiscalRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	if !isUUID(fiscalYearID) {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownFiscalYear, "fiscal year %s not found", fiscalYearID)
	}
	rows, _ := r.Pool.Query(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years WHERE fiscal_year_id = $1;`, fiscalYearID)
	return r.collectYear(ctx, rows, "fiscal year "+fiscalYearID)
}

func (r *PgxFiscalRepository) FindFiscalYearForDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years WHERE $1 BETWEEN start_date AND end_date;`, date)
	return r.collectYear(ctx, rows, "fiscal year covering "+date.Format(time.DateOnly))
}

func (r *PgxFiscalRepository) collectYear(ctx context.Context, rows pgx.Rows, what string) (*domain.FiscalYear, error) {
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.FiscalYear])
	if err != nil {
		return nil, wrap(notFound(err, apperrors.CodeUnknownFiscalYear, "%s not found", what), "failed to find "+what)
	}
	year := mapping.ToDomainFiscalYear(m)
	if year.Periods, err = r.periodsOf(ctx, year.FiscalYearID); err != nil {
		return nil, err
	}
	return &year, nil
}

func (r *PgxFiscalRepository) FindFiscalPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	if !isUUID(fiscalPeriodID) {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownFiscalPeriod, "fiscal period %s not found", fiscalPeriodID)
	}
	rows, _ := r.Pool.Query(ctx, `SELECT `+fiscalPeriodColumns+` FROM fiscal_periods WHERE fiscal_period_id = $1;`, fiscalPeriodID)
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.FiscalPeriod])
	if err != nil {
		return nil, wrap(notFound(err, apperrors.CodeUnknownFiscalPeriod, "fiscal period %s not found", fiscalPeriodID),
			"failed to find fiscal period")
	}
	p := mapping.ToDomainFiscalPeriod(m)
	return &p, nil
}

func (r *PgxFiscalRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years ORDER BY start_date;`)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.FiscalYear])
	if err != nil {
		return nil, wrap(err, "failed to list fiscal years")
	}
	years := make([]domain.FiscalYear, 0, len(ms))
	for _, m := range ms {
		y := mapping.ToDomainFiscalYear(m)
		if y.Periods, err = r.periodsOf(ctx, y.FiscalYearID); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, nil
}

func (r *PgxFiscalRepository) periodsOf(ctx context.Context, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+fiscalPeriodColumns+` FROM fiscal_periods WHERE fiscal_year_id = $1 ORDER BY start_date;`, fiscalYearID)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.FiscalPeriod])
	if err != nil {
		return nil, wrap(err, "failed to list fiscal periods")
	}
	if len(ms) == 0 {
		return nil, nil
	}
	return mapping.ToDomainFiscalPeriodSlice(ms), nil
}

// checkOpen share-locks the year and, when given, the period, failing with
// PeriodClosed if either is closed. Close statements wait on these locks.
func checkOpen(ctx context.Context, tx pgx.Tx, fiscalYearID string, fiscalPeriodID *string) error {
	var closed bool
	err := tx.QueryRow(ctx, `SELECT is_closed FROM fiscal_years WHERE fiscal_year_id = $1 FOR SHARE;`, fiscalYearID).Scan(&closed)
	if err != nil {
		return wrap(notFound(err, apperrors.CodeUnknownFiscalYear, "fiscal year %s not found", fiscalYearID),
			"failed to lock fiscal year")
	}
	if closed {
		return apperrors.PeriodClosed("fiscal year %s is closed", fiscalYearID)
	}
	if fiscalPeriodID == nil {
		return nil
	}
	err = tx.QueryRow(ctx, `SELECT is_closed FROM fiscal_periods WHERE fiscal_period_id = $1 FOR SHARE;`, *fiscalPeriodID).Scan(&closed)
	if err != nil {
		return wrap(notFound(err, apperrors.CodeUnknownFiscalPeriod, "fiscal period %s not found", *fiscalPeriodID),
			"failed to lock fiscal period")
	}
	if closed {
		return apperrors.PeriodClosed("fiscal period %s is closed", *fiscalPeriodID)
	}
	return nil
}
