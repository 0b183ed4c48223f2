package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
)

const entryColumns = `entry_id, entry_number, journal_code, entry_date, description, fiscal_year_id, fiscal_period_id, reversal_of_id, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `entry_id, line_no, account_code, debit, credit, original_currency, original_amount, exchange_rate, description, vat_rate_id, partner_id`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for posted entries and ledger queries.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveEntry commits the header and all lines in one transaction. The fiscal year,
// period and account rows are share-locked for the duration, so a concurrent close or
// deactivation either happens before (and the post fails) or waits for the commit.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, entryCommitLock); err != nil {
			return wrap(err, "failed to acquire entry commit lock")
		}
		if err := checkOpen(ctx, tx, entry.FiscalYearID, entry.FiscalPeriodID); err != nil {
			return err
		}

		codes := entry.AccountCodes()
		accounts, err := findAccountsByCodes(ctx, tx, codes, true)
		if err != nil {
			return err
		}
		for _, code := range codes {
			if a, ok := accounts[code]; !ok || (!a.IsActive && entry.ReversalOfID == nil) {
				return apperrors.NewReferenceError(apperrors.CodeUnknownAccount, "account %s does not exist or is inactive", code)
			}
		}

		if entry.ReversalOfID != nil {
			var exists bool
			err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE entry_id = $1);`, *entry.ReversalOfID).Scan(&exists)
			if err != nil {
				return wrap(err, "failed to check reversed entry")
			}
			if !exists {
				return apperrors.NewReferenceError(apperrors.CodeUnknownEntry, "entry %s not found", *entry.ReversalOfID)
			}
		}

		m := mapping.ToModelJournalEntry(entry)
		err = tx.QueryRow(ctx, `
			INSERT INTO journal_entries (
				entry_id, journal_code, entry_date, description, fiscal_year_id, fiscal_period_id,
				reversal_of_id, created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING entry_number;
		`,
			m.EntryID, m.JournalCode, m.EntryDate, m.Description, m.FiscalYearID, m.FiscalPeriodID,
			m.ReversalOfID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		).Scan(&entry.EntryNumber)
		if err != nil {
			return wrap(err, "failed to insert entry "+m.EntryID)
		}

		batch := &pgx.Batch{}
		lineQuery := `INSERT INTO journal_entry_lines (` + lineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
		for _, l := range entry.Lines {
			ml := mapping.ToModelJournalEntryLine(entry.EntryID, l)
			batch.Queue(lineQuery,
				ml.EntryID, ml.LineNo, ml.AccountCode, ml.Debit, ml.Credit,
				ml.OriginalCurrency, ml.OriginalAmount, ml.ExchangeRate, ml.Description,
				ml.VATRateID, ml.PartnerID,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return wrap(err, "failed to insert lines of entry "+m.EntryID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindEntryByID retrieves an entry with its lines in line order.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	if !isUUID(entryID) {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownEntry, "entry %s not found", entryID)
	}
	rows, _ := r.Pool.Query(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE entry_id = $1;`, entryID)
	return r.collectEntry(ctx, rows, "entry "+entryID)
}

func (r *PgxJournalRepository) FindReversalOf(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	if !isUUID(entryID) {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownEntry, "entry %s has no reversal", entryID)
	}
	rows, _ := r.Pool.Query(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE reversal_of_id = $1;`, entryID)
	return r.collectEntry(ctx, rows, "reversal of entry "+entryID)
}

func (r *PgxJournalRepository) collectEntry(ctx context.Context, rows pgx.Rows, what string) (*domain.JournalEntry, error) {
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, wrap(notFound(err, apperrors.CodeUnknownEntry, "%s not found", what), "failed to find "+what)
	}
	lineRows, _ := r.Pool.Query(ctx, `SELECT `+lineColumns+` FROM journal_entry_lines WHERE entry_id = $1 ORDER BY line_no;`, m.EntryID)
	lines, err := pgx.CollectRows(lineRows, pgx.RowToStructByName[models.JournalEntryLine])
	if err != nil {
		return nil, wrap(err, "failed to load lines of "+what)
	}
	e := mapping.ToDomainJournalEntry(m, lines)
	return &e, nil
}

// TrialBalance aggregates committed lines per account up to asOf inclusive.
func (r *PgxJournalRepository) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT l.account_code, a.name, a.account_type, SUM(l.debit), SUM(l.credit)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.code = l.account_code
		WHERE e.entry_date <= $1
		GROUP BY l.account_code, a.name, a.account_type
		ORDER BY l.account_code;
	`
	rows, _ := r.Pool.Query(ctx, query, asOf)
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TrialBalanceRow, error) {
		var tb domain.TrialBalanceRow
		var accountType string
		err := row.Scan(&tb.AccountCode, &tb.AccountName, &accountType, &tb.Debit, &tb.Credit)
		tb.AccountType = domain.AccountType(accountType)
		return tb, err
	})
	if err != nil {
		return nil, wrap(err, "failed to compute trial balance")
	}
	return out, nil
}

func (r *PgxJournalRepository) ListAccountLines(ctx context.Context, accountCode string, from, to time.Time) ([]domain.LedgerLine, error) {
	query := `
		SELECT e.entry_id, e.entry_number, e.entry_date, e.journal_code, l.line_no,
		       COALESCE(NULLIF(l.description, ''), e.description), l.debit, l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_code = $1 AND e.entry_date BETWEEN $2 AND $3
		ORDER BY e.entry_date, e.entry_number, l.line_no;
	`
	rows, _ := r.Pool.Query(ctx, query, accountCode, from, to)
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LedgerLine, error) {
		var ll domain.LedgerLine
		err := row.Scan(&ll.EntryID, &ll.EntryNumber, &ll.Date, &ll.JournalCode, &ll.LineNo,
			&ll.Description, &ll.Debit, &ll.Credit)
		ll.Date = domain.DateOf(ll.Date)
		ll.Balance = decimal.Zero
		return ll, err
	})
	if err != nil {
		return nil, wrap(err, "failed to list lines of account "+accountCode)
	}
	return out, nil
}

func (r *PgxJournalRepository) AccountTotalsBefore(ctx context.Context, accountCode string, date time.Time) (domain.AccountTotals, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_code = $1 AND e.entry_date < $2;
	`
	var totals domain.AccountTotals
	if err := r.Pool.QueryRow(ctx, query, accountCode, date).Scan(&totals.Debit, &totals.Credit); err != nil {
		return domain.AccountTotals{}, wrap(err, "failed to total account "+accountCode)
	}
	return totals, nil
}
