package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// EntryReader defines read operations for posted entries
type EntryReader interface {
	// FindEntryByID returns the entry with its lines, or apperrors.ErrNotFound.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	// FindReversalOf returns the entry reversing entryID, or apperrors.ErrNotFound.
	FindReversalOf(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// EntryWriter defines write operations for posted entries
type EntryWriter interface {
	// SaveEntry commits the entry and all its lines atomically and returns it with its
	// EntryNumber assigned. Inside the same atomic step it re-checks that the target
	// fiscal year and period are open (PeriodClosed), that every account exists and,
	// unless the entry is a reversal, is active (UnknownAccount) and, for reversals,
	// that the original is not already reversed (EntryAlreadyReversed).
	SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)
}

// LedgerQueries defines the read-only aggregations behind reports
type LedgerQueries interface {
	// TrialBalance sums lines of entries dated on or before asOf, per account, ordered
	// by account code. Accounts without lines are omitted.
	TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
	// ListAccountLines returns lines of the account dated within [from, to], ordered by
	// (date, entry number, line number). Balance is left zero.
	ListAccountLines(ctx context.Context, accountCode string, from, to time.Time) ([]domain.LedgerLine, error)
	// AccountTotalsBefore sums the account's lines dated strictly before date.
	AccountTotalsBefore(ctx context.Context, accountCode string, date time.Time) (domain.AccountTotals, error)
}

// JournalRepositoryFacade combines all entry-related repository interfaces
type JournalRepositoryFacade interface {
	EntryReader
	EntryWriter
	LedgerQueries
}
