package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) SaveEntry(_ context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	var saved domain.JournalEntry
	err := s.write(func(next *state) error {
		if err := next.checkOpen(entry.FiscalYearID, entry.FiscalPeriodID); err != nil {
			return err
		}
		// reversals may correct history on accounts deactivated since
		for _, code := range entry.AccountCodes() {
			a, ok := next.accounts[code]
			if !ok || (!a.IsActive && entry.ReversalOfID == nil) {
				return apperrors.NewReferenceError(apperrors.CodeUnknownAccount, "account %s does not exist or is inactive", code)
			}
		}
		if entry.ReversalOfID != nil {
			original := *entry.ReversalOfID
			if _, ok := next.entryIndex[original]; !ok {
				return apperrors.NewReferenceError(apperrors.CodeUnknownEntry, "entry %s not found", original)
			}
			if _, done := next.reversals[original]; done {
				return apperrors.NewStateError(apperrors.CodeEntryAlreadyReversed, "entry %s is already reversed", original)
			}
			next.reversals = cloned(next.reversals)
			next.reversals[original] = entry.EntryID
		}

		next.lastEntry++
		entry.EntryNumber = next.lastEntry
		entry.Lines = slices.Clone(entry.Lines)

		// O(entries) per post; see the state comment
		next.entryIndex = cloned(next.entryIndex)
		next.entryIndex[entry.EntryID] = len(next.entries)
		next.entries = append(next.entries, entry)
		saved = copyEntry(entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *Store) FindEntryByID(_ context.Context, entryID string) (*domain.JournalEntry, error) {
	st := s.read()
	i, ok := st.entryIndex[entryID]
	if !ok {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownEntry, "entry %s not found", entryID)
	}
	e := copyEntry(st.entries[i])
	return &e, nil
}

func (s *Store) FindReversalOf(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	reversalID, ok := s.read().reversals[entryID]
	if !ok {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownEntry, "entry %s has no reversal", entryID)
	}
	return s.FindEntryByID(ctx, reversalID)
}

func (s *Store) TrialBalance(_ context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	st := s.read()
	totals := map[string]*domain.TrialBalanceRow{}
	for _, e := range st.entries {
		if e.Date.After(asOf) {
			continue
		}
		for _, l := range e.Lines {
			row, ok := totals[l.AccountCode]
			if !ok {
				a := st.accounts[l.AccountCode]
				row = &domain.TrialBalanceRow{AccountCode: l.AccountCode, AccountName: a.Name, AccountType: a.AccountType}
				totals[l.AccountCode] = row
			}
			row.Debit = row.Debit.Add(l.Debit)
			row.Credit = row.Credit.Add(l.Credit)
		}
	}
	rows := make([]domain.TrialBalanceRow, 0, len(totals))
	for _, r := range totals {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].AccountCode < rows[j].AccountCode })
	return rows, nil
}

func (s *Store) ListAccountLines(_ context.Context, accountCode string, from, to time.Time) ([]domain.LedgerLine, error) {
	st := s.read()
	var out []domain.LedgerLine
	for _, e := range st.entries {
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		for _, l := range e.Lines {
			if l.AccountCode != accountCode {
				continue
			}
			desc := l.Description
			if desc == "" {
				desc = e.Description
			}
			out = append(out, domain.LedgerLine{
				EntryID:     e.EntryID,
				EntryNumber: e.EntryNumber,
				Date:        e.Date,
				JournalCode: e.JournalCode,
				LineNo:      l.LineNo,
				Description: desc,
				Debit:       l.Debit,
				Credit:      l.Credit,
			})
		}
	}
	// entries are already in number order; a stable sort by date keeps it within a day
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Store) AccountTotalsBefore(_ context.Context, accountCode string, date time.Time) (domain.AccountTotals, error) {
	totals := domain.AccountTotals{Debit: decimal.Zero, Credit: decimal.Zero}
	for _, e := range s.read().entries {
		if !e.Date.Before(date) {
			continue
		}
		for _, l := range e.Lines {
			if l.AccountCode == accountCode {
				totals.Debit = totals.Debit.Add(l.Debit)
				totals.Credit = totals.Credit.Add(l.Credit)
			}
		}
	}
	return totals, nil
}

func copyEntry(e domain.JournalEntry) domain.JournalEntry {
	e.Lines = slices.Clone(e.Lines)
	return e
}
