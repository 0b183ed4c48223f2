package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// LedgerWriterSvc posts entries. Posted entries are never updated or deleted.
type LedgerWriterSvc interface {
	// PostEntry validates the draft in a fixed rule order and commits it atomically.
	PostEntry(ctx context.Context, draft domain.DraftEntry) (*domain.JournalEntry, error)
	// ReverseEntry posts the debit/credit mirror of an entry, dated date or, when nil,
	// the original date.
	ReverseEntry(ctx context.Context, entryID string, date *time.Time, userID string) (*domain.JournalEntry, error)
}

// LedgerReaderSvc reads posted entries
type LedgerReaderSvc interface {
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}
