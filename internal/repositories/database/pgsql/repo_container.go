package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:  newPgxCurrencyRepository(dbPool),
		AccountRepo:   newPgxAccountRepository(dbPool),
		FiscalRepo:    newPgxFiscalRepository(dbPool),
		ReferenceRepo: newPgxReferenceRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		InvoiceRepo:   newPgxInvoiceRepository(dbPool),
	}
}
