package services

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, opts ...Option) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Leaves first: currency, accounts and the calendar have no service dependencies.
	container.Currency = NewCurrencyService(repos.CurrencyRepo, cfg.BaseCurrency, opts...)
	container.Account = NewAccountService(repos.AccountRepo, opts...)
	container.Fiscal = NewFiscalService(repos.FiscalRepo, opts...)
	container.Reference = NewReferenceService(repos.ReferenceRepo, opts...)

	container.Ledger = NewLedgerService(
		repos.JournalRepo,
		repos.AccountRepo,
		repos.ReferenceRepo,
		container.Currency,
		container.Fiscal,
		opts...,
	)
	container.Reconciliation = NewReconciliationService(
		repos.InvoiceRepo,
		repos.ReferenceRepo,
		container.Currency,
		container.Fiscal,
		cfg.SettlementMaxRetries,
		opts...,
	)
	container.Reporting = NewReportingService(
		repos.JournalRepo,
		repos.AccountRepo,
		repos.InvoiceRepo,
		repos.ReferenceRepo,
		opts...,
	)

	return container
}
