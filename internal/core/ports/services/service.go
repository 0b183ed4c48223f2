package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers and the seeder.
type ServiceContainer struct {
	Currency       CurrencySvcFacade
	Account        AccountSvcFacade
	Fiscal         FiscalCalendarSvcFacade
	Reference      ReferenceSvcFacade
	Ledger         LedgerSvcFacade
	Reconciliation ReconciliationSvcFacade
	Reporting      ReportingSvcFacade
}
