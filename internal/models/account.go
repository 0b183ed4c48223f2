package models

// Account is a row of the chart of accounts.
type Account struct {
	AccountID     string `db:"account_id"`
	Code          string `db:"code"`
	Name          string `db:"name"`
	AccountType   string `db:"account_type"`
	VATApplicable bool   `db:"vat_applicable"`
	IsActive      bool   `db:"is_active"`
	AuditFields
}
