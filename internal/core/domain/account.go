package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// DebitNormal reports whether the account type increases on the debit side.
func (t AccountType) DebitNormal() bool {
	return t == Asset || t == Expense
}

// Account is an entry in the chart of accounts. Accounts are shared reference data:
// referenced by posted lines, never owned by them.
type Account struct {
	AccountID     string      `json:"accountID"`
	Code          string      `json:"code"` // unique, e.g. "600"
	Name          string      `json:"name"`
	AccountType   AccountType `json:"accountType"`
	VATApplicable bool        `json:"vatApplicable"`
	IsActive      bool        `json:"isActive"`
	AuditFields
}
