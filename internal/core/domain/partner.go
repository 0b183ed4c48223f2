package domain

import "github.com/shopspring/decimal"

// Journal is a logical source of entries (sales, purchases, bank, misc).
type Journal struct {
	Code string `json:"code"`
	Name string `json:"name"`
	AuditFields
}

// Partner is the counterpart on invoices and, optionally, on entry lines.
type Partner struct {
	PartnerID  string `json:"partnerID"`
	Name       string `json:"name"`
	VATNumber  string `json:"vatNumber,omitempty"`
	Address    string `json:"address,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	IsCustomer bool   `json:"isCustomer"`
	IsSupplier bool   `json:"isSupplier"`
	AuditFields
}

// VATRate is a named VAT percentage.
type VATRate struct {
	VATRateID string          `json:"vatRateID"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"` // percentage, e.g. 21.00
	AuditFields
}
