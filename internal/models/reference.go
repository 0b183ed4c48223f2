package models

import "github.com/shopspring/decimal"

type Journal struct {
	Code string `db:"code"`
	Name string `db:"name"`
	AuditFields
}

type Partner struct {
	PartnerID  string `db:"partner_id"`
	Name       string `db:"name"`
	VATNumber  string `db:"vat_number"`
	Address    string `db:"address"`
	Email      string `db:"email"`
	Phone      string `db:"phone"`
	IsCustomer bool   `db:"is_customer"`
	IsSupplier bool   `db:"is_supplier"`
	AuditFields
}

type VATRate struct {
	VATRateID string          `db:"vat_rate_id"`
	Name      string          `db:"name"`
	Rate      decimal.Decimal `db:"rate"`
	AuditFields
}
