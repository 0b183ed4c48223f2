package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalRequest defines an entry source such as SAL or BNK.
type CreateJournalRequest struct {
	Code string `json:"code" binding:"required,max=16"`
	Name string `json:"name" binding:"required"`
}

type JournalResponse struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{Code: j.Code, Name: j.Name, CreatedAt: j.CreatedAt, CreatedBy: j.CreatedBy}
}

func ToListJournalResponse(journals []domain.Journal) []JournalResponse {
	res := make([]JournalResponse, len(journals))
	for i := range journals {
		res[i] = ToJournalResponse(&journals[i])
	}
	return res
}

// CreatePartnerRequest defines a customer or supplier.
type CreatePartnerRequest struct {
	Name       string `json:"name" binding:"required"`
	VATNumber  string `json:"vatNumber"`
	Address    string `json:"address"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone"`
	IsCustomer bool   `json:"isCustomer"`
	IsSupplier bool   `json:"isSupplier"`
}

func (r CreatePartnerRequest) ToDomain() domain.Partner {
	return domain.Partner{
		Name:       r.Name,
		VATNumber:  r.VATNumber,
		Address:    r.Address,
		Email:      r.Email,
		Phone:      r.Phone,
		IsCustomer: r.IsCustomer,
		IsSupplier: r.IsSupplier,
	}
}

type PartnerResponse struct {
	PartnerID  string    `json:"partnerID"`
	Name       string    `json:"name"`
	VATNumber  string    `json:"vatNumber,omitempty"`
	Address    string    `json:"address,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	IsCustomer bool      `json:"isCustomer"`
	IsSupplier bool      `json:"isSupplier"`
	CreatedAt  time.Time `json:"createdAt"`
	CreatedBy  string    `json:"createdBy"`
}

func ToPartnerResponse(p *domain.Partner) PartnerResponse {
	return PartnerResponse{
		PartnerID:  p.PartnerID,
		Name:       p.Name,
		VATNumber:  p.VATNumber,
		Address:    p.Address,
		Email:      p.Email,
		Phone:      p.Phone,
		IsCustomer: p.IsCustomer,
		IsSupplier: p.IsSupplier,
		CreatedAt:  p.CreatedAt,
		CreatedBy:  p.CreatedBy,
	}
}

func ToListPartnerResponse(partners []domain.Partner) []PartnerResponse {
	res := make([]PartnerResponse, len(partners))
	for i := range partners {
		res[i] = ToPartnerResponse(&partners[i])
	}
	return res
}

// CreateVATRateRequest defines a named VAT percentage between 0 and 100.
type CreateVATRateRequest struct {
	Name string          `json:"name" binding:"required"`
	Rate decimal.Decimal `json:"rate"`
}

type VATRateResponse struct {
	VATRateID string          `json:"vatRateID"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt time.Time       `json:"createdAt"`
	CreatedBy string          `json:"createdBy"`
}

func ToVATRateResponse(v *domain.VATRate) VATRateResponse {
	return VATRateResponse{VATRateID: v.VATRateID, Name: v.Name, Rate: v.Rate, CreatedAt: v.CreatedAt, CreatedBy: v.CreatedBy}
}

func ToListVATRateResponse(rates []domain.VATRate) []VATRateResponse {
	res := make([]VATRateResponse, len(rates))
	for i := range rates {
		res[i] = ToVATRateResponse(&rates[i])
	}
	return res
}
