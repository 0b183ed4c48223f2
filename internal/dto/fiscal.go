package dto

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CreateFiscalYearRequest defines a new fiscal year; periods are added separately.
type CreateFiscalYearRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate Date   `json:"startDate" binding:"required"`
	EndDate   Date   `json:"endDate" binding:"required"`
}

// AddFiscalPeriodRequest defines a period within a fiscal year.
type AddFiscalPeriodRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate Date   `json:"startDate" binding:"required"`
	EndDate   Date   `json:"endDate" binding:"required"`
}

type FiscalPeriodResponse struct {
	FiscalPeriodID string `json:"fiscalPeriodID"`
	FiscalYearID   string `json:"fiscalYearID"`
	Name           string `json:"name"`
	StartDate      Date   `json:"startDate"`
	EndDate        Date   `json:"endDate"`
	IsClosed       bool   `json:"isClosed"`
	LastUpdatedBy  string `json:"lastUpdatedBy"`
}

type FiscalYearResponse struct {
	FiscalYearID  string                 `json:"fiscalYearID"`
	Name          string                 `json:"name"`
	StartDate     Date                   `json:"startDate"`
	EndDate       Date                   `json:"endDate"`
	IsClosed      bool                   `json:"isClosed"`
	Periods       []FiscalPeriodResponse `json:"periods"`
	LastUpdatedBy string                 `json:"lastUpdatedBy"`
}

func ToFiscalPeriodResponse(p *domain.FiscalPeriod) FiscalPeriodResponse {
	return FiscalPeriodResponse{
		FiscalPeriodID: p.FiscalPeriodID,
		FiscalYearID:   p.FiscalYearID,
		Name:           p.Name,
		StartDate:      NewDate(p.StartDate),
		EndDate:        NewDate(p.EndDate),
		IsClosed:       p.IsClosed,
		LastUpdatedBy:  p.LastUpdatedBy,
	}
}

func ToFiscalYearResponse(y *domain.FiscalYear) FiscalYearResponse {
	periods := make([]FiscalPeriodResponse, len(y.Periods))
	for i := range y.Periods {
		periods[i] = ToFiscalPeriodResponse(&y.Periods[i])
	}
	return FiscalYearResponse{
		FiscalYearID:  y.FiscalYearID,
		Name:          y.Name,
		StartDate:     NewDate(y.StartDate),
		EndDate:       NewDate(y.EndDate),
		IsClosed:      y.IsClosed,
		Periods:       periods,
		LastUpdatedBy: y.LastUpdatedBy,
	}
}

func ToListFiscalYearResponse(years []domain.FiscalYear) []FiscalYearResponse {
	res := make([]FiscalYearResponse, len(years))
	for i := range years {
		res[i] = ToFiscalYearResponse(&years[i])
	}
	return res
}

// ResolveDateParams binds the date to resolve against the calendar.
type ResolveDateParams struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// FiscalPositionResponse is a resolved date. Period is nil at year granularity.
type FiscalPositionResponse struct {
	Year     FiscalYearResponse    `json:"year"`
	Period   *FiscalPeriodResponse `json:"period,omitempty"`
	IsClosed bool                  `json:"isClosed"`
}

func ToFiscalPositionResponse(p *domain.FiscalPosition) FiscalPositionResponse {
	res := FiscalPositionResponse{Year: ToFiscalYearResponse(&p.Year), IsClosed: p.IsClosed()}
	if p.Period != nil {
		period := ToFiscalPeriodResponse(p.Period)
		res.Period = &period
	}
	return res
}
