package domain

import "time"

// FiscalYear is the coarsest posting window. Closing is one-way.
type FiscalYear struct {
	FiscalYearID string         `json:"fiscalYearID"`
	Name         string         `json:"name"`
	StartDate    time.Time      `json:"startDate"`
	EndDate      time.Time      `json:"endDate"`
	IsClosed     bool           `json:"isClosed"`
	Periods      []FiscalPeriod `json:"periods,omitempty"` // ordered by StartDate
	AuditFields
}

// Range returns the inclusive date range of the year.
func (y FiscalYear) Range() DateRange {
	return DateRange{From: y.StartDate, To: y.EndDate}
}

// FiscalPeriod subdivides a fiscal year. Periods of a year never overlap.
type FiscalPeriod struct {
	FiscalPeriodID string    `json:"fiscalPeriodID"`
	FiscalYearID   string    `json:"fiscalYearID"`
	Name           string    `json:"name"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	IsClosed       bool      `json:"isClosed"`
	AuditFields
}

// Range returns the inclusive date range of the period.
func (p FiscalPeriod) Range() DateRange {
	return DateRange{From: p.StartDate, To: p.EndDate}
}

// FiscalPosition is the result of resolving a date against the calendar.
// Period is nil when the year has no period granularity.
type FiscalPosition struct {
	Year   FiscalYear    `json:"year"`
	Period *FiscalPeriod `json:"period,omitempty"`
}

// IsClosed reports whether the resolved year or period is closed.
func (p FiscalPosition) IsClosed() bool {
	if p.Year.IsClosed {
		return true
	}
	return p.Period != nil && p.Period.IsClosed
}

// PeriodID returns the resolved period ID, or nil at year granularity.
func (p FiscalPosition) PeriodID() *string {
	if p.Period == nil {
		return nil
	}
	id := p.Period.FiscalPeriodID
	return &id
}
