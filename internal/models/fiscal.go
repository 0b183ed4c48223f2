package models

import "time"

type FiscalYear struct {
	FiscalYearID string    `db:"fiscal_year_id"`
	Name         string    `db:"name"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	IsClosed     bool      `db:"is_closed"`
	AuditFields
}

type FiscalPeriod struct {
	FiscalPeriodID string    `db:"fiscal_period_id"`
	FiscalYearID   string    `db:"fiscal_year_id"`
	Name           string    `db:"name"`
	StartDate      time.Time `db:"start_date"`
	EndDate        time.Time `db:"end_date"`
	IsClosed       bool      `db:"is_closed"`
	AuditFields
}
