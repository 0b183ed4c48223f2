package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// NewAuditFields stamps creation and modification with the same actor and time.
func NewAuditFields(userID string, now time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// Touch records a modification.
func (a *AuditFields) Touch(userID string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
}

// DateOf truncates t to a calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDate builds a calendar date in UTC.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether date falls within the range, bounds included.
func (r DateRange) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(DateOf(r.From)) && !d.After(DateOf(r.To))
}

// Overlaps reports whether the two inclusive ranges share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	return !DateOf(r.From).After(DateOf(other.To)) && !DateOf(other.From).After(DateOf(r.To))
}

// Valid reports whether From is not after To.
func (r DateRange) Valid() bool {
	return !DateOf(r.From).After(DateOf(r.To))
}
