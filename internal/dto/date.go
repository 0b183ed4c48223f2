package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// Date is a calendar date serialized as "2006-01-02".
type Date time.Time

// NewDate wraps t, truncated to its calendar date.
func NewDate(t time.Time) Date {
	return Date(domain.DateOf(t))
}

// Time returns the date as a UTC midnight time.
func (d Date) Time() time.Time {
	return domain.DateOf(time.Time(d))
}

func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

func (d Date) String() string {
	return d.Time().Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string in YYYY-MM-DD format: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	*d = Date(t)
	return nil
}

// OptionalDate returns nil for a nil or zero date.
func OptionalDate(d *Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time()
	return &t
}
