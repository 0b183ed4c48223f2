package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func (s *Store) SaveFiscalYear(_ context.Context, year domain.FiscalYear) error {
	return s.write(func(next *state) error {
		for _, y := range next.years {
			if y.Range().Overlaps(year.Range()) {
				return apperrors.NewValidationError(apperrors.CodeOverlappingPeriod,
					"fiscal year %s overlaps %s", year.Name, y.Name)
			}
		}
		year.Periods = nil
		next.years = cloned(next.years)
		next.years[year.FiscalYearID] = year
		return nil
	})
}

func (s *Store) SaveFiscalPeriod(_ context.Context, period domain.FiscalPeriod) error {
	return s.write(func(next *state) error {
		if _, ok := next.years[period.FiscalYearID]; !ok {
			return apperrors.NewReferenceError(apperrors.CodeUnknownFiscalYear, "fiscal year %s not found", period.FiscalYearID)
		}
		for _, p := range next.periods {
			if p.FiscalYearID == period.FiscalYearID && p.Range().Overlaps(period.Range()) {
				return apperrors.NewValidationError(apperrors.CodeOverlappingPeriod,
					"fiscal period %s overlaps %s", period.Name, p.Name)
			}
		}
		next.periods = cloned(next.periods)
		next.periods[period.FiscalPeriodID] = period
		return nil
	})
}

func (s *Store) CloseFiscalPeriod(_ context.Context, fiscalPeriodID string, audit domain.AuditFields) error {
	return s.write(func(next *state) error {
		p, ok := next.periods[fiscalPeriodID]
		if !ok {
			return apperrors.NewReferenceError(apperrors.CodeUnknownFiscalPeriod, "fiscal period %s not found", fiscalPeriodID)
		}
		p.IsClosed = true
		p.LastUpdatedAt, p.LastUpdatedBy = audit.LastUpdatedAt, audit.LastUpdatedBy
		next.periods = cloned(next.periods)
		next.periods[fiscalPeriodID] = p
		return nil
	})
}

func (s *Store) CloseFiscalYear(_ context.Context, fiscalYearID string, audit domain.AuditFields) error {
	return s.write(func(next *state) error {
		y, ok := next.years[fiscalYearID]
		if !ok {
			return apperrors.NewReferenceError(apperrors.CodeUnknownFiscalYear, "fiscal year %s not found", fiscalYearID)
		}
		y.IsClosed = true
		y.LastUpdatedAt, y.LastUpdatedBy = audit.LastUpdatedAt, audit.LastUpdatedBy
		next.years = cloned(next.years)
		next.years[fiscalYearID] = y

		next.periods = cloned(next.periods)
		for id, p := range next.periods {
			if p.FiscalYearID == fiscalYearID && !p.IsClosed {
				p.IsClosed = true
				p.LastUpdatedAt, p.LastUpdatedBy = audit.LastUpdatedAt, audit.LastUpdatedBy
				next.periods[id] = p
			}
		}
		return nil
	})
}

func (s *Store) FindFiscalYearByID(_ context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	st := s.read()
	y, ok := st.years[fiscalYearID]
	if !ok {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownFiscalYear, "fiscal year %s not found", fiscalYearID)
	}
	y.Periods = st.periodsOf(fiscalYearID)
	return &y, nil
}

func (s *Store) FindFiscalYearForDate(_ context.Context, date time.Time) (*domain.FiscalYear, error) {
	st := s.read()
	for _, y := range st.years {
		if y.Range().Contains(date) {
			y.Periods = st.periodsOf(y.FiscalYearID)
			return &y, nil
		}
	}
	return nil, apperrors.NewReferenceError(apperrors.CodeUnknownFiscalYear, "no fiscal year covers %s", date.Format(time.DateOnly))
}

func (s *Store) FindFiscalPeriodByID(_ context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	p, ok := s.read().periods[fiscalPeriodID]
	if !ok {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownFiscalPeriod, "fiscal period %s not found", fiscalPeriodID)
	}
	return &p, nil
}

func (s *Store) ListFiscalYears(_ context.Context) ([]domain.FiscalYear, error) {
	st := s.read()
	out := make([]domain.FiscalYear, 0, len(st.years))
	for _, y := range st.years {
		y.Periods = st.periodsOf(y.FiscalYearID)
		out = append(out, y)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (st *state) periodsOf(fiscalYearID string) []domain.FiscalPeriod {
	var out []domain.FiscalPeriod
	for _, p := range st.periods {
		if p.FiscalYearID == fiscalYearID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

// checkOpen fails with PeriodClosed when the year, or the period if given, is closed.
func (st *state) checkOpen(fiscalYearID string, fiscalPeriodID *string) error {
	y, ok := st.years[fiscalYearID]
	if !ok {
		return apperrors.NewReferenceError(apperrors.CodeUnknownFiscalYear, "fiscal year %s not found", fiscalYearID)
	}
	if y.IsClosed {
		return apperrors.PeriodClosed("fiscal year %s is closed", y.Name)
	}
	if fiscalPeriodID == nil {
		return nil
	}
	p, ok := st.periods[*fiscalPeriodID]
	if !ok {
		return apperrors.NewReferenceError(apperrors.CodeUnknownFiscalPeriod, "fiscal period %s not found", *fiscalPeriodID)
	}
	if p.IsClosed {
		return apperrors.PeriodClosed("fiscal period %s is closed", p.Name)
	}
	return nil
}
