package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

type FiscalServiceTestSuite struct {
	engineSuite
}

func TestFiscalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FiscalServiceTestSuite))
}

func (s *FiscalServiceTestSuite) TestResolve() {
	pos, err := s.svc.Fiscal.Resolve(s.ctx, date(2024, 3, 15))
	s.Require().NoError(err)
	s.Equal(s.fy2024.FiscalYearID, pos.Year.FiscalYearID)
	s.Require().NotNil(pos.Period)
	s.Equal(s.h1.FiscalPeriodID, pos.Period.FiscalPeriodID)

	pos, err = s.svc.Fiscal.Resolve(s.ctx, date(2024, 6, 30))
	s.Require().NoError(err)
	s.Equal(s.h1.FiscalPeriodID, pos.Period.FiscalPeriodID)

	_, err = s.svc.Fiscal.Resolve(s.ctx, date(2024, 7, 1))
	s.True(apperrors.HasCode(err, apperrors.CodeNoFiscalPeriod))

	_, err = s.svc.Fiscal.Resolve(s.ctx, date(2025, 1, 1))
	s.True(apperrors.HasCode(err, apperrors.CodeNoFiscalPeriod))
}

func (s *FiscalServiceTestSuite) TestYearWithoutPeriodsResolvesToYear() {
	fy, err := s.svc.Fiscal.CreateFiscalYear(s.ctx, "2025", date(2025, 1, 1), date(2025, 12, 31), testUser)
	s.Require().NoError(err)

	pos, err := s.svc.Fiscal.Resolve(s.ctx, date(2025, 5, 5))
	s.Require().NoError(err)
	s.Equal(fy.FiscalYearID, pos.Year.FiscalYearID)
	s.Nil(pos.Period)
	s.Nil(pos.PeriodID())

	period, err := s.svc.Fiscal.PeriodFor(s.ctx, date(2025, 5, 5))
	s.Require().NoError(err)
	s.Nil(period)
}

func (s *FiscalServiceTestSuite) TestPeriodForAndIsPostable() {
	p, err := s.svc.Fiscal.PeriodFor(s.ctx, date(2024, 8, 1))
	s.Require().NoError(err)
	s.Require().NotNil(p)
	s.Equal(s.h2.FiscalPeriodID, p.FiscalPeriodID)

	p, err = s.svc.Fiscal.PeriodFor(s.ctx, date(2024, 7, 1))
	s.Require().NoError(err)
	s.Nil(p)

	ok, err := s.svc.Fiscal.IsPostable(s.ctx, date(2024, 2, 1))
	s.Require().NoError(err)
	s.True(ok)

	_, err = s.svc.Fiscal.ClosePeriod(s.ctx, s.h1.FiscalPeriodID, testUser)
	s.Require().NoError(err)

	ok, err = s.svc.Fiscal.IsPostable(s.ctx, date(2024, 2, 1))
	s.Require().NoError(err)
	s.False(ok)

	ok, err = s.svc.Fiscal.IsPostable(s.ctx, date(2024, 7, 1))
	s.Require().NoError(err)
	s.False(ok)
}

func (s *FiscalServiceTestSuite) TestCreateFiscalYearRejections() {
	_, err := s.svc.Fiscal.CreateFiscalYear(s.ctx, "bad", date(2025, 12, 31), date(2025, 1, 1), testUser)
	s.True(apperrors.HasCode(err, apperrors.CodeInvalidDateRange))

	_, err = s.svc.Fiscal.CreateFiscalYear(s.ctx, "overlap", date(2024, 12, 1), date(2025, 11, 30), testUser)
	s.True(apperrors.HasCode(err, apperrors.CodeOverlappingPeriod))

	_, err = s.svc.Fiscal.CreateFiscalYear(s.ctx, " ", date(2026, 1, 1), date(2026, 12, 31), testUser)
	s.True(apperrors.HasCode(err, apperrors.CodeInvalidInput))
}

func (s *FiscalServiceTestSuite) TestAddPeriodRejections() {
	tests := []struct {
		name       string
		start, end time.Time
		code       apperrors.Code
	}{
		{"overlaps H1", date(2024, 6, 1), date(2024, 7, 1), apperrors.CodeOverlappingPeriod},
		{"outside year", date(2024, 12, 1), date(2025, 1, 31), apperrors.CodePeriodOutsideYear},
		{"inverted", date(2024, 7, 1), date(2024, 6, 30), apperrors.CodeInvalidDateRange},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Fiscal.AddPeriod(s.ctx, s.fy2024.FiscalYearID, tt.name, tt.start, tt.end, testUser)
			s.True(apperrors.HasCode(err, tt.code), "got %v", err)
		})
	}

	_, err := s.svc.Fiscal.AddPeriod(s.ctx, "missing", "x", date(2024, 7, 1), date(2024, 7, 1), testUser)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *FiscalServiceTestSuite) TestGapCanBeFilledLater() {
	p, err := s.svc.Fiscal.AddPeriod(s.ctx, s.fy2024.FiscalYearID, "2024-07-01", date(2024, 7, 1), date(2024, 7, 1), testUser)
	s.Require().NoError(err)

	pos, err := s.svc.Fiscal.Resolve(s.ctx, date(2024, 7, 1))
	s.Require().NoError(err)
	s.Equal(p.FiscalPeriodID, pos.Period.FiscalPeriodID)

	year, err := s.svc.Fiscal.GetFiscalYear(s.ctx, s.fy2024.FiscalYearID)
	s.Require().NoError(err)
	s.Require().Len(year.Periods, 3)
	s.Equal("2024-H1", year.Periods[0].Name)
	s.Equal("2024-07-01", year.Periods[1].Name)
	s.Equal("2024-H2", year.Periods[2].Name)
}

func (s *FiscalServiceTestSuite) TestClosingIsOneWayAndIdempotent() {
	p, err := s.svc.Fiscal.ClosePeriod(s.ctx, s.h1.FiscalPeriodID, testUser)
	s.Require().NoError(err)
	s.True(p.IsClosed)

	p, err = s.svc.Fiscal.ClosePeriod(s.ctx, s.h1.FiscalPeriodID, "someone-else")
	s.Require().NoError(err)
	s.True(p.IsClosed)
	s.Equal(testUser, p.LastUpdatedBy)

	year, err := s.svc.Fiscal.CloseYear(s.ctx, s.fy2024.FiscalYearID, testUser)
	s.Require().NoError(err)
	s.True(year.IsClosed)
	for _, period := range year.Periods {
		s.True(period.IsClosed, period.Name)
	}

	_, err = s.svc.Fiscal.AddPeriod(s.ctx, s.fy2024.FiscalYearID, "late", date(2024, 7, 1), date(2024, 7, 1), testUser)
	s.True(apperrors.HasCode(err, apperrors.CodePeriodClosed))

	pos, err := s.svc.Fiscal.Resolve(s.ctx, date(2024, 9, 9))
	s.Require().NoError(err)
	s.True(pos.IsClosed())
}

func (s *FiscalServiceTestSuite) TestCloseUnknown() {
	_, err := s.svc.Fiscal.ClosePeriod(s.ctx, "nope", testUser)
	s.True(apperrors.HasCode(err, apperrors.CodeUnknownFiscalPeriod))

	_, err = s.svc.Fiscal.CloseYear(s.ctx, "nope", testUser)
	s.True(apperrors.HasCode(err, apperrors.CodeUnknownFiscalYear))
}

func (s *FiscalServiceTestSuite) TestListFiscalYears() {
	_, err := s.svc.Fiscal.CreateFiscalYear(s.ctx, "2023", date(2023, 1, 1), date(2023, 12, 31), testUser)
	s.Require().NoError(err)

	years, err := s.svc.Fiscal.ListFiscalYears(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(years, 2)
	s.Equal("2023", years[0].Name)
	s.Equal("2024", years[1].Name)
}
