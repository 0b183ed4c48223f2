package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/handlers"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
)

const (
	testSecret = "test-secret"
	testUserID = "user-1"
)

var today = domain.NewDate(2024, 6, 15)

// handlerSuite routes requests through the real router and auth middleware into mocks.
type handlerSuite struct {
	suite.Suite
	router *gin.Engine
	token  string

	accounts       *MockAccountService
	ledger         *MockLedgerService
	reconciliation *MockReconciliationService
	reporting      *MockReportingService
	currency       *MockCurrencyService
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.accounts = new(MockAccountService)
	s.ledger = new(MockLedgerService)
	s.reconciliation = new(MockReconciliationService)
	s.reporting = new(MockReportingService)
	s.currency = new(MockCurrencyService)

	svc := &portssvc.ServiceContainer{
		Account:        s.accounts,
		Ledger:         s.ledger,
		Reconciliation: s.reconciliation,
		Reporting:      s.reporting,
		Currency:       s.currency,
	}
	cfg := &config.Config{JWTSecret: testSecret, IsProduction: true}

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, svc, handlers.WithToday(func() time.Time { return today }))

	var err error
	s.token, err = middleware.IssueToken(testSecret, testUserID, time.Hour)
	s.Require().NoError(err)
}

func (s *handlerSuite) TearDownTest() {
	s.accounts.AssertExpectations(s.T())
	s.ledger.AssertExpectations(s.T())
	s.reconciliation.AssertExpectations(s.T())
	s.reporting.AssertExpectations(s.T())
	s.currency.AssertExpectations(s.T())
}

func (s *handlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *handlerSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (s *handlerSuite) errorBody(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var body dto.ErrorResponse
	s.decode(w, &body)
	return body
}
