package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

func TestDate_JSON(t *testing.T) {
	var req struct {
		Date dto.Date  `json:"date"`
		Opt  *dto.Date `json:"opt"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-02-29"}`), &req))
	assert.Equal(t, domain.NewDate(2024, 2, 29), req.Date.Time())
	assert.Nil(t, dto.OptionalDate(req.Opt))

	out, err := json.Marshal(dto.NewDate(time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-03-01"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":"2024-02-30"}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"date":"01/02/2024"}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"date":20240101}`), &req))
}

func TestPostEntryRequest_ToDomain(t *testing.T) {
	amount := decimal.RequireFromString("120.50")
	req := dto.PostEntryRequest{
		JournalCode: "MISC",
		Date:        dto.NewDate(domain.NewDate(2024, 1, 10)),
		Lines: []dto.EntryLineRequest{
			{AccountCode: "600", Debit: &amount},
			{AccountCode: "440", Credit: &amount, CurrencyCode: "USD"},
		},
	}
	draft := req.ToDomain("user-1")

	assert.Equal(t, "user-1", draft.CreatedBy)
	require.Len(t, draft.Lines, 2)
	assert.True(t, draft.Lines[0].Credit.IsZero())
	assert.True(t, draft.Lines[1].Debit.IsZero())
	assert.True(t, draft.Lines[1].Credit.Equal(amount))
	assert.Equal(t, "USD", draft.Lines[1].CurrencyCode)
}

func TestToTrialBalanceResponse_FormatsAtBasePrecision(t *testing.T) {
	report := &domain.TrialBalanceReport{
		AsOf: domain.NewDate(2024, 3, 31),
		Rows: []domain.TrialBalanceRow{
			{AccountCode: "512", Debit: decimal.RequireFromString("12.3"), Credit: decimal.Zero},
		},
		TotalDebit:  decimal.RequireFromString("12.3"),
		TotalCredit: decimal.RequireFromString("12.3"),
	}
	res := dto.ToTrialBalanceResponse(report, domain.Currency{CurrencyCode: "EUR", MinorUnits: 2})

	assert.Equal(t, "EUR", res.CurrencyCode)
	assert.Equal(t, "12.30", res.Rows[0].Debit)
	assert.Equal(t, "0.00", res.Rows[0].Credit)
	assert.Equal(t, "2024-03-31", res.AsOf.String())
}
