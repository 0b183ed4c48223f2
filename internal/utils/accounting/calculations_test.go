package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculateSignedAmount(t *testing.T) {
	tests := []struct {
		name          string
		debit, credit string
		accountType   domain.AccountType
		want          string
	}{
		{"debit asset", "10", "0", domain.Asset, "10"},
		{"credit asset", "0", "10", domain.Asset, "-10"},
		{"debit expense", "10", "0", domain.Expense, "10"},
		{"debit liability", "10", "0", domain.Liability, "-10"},
		{"credit revenue", "0", "10", domain.Revenue, "10"},
		{"credit equity", "0", "10", domain.Equity, "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateSignedAmount(d(tt.debit), d(tt.credit), tt.accountType)
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tt.want)), got.String())
		})
	}

	_, err := CalculateSignedAmount(d("1"), d("0"), "INCOME")
	assert.Error(t, err)
}

func TestValidateLineAmounts(t *testing.T) {
	line := func(debit, credit string) domain.DraftLine {
		return domain.DraftLine{AccountCode: "600", Debit: d(debit), Credit: d(credit)}
	}
	tests := []struct {
		name  string
		lines []domain.DraftLine
		index int
	}{
		{"ok", []domain.DraftLine{line("1", "0"), line("0", "1")}, -1},
		{"both sides", []domain.DraftLine{line("1", "0"), line("1", "1")}, 1},
		{"neither side", []domain.DraftLine{line("0", "0")}, 0},
		{"negative debit", []domain.DraftLine{line("1", "0"), line("0", "1"), line("-1", "0")}, 2},
		{"negative credit with debit", []domain.DraftLine{line("5", "-5")}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLineAmounts(tt.lines)
			if tt.index < 0 {
				assert.NoError(t, err)
				return
			}
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.CodeInvalidLineAmounts, appErr.Code)
			assert.Equal(t, tt.index, appErr.LineIndex)
		})
	}
}

func TestValidateBalance(t *testing.T) {
	lines := []domain.JournalEntryLine{
		{Debit: d("100"), Credit: decimal.Zero},
		{Debit: decimal.Zero, Credit: d("90")},
	}
	err := ValidateBalance(lines)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUnbalancedEntry, appErr.Code)
	assert.True(t, appErr.Amount.Equal(d("10")))

	lines[1].Credit = d("100.000")
	assert.NoError(t, ValidateBalance(lines))
}

func TestReverseLinesNetsToZero(t *testing.T) {
	entry := domain.JournalEntry{Lines: []domain.JournalEntryLine{
		{AccountCode: "600", Debit: d("70"), Credit: decimal.Zero},
		{AccountCode: "512", Debit: d("30"), Credit: decimal.Zero},
		{AccountCode: "440", Debit: decimal.Zero, Credit: d("100")},
	}}
	reversal := domain.JournalEntry{Lines: ReverseLines(entry.Lines)}

	assert.Equal(t, "440", reversal.Lines[2].AccountCode)
	for code, net := range NetEffect(entry, reversal) {
		assert.True(t, net.IsZero(), code)
	}
}

func TestApportion(t *testing.T) {
	tests := []struct {
		name    string
		amounts []string
		places  int32
		want    []string
	}{
		{"leftover to earliest on ties", []string{"0.095", "0.095", "0.095"}, 2, []string{"0.10", "0.10", "0.09"}},
		{"largest remainder first", []string{"1.001", "1.009", "1.004"}, 2, []string{"1.00", "1.01", "1.00"}},
		{"already exact", []string{"2.50", "0.25"}, 2, []string{"2.50", "0.25"}},
		{"whole units", []string{"3.4", "3.4", "3.2"}, 0, []string{"4", "3", "3"}},
		{"single amount rounds half up", []string{"0.285"}, 2, []string{"0.29"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]decimal.Decimal, len(tt.amounts))
			exact := decimal.Zero
			for i, a := range tt.amounts {
				in[i] = decimal.RequireFromString(a)
				exact = exact.Add(in[i])
			}
			got := Apportion(in, tt.places)
			require.Len(t, got, len(tt.want))
			sum := decimal.Zero
			for i, w := range tt.want {
				assert.True(t, got[i].Equal(decimal.RequireFromString(w)), "index %d: got %s want %s", i, got[i], w)
				sum = sum.Add(got[i])
			}
			assert.True(t, sum.Equal(exact.Round(tt.places)))
		})
	}
	assert.Empty(t, Apportion(nil, 2))
}
