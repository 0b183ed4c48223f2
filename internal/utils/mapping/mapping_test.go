package mapping

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

func TestToDomainJournalEntry_TruncatesDateAndKeepsLineOrder(t *testing.T) {
	period := "p-1"
	m := models.JournalEntry{
		EntryID:        "e-1",
		EntryNumber:    4,
		JournalCode:    "SAL",
		EntryDate:      time.Date(2024, 5, 2, 0, 0, 0, 0, time.FixedZone("CEST", 2*3600)),
		FiscalPeriodID: &period,
	}
	lines := []models.JournalEntryLine{
		{EntryID: "e-1", LineNo: 1, AccountCode: "411", Debit: decimal.NewFromInt(121), Credit: decimal.Zero},
		{EntryID: "e-1", LineNo: 2, AccountCode: "707", Debit: decimal.Zero, Credit: decimal.NewFromInt(121)},
	}

	d := ToDomainJournalEntry(m, lines)

	assert.Equal(t, domain.NewDate(2024, 5, 2), d.Date)
	assert.Equal(t, []string{"411", "707"}, d.AccountCodes())
	assert.Equal(t, "p-1", *d.FiscalPeriodID)

	back := ToModelJournalEntryLine("e-1", d.Lines[1])
	assert.Equal(t, lines[1], back)
}

func TestToDomainSlice_EmptyIsNotNil(t *testing.T) {
	assert.NotNil(t, ToDomainAccountSlice(nil))
	assert.Len(t, ToDomainAccountSlice([]models.Account{{Code: "512"}}), 1)
}
