package accounting

import (
	"fmt"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount expresses a line's effect on an account's normal-side balance.
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func CalculateSignedAmount(debit, credit decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	net := debit.Sub(credit)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// ValidateLineAmounts checks that every line has exactly one strictly positive side and
// no negative side. The first offending line is reported.
func ValidateLineAmounts(lines []domain.DraftLine) error {
	for i, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return apperrors.NewInvalidLineAmounts(i, "amounts must not be negative")
		}
		hasDebit, hasCredit := l.Debit.IsPositive(), l.Credit.IsPositive()
		if hasDebit && hasCredit {
			return apperrors.NewInvalidLineAmounts(i, "a line cannot have both debit and credit amounts")
		}
		if !hasDebit && !hasCredit {
			return apperrors.NewInvalidLineAmounts(i, "a line must have either a debit or a credit amount")
		}
	}
	return nil
}

// Imbalance returns sum(debit) - sum(credit) of posted lines.
func Imbalance(lines []domain.JournalEntryLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Debit).Sub(l.Credit)
	}
	return sum
}

// ValidateBalance fails with UnbalancedEntry unless debits equal credits exactly.
func ValidateBalance(lines []domain.JournalEntryLine) error {
	if diff := Imbalance(lines); !diff.IsZero() {
		return apperrors.NewUnbalancedEntry(diff)
	}
	return nil
}

// ReverseLines swaps debit and credit on every line, keeping line order.
func ReverseLines(lines []domain.JournalEntryLine) []domain.JournalEntryLine {
	reversed := make([]domain.JournalEntryLine, len(lines))
	for i, l := range lines {
		reversed[i] = l.Reversed()
	}
	return reversed
}

// NetEffect sums signed debit-minus-credit movement per account over the given entries.
func NetEffect(entries ...domain.JournalEntry) map[string]decimal.Decimal {
	net := make(map[string]decimal.Decimal)
	for _, e := range entries {
		for _, l := range e.Lines {
			net[l.AccountCode] = net[l.AccountCode].Add(l.Debit).Sub(l.Credit)
		}
	}
	return net
}

// Apportion rounds non-negative amounts to places so that they sum to the rounded total
// of the unrounded amounts. Every amount is truncated, then the leftover minor units go
// one at a time to the largest remainders, lowest index first on ties.
func Apportion(amounts []decimal.Decimal, places int32) []decimal.Decimal {
	out := make([]decimal.Decimal, len(amounts))
	if len(amounts) == 0 {
		return out
	}
	total, allocated := decimal.Zero, decimal.Zero
	for i, a := range amounts {
		total = total.Add(a)
		out[i] = a.Truncate(places)
		allocated = allocated.Add(out[i])
	}

	order := make([]int, len(amounts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra := amounts[order[a]].Sub(out[order[a]])
		rb := amounts[order[b]].Sub(out[order[b]])
		return ra.GreaterThan(rb)
	})

	unit := decimal.New(1, -places)
	left := total.Round(places).Sub(allocated).Div(unit).IntPart()
	for k := int64(0); k < left; k++ {
		i := order[k%int64(len(order))]
		out[i] = out[i].Add(unit)
	}
	return out
}
