package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
)

// ledgerService validates and posts journal entries.
type ledgerService struct {
	BaseService
	journalRepo   portsrepo.JournalRepositoryFacade
	accountRepo   portsrepo.AccountReader
	referenceRepo portsrepo.ReferenceReader
	currencySvc   portssvc.CurrencySvcFacade
	fiscalSvc     portssvc.FiscalReaderSvc
}

// NewLedgerService creates the posting engine.
func NewLedgerService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	referenceRepo portsrepo.ReferenceReader,
	currencySvc portssvc.CurrencySvcFacade,
	fiscalSvc portssvc.FiscalReaderSvc,
	opts ...Option,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService:   newBaseService(opts),
		journalRepo:   journalRepo,
		accountRepo:   accountRepo,
		referenceRepo: referenceRepo,
		currencySvc:   currencySvc,
		fiscalSvc:     fiscalSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostEntry applies the posting rules in a fixed order, so the same draft always
// fails with the same error:
//
//  1. EmptyEntry
//  2. InvalidLineAmounts (debit XOR credit, nothing negative)
//  3. UnknownJournal, UnknownAccount, UnknownCurrency, UnknownPartner, UnknownVATRate
//  4. InvalidLineAmounts (precision of the line currency)
//  5. NoRateAvailable (conversion to base as of the entry date)
//  6. UnbalancedEntry
//  7. NoFiscalPeriod, PeriodClosed
//  8. atomic commit
func (s *ledgerService) PostEntry(ctx context.Context, draft domain.DraftEntry) (*domain.JournalEntry, error) {
	const op = "post_entry"
	draft.Date = domain.DateOf(draft.Date)
	draft.JournalCode = strings.ToUpper(strings.TrimSpace(draft.JournalCode))

	if len(draft.Lines) == 0 {
		return nil, s.Reject(ctx, op, apperrors.NewValidationError(apperrors.CodeEmptyEntry, "entry has no lines"))
	}
	if err := accounting.ValidateLineAmounts(draft.Lines); err != nil {
		return nil, s.Reject(ctx, op, err)
	}

	base, err := s.currencySvc.BaseCurrency(ctx)
	if err != nil {
		return nil, s.Reject(ctx, op, fmt.Errorf("base currency not configured: %w", err))
	}
	currencies, err := s.checkReferences(ctx, draft, base)
	if err != nil {
		return nil, s.Reject(ctx, op, err, slog.String("journal_code", draft.JournalCode))
	}

	for i, l := range draft.Lines {
		c := currencies[lineCurrency(l, base)]
		if !c.FitsPrecision(l.Debit) || !c.FitsPrecision(l.Credit) {
			return nil, s.Reject(ctx, op, apperrors.NewInvalidLineAmounts(i,
				fmt.Sprintf("amount exceeds %d decimal places of %s", c.MinorUnits, c.CurrencyCode)))
		}
	}

	lines, err := s.toBaseLines(ctx, draft, base)
	if err != nil {
		return nil, s.Reject(ctx, op, err)
	}
	if err := accounting.ValidateBalance(lines); err != nil {
		return nil, s.Reject(ctx, op, err)
	}

	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		JournalCode: draft.JournalCode,
		Date:        draft.Date,
		Description: draft.Description,
		Lines:       lines,
		AuditFields: domain.NewAuditFields(draft.CreatedBy, s.Now()),
	}
	return s.commit(ctx, op, entry)
}

func (s *ledgerService) ReverseEntry(ctx context.Context, entryID string, date *time.Time, userID string) (*domain.JournalEntry, error) {
	const op = "reverse_entry"
	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, s.Reject(ctx, op, err)
	}
	if _, err := s.journalRepo.FindReversalOf(ctx, entryID); err == nil {
		return nil, s.Reject(ctx, op, apperrors.NewStateError(apperrors.CodeEntryAlreadyReversed,
			"entry %s is already reversed", entryID))
	} else if !apperrors.HasCode(err, apperrors.CodeUnknownEntry) {
		return nil, s.Reject(ctx, op, err)
	}

	reversalDate := original.Date
	if date != nil {
		reversalDate = domain.DateOf(*date)
	}

	// Base amounts are reused as posted, never re-converted.
	lines := accounting.ReverseLines(original.Lines)
	if err := accounting.ValidateBalance(lines); err != nil {
		return nil, s.Reject(ctx, op, err)
	}

	originalID := original.EntryID
	reversal := domain.JournalEntry{
		EntryID:      uuid.NewString(),
		JournalCode:  original.JournalCode,
		Date:         reversalDate,
		Description:  fmt.Sprintf("Reversal of entry #%d: %s", original.EntryNumber, original.Description),
		ReversalOfID: &originalID,
		Lines:        lines,
		AuditFields:  domain.NewAuditFields(userID, s.Now()),
	}
	return s.commit(ctx, op, reversal)
}

func (s *ledgerService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByID(ctx, entryID)
}

// commit resolves the target period and hands the entry to the repository, which
// re-checks period, accounts and reversal uniqueness inside the same atomic step.
func (s *ledgerService) commit(ctx context.Context, op string, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	pos, err := s.fiscalSvc.Resolve(ctx, entry.Date)
	if err != nil {
		return nil, s.Reject(ctx, op, err, slog.String("date", entry.Date.Format(time.DateOnly)))
	}
	if pos.IsClosed() {
		return nil, s.Reject(ctx, op, apperrors.PeriodClosed("%s falls in a closed fiscal period",
			entry.Date.Format(time.DateOnly)))
	}
	entry.FiscalYearID = pos.Year.FiscalYearID
	entry.FiscalPeriodID = pos.PeriodID()

	posted, err := s.journalRepo.SaveEntry(ctx, entry)
	if err != nil {
		return nil, s.Reject(ctx, op, err, slog.String("entry_id", entry.EntryID))
	}

	s.Metrics.EntryPosted(posted.JournalCode, posted.ReversalOfID != nil)
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", posted.EntryID),
		slog.Int64("entry_number", posted.EntryNumber),
		slog.String("journal_code", posted.JournalCode),
		slog.String("amount", posted.TotalDebit().String()),
		slog.Bool("reversal", posted.ReversalOfID != nil))
	return posted, nil
}

// checkReferences resolves everything a draft points at and returns the currencies it
// uses, keyed by code.
func (s *ledgerService) checkReferences(ctx context.Context, draft domain.DraftEntry, base *domain.Currency) (map[string]domain.Currency, error) {
	if _, err := s.referenceRepo.FindJournalByCode(ctx, draft.JournalCode); err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(draft.Lines))
	for _, l := range draft.Lines {
		codes = append(codes, l.AccountCode)
	}
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	for _, code := range codes {
		a, ok := accounts[code]
		if !ok {
			return nil, apperrors.NewReferenceError(apperrors.CodeUnknownAccount, "account %s does not exist", code)
		}
		if !a.IsActive {
			return nil, apperrors.NewReferenceError(apperrors.CodeUnknownAccount, "account %s is inactive", code)
		}
	}

	currencies := map[string]domain.Currency{base.CurrencyCode: *base}
	for _, l := range draft.Lines {
		code := lineCurrency(l, base)
		if _, ok := currencies[code]; !ok {
			c, err := s.currencySvc.GetCurrencyByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			currencies[code] = *c
		}
		if l.PartnerID != nil {
			if _, err := s.referenceRepo.FindPartnerByID(ctx, *l.PartnerID); err != nil {
				return nil, err
			}
		}
		if l.VATRateID != nil {
			if _, err := s.referenceRepo.FindVATRateByID(ctx, *l.VATRateID); err != nil {
				return nil, err
			}
		}
	}
	return currencies, nil
}

// toBaseLines converts every line to the base currency as of the entry date. Lines are
// grouped by currency and side; each group is converted exactly and apportioned to the
// base precision, so a group that balances in its own currency still balances in base.
func (s *ledgerService) toBaseLines(ctx context.Context, draft domain.DraftEntry, base *domain.Currency) ([]domain.JournalEntryLine, error) {
	type group struct {
		currency string
		debit    bool
	}
	quotes := map[string]*domain.RateQuote{}
	groups := map[group][]int{}
	for i, l := range draft.Lines {
		code := lineCurrency(l, base)
		if _, ok := quotes[code]; !ok && code != base.CurrencyCode {
			q, err := s.currencySvc.Quote(ctx, code, base.CurrencyCode, draft.Date)
			if err != nil {
				return nil, err
			}
			quotes[code] = q
		}
		g := group{currency: code, debit: l.Debit.IsPositive()}
		groups[g] = append(groups[g], i)
	}

	based := make([]decimal.Decimal, len(draft.Lines))
	for g, idx := range groups {
		q, foreign := quotes[g.currency]
		if !foreign {
			for _, i := range idx {
				based[i] = lineAmount(draft.Lines[i])
			}
			continue
		}
		exact := make([]decimal.Decimal, len(idx))
		for j, i := range idx {
			exact[j] = q.Exact(lineAmount(draft.Lines[i]))
		}
		for j, amount := range accounting.Apportion(exact, base.MinorUnits) {
			based[idx[j]] = amount
		}
	}

	lines := make([]domain.JournalEntryLine, len(draft.Lines))
	for i, l := range draft.Lines {
		code := lineCurrency(l, base)
		rate := decimal.NewFromInt(1)
		if q, ok := quotes[code]; ok {
			rate = q.Effective()
			if based[i].IsZero() {
				return nil, apperrors.NewInvalidLineAmounts(i, "amount rounds to zero in the base currency")
			}
		}
		debit, credit := decimal.Zero, decimal.Zero
		if l.Debit.IsPositive() {
			debit = based[i]
		} else {
			credit = based[i]
		}
		lines[i] = domain.JournalEntryLine{
			LineNo:           i + 1,
			AccountCode:      l.AccountCode,
			Debit:            debit,
			Credit:           credit,
			OriginalCurrency: code,
			OriginalAmount:   lineAmount(l),
			ExchangeRate:     rate,
			Description:      l.Description,
			VATRateID:        l.VATRateID,
			PartnerID:        l.PartnerID,
		}
	}
	return lines, nil
}

// lineAmount is the positive side of a validated draft line.
func lineAmount(l domain.DraftLine) decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

func lineCurrency(l domain.DraftLine, base *domain.Currency) string {
	if l.CurrencyCode == "" {
		return base.CurrencyCode
	}
	return strings.ToUpper(l.CurrencyCode)
}
