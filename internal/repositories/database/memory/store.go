package memory

import (
	"maps"
	"sync"
	"sync/atomic"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// state is an immutable snapshot. Writers build a new state from the current one and
// publish it with a single pointer swap, so readers never block and never observe a
// half-applied write.
type state struct {
	currencies map[string]domain.Currency
	rates      map[string][]domain.ExchangeRate // per currency, ordered by RateDate
	accounts   map[string]domain.Account
	years      map[string]domain.FiscalYear // Periods left empty; see periods
	periods    map[string]domain.FiscalPeriod
	journals   map[string]domain.Journal
	partners   map[string]domain.Partner
	vatRates   map[string]domain.VATRate

	// entries is append-only and ordered by EntryNumber. Snapshots share the backing
	// array; a snapshot only ever reads up to its own length. entryIndex and reversals
	// are cloned on every post, so a post costs O(entries); fine for tests and local
	// runs, use the postgres driver for real ledgers.
	entries    []domain.JournalEntry
	entryIndex map[string]int
	reversals  map[string]string // original entry ID -> reversing entry ID
	lastEntry  int64

	invoices         map[string]domain.Invoice
	invoiceNumbers   map[string]string // number -> invoice ID
	payments         map[string][]domain.Payment
	paymentIndex     map[string]domain.Payment
	paymentReversals map[string]string // payment ID -> reversing payment ID
}

func newState() *state {
	return &state{
		currencies:       map[string]domain.Currency{},
		rates:            map[string][]domain.ExchangeRate{},
		accounts:         map[string]domain.Account{},
		years:            map[string]domain.FiscalYear{},
		periods:          map[string]domain.FiscalPeriod{},
		journals:         map[string]domain.Journal{},
		partners:         map[string]domain.Partner{},
		vatRates:         map[string]domain.VATRate{},
		entryIndex:       map[string]int{},
		reversals:        map[string]string{},
		invoices:         map[string]domain.Invoice{},
		invoiceNumbers:   map[string]string{},
		payments:         map[string][]domain.Payment{},
		paymentIndex:     map[string]domain.Payment{},
		paymentReversals: map[string]string{},
	}
}

// Store is an in-process implementation of every repository port.
type Store struct {
	mu   sync.Mutex // serializes writers
	snap atomic.Pointer[state]
}

// NewStore returns an empty store.
func NewStore() *Store {
	s := &Store{}
	s.snap.Store(newState())
	return s
}

// NewRepositoryProvider wires one Store behind every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:  store,
		AccountRepo:   store,
		FiscalRepo:    store,
		ReferenceRepo: store,
		JournalRepo:   store,
		InvoiceRepo:   store,
	}
}

func (s *Store) read() *state {
	return s.snap.Load()
}

// write runs fn against a shallow copy of the current state and publishes it when fn
// succeeds. fn must clone any map it mutates (see cloned).
func (s *Store) write(fn func(next *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.snap.Load()
	if err := fn(&next); err != nil {
		return err
	}
	s.snap.Store(&next)
	return nil
}

func cloned[K comparable, V any](m map[K]V) map[K]V {
	return maps.Clone(m)
}

var (
	_ portsrepo.CurrencyRepositoryFacade  = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade   = (*Store)(nil)
	_ portsrepo.FiscalRepositoryFacade    = (*Store)(nil)
	_ portsrepo.ReferenceRepositoryFacade = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade   = (*Store)(nil)
	_ portsrepo.InvoiceRepositoryFacade   = (*Store)(nil)
)
