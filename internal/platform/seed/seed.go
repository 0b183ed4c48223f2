// Package seed loads reference data from a YAML file through the services, so every
// validation rule applies exactly as it does for API callers.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// File is the seed document.
type File struct {
	Currencies  []Currency   `yaml:"currencies" validate:"dive"`
	Rates       []Rate       `yaml:"rates" validate:"dive"`
	Accounts    []Account    `yaml:"accounts" validate:"dive"`
	Journals    []Journal    `yaml:"journals" validate:"dive"`
	VATRates    []VATRate    `yaml:"vat_rates" validate:"dive"`
	Partners    []Partner    `yaml:"partners" validate:"dive"`
	FiscalYears []FiscalYear `yaml:"fiscal_years" validate:"dive"`
}

type Currency struct {
	Code       string `yaml:"code" validate:"required,len=3,alpha"`
	Name       string `yaml:"name" validate:"required"`
	Symbol     string `yaml:"symbol"`
	MinorUnits *int32 `yaml:"minor_units" validate:"omitempty,min=0,max=8"`
}

type Rate struct {
	Currency string `yaml:"currency" validate:"required,len=3,alpha"`
	Date     string `yaml:"date" validate:"required,datetime=2006-01-02"`
	Rate     string `yaml:"rate" validate:"required,numeric"`
}

type Account struct {
	Code          string `yaml:"code" validate:"required"`
	Name          string `yaml:"name" validate:"required"`
	Type          string `yaml:"type" validate:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	VATApplicable bool   `yaml:"vat_applicable"`
}

type Journal struct {
	Code string `yaml:"code" validate:"required"`
	Name string `yaml:"name" validate:"required"`
}

type VATRate struct {
	Name string `yaml:"name" validate:"required"`
	Rate string `yaml:"rate" validate:"required,numeric"`
}

type Partner struct {
	Name       string `yaml:"name" validate:"required"`
	VATNumber  string `yaml:"vat_number"`
	Email      string `yaml:"email" validate:"omitempty,email"`
	Phone      string `yaml:"phone"`
	Address    string `yaml:"address"`
	IsCustomer bool   `yaml:"customer"`
	IsSupplier bool   `yaml:"supplier"`
}

type FiscalYear struct {
	Name    string   `yaml:"name" validate:"required"`
	Start   string   `yaml:"start" validate:"required,datetime=2006-01-02"`
	End     string   `yaml:"end" validate:"required,datetime=2006-01-02"`
	Periods []Period `yaml:"periods" validate:"dive"`
}

type Period struct {
	Name  string `yaml:"name" validate:"required"`
	Start string `yaml:"start" validate:"required,datetime=2006-01-02"`
	End   string `yaml:"end" validate:"required,datetime=2006-01-02"`
}

// Summary counts what was created and what already existed.
type Summary struct {
	Created int
	Skipped int
}

// LoadFile reads and validates a seed file.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a seed document. Unknown keys are rejected.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var file File
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}
	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	return &file, nil
}

// Seeder applies a seed file. Records that already exist are skipped, so a file can be
// applied repeatedly.
type Seeder struct {
	svc    *portssvc.ServiceContainer
	userID string
}

func NewSeeder(svc *portssvc.ServiceContainer, userID string) *Seeder {
	return &Seeder{svc: svc, userID: userID}
}

// Apply loads the file in dependency order and stops at the first real failure.
func (s *Seeder) Apply(ctx context.Context, file *File) (Summary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	var sum Summary
	count := func(what string, err error) error {
		switch {
		case err == nil:
			sum.Created++
			return nil
		case errors.Is(err, apperrors.ErrDuplicate):
			sum.Skipped++
			logger.Debug("Seed record exists, skipping", slog.String("record", what))
			return nil
		default:
			return fmt.Errorf("seed %s: %w", what, err)
		}
	}

	for _, c := range file.Currencies {
		minor := domain.DefaultMinorUnits
		if c.MinorUnits != nil {
			minor = *c.MinorUnits
		}
		_, err := s.svc.Currency.CreateCurrency(ctx, domain.Currency{
			CurrencyCode: c.Code, Name: c.Name, Symbol: c.Symbol, MinorUnits: minor,
		}, s.userID)
		if err := count("currency "+c.Code, err); err != nil {
			return sum, err
		}
	}

	for _, r := range file.Rates {
		on, _ := time.Parse(time.DateOnly, r.Date)
		_, err := s.svc.Currency.RecordRate(ctx, r.Currency, on, decimal.RequireFromString(r.Rate), s.userID)
		if err := count("rate "+r.Currency+" "+r.Date, err); err != nil {
			return sum, err
		}
	}

	for _, a := range file.Accounts {
		_, err := s.svc.Account.RegisterAccount(ctx, domain.Account{
			Code: a.Code, Name: a.Name, AccountType: domain.AccountType(a.Type), VATApplicable: a.VATApplicable,
		}, s.userID)
		if err := count("account "+a.Code, err); err != nil {
			return sum, err
		}
	}

	for _, j := range file.Journals {
		_, err := s.svc.Reference.CreateJournal(ctx, j.Code, j.Name, s.userID)
		if err := count("journal "+j.Code, err); err != nil {
			return sum, err
		}
	}

	if err := s.applyVATRates(ctx, file.VATRates, &sum); err != nil {
		return sum, err
	}
	if err := s.applyPartners(ctx, file.Partners, &sum); err != nil {
		return sum, err
	}
	if err := s.applyFiscalYears(ctx, file.FiscalYears, &sum); err != nil {
		return sum, err
	}

	logger.Info("Seed applied", slog.Int("created", sum.Created), slog.Int("skipped", sum.Skipped))
	return sum, nil
}

// VAT rates, partners and fiscal years have no unique business key in storage; they
// are matched by name.
func (s *Seeder) applyVATRates(ctx context.Context, rates []VATRate, sum *Summary) error {
	existing, err := s.svc.Reference.ListVATRates(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]bool, len(existing))
	for _, v := range existing {
		names[v.Name] = true
	}
	for _, v := range rates {
		if names[v.Name] {
			sum.Skipped++
			continue
		}
		if _, err := s.svc.Reference.CreateVATRate(ctx, v.Name, decimal.RequireFromString(v.Rate), s.userID); err != nil {
			return fmt.Errorf("seed VAT rate %s: %w", v.Name, err)
		}
		sum.Created++
	}
	return nil
}

func (s *Seeder) applyPartners(ctx context.Context, partners []Partner, sum *Summary) error {
	existing, err := s.svc.Reference.ListPartners(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]bool, len(existing))
	for _, p := range existing {
		names[p.Name] = true
	}
	for _, p := range partners {
		if names[p.Name] {
			sum.Skipped++
			continue
		}
		_, err := s.svc.Reference.CreatePartner(ctx, domain.Partner{
			Name: p.Name, VATNumber: p.VATNumber, Email: p.Email, Phone: p.Phone, Address: p.Address,
			IsCustomer: p.IsCustomer, IsSupplier: p.IsSupplier,
		}, s.userID)
		if err != nil {
			return fmt.Errorf("seed partner %s: %w", p.Name, err)
		}
		sum.Created++
	}
	return nil
}

func (s *Seeder) applyFiscalYears(ctx context.Context, years []FiscalYear, sum *Summary) error {
	existing, err := s.svc.Fiscal.ListFiscalYears(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]domain.FiscalYear, len(existing))
	for _, y := range existing {
		byName[y.Name] = y
	}

	for _, fy := range years {
		year, ok := byName[fy.Name]
		if ok {
			sum.Skipped++
		} else {
			start, _ := time.Parse(time.DateOnly, fy.Start)
			end, _ := time.Parse(time.DateOnly, fy.End)
			created, err := s.svc.Fiscal.CreateFiscalYear(ctx, fy.Name, start, end, s.userID)
			if err != nil {
				return fmt.Errorf("seed fiscal year %s: %w", fy.Name, err)
			}
			year = *created
			sum.Created++
		}

		periods := make(map[string]bool, len(year.Periods))
		for _, p := range year.Periods {
			periods[p.Name] = true
		}
		for _, p := range fy.Periods {
			if periods[p.Name] {
				sum.Skipped++
				continue
			}
			start, _ := time.Parse(time.DateOnly, p.Start)
			end, _ := time.Parse(time.DateOnly, p.End)
			if _, err := s.svc.Fiscal.AddPeriod(ctx, year.FiscalYearID, p.Name, start, end, s.userID); err != nil {
				return fmt.Errorf("seed fiscal period %s/%s: %w", fy.Name, p.Name, err)
			}
			sum.Created++
		}
	}
	return nil
}
