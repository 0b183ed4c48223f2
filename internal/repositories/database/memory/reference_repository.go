package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func (s *Store) SaveJournal(_ context.Context, journal domain.Journal) error {
	return s.write(func(next *state) error {
		if _, exists := next.journals[journal.Code]; exists {
			return apperrors.NewValidationError(apperrors.CodeDuplicateJournalCode, "journal %s already exists", journal.Code)
		}
		next.journals = cloned(next.journals)
		next.journals[journal.Code] = journal
		return nil
	})
}

func (s *Store) FindJournalByCode(_ context.Context, code string) (*domain.Journal, error) {
	j, ok := s.read().journals[code]
	if !ok {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownJournal, "journal %s not found", code)
	}
	return &j, nil
}

func (s *Store) ListJournals(_ context.Context) ([]domain.Journal, error) {
	st := s.read()
	out := make([]domain.Journal, 0, len(st.journals))
	for _, j := range st.journals {
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) SavePartner(_ context.Context, partner domain.Partner) error {
	return s.write(func(next *state) error {
		next.partners = cloned(next.partners)
		next.partners[partner.PartnerID] = partner
		return nil
	})
}

func (s *Store) FindPartnerByID(_ context.Context, partnerID string) (*domain.Partner, error) {
	p, ok := s.read().partners[partnerID]
	if !ok {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownPartner, "partner %s not found", partnerID)
	}
	return &p, nil
}

func (s *Store) ListPartners(_ context.Context) ([]domain.Partner, error) {
	st := s.read()
	out := make([]domain.Partner, 0, len(st.partners))
	for _, p := range st.partners {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].PartnerID < out[j].PartnerID
	})
	return out, nil
}

func (s *Store) DeletePartner(_ context.Context, partnerID string) error {
	return s.write(func(next *state) error {
		if _, ok := next.partners[partnerID]; !ok {
			return apperrors.NewReferenceError(apperrors.CodeUnknownPartner, "partner %s not found", partnerID)
		}
		for _, inv := range next.invoices {
			if inv.PartnerID == partnerID {
				return apperrors.NewReferenceError(apperrors.CodePartnerInUse, "partner %s has invoices", partnerID)
			}
		}
		for _, e := range next.entries {
			for _, l := range e.Lines {
				if l.PartnerID != nil && *l.PartnerID == partnerID {
					return apperrors.NewReferenceError(apperrors.CodePartnerInUse, "partner %s has posted lines", partnerID)
				}
			}
		}
		next.partners = cloned(next.partners)
		delete(next.partners, partnerID)
		return nil
	})
}

func (s *Store) SaveVATRate(_ context.Context, rate domain.VATRate) error {
	return s.write(func(next *state) error {
		next.vatRates = cloned(next.vatRates)
		next.vatRates[rate.VATRateID] = rate
		return nil
	})
}

func (s *Store) FindVATRateByID(_ context.Context, vatRateID string) (*domain.VATRate, error) {
	v, ok := s.read().vatRates[vatRateID]
	if !ok {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownVATRate, "VAT rate %s not found", vatRateID)
	}
	return &v, nil
}

func (s *Store) ListVATRates(_ context.Context) ([]domain.VATRate, error) {
	st := s.read()
	out := make([]domain.VATRate, 0, len(st.vatRates))
	for _, v := range st.vatRates {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
