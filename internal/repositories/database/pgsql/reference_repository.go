package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
)

const journalColumns = `code, name, created_at, created_by, last_updated_at, last_updated_by`

const partnerColumns = `partner_id, name, vat_number, address, email, phone, is_customer, is_supplier, created_at, created_by, last_updated_at, last_updated_by`

const vatRateColumns = `vat_rate_id, name, rate, created_at, created_by, last_updated_at, last_updated_by`

// PgxReferenceRepository stores journals, partners and VAT rates.
type PgxReferenceRepository struct {
	BaseRepository
}

func newPgxReferenceRepository(pool *pgxpool.Pool) portsrepo.ReferenceRepositoryFacade {
	return &PgxReferenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReferenceRepositoryFacade = (*PgxReferenceRepository)(nil)

func (r *PgxReferenceRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)
	_, err := r.Pool.Exec(ctx, `INSERT INTO journals (`+journalColumns+`) VALUES ($1, $2, $3, $4, $5, $6);`,
		m.Code, m.Name, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return wrap(err, "failed to save journal "+m.Code)
}

func (r *PgxReferenceRepository) FindJournalByCode(ctx context.Context, code string) (*domain.Journal, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+journalColumns+` FROM journals WHERE code = $1;`, code)
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Journal])
	if err != nil {
		return nil, wrap(notFound(err, apperrors.CodeUnknownJournal, "journal %s not found", code),
			"failed to find journal "+code)
	}
	j := mapping.ToDomainJournal(m)
	return &j, nil
}

func (r *PgxReferenceRepository) ListJournals(ctx context.Context) ([]domain.Journal, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+journalColumns+` FROM journals ORDER BY code;`)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Journal])
	if err != nil {
		return nil, wrap(err, "failed to list journals")
	}
	return mapping.ToDomainJournalSlice(ms), nil
}

func (r *PgxReferenceRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	m := mapping.ToModelPartner(partner)
	query := `
		INSERT INTO partners (` + partnerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PartnerID, m.Name, m.VATNumber, m.Address, m.Email, m.Phone, m.IsCustomer, m.IsSupplier,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return wrap(err, "failed to save partner "+m.Name)
}

func (r *PgxReferenceRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	if !isUUID(partnerID) {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownPartner, "partner %s not found", partnerID)
	}
	rows, _ := r.Pool.Query(ctx, `SELECT `+partnerColumns+` FROM partners WHERE partner_id = $1;`, partnerID)
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Partner])
	if err != nil {
		return nil, wrap(notFound(err, apperrors.CodeUnknownPartner, "partner %s not found", partnerID),
			"failed to find partner "+partnerID)
	}
	p := mapping.ToDomainPartner(m)
	return &p, nil
}

func (r *PgxReferenceRepository) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+partnerColumns+` FROM partners ORDER BY name, partner_id;`)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Partner])
	if err != nil {
		return nil, wrap(err, "failed to list partners")
	}
	return mapping.ToDomainPartnerSlice(ms), nil
}

func (r *PgxReferenceRepository) DeletePartner(ctx context.Context, partnerID string) error {
	if !isUUID(partnerID) {
		return apperrors.NewReferenceError(apperrors.CodeUnknownPartner, "partner %s not found", partnerID)
	}
	tag, err := r.Pool.Exec(ctx, `DELETE FROM partners WHERE partner_id = $1;`, partnerID)
	if isForeignKeyViolation(err) {
		return apperrors.NewReferenceError(apperrors.CodePartnerInUse, "partner %s is referenced", partnerID)
	}
	if err != nil {
		return wrap(err, "failed to delete partner "+partnerID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewReferenceError(apperrors.CodeUnknownPartner, "partner %s not found", partnerID)
	}
	return nil
}

func (r *PgxReferenceRepository) SaveVATRate(ctx context.Context, rate domain.VATRate) error {
	m := mapping.ToModelVATRate(rate)
	_, err := r.Pool.Exec(ctx, `INSERT INTO vat_rates (`+vatRateColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		m.VATRateID, m.Name, m.Rate, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return wrap(err, "failed to save VAT rate "+m.Name)
}

func (r *PgxReferenceRepository) FindVATRateByID(ctx context.Context, vatRateID string) (*domain.VATRate, error) {
	if !isUUID(vatRateID) {
		return nil, apperrors.NewReferenceError(apperrors.CodeUnknownVATRate, "VAT rate %s not found", vatRateID)
	}
	rows, _ := r.Pool.Query(ctx, `SELECT `+vatRateColumns+` FROM vat_rates WHERE vat_rate_id = $1;`, vatRateID)
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.VATRate])
	if err != nil {
		return nil, wrap(notFound(err, apperrors.CodeUnknownVATRate, "VAT rate %s not found", vatRateID),
			"failed to find VAT rate "+vatRateID)
	}
	v := mapping.ToDomainVATRate(m)
	return &v, nil
}

func (r *PgxReferenceRepository) ListVATRates(ctx context.Context) ([]domain.VATRate, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+vatRateColumns+` FROM vat_rates ORDER BY name;`)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.VATRate])
	if err != nil {
		return nil, wrap(err, "failed to list VAT rates")
	}
	return mapping.ToDomainVATRateSlice(ms), nil
}
