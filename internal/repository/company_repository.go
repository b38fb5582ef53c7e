package repository

import (
	"context"

	"github.com/spec-kit/job-board/internal/domain"
)

// CompanyRepository defines persistence access for companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	Update(ctx context.Context, company *domain.Company) error
	FindByID(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
	SoftDelete(ctx context.Context, id string, actor *string) error
}

type companyRepository struct {
	db DBTX
}

// NewCompanyRepository returns a Postgres-backed implementation.
func NewCompanyRepository(db DBTX) CompanyRepository {
	return &companyRepository{db: db}
}

const companyColumns = `id, name, address, description, logo, ` + auditColumns

func scanCompany(row rowScanner) (*domain.Company, error) {
	var c domain.Company
	dest := append([]any{&c.ID, &c.Name, &c.Address, &c.Description, &c.Logo}, auditDest(&c.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	const query = `
        INSERT INTO companies (id, name, address, description, logo, created_by)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		company.ID,
		company.Name,
		company.Address,
		company.Description,
		company.Logo,
		company.CreatedBy,
	).Scan(&company.CreatedAt, &company.UpdatedAt)
	return mapError(err)
}

func (r *companyRepository) Update(ctx context.Context, company *domain.Company) error {
	const query = `
        UPDATE companies SET name=$1, address=$2, description=$3, logo=$4, updated_by=$5, updated_at=NOW()
        WHERE id=$6 AND NOT is_deleted`

	res, err := r.db.ExecContext(ctx, query,
		company.Name,
		company.Address,
		company.Description,
		company.Logo,
		company.UpdatedBy,
		company.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

func (r *companyRepository) FindByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id=$1 AND NOT is_deleted`

	company, err := scanCompany(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return company, nil
}

func (r *companyRepository) List(ctx context.Context) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE NOT is_deleted ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, mapError(err)
		}
		companies = append(companies, *company)
	}
	return companies, mapError(rows.Err())
}

func (r *companyRepository) SoftDelete(ctx context.Context, id string, actor *string) error {
	const query = `
        UPDATE companies SET is_deleted=TRUE, deleted_at=NOW(), deleted_by=$1
        WHERE id=$2 AND NOT is_deleted`

	res, err := r.db.ExecContext(ctx, query, actor, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}
