package repository

import (
	"context"

	"github.com/spec-kit/job-board/internal/domain"
)

// RefreshStore persists the single live refresh token of an account.
// An empty value means no active session.
type RefreshStore interface {
	SetRefreshToken(ctx context.Context, accountID, token string) error
}

// AccountRepository defines persistence access for accounts.
type AccountRepository interface {
	RefreshStore
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	UpdatePassword(ctx context.Context, accountID, passwordHash string, actor *string) error
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindActiveByEmail(ctx context.Context, email string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	SoftDelete(ctx context.Context, id string, actor *string) error
	Count(ctx context.Context) (int, error)
}

type accountRepository struct {
	db DBTX
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(db DBTX) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, email, password_hash, name, age, gender, address, role_id, company_id, company_name, refresh_token, ` + auditColumns

func scanAccount(row rowScanner) (*domain.Account, error) {
	var (
		a           domain.Account
		companyID   *string
		companyName *string
	)
	dest := append([]any{
		&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Age, &a.Gender, &a.Address,
		&a.RoleID, &companyID, &companyName, &a.RefreshToken,
	}, auditDest(&a.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if companyID != nil {
		a.Company = &domain.CompanyRef{ID: *companyID}
		if companyName != nil {
			a.Company.Name = *companyName
		}
	}
	return &a, nil
}

func companyArgs(ref *domain.CompanyRef) (any, any) {
	if ref == nil || ref.ID == "" {
		return nil, nil
	}
	return ref.ID, ref.Name
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (id, email, password_hash, name, age, gender, address, role_id, company_id, company_name, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING created_at, updated_at`

	companyID, companyName := companyArgs(account.Company)
	err := r.db.QueryRowContext(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.Name,
		account.Age,
		account.Gender,
		account.Address,
		account.RoleID,
		companyID,
		companyName,
		account.CreatedBy,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	return mapError(err)
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts
        SET email=$1, name=$2, age=$3, gender=$4, address=$5, role_id=$6, company_id=$7, company_name=$8,
            updated_by=$9, updated_at=NOW()
        WHERE id=$10 AND NOT is_deleted`

	companyID, companyName := companyArgs(account.Company)
	res, err := r.db.ExecContext(ctx, query,
		account.Email,
		account.Name,
		account.Age,
		account.Gender,
		account.Address,
		account.RoleID,
		companyID,
		companyName,
		account.UpdatedBy,
		account.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

// UpdatePassword stores a new hash and drops the live refresh token in one statement.
func (r *accountRepository) UpdatePassword(ctx context.Context, accountID, passwordHash string, actor *string) error {
	const query = `
        UPDATE accounts SET password_hash=$1, refresh_token='', updated_by=$2, updated_at=NOW()
        WHERE id=$3 AND NOT is_deleted`

	res, err := r.db.ExecContext(ctx, query, passwordHash, actor, accountID)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

// SetRefreshToken overwrites the stored value; the last writer wins.
func (r *accountRepository) SetRefreshToken(ctx context.Context, accountID, token string) error {
	const query = `UPDATE accounts SET refresh_token=$1 WHERE id=$2 AND NOT is_deleted`

	res, err := r.db.ExecContext(ctx, query, token, accountID)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

func (r *accountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id=$1 AND NOT is_deleted`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return account, nil
}

func (r *accountRepository) FindActiveByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email=$1 AND NOT is_deleted`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, mapError(err)
	}
	return account, nil
}

func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE NOT is_deleted ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, mapError(err)
		}
		accounts = append(accounts, *account)
	}
	return accounts, mapError(rows.Err())
}

func (r *accountRepository) SoftDelete(ctx context.Context, id string, actor *string) error {
	const query = `
        UPDATE accounts SET is_deleted=TRUE, deleted_at=NOW(), deleted_by=$1, refresh_token=''
        WHERE id=$2 AND NOT is_deleted`

	res, err := r.db.ExecContext(ctx, query, actor, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

func (r *accountRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM accounts WHERE NOT is_deleted`

	var n int
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, mapError(err)
	}
	return n, nil
}
