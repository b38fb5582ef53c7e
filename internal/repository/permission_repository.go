package repository

import (
	"context"

	"github.com/spec-kit/job-board/internal/domain"
)

// PermissionRepository defines persistence access for permissions.
type PermissionRepository interface {
	Create(ctx context.Context, perm *domain.Permission) error
	Update(ctx context.Context, perm *domain.Permission) error
	FindByID(ctx context.Context, id string) (*domain.Permission, error)
	FindByRoute(ctx context.Context, apiPath, method string) (*domain.Permission, error)
	List(ctx context.Context) ([]domain.Permission, error)
	SoftDelete(ctx context.Context, id string, actor *string) error
	Count(ctx context.Context) (int, error)
}

type permissionRepository struct {
	db DBTX
}

// NewPermissionRepository returns a Postgres-backed implementation.
func NewPermissionRepository(db DBTX) PermissionRepository {
	return &permissionRepository{db: db}
}

const permissionColumns = `id, name, api_path, method, module, ` + auditColumns

func scanPermission(row rowScanner) (*domain.Permission, error) {
	var p domain.Permission
	dest := append([]any{&p.ID, &p.Name, &p.APIPath, &p.Method, &p.Module}, auditDest(&p.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *permissionRepository) Create(ctx context.Context, perm *domain.Permission) error {
	const query = `
        INSERT INTO permissions (id, name, api_path, method, module, created_by)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		perm.ID,
		perm.Name,
		perm.APIPath,
		perm.Method,
		perm.Module,
		perm.CreatedBy,
	).Scan(&perm.CreatedAt, &perm.UpdatedAt)
	return mapError(err)
}

func (r *permissionRepository) Update(ctx context.Context, perm *domain.Permission) error {
	const query = `
        UPDATE permissions SET name=$1, api_path=$2, method=$3, module=$4, updated_by=$5, updated_at=NOW()
        WHERE id=$6 AND NOT is_deleted`

	res, err := r.db.ExecContext(ctx, query,
		perm.Name,
		perm.APIPath,
		perm.Method,
		perm.Module,
		perm.UpdatedBy,
		perm.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

func (r *permissionRepository) FindByID(ctx context.Context, id string) (*domain.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE id=$1 AND NOT is_deleted`

	perm, err := scanPermission(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return perm, nil
}

func (r *permissionRepository) FindByRoute(ctx context.Context, apiPath, method string) (*domain.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE api_path=$1 AND method=$2 AND NOT is_deleted`

	perm, err := scanPermission(r.db.QueryRowContext(ctx, query, apiPath, method))
	if err != nil {
		return nil, mapError(err)
	}
	return perm, nil
}

func (r *permissionRepository) List(ctx context.Context) ([]domain.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE NOT is_deleted ORDER BY module, api_path, method`
	return queryPermissions(ctx, r.db, query)
}

func (r *permissionRepository) SoftDelete(ctx context.Context, id string, actor *string) error {
	const query = `
        UPDATE permissions SET is_deleted=TRUE, deleted_at=NOW(), deleted_by=$1
        WHERE id=$2 AND NOT is_deleted`

	res, err := r.db.ExecContext(ctx, query, actor, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

func (r *permissionRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM permissions WHERE NOT is_deleted`

	var n int
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func queryPermissions(ctx context.Context, db DBTX, query string, args ...any) ([]domain.Permission, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var perms []domain.Permission
	for rows.Next() {
		perm, err := scanPermission(rows)
		if err != nil {
			return nil, mapError(err)
		}
		perms = append(perms, *perm)
	}
	return perms, mapError(rows.Err())
}
