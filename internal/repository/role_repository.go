package repository

import (
	"context"

	"github.com/spec-kit/job-board/internal/domain"
)

// RoleRepository defines persistence access for roles and their ordered permissions.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	Update(ctx context.Context, role *domain.Role) error
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	SoftDelete(ctx context.Context, id string, actor *string) error
	Count(ctx context.Context) (int, error)
}

type roleRepository struct {
	db TxDB
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(db TxDB) RoleRepository {
	return &roleRepository{db: db}
}

const roleColumns = `id, name, description, is_active, ` + auditColumns

func scanRole(row rowScanner) (*domain.Role, error) {
	var role domain.Role
	dest := append([]any{&role.ID, &role.Name, &role.Description, &role.IsActive}, auditDest(&role.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	const query = `
        INSERT INTO roles (id, name, description, is_active, created_by)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`

	return WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		err := tx.QueryRowContext(ctx, query,
			role.ID,
			role.Name,
			role.Description,
			role.IsActive,
			role.CreatedBy,
		).Scan(&role.CreatedAt, &role.UpdatedAt)
		if err != nil {
			return mapError(err)
		}
		return insertRolePermissions(ctx, tx, role.ID, role.PermissionIDs)
	})
}

func (r *roleRepository) Update(ctx context.Context, role *domain.Role) error {
	const query = `
        UPDATE roles SET name=$1, description=$2, is_active=$3, updated_by=$4, updated_at=NOW()
        WHERE id=$5 AND NOT is_deleted`

	return WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		res, err := tx.ExecContext(ctx, query,
			role.Name,
			role.Description,
			role.IsActive,
			role.UpdatedBy,
			role.ID,
		)
		if err != nil {
			return mapError(err)
		}
		if err := expectAffected(res); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM role_permissions WHERE role_id=$1`, role.ID); err != nil {
			return mapError(err)
		}
		return insertRolePermissions(ctx, tx, role.ID, role.PermissionIDs)
	})
}

func insertRolePermissions(ctx context.Context, tx DBTX, roleID string, permissionIDs []string) error {
	const query = `INSERT INTO role_permissions (role_id, permission_id, position) VALUES ($1, $2, $3)`

	for i, permID := range permissionIDs {
		if _, err := tx.ExecContext(ctx, query, roleID, permID, i); err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (r *roleRepository) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE id=$1 AND NOT is_deleted`
	return r.findOne(ctx, query, id)
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE name=$1 AND NOT is_deleted`
	return r.findOne(ctx, query, name)
}

func (r *roleRepository) findOne(ctx context.Context, query string, arg any) (*domain.Role, error) {
	role, err := scanRole(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return nil, mapError(err)
	}
	if err := r.loadPermissions(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// loadPermissions fills the role's live permissions in stored order; deleted permissions drop out.
func (r *roleRepository) loadPermissions(ctx context.Context, role *domain.Role) error {
	const query = `
        SELECT p.id, p.name, p.api_path, p.method, p.module,
               p.created_by, p.updated_by, p.deleted_by, p.is_deleted, p.deleted_at, p.created_at, p.updated_at
        FROM role_permissions rp
        JOIN permissions p ON p.id = rp.permission_id
        WHERE rp.role_id=$1 AND NOT p.is_deleted
        ORDER BY rp.position`

	perms, err := queryPermissions(ctx, r.db, query, role.ID)
	if err != nil {
		return err
	}
	role.Permissions = perms
	role.PermissionIDs = make([]string, 0, len(perms))
	for _, p := range perms {
		role.PermissionIDs = append(role.PermissionIDs, p.ID)
	}
	return nil
}

func (r *roleRepository) List(ctx context.Context) ([]domain.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE NOT is_deleted ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	var roles []domain.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			rows.Close()
			return nil, mapError(err)
		}
		roles = append(roles, *role)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, mapError(err)
	}
	rows.Close()

	for i := range roles {
		if err := r.loadPermissions(ctx, &roles[i]); err != nil {
			return nil, err
		}
	}
	return roles, nil
}

func (r *roleRepository) SoftDelete(ctx context.Context, id string, actor *string) error {
	const query = `
        UPDATE roles SET is_deleted=TRUE, deleted_at=NOW(), deleted_by=$1
        WHERE id=$2 AND NOT is_deleted`

	res, err := r.db.ExecContext(ctx, query, actor, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

func (r *roleRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM roles WHERE NOT is_deleted`

	var n int
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, mapError(err)
	}
	return n, nil
}
