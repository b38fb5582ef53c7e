package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/ids"
	"github.com/spec-kit/job-board/internal/repository"
)

// RoleInput carries the writable role fields.
type RoleInput struct {
	Name          string
	Description   string
	IsActive      bool
	PermissionIDs []string
}

// RolePatch carries the role fields a partial update may change.
// A nil field is left as stored; a non-nil empty PermissionIDs clears the list.
type RolePatch struct {
	Name          *string
	Description   *string
	IsActive      *bool
	PermissionIDs *[]string
}

// RoleService manages roles and keeps the permission cache coherent.
type RoleService struct {
	roles       repository.RoleRepository
	permissions repository.PermissionRepository
	cache       repository.PermissionCache
	logger      *zap.Logger
}

// NewRoleService builds the service.
func NewRoleService(roles repository.RoleRepository, permissions repository.PermissionRepository, cache repository.PermissionCache, logger *zap.Logger) *RoleService {
	if cache == nil {
		cache = repository.NewNopPermissionCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleService{roles: roles, permissions: permissions, cache: cache, logger: logger}
}

// Create adds a role with a unique name.
func (s *RoleService) Create(ctx context.Context, actor domain.Actor, in RoleInput) (*domain.Role, error) {
	if err := s.checkName(ctx, in.Name, ""); err != nil {
		return nil, err
	}
	permIDs, err := s.checkPermissions(ctx, in.PermissionIDs)
	if err != nil {
		return nil, err
	}

	role := &domain.Role{
		ID:            ids.New(),
		Name:          in.Name,
		Description:   in.Description,
		IsActive:      in.IsActive,
		PermissionIDs: permIDs,
	}
	role.CreatedBy = actor.ActorID()
	if err := s.roles.Create(ctx, role); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrRoleNameTaken
		}
		return nil, err
	}
	return s.Get(ctx, role.ID)
}

// Get returns a role with its permissions resolved.
func (s *RoleService) Get(ctx context.Context, id string) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	return role, notFound(err)
}

// List returns every non-deleted role.
func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}

// Update applies the fields present in the patch. ADMIN keeps its name.
func (s *RoleService) Update(ctx context.Context, actor domain.Actor, id string, in RolePatch) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if in.Name != nil && *in.Name != role.Name {
		if *in.Name == "" {
			return nil, invalid("name", "must not be empty")
		}
		if role.Name == domain.RoleAdmin {
			return nil, invalid("name", "the ADMIN role cannot be renamed")
		}
		if err := s.checkName(ctx, *in.Name, role.ID); err != nil {
			return nil, err
		}
		role.Name = *in.Name
	}
	if in.PermissionIDs != nil {
		permIDs, err := s.checkPermissions(ctx, *in.PermissionIDs)
		if err != nil {
			return nil, err
		}
		role.PermissionIDs = permIDs
	}
	if in.Description != nil {
		role.Description = *in.Description
	}
	if in.IsActive != nil {
		role.IsActive = *in.IsActive
	}
	role.UpdatedBy = actor.ActorID()

	if err := s.roles.Update(ctx, role); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrRoleNameTaken
		}
		return nil, notFound(err)
	}
	s.invalidate(ctx, role.ID)
	return s.Get(ctx, role.ID)
}

// Delete soft-deletes a role. ADMIN is refused.
func (s *RoleService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if role.Name == domain.RoleAdmin {
		return ErrAdminRoleProtected
	}
	if err := s.roles.SoftDelete(ctx, id, actor.ActorID()); err != nil {
		return notFound(err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *RoleService) checkName(ctx context.Context, name, selfID string) error {
	existing, err := s.roles.FindByName(ctx, name)
	switch {
	case err == nil && existing.ID != selfID:
		return ErrRoleNameTaken
	case err == nil, errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return err
	}
}

// checkPermissions rejects unknown ids and drops repeats, keeping first-seen order.
func (s *RoleService) checkPermissions(ctx context.Context, permIDs []string) ([]string, error) {
	seen := make(map[string]struct{}, len(permIDs))
	out := make([]string, 0, len(permIDs))
	for _, id := range permIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, err := s.permissions.FindByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, invalid("permissions", "unknown permission "+id)
			}
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func (s *RoleService) invalidate(ctx context.Context, roleID string) {
	if err := s.cache.Invalidate(ctx, roleID); err != nil {
		s.logger.Warn("permission cache invalidation failed", zap.String("role_id", roleID), zap.Error(err))
	}
}
