package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository"
)

// RoleResolver expands role ids into permission grants, reading through the cache.
type RoleResolver struct {
	roles  repository.RoleRepository
	cache  repository.PermissionCache
	logger *zap.Logger
}

// NewRoleResolver builds a resolver. A nil cache disables caching.
func NewRoleResolver(roles repository.RoleRepository, cache repository.PermissionCache, logger *zap.Logger) *RoleResolver {
	if cache == nil {
		cache = repository.NewNopPermissionCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleResolver{roles: roles, cache: cache, logger: logger}
}

// Resolve returns the role reference and its ordered grants. A missing or
// deleted role yields no permissions; an inactive role keeps its reference
// but grants nothing.
func (r *RoleResolver) Resolve(ctx context.Context, roleID *string) (domain.RoleRef, []domain.Grant, error) {
	if roleID == nil || *roleID == "" {
		return domain.RoleRef{}, nil, nil
	}

	ref, grants, hit, err := r.cache.Get(ctx, *roleID)
	if err != nil {
		r.logger.Warn("permission cache read failed", zap.String("role_id", *roleID), zap.Error(err))
	} else if hit {
		return ref, grants, nil
	}

	role, err := r.roles.FindByID(ctx, *roleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.RoleRef{}, nil, nil
		}
		return domain.RoleRef{}, nil, err
	}

	ref = domain.RoleRef{ID: role.ID, Name: role.Name}
	grants = nil
	if role.IsActive {
		grants = domain.GrantsOf(role.Permissions)
	}
	if err := r.cache.Set(ctx, ref, grants); err != nil {
		r.logger.Warn("permission cache write failed", zap.String("role_id", role.ID), zap.Error(err))
	}
	return ref, grants, nil
}
