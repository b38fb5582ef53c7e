package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/ids"
	"github.com/spec-kit/job-board/internal/repository"
)

// PermissionInput carries the writable permission fields.
type PermissionInput struct {
	Name    string
	APIPath string
	Method  string
	Module  string
}

// PermissionService manages permission records.
type PermissionService struct {
	permissions repository.PermissionRepository
	cache       repository.PermissionCache
	logger      *zap.Logger
}

// NewPermissionService builds the service.
func NewPermissionService(permissions repository.PermissionRepository, cache repository.PermissionCache, logger *zap.Logger) *PermissionService {
	if cache == nil {
		cache = repository.NewNopPermissionCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PermissionService{permissions: permissions, cache: cache, logger: logger}
}

// Create adds a permission; (apiPath, method) must be unused.
func (s *PermissionService) Create(ctx context.Context, actor domain.Actor, in PermissionInput) (*domain.Permission, error) {
	in.Method = strings.ToUpper(in.Method)
	if err := s.checkRoute(ctx, in.APIPath, in.Method, ""); err != nil {
		return nil, err
	}

	perm := &domain.Permission{
		ID:      ids.New(),
		Name:    in.Name,
		APIPath: in.APIPath,
		Method:  in.Method,
		Module:  in.Module,
	}
	perm.CreatedBy = actor.ActorID()
	if err := s.permissions.Create(ctx, perm); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPermissionTaken
		}
		return nil, err
	}
	return perm, nil
}

// Get returns one permission.
func (s *PermissionService) Get(ctx context.Context, id string) (*domain.Permission, error) {
	perm, err := s.permissions.FindByID(ctx, id)
	return perm, notFound(err)
}

// List returns every non-deleted permission.
func (s *PermissionService) List(ctx context.Context) ([]domain.Permission, error) {
	return s.permissions.List(ctx)
}

// Update rewrites a permission. Every cached role is dropped since any may hold it.
func (s *PermissionService) Update(ctx context.Context, actor domain.Actor, id string, in PermissionInput) (*domain.Permission, error) {
	perm, err := s.permissions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if in.APIPath != "" {
		perm.APIPath = in.APIPath
	}
	if in.Method != "" {
		perm.Method = strings.ToUpper(in.Method)
	}
	if in.Name != "" {
		perm.Name = in.Name
	}
	if in.Module != "" {
		perm.Module = in.Module
	}
	if err := s.checkRoute(ctx, perm.APIPath, perm.Method, perm.ID); err != nil {
		return nil, err
	}
	perm.UpdatedBy = actor.ActorID()

	if err := s.permissions.Update(ctx, perm); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPermissionTaken
		}
		return nil, notFound(err)
	}
	s.invalidateAll(ctx)
	return perm, nil
}

// Delete soft-deletes a permission.
func (s *PermissionService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := s.permissions.SoftDelete(ctx, id, actor.ActorID()); err != nil {
		return notFound(err)
	}
	s.invalidateAll(ctx)
	return nil
}

func (s *PermissionService) checkRoute(ctx context.Context, apiPath, method, selfID string) error {
	existing, err := s.permissions.FindByRoute(ctx, apiPath, method)
	switch {
	case err == nil && existing.ID != selfID:
		return ErrPermissionTaken
	case err == nil, errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *PermissionService) invalidateAll(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("permission cache flush failed", zap.Error(err))
	}
}
