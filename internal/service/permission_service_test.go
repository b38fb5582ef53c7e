package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository/repotest"
)

func TestPermissionService_RouteIsUnique(t *testing.T) {
	cache := repotest.NewCache()
	svc := NewPermissionService(repotest.NewPermissions(), cache, nil)
	ctx := context.Background()

	perm, err := svc.Create(ctx, domain.Actor{}, PermissionInput{Name: "Create job", APIPath: "/api/v1/jobs", Method: "post", Module: "JOBS"})
	require.NoError(t, err)
	assert.Equal(t, "POST", perm.Method)

	_, err = svc.Create(ctx, domain.Actor{}, PermissionInput{Name: "Again", APIPath: "/api/v1/jobs", Method: "POST"})
	assert.ErrorIs(t, err, ErrPermissionTaken)

	_, err = svc.Create(ctx, domain.Actor{}, PermissionInput{Name: "List", APIPath: "/api/v1/jobs", Method: "GET"})
	require.NoError(t, err)
}

func TestPermissionService_MutationsFlushCache(t *testing.T) {
	cache := repotest.NewCache()
	svc := NewPermissionService(repotest.NewPermissions(), cache, nil)
	ctx := context.Background()

	perm, err := svc.Create(ctx, domain.Actor{}, PermissionInput{Name: "Create job", APIPath: "/api/v1/jobs", Method: "POST"})
	require.NoError(t, err)
	assert.Zero(t, cache.Flushed())

	updated, err := svc.Update(ctx, domain.Actor{}, perm.ID, PermissionInput{Name: "Post a job"})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/jobs", updated.APIPath)
	assert.Equal(t, 1, cache.Flushed())

	require.NoError(t, svc.Delete(ctx, domain.Actor{}, perm.ID))
	assert.Equal(t, 2, cache.Flushed())
	assert.ErrorIs(t, svc.Delete(ctx, domain.Actor{}, perm.ID), ErrNotFound)
}
