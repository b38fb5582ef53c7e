package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository/repotest"
)

func TestRoleResolver_ReadsThroughCache(t *testing.T) {
	ctx := context.Background()
	perms := repotest.NewPermissions()
	roles := repotest.NewRoles(perms)
	cache := repotest.NewCache()
	require.NoError(t, perms.Create(ctx, &domain.Permission{ID: "p1", APIPath: "/api/v1/jobs", Method: "POST"}))
	require.NoError(t, roles.Create(ctx, &domain.Role{ID: "r1", Name: "HR", IsActive: true, PermissionIDs: []string{"p1"}}))

	resolver := NewRoleResolver(roles, cache, nil)
	roleID := "r1"

	ref, grants, err := resolver.Resolve(ctx, &roleID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleRef{ID: "r1", Name: "HR"}, ref)
	require.Len(t, grants, 1)
	assert.Equal(t, "p1", grants[0].ID)

	_, again, err := resolver.Resolve(ctx, &roleID)
	require.NoError(t, err)
	assert.Equal(t, grants, again)
	assert.Equal(t, 1, roles.Finds(), "second resolve is served from cache")
}

func TestRoleResolver_NilAndMissingRoles(t *testing.T) {
	ctx := context.Background()
	resolver := NewRoleResolver(repotest.NewRoles(repotest.NewPermissions()), nil, nil)

	ref, grants, err := resolver.Resolve(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleRef{}, ref)
	assert.Nil(t, grants)

	missing := "gone"
	ref, grants, err = resolver.Resolve(ctx, &missing)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleRef{}, ref)
	assert.Nil(t, grants)
}

func TestRoleResolver_InactiveRoleGrantsNothing(t *testing.T) {
	ctx := context.Background()
	perms := repotest.NewPermissions()
	roles := repotest.NewRoles(perms)
	require.NoError(t, perms.Create(ctx, &domain.Permission{ID: "p1", APIPath: "/api/v1/jobs", Method: "POST"}))
	require.NoError(t, roles.Create(ctx, &domain.Role{ID: "r1", Name: "HR", IsActive: false, PermissionIDs: []string{"p1"}}))

	roleID := "r1"
	ref, grants, err := NewRoleResolver(roles, nil, nil).Resolve(ctx, &roleID)
	require.NoError(t, err)
	assert.Equal(t, "HR", ref.Name)
	assert.Empty(t, grants)
}

func TestRoleResolver_DeletedPermissionDropsOut(t *testing.T) {
	ctx := context.Background()
	perms := repotest.NewPermissions()
	roles := repotest.NewRoles(perms)
	require.NoError(t, perms.Create(ctx, &domain.Permission{ID: "p1", APIPath: "/api/v1/jobs", Method: "POST"}))
	require.NoError(t, perms.Create(ctx, &domain.Permission{ID: "p2", APIPath: "/api/v1/jobs/:id", Method: "DELETE"}))
	require.NoError(t, roles.Create(ctx, &domain.Role{ID: "r1", Name: "HR", IsActive: true, PermissionIDs: []string{"p1", "p2"}}))
	require.NoError(t, perms.SoftDelete(ctx, "p1", nil))

	roleID := "r1"
	_, grants, err := NewRoleResolver(roles, nil, nil).Resolve(ctx, &roleID)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, "p2", grants[0].ID)
}
