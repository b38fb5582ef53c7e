package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository/repotest"
)

var seedRoutes = []auth.RouteSpec{
	{Method: http.MethodPost, Path: "/api/v1/auth/login", Module: "AUTH", Public: true},
	{Method: http.MethodGet, Path: "/api/v1/auth/account", Module: "AUTH", SkipPermission: true},
	{Method: http.MethodGet, Path: "/api/v1/jobs", Module: "JOBS"},
	{Method: http.MethodPost, Path: "/api/v1/jobs", Module: "JOBS"},
	{Method: http.MethodDelete, Path: "/api/v1/jobs/:id", Module: "JOBS"},
}

func TestSeeder_PopulatesEmptyDatabase(t *testing.T) {
	ctx := context.Background()
	accounts := repotest.NewAccounts()
	perms := repotest.NewPermissions()
	roles := repotest.NewRoles(perms)

	seeder := NewSeeder(accounts, roles, perms, "123456", bcrypt.MinCost, nil)
	require.NoError(t, seeder.Seed(ctx, seedRoutes))

	list, err := perms.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3, "only gated routes become permissions")
	assert.Equal(t, "GET /api/v1/jobs", list[0].Name)
	assert.Equal(t, "JOBS", list[0].Module)

	admin, err := roles.FindByName(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, admin.Permissions, 3)
	user, err := roles.FindByName(ctx, domain.RoleUser)
	require.NoError(t, err)
	assert.Empty(t, user.Permissions)

	adminAccount, err := accounts.FindActiveByEmail(ctx, SeedAdminEmail)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, *adminAccount.RoleID)
	assert.NoError(t, auth.ComparePassword(adminAccount.PasswordHash, "123456"))

	userAccount, err := accounts.FindActiveByEmail(ctx, SeedUserEmail)
	require.NoError(t, err)
	assert.Equal(t, user.ID, *userAccount.RoleID)
}

func TestSeeder_SkipsWhenDataExists(t *testing.T) {
	ctx := context.Background()
	accounts := repotest.NewAccounts()
	perms := repotest.NewPermissions()
	roles := repotest.NewRoles(perms)
	seeder := NewSeeder(accounts, roles, perms, "123456", bcrypt.MinCost, nil)

	require.NoError(t, seeder.Seed(ctx, seedRoutes))
	require.NoError(t, seeder.Seed(ctx, append(seedRoutes, auth.RouteSpec{Method: http.MethodPatch, Path: "/api/v1/jobs/:id", Module: "JOBS"})))

	count, err := perms.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	count, err = accounts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
