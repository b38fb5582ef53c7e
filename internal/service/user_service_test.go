package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository/repotest"
)

func newUserFixture(t *testing.T) (*UserService, *repotest.Accounts) {
	t.Helper()
	perms := repotest.NewPermissions()
	roles := repotest.NewRoles(perms)
	require.NoError(t, roles.Create(context.Background(), &domain.Role{ID: "role-user", Name: domain.RoleUser, IsActive: true}))
	accounts := repotest.NewAccounts()
	return NewUserService(accounts, roles, bcrypt.MinCost), accounts
}

func TestUserService_CreateHashesAndNormalizes(t *testing.T) {
	svc, _ := newUserFixture(t)

	account, err := svc.Create(context.Background(), domain.Actor{ID: "admin"}, UserInput{
		Name: "Hr", Email: "HR@Acme.io ", Password: "pw", RoleID: "role-user",
		Company: &domain.CompanyRef{ID: "c1", Name: "Acme"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hr@acme.io", account.Email)
	assert.NoError(t, auth.ComparePassword(account.PasswordHash, "pw"))
	assert.Equal(t, "Acme", account.Company.Name)
}

func TestUserService_CreateRequiresKnownRole(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	var verr *ValidationError
	_, err := svc.Create(ctx, domain.Actor{}, UserInput{Email: "a@b.c", Password: "pw"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "role", verr.Field)

	_, err = svc.Create(ctx, domain.Actor{}, UserInput{Email: "a@b.c", Password: "pw", RoleID: "ghost"})
	require.ErrorAs(t, err, &verr)
}

func TestUserService_EmailStaysUnique(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.Actor{}, UserInput{Email: "a@b.c", Password: "pw", RoleID: "role-user"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, domain.Actor{}, UserInput{Email: "x@b.c", Password: "pw", RoleID: "role-user"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.Actor{}, UserInput{Email: "A@B.C", Password: "pw", RoleID: "role-user"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Update(ctx, domain.Actor{}, second.ID, UserPatch{Email: ptr(first.Email)})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_UpdateKeepsAbsentFields(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	account, err := svc.Create(ctx, domain.Actor{}, UserInput{
		Name: "Hr", Email: "hr@acme.io", Password: "pw", RoleID: "role-user",
		Age: 31, Gender: "FEMALE", Address: "Hanoi",
		Company: &domain.CompanyRef{ID: "c1", Name: "Acme"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, domain.Actor{ID: "admin"}, account.ID, UserPatch{Address: ptr("Saigon")})
	require.NoError(t, err)
	assert.Equal(t, "Saigon", updated.Address)
	assert.Equal(t, "Hr", updated.Name)
	assert.Equal(t, 31, updated.Age)
	assert.Equal(t, "FEMALE", updated.Gender)
	assert.Equal(t, "hr@acme.io", updated.Email)
	require.NotNil(t, updated.RoleID)
	assert.Equal(t, "role-user", *updated.RoleID)
	require.NotNil(t, updated.Company)
	assert.Equal(t, "Acme", updated.Company.Name)

	stored, err := svc.Get(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 31, stored.Age)

	updated, err = svc.Update(ctx, domain.Actor{}, account.ID, UserPatch{Age: ptr(0), Gender: ptr("")})
	require.NoError(t, err)
	assert.Zero(t, updated.Age)
	assert.Empty(t, updated.Gender)
	assert.Equal(t, "Saigon", updated.Address)
}

func TestUserService_UpdateRejectsBlankName(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	account, err := svc.Create(ctx, domain.Actor{}, UserInput{Name: "Hr", Email: "hr@acme.io", Password: "pw", RoleID: "role-user"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, domain.Actor{}, account.ID, UserPatch{Name: ptr("")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestUserService_DeleteProtectsSeedAdmin(t *testing.T) {
	svc, accounts := newUserFixture(t)
	ctx := context.Background()
	accounts.Put(domain.Account{ID: "seed", Email: SeedAdminEmail})

	assert.ErrorIs(t, svc.Delete(ctx, domain.Actor{}, "seed"), ErrSeedAccountProtected)

	other, err := svc.Create(ctx, domain.Actor{}, UserInput{Email: "a@b.c", Password: "pw", RoleID: "role-user"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, domain.Actor{ID: "seed"}, other.ID))
	_, err = svc.Get(ctx, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
