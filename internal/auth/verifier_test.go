package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository"
)

type stubFinder struct {
	accounts map[string]*domain.Account
	err      error
}

func (s stubFinder) FindActiveByEmail(_ context.Context, email string) (*domain.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	acc, ok := s.accounts[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return acc, nil
}

type stubResolver struct {
	grants []domain.Grant
	err    error
}

func (s stubResolver) Resolve(_ context.Context, roleID *string) (domain.RoleRef, []domain.Grant, error) {
	if s.err != nil {
		return domain.RoleRef{}, nil, s.err
	}
	if roleID == nil {
		return domain.RoleRef{}, nil, nil
	}
	return domain.RoleRef{ID: *roleID, Name: domain.RoleAdmin}, s.grants, nil
}

func newVerifierFixture(t *testing.T) (*CredentialVerifier, stubResolver) {
	t.Helper()
	hash, err := HashPassword("123456", bcrypt.MinCost)
	require.NoError(t, err)

	roleID := "role-1"
	finder := stubFinder{accounts: map[string]*domain.Account{
		"admin@gmail.com": {ID: "acc-1", Email: "admin@gmail.com", Name: "I'm admin", PasswordHash: hash, RoleID: &roleID},
	}}
	resolver := stubResolver{grants: []domain.Grant{{ID: "p1", APIPath: "/jobs", Method: "POST"}}}
	return NewCredentialVerifier(finder, resolver), resolver
}

func TestVerify_Success(t *testing.T) {
	v, resolver := newVerifierFixture(t)

	id, ok, err := v.Verify(context.Background(), "  Admin@Gmail.com ", "123456")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "acc-1", id.ID)
	assert.Equal(t, "role-1", id.Role.ID)
	assert.Equal(t, resolver.grants, id.Permissions)
}

func TestVerify_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	v, _ := newVerifierFixture(t)

	id, ok, err := v.Verify(context.Background(), "admin@gmail.com", "wrong")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, id)

	id, ok, err = v.Verify(context.Background(), "ghost@gmail.com", "123456")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, id)
}

func TestVerify_StorageFailure(t *testing.T) {
	boom := errors.New("connection refused")
	v := NewCredentialVerifier(stubFinder{err: boom}, stubResolver{})

	_, ok, err := v.Verify(context.Background(), "admin@gmail.com", "123456")
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}

func TestVerify_ResolverFailure(t *testing.T) {
	hash, err := HashPassword("pw", bcrypt.MinCost)
	require.NoError(t, err)
	roleID := "r"
	boom := errors.New("role lookup failed")
	v := NewCredentialVerifier(
		stubFinder{accounts: map[string]*domain.Account{"a@b.c": {ID: "1", PasswordHash: hash, RoleID: &roleID}}},
		stubResolver{err: boom},
	)

	_, ok, err := v.Verify(context.Background(), "a@b.c", "pw")
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@gmail.com", NormalizeEmail(" User@GMAIL.com "))
}
