package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository"
)

// AccountFinder looks up non-deleted accounts by email.
type AccountFinder interface {
	FindActiveByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// PermissionResolver expands a role id into its reference and ordered permission list.
// A nil role id resolves to an empty role with no permissions.
type PermissionResolver interface {
	Resolve(ctx context.Context, roleID *string) (domain.RoleRef, []domain.Grant, error)
}

// CredentialVerifier checks an email/password pair and builds the identity.
type CredentialVerifier struct {
	accounts AccountFinder
	resolver PermissionResolver
}

// NewCredentialVerifier wires a verifier.
func NewCredentialVerifier(accounts AccountFinder, resolver PermissionResolver) *CredentialVerifier {
	return &CredentialVerifier{accounts: accounts, resolver: resolver}
}

// Verify returns (identity, true, nil) on a match and (nil, false, nil) when the
// account is unknown or the password is wrong. Errors are storage failures only.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*domain.Identity, bool, error) {
	account, err := v.accounts.FindActiveByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			burnComparison(password)
			return nil, false, nil
		}
		return nil, false, err
	}

	if err := ComparePassword(account.PasswordHash, password); err != nil {
		return nil, false, nil
	}

	identity, err := BuildIdentity(ctx, v.resolver, account)
	if err != nil {
		return nil, false, err
	}
	return identity, true, nil
}

// BuildIdentity resolves the account's role into a full identity.
func BuildIdentity(ctx context.Context, resolver PermissionResolver, account *domain.Account) (*domain.Identity, error) {
	role, grants, err := resolver.Resolve(ctx, account.RoleID)
	if err != nil {
		return nil, err
	}
	return &domain.Identity{
		ID:          account.ID,
		Name:        account.Name,
		Email:       account.Email,
		Role:        role,
		Permissions: grants,
	}, nil
}

// NormalizeEmail is applied on every write and lookup of an account email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
