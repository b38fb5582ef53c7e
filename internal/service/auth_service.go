package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/ids"
	"github.com/spec-kit/job-board/internal/repository"
)

// LoginResult is what a successful login hands back to the transport.
type LoginResult struct {
	AccessToken     string
	AccessExpiresAt time.Time
	RefreshToken    string
	RefreshTTL      time.Duration
	Identity        domain.Identity
}

// RefreshResult carries a freshly minted access token.
type RefreshResult struct {
	AccessToken     string
	AccessExpiresAt time.Time
	Identity        domain.Identity
}

// RegisterInput holds self-registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Age      int
	Gender   string
	Address  string
}

// AuthService coordinates login, refresh, logout and account self-service.
type AuthService struct {
	accounts   repository.AccountRepository
	roles      repository.RoleRepository
	verifier   *auth.CredentialVerifier
	resolver   auth.PermissionResolver
	tokens     *auth.TokenManager
	events     publisher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Accounts   repository.AccountRepository
	Roles      repository.RoleRepository
	Resolver   auth.PermissionResolver
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		accounts:   deps.Accounts,
		roles:      deps.Roles,
		verifier:   auth.NewCredentialVerifier(deps.Accounts, deps.Resolver),
		resolver:   deps.Resolver,
		tokens:     deps.Tokens,
		events:     publisher{dispatcher: deps.Dispatcher, logger: logger, now: time.Now},
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
	}
}

// Login verifies credentials, persists a new refresh token and mints an access token.
// The refresh token is stored before it is returned, so the cookie never carries an unpersisted value.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	identity, ok, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.events.publish(ctx, events.Event{Type: events.EventLoginFailed, Email: auth.NormalizeEmail(email)})
		return nil, ErrInvalidCredentials
	}

	refresh, _, err := s.tokens.IssueRefresh(*identity)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.SetRefreshToken(ctx, identity.ID, refresh); err != nil {
		return nil, err
	}
	access, exp, err := s.tokens.IssueAccess(*identity)
	if err != nil {
		return nil, err
	}

	s.events.publish(ctx, events.Event{
		Type:      events.EventAccountLoggedIn,
		AccountID: identity.ID,
		Email:     identity.Email,
		Payload:   events.LoggedInPayload{RoleName: identity.Role.Name, PermissionCount: len(identity.Permissions)},
	})
	return &LoginResult{
		AccessToken:     access,
		AccessExpiresAt: exp,
		RefreshToken:    refresh,
		RefreshTTL:      s.tokens.RefreshTTL(),
		Identity:        *identity,
	}, nil
}

// Refresh exchanges the caller's refresh token for a new access token.
// The presented token must equal the account's stored value; permissions are re-resolved.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		s.rejectRefresh(ctx, "", err)
		return nil, err
	}

	account, err := s.accounts.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("valid refresh token for missing account", zap.String("account_id", claims.AccountID))
			s.rejectRefresh(ctx, claims.AccountID, ErrAccountNotFound)
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if account.RefreshToken == "" || subtle.ConstantTimeCompare([]byte(account.RefreshToken), []byte(refreshToken)) != 1 {
		s.rejectRefresh(ctx, account.ID, ErrRefreshRevoked)
		return nil, ErrRefreshRevoked
	}

	identity, err := auth.BuildIdentity(ctx, s.resolver, account)
	if err != nil {
		return nil, err
	}
	access, exp, err := s.tokens.IssueAccess(*identity)
	if err != nil {
		return nil, err
	}

	s.events.publish(ctx, events.Event{Type: events.EventAccessTokenRefreshed, AccountID: account.ID, Email: account.Email})
	return &RefreshResult{AccessToken: access, AccessExpiresAt: exp, Identity: *identity}, nil
}

func (s *AuthService) rejectRefresh(ctx context.Context, accountID string, reason error) {
	s.events.publish(ctx, events.Event{
		Type:      events.EventRefreshTokenRejected,
		AccountID: accountID,
		Payload:   events.RefreshRejectedPayload{Reason: reason.Error()},
	})
}

// Logout drops the caller's stored refresh token. Repeating it is harmless.
func (s *AuthService) Logout(ctx context.Context, caller domain.Identity) error {
	if err := s.accounts.SetRefreshToken(ctx, caller.ID, ""); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	s.events.publish(ctx, events.Event{Type: events.EventAccountLoggedOut, AccountID: caller.ID, Email: caller.Email})
	return nil
}

// Register creates an account bound to the default USER role.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.Account, error) {
	email := auth.NormalizeEmail(in.Email)
	if _, err := s.accounts.FindActiveByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:           ids.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         in.Name,
		Age:          in.Age,
		Gender:       in.Gender,
		Address:      in.Address,
	}
	role, err := s.roles.FindByName(ctx, domain.RoleUser)
	switch {
	case err == nil:
		account.RoleID = &role.ID
	case errors.Is(err, repository.ErrNotFound):
		s.logger.Warn("default role missing; registering account without a role", zap.String("role", domain.RoleUser))
	default:
		return nil, err
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.events.publish(ctx, events.Event{Type: events.EventAccountRegistered, AccountID: account.ID, Email: account.Email})
	return account, nil
}

// Account returns the caller with permissions read live from their role.
func (s *AuthService) Account(ctx context.Context, caller domain.Identity) (*domain.Identity, error) {
	account, err := s.accounts.FindByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return auth.BuildIdentity(ctx, s.resolver, account)
}

// ChangePassword checks the current password, stores the new hash and ends every session.
func (s *AuthService) ChangePassword(ctx context.Context, caller domain.Identity, currentPassword, newPassword string) error {
	account, err := s.accounts.FindByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if err := auth.ComparePassword(account.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	actor := caller.Actor()
	if err := s.accounts.UpdatePassword(ctx, account.ID, hash, actor.ActorID()); err != nil {
		return err
	}

	s.events.publish(ctx, events.Event{Type: events.EventPasswordChanged, AccountID: account.ID, Email: account.Email})
	return nil
}
