package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/job-board/internal/domain"
)

// subjectMarker is the fixed "sub" of every token this service mints.
const subjectMarker = "token login system"

// TokenKind separates access tokens from refresh tokens.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// RoleClaim is the role reference inside a token.
type RoleClaim struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Claims describes the JWT payload for both token kinds.
// Permissions is only set on access tokens; each entry is "METHOD apiPath",
// the minimum the gate matches on, so the snapshot of a role holding every
// route still fits in a default-sized request header.
type Claims struct {
	AccountID   string    `json:"_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        RoleClaim `json:"role"`
	Permissions []string  `json:"permissions,omitempty"`
	Kind        TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// Identity rebuilds the caller identity from verified claims. Grants carry
// only the route and method.
func (c *Claims) Identity() domain.Identity {
	var grants []domain.Grant
	for _, p := range c.Permissions {
		method, apiPath, ok := strings.Cut(p, " ")
		if !ok {
			continue
		}
		grants = append(grants, domain.Grant{APIPath: apiPath, Method: method})
	}
	return domain.Identity{
		ID:          c.AccountID,
		Name:        c.Name,
		Email:       c.Email,
		Role:        domain.RoleRef{ID: c.Role.ID, Name: c.Role.Name},
		Permissions: grants,
	}
}

// TokenConfig carries the two signing keys and lifetimes.
type TokenConfig struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
}

type signingKey struct {
	secret []byte
	ttl    time.Duration
}

// TokenManager issues and verifies access and refresh tokens.
type TokenManager struct {
	access  signingKey
	refresh signingKey
	now     func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock replaces the wall clock used for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a new manager.
func NewTokenManager(cfg TokenConfig, opts ...TokenOption) *TokenManager {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	tm := &TokenManager{
		access:  signingKey{secret: []byte(cfg.AccessSecret), ttl: cfg.AccessTTL},
		refresh: signingKey{secret: []byte(cfg.RefreshSecret), ttl: cfg.RefreshTTL},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

// RefreshTTL is the refresh token lifetime, used for the cookie max-age.
func (tm *TokenManager) RefreshTTL() time.Duration {
	return tm.refresh.ttl
}

// IssueAccess signs a short-lived access token carrying the permission snapshot.
func (tm *TokenManager) IssueAccess(id domain.Identity) (string, time.Time, error) {
	return tm.issue(id, KindAccess, tm.access)
}

// IssueRefresh signs a long-lived refresh token. It carries no permissions;
// they are resolved live when the token is exchanged.
func (tm *TokenManager) IssueRefresh(id domain.Identity) (string, time.Time, error) {
	id.Permissions = nil
	return tm.issue(id, KindRefresh, tm.refresh)
}

// ParseAccess validates an access token and returns its claims.
func (tm *TokenManager) ParseAccess(tokenStr string) (*Claims, error) {
	return tm.parse(tokenStr, KindAccess, tm.access)
}

// ParseRefresh validates a refresh token and returns its claims.
func (tm *TokenManager) ParseRefresh(tokenStr string) (*Claims, error) {
	return tm.parse(tokenStr, KindRefresh, tm.refresh)
}

func (tm *TokenManager) issue(id domain.Identity, kind TokenKind, key signingKey) (string, time.Time, error) {
	now := tm.now()
	expiresAt := now.Add(key.ttl)
	claims := &Claims{
		AccountID:   id.ID,
		Name:        id.Name,
		Email:       id.Email,
		Role:        RoleClaim{ID: id.Role.ID, Name: id.Role.Name},
		Permissions: permissionClaims(id.Permissions),
		Kind:        kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectMarker,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (tm *TokenManager) parse(tokenStr string, kind TokenKind, key signingKey) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrTokenMissing
	}
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return key.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(tm.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classify(err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Kind != kind || claims.AccountID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return ErrTokenInvalid
	}
}

func permissionClaims(grants []domain.Grant) []string {
	if len(grants) == 0 {
		return nil
	}
	out := make([]string, 0, len(grants))
	for _, g := range grants {
		out = append(out, g.Method+" "+g.APIPath)
	}
	return out
}
