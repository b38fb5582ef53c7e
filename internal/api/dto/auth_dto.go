package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/service"
)

// LoginRequest accepts the email as either "username" or "email".
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login returns the effective email.
func (r LoginRequest) Login() string {
	if strings.TrimSpace(r.Username) != "" {
		return r.Username
	}
	return r.Email
}

// Validate requires a login and a password.
func (r LoginRequest) Validate() error {
	f := fieldErrors{}
	f.required("username", r.Login())
	f.required("password", r.Password)
	return f.err()
}

// RegisterRequest is the self-registration payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Address  string `json:"address"`
}

// Validate checks the self-registration fields.
func (r RegisterRequest) Validate() error {
	f := fieldErrors{}
	f.required("name", r.Name)
	f.email("email", r.Email)
	f.required("password", r.Password)
	f.nonNegative("age", int64(r.Age))
	return f.err()
}

// Input converts the payload.
func (r RegisterRequest) Input() service.RegisterInput {
	return service.RegisterInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Age:      r.Age,
		Gender:   r.Gender,
		Address:  r.Address,
	}
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Validate requires both passwords.
func (r ChangePasswordRequest) Validate() error {
	f := fieldErrors{}
	f.required("currentPassword", r.CurrentPassword)
	f.required("newPassword", r.NewPassword)
	return f.err()
}

// RoleRefResponse is the role reference inside an identity.
type RoleRefResponse struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// GrantResponse is one entry of the caller's permission list.
type GrantResponse struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	APIPath string `json:"apiPath"`
	Method  string `json:"method"`
	Module  string `json:"module"`
}

// IdentityResponse describes the caller.
type IdentityResponse struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        RoleRefResponse `json:"role"`
	Permissions []GrantResponse `json:"permissions"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
	User        IdentityResponse `json:"user"`
}

// Identity renders the caller with its role and permissions.
func Identity(id domain.Identity) IdentityResponse {
	grants := make([]GrantResponse, 0, len(id.Permissions))
	for _, g := range id.Permissions {
		grants = append(grants, GrantResponse{ID: g.ID, Name: g.Name, APIPath: g.APIPath, Method: g.Method, Module: g.Module})
	}
	return IdentityResponse{
		ID:          id.ID,
		Name:        id.Name,
		Email:       id.Email,
		Role:        RoleRefResponse{ID: id.Role.ID, Name: id.Role.Name},
		Permissions: grants,
	}
}

// Token renders a login or refresh result.
func Token(accessToken string, expiresAt time.Time, id domain.Identity) TokenResponse {
	return TokenResponse{AccessToken: accessToken, ExpiresAt: expiresAt, User: Identity(id)}
}
