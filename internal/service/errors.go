package service

import (
	"errors"
	"fmt"
)

// Session failures.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrRefreshRevoked     = errors.New("refresh token is not the active session")
	ErrAccountNotFound    = errors.New("account not found")
)

// CRUD failures.
var (
	ErrNotFound             = errors.New("not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrRoleNameTaken        = errors.New("role name already exists")
	ErrPermissionTaken      = errors.New("permission for this api path and method already exists")
	ErrAdminRoleProtected   = errors.New("the ADMIN role cannot be deleted")
	ErrSeedAccountProtected = errors.New("the seeded admin account cannot be deleted")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
