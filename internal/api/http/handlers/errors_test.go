package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/service"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

func TestAPIError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{service.ErrInvalidCredentials, apperrors.CodeInvalidCredentials, http.StatusUnauthorized},
		{service.ErrRefreshRevoked, apperrors.CodeTokenInvalid, http.StatusUnauthorized},
		{service.ErrAccountNotFound, apperrors.CodeAccountNotFound, http.StatusUnauthorized},
		{auth.ErrTokenExpired, apperrors.CodeTokenExpired, http.StatusUnauthorized},
		{auth.ErrTokenMissing, apperrors.CodeTokenInvalid, http.StatusUnauthorized},
		{auth.ErrTokenSignature, apperrors.CodeTokenInvalid, http.StatusUnauthorized},
		{service.ErrNotFound, apperrors.CodeNotFound, http.StatusNotFound},
		{service.ErrEmailTaken, apperrors.CodeConflict, http.StatusConflict},
		{service.ErrPermissionTaken, apperrors.CodeConflict, http.StatusConflict},
		{service.ErrAdminRoleProtected, apperrors.CodeForbidden, http.StatusForbidden},
		{fmt.Errorf("wrapped: %w", service.ErrRoleNameTaken), apperrors.CodeConflict, http.StatusConflict},
		{&service.ValidationError{Field: "skills", Reason: "at least one skill is required"}, apperrors.CodeValidationFailed, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			var de *apperrors.DomainError
			require.True(t, errors.As(apiError("job", tc.err), &de))
			assert.Equal(t, tc.code, de.Code)
			assert.Equal(t, tc.status, de.HTTPStatus)
		})
	}
}

func TestAPIError_PassesThroughUnknown(t *testing.T) {
	err := errors.New("db down")
	assert.Same(t, err, apiError("job", err))
	assert.NoError(t, apiError("job", nil))
}

func TestAPIError_NotFoundNamesResource(t *testing.T) {
	var de *apperrors.DomainError
	require.True(t, errors.As(apiError("company", service.ErrNotFound), &de))
	assert.Equal(t, "company not found", de.Message)
}
