package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/service"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// apiError translates service and token failures into client-facing errors.
// Unrecognized errors pass through and become 500s in the error middleware.
func apiError(resource string, err error) error {
	var verr *service.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrInvalidCredentials):
		return apperrors.NewInvalidCredentials()
	case errors.Is(err, service.ErrRefreshRevoked):
		return apperrors.NewTokenInvalid(err)
	case errors.Is(err, service.ErrAccountNotFound):
		return apperrors.NewAccountNotFound(err)
	case errors.Is(err, auth.ErrTokenExpired):
		return apperrors.NewTokenExpired(err)
	case errors.Is(err, auth.ErrTokenMissing),
		errors.Is(err, auth.ErrTokenMalformed),
		errors.Is(err, auth.ErrTokenSignature),
		errors.Is(err, auth.ErrTokenInvalid):
		return apperrors.NewTokenInvalid(err)
	case errors.Is(err, service.ErrNotFound):
		return apperrors.NewNotFound(resource, nil)
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrRoleNameTaken),
		errors.Is(err, service.ErrPermissionTaken):
		return apperrors.NewConflict(err.Error(), nil)
	case errors.Is(err, service.ErrAdminRoleProtected),
		errors.Is(err, service.ErrSeedAccountProtected):
		return apperrors.NewForbidden(err.Error())
	case errors.As(err, &verr):
		return apperrors.NewValidationError(verr.Error(), map[string]any{verr.Field: verr.Reason})
	default:
		return err
	}
}

func caller(c *fiber.Ctx) (domain.Identity, error) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, apperrors.NewUnauthorized("authentication required")
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"statusCode": status,
		"message":    message,
		"data":       data,
	})
}
