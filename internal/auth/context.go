package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/domain"
)

type identityKey struct{}

const identityLocalsKey = "auth_identity"

// ContextWithIdentity returns a child context carrying the caller.
func ContextWithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext extracts the caller placed by the gate.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	if ctx == nil {
		return domain.Identity{}, false
	}
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok
}

func attachIdentity(c *fiber.Ctx, id domain.Identity) {
	c.Locals(identityLocalsKey, id)
	c.SetUserContext(ContextWithIdentity(c.UserContext(), id))
}

// IdentityFrom returns the caller attached to the request, if any.
func IdentityFrom(c *fiber.Ctx) (domain.Identity, bool) {
	id, ok := c.Locals(identityLocalsKey).(domain.Identity)
	return id, ok
}
