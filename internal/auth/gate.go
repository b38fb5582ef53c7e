package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// Gate decisions reported to the observer.
const (
	DecisionPublic          = "public"
	DecisionAllowed         = "allowed"
	DecisionUnauthenticated = "unauthenticated"
	DecisionForbidden       = "forbidden"
)

// RouteSpec is the metadata captured when a route is registered.
// Path is the full route template including the API prefix.
type RouteSpec struct {
	Method         string
	Path           string
	Module         string
	Public         bool
	SkipPermission bool
}

// NeedsPermission reports whether the route is gated by a permission record.
func (r RouteSpec) NeedsPermission() bool {
	return !r.Public && !r.SkipPermission
}

// DecisionRecorder receives one call per gated request.
type DecisionRecorder interface {
	RecordGateDecision(route, decision string)
}

// Gate authenticates bearer tokens and checks the caller's permission snapshot.
type Gate struct {
	tokens   *TokenManager
	recorder DecisionRecorder
	logger   *zap.Logger
}

// NewGate constructs the gate. recorder may be nil.
func NewGate(tokens *TokenManager, recorder DecisionRecorder, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{tokens: tokens, recorder: recorder, logger: logger}
}

// Guard returns the handler enforcing spec for one route.
func (g *Gate) Guard(spec RouteSpec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if spec.Public {
			g.record(spec, DecisionPublic)
			return c.Next()
		}

		claims, err := g.tokens.ParseAccess(bearerToken(c))
		if err != nil {
			g.record(spec, DecisionUnauthenticated)
			return tokenError(err)
		}

		identity := claims.Identity()
		if !spec.SkipPermission && !identity.Allows(spec.Method, spec.Path) {
			g.record(spec, DecisionForbidden)
			g.logger.Debug("permission denied",
				zap.String("account_id", identity.ID),
				zap.String("method", spec.Method),
				zap.String("route", spec.Path),
			)
			return apperrors.NewPermissionDenied(spec.Method, spec.Path)
		}

		g.record(spec, DecisionAllowed)
		attachIdentity(c, identity)
		return c.Next()
	}
}

func (g *Gate) record(spec RouteSpec, decision string) {
	if g.recorder != nil {
		g.recorder.RecordGateDecision(spec.Method+" "+spec.Path, decision)
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func tokenError(err error) error {
	if errors.Is(err, ErrTokenExpired) {
		return apperrors.NewTokenExpired(err)
	}
	return apperrors.NewTokenInvalid(err)
}
