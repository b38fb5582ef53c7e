package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-board/internal/domain"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

type decisionLog struct {
	mu        sync.Mutex
	decisions []string
}

func (d *decisionLog) RecordGateDecision(_, decision string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.decisions = append(d.decisions, decision)
}

func (d *decisionLog) last() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.decisions) == 0 {
		return ""
	}
	return d.decisions[len(d.decisions)-1]
}

type gateFixture struct {
	app    *fiber.App
	tokens *TokenManager
	log    *decisionLog
	now    time.Time
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()

	f := &gateFixture{now: time.Now(), log: &decisionLog{}}
	f.tokens = NewTokenManager(TokenConfig{
		AccessSecret:  "access",
		AccessTTL:     time.Minute,
		RefreshSecret: "refresh",
		RefreshTTL:    time.Hour,
	}, WithClock(func() time.Time { return f.now }))
	gate := NewGate(f.tokens, f.log, nil)

	f.app = fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var de *apperrors.DomainError
			if errors.As(err, &de) {
				return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code, "message": de.Message}})
			}
			return c.SendStatus(http.StatusInternalServerError)
		},
	})

	echo := func(c *fiber.Ctx) error {
		id, ok := IdentityFromContext(c.UserContext())
		return c.JSON(fiber.Map{"authenticated": ok, "id": id.ID})
	}
	routes := []RouteSpec{
		{Method: http.MethodGet, Path: "/jobs", Public: true},
		{Method: http.MethodPost, Path: "/jobs"},
		{Method: http.MethodPatch, Path: "/jobs/:id"},
		{Method: http.MethodGet, Path: "/auth/account", SkipPermission: true},
	}
	for _, r := range routes {
		f.app.Add(r.Method, r.Path, gate.Guard(r), echo)
	}
	return f
}

func (f *gateFixture) token(t *testing.T, grants ...domain.Grant) string {
	t.Helper()
	tok, _, err := f.tokens.IssueAccess(domain.Identity{
		ID:          "acc-1",
		Email:       "user@gmail.com",
		Role:        domain.RoleRef{ID: "r1", Name: domain.RoleUser},
		Permissions: grants,
	})
	require.NoError(t, err)
	return tok
}

func (f *gateFixture) do(t *testing.T, method, path, token string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

var createJob = domain.Grant{ID: "p1", Name: "Create job", APIPath: "/jobs", Method: http.MethodPost, Module: "JOBS"}

func TestGate_PublicRouteNeedsNoToken(t *testing.T) {
	f := newGateFixture(t)

	status, body := f.do(t, http.MethodGet, "/jobs", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["authenticated"])
	assert.Equal(t, DecisionPublic, f.log.last())

	status, _ = f.do(t, http.MethodGet, "/jobs", "garbage")
	assert.Equal(t, http.StatusOK, status, "a bad token on a public route is ignored")
}

func TestGate_MissingToken(t *testing.T) {
	f := newGateFixture(t)

	status, body := f.do(t, http.MethodPost, "/jobs", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeTokenInvalid, errorCode(body))
	assert.Equal(t, DecisionUnauthenticated, f.log.last())
}

func TestGate_WrongScheme(t *testing.T) {
	f := newGateFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
	req.Header.Set("Authorization", "Basic "+f.token(t, createJob))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGate_MalformedToken(t *testing.T) {
	f := newGateFixture(t)

	status, body := f.do(t, http.MethodPost, "/jobs", "not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeTokenInvalid, errorCode(body))
}

func TestGate_ExpiredToken(t *testing.T) {
	f := newGateFixture(t)
	tok := f.token(t, createJob)

	f.now = f.now.Add(time.Minute + time.Second)
	status, body := f.do(t, http.MethodPost, "/jobs", tok)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeTokenExpired, errorCode(body))
}

func TestGate_RefreshTokenIsNotAnAccessToken(t *testing.T) {
	f := newGateFixture(t)
	refresh, _, err := f.tokens.IssueRefresh(domain.Identity{ID: "acc-1", Permissions: []domain.Grant{createJob}})
	require.NoError(t, err)

	status, _ := f.do(t, http.MethodPost, "/jobs", refresh)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestGate_PermissionMatchesMethodAndTemplate(t *testing.T) {
	f := newGateFixture(t)
	tok := f.token(t, createJob)

	status, body := f.do(t, http.MethodPost, "/jobs", tok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "acc-1", body["id"])
	assert.Equal(t, DecisionAllowed, f.log.last())

	status, body = f.do(t, http.MethodPatch, "/jobs/123", tok)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, apperrors.CodePermissionDenied, errorCode(body))
	assert.Equal(t, DecisionForbidden, f.log.last())
}

func TestGate_TemplateNotLiteralPath(t *testing.T) {
	f := newGateFixture(t)
	literal := domain.Grant{APIPath: "/jobs/123", Method: http.MethodPatch}
	template := domain.Grant{APIPath: "/jobs/:id", Method: http.MethodPatch}

	status, _ := f.do(t, http.MethodPatch, "/jobs/123", f.token(t, literal))
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = f.do(t, http.MethodPatch, "/jobs/123", f.token(t, template))
	assert.Equal(t, http.StatusOK, status)
}

func TestGate_SkipPermissionStillAuthenticates(t *testing.T) {
	f := newGateFixture(t)

	status, _ := f.do(t, http.MethodGet, "/auth/account", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := f.do(t, http.MethodGet, "/auth/account", f.token(t))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "acc-1", body["id"])
}

func TestIdentityFrom_Locals(t *testing.T) {
	app := fiber.New()
	id := domain.Identity{ID: "acc-9"}
	app.Get("/", func(c *fiber.Ctx) error {
		attachIdentity(c, id)
		got, ok := IdentityFrom(c)
		if !ok || got.ID != "acc-9" {
			return c.SendStatus(http.StatusTeapot)
		}
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
