package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/service"
)

// RefreshCookieName carries the refresh token between login and refresh.
const RefreshCookieName = "refreshToken"

// AuthHandler exposes the session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	res, err := h.auth.Login(c.UserContext(), req.Login(), req.Password)
	if err != nil {
		return apiError("account", err)
	}

	setRefreshCookie(c, res.RefreshToken, res.RefreshTTL)
	return respond(c, http.StatusCreated, "Login success", dto.Token(res.AccessToken, res.AccessExpiresAt, res.Identity))
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	account, err := h.auth.Register(c.UserContext(), req.Input())
	if err != nil {
		return apiError("account", err)
	}
	return respond(c, http.StatusCreated, "Register new user success", fiber.Map{
		"_id":       account.ID,
		"createdAt": account.CreatedAt,
	})
}

// Account handles GET /auth/account.
func (h *AuthHandler) Account(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	live, err := h.auth.Account(c.UserContext(), id)
	if err != nil {
		return apiError("account", err)
	}
	return respond(c, http.StatusOK, "Get account success", fiber.Map{"user": dto.Identity(*live)})
}

// Refresh handles GET /auth/refresh-token using the refresh cookie.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	res, err := h.auth.Refresh(c.UserContext(), c.Cookies(RefreshCookieName))
	if err != nil {
		return apiError("account", err)
	}
	return respond(c, http.StatusOK, "Refresh token success", dto.Token(res.AccessToken, res.AccessExpiresAt, res.Identity))
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.UserContext(), id); err != nil {
		return apiError("account", err)
	}
	clearRefreshCookie(c)
	return respond(c, http.StatusOK, "Logout success", "ok")
}

// ChangePassword handles POST /auth/change-password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := h.auth.ChangePassword(c.UserContext(), id, req.CurrentPassword, req.NewPassword); err != nil {
		return apiError("account", err)
	}
	clearRefreshCookie(c)
	return respond(c, http.StatusOK, "Change password success", "ok")
}

func setRefreshCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		MaxAge:   int(ttl / time.Second),
	})
}

func clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		Expires:  time.Unix(0, 0),
	})
}
