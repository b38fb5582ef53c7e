package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/service"
)

// UsersHandler manages accounts for administrators.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Create POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.UserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.ValidateCreate(); err != nil {
		return err
	}
	account, err := h.users.Create(c.UserContext(), id.Actor(), req.Input())
	if err != nil {
		return apiError("user", err)
	}
	return respond(c, http.StatusCreated, "Create new user success", dto.User(account))
}

// List GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	accounts, err := h.users.List(c.UserContext())
	if err != nil {
		return apiError("user", err)
	}
	return respond(c, http.StatusOK, "Get users success", dto.Users(accounts))
}

// Get GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	account, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apiError("user", err)
	}
	return respond(c, http.StatusOK, "Get user success", dto.User(account))
}

// Update PATCH /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.UserUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	account, err := h.users.Update(c.UserContext(), id.Actor(), c.Params("id"), req.Patch())
	if err != nil {
		return apiError("user", err)
	}
	return respond(c, http.StatusOK, "Update user success", dto.User(account))
}

// Delete DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.UserContext(), id.Actor(), c.Params("id")); err != nil {
		return apiError("user", err)
	}
	return respond(c, http.StatusOK, "Delete user success", fiber.Map{"deleted": 1})
}
