package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/service"
)

// RolesHandler manages roles.
type RolesHandler struct {
	roles *service.RoleService
}

// NewRolesHandler constructs the handler.
func NewRolesHandler(roles *service.RoleService) *RolesHandler {
	return &RolesHandler{roles: roles}
}

// Create handles POST /roles.
func (h *RolesHandler) Create(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.RoleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.ValidateCreate(); err != nil {
		return err
	}
	role, err := h.roles.Create(c.UserContext(), id.Actor(), req.Input())
	if err != nil {
		return apiError("role", err)
	}
	return respond(c, http.StatusCreated, "Create new role success", dto.Role(role))
}

// List handles GET /roles.
func (h *RolesHandler) List(c *fiber.Ctx) error {
	roles, err := h.roles.List(c.UserContext())
	if err != nil {
		return apiError("role", err)
	}
	return respond(c, http.StatusOK, "Get roles success", dto.Roles(roles))
}

// Get handles GET /roles/:id.
func (h *RolesHandler) Get(c *fiber.Ctx) error {
	role, err := h.roles.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apiError("role", err)
	}
	return respond(c, http.StatusOK, "Get role success", dto.Role(role))
}

// Update handles PATCH /roles/:id.
func (h *RolesHandler) Update(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.RoleUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	role, err := h.roles.Update(c.UserContext(), id.Actor(), c.Params("id"), req.Patch())
	if err != nil {
		return apiError("role", err)
	}
	return respond(c, http.StatusOK, "Update role success", dto.Role(role))
}

// Delete handles DELETE /roles/:id.
func (h *RolesHandler) Delete(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.roles.Delete(c.UserContext(), id.Actor(), c.Params("id")); err != nil {
		return apiError("role", err)
	}
	return respond(c, http.StatusOK, "Delete role success", fiber.Map{"deleted": 1})
}
