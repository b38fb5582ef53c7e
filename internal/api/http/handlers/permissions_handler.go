package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/service"
)

// PermissionsHandler manages permission records.
type PermissionsHandler struct {
	permissions *service.PermissionService
}

// NewPermissionsHandler constructs the handler.
func NewPermissionsHandler(permissions *service.PermissionService) *PermissionsHandler {
	return &PermissionsHandler{permissions: permissions}
}

// Create handles POST /permissions.
func (h *PermissionsHandler) Create(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.PermissionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.ValidateCreate(); err != nil {
		return err
	}
	perm, err := h.permissions.Create(c.UserContext(), id.Actor(), req.Input())
	if err != nil {
		return apiError("permission", err)
	}
	return respond(c, http.StatusCreated, "Create new permission success", dto.Permission(perm))
}

// List handles GET /permissions.
func (h *PermissionsHandler) List(c *fiber.Ctx) error {
	perms, err := h.permissions.List(c.UserContext())
	if err != nil {
		return apiError("permission", err)
	}
	return respond(c, http.StatusOK, "Get permissions success", dto.Permissions(perms))
}

// Get handles GET /permissions/:id.
func (h *PermissionsHandler) Get(c *fiber.Ctx) error {
	perm, err := h.permissions.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apiError("permission", err)
	}
	return respond(c, http.StatusOK, "Get permission success", dto.Permission(perm))
}

// Update handles PATCH /permissions/:id.
func (h *PermissionsHandler) Update(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.PermissionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	perm, err := h.permissions.Update(c.UserContext(), id.Actor(), c.Params("id"), req.Input())
	if err != nil {
		return apiError("permission", err)
	}
	return respond(c, http.StatusOK, "Update permission success", dto.Permission(perm))
}

// Delete handles DELETE /permissions/:id.
func (h *PermissionsHandler) Delete(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.permissions.Delete(c.UserContext(), id.Actor(), c.Params("id")); err != nil {
		return apiError("permission", err)
	}
	return respond(c, http.StatusOK, "Delete permission success", fiber.Map{"deleted": 1})
}
