package dto

import (
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/service"
)

// RoleRequest is the create payload. isActive defaults to true when omitted.
type RoleRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	IsActive    *bool    `json:"isActive"`
	Permissions []string `json:"permissions"`
}

// ValidateCreate checks the fields a new role needs.
func (r RoleRequest) ValidateCreate() error {
	f := fieldErrors{}
	f.required("name", r.Name)
	return f.err()
}

// Input converts the payload for RoleService.Create.
func (r RoleRequest) Input() service.RoleInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.RoleInput{
		Name:          r.Name,
		Description:   r.Description,
		IsActive:      active,
		PermissionIDs: r.Permissions,
	}
}

// RoleUpdateRequest is the PATCH payload; omitted fields keep their stored value.
// "permissions": [] clears the list, a missing key leaves it alone.
type RoleUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	IsActive    *bool    `json:"isActive"`
	Permissions []string `json:"permissions"`
}

// Patch converts the payload for RoleService.Update.
func (r RoleUpdateRequest) Patch() service.RolePatch {
	patch := service.RolePatch{
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
	}
	if r.Permissions != nil {
		ids := r.Permissions
		patch.PermissionIDs = &ids
	}
	return patch
}

// RoleResponse is a role with its permissions expanded.
type RoleResponse struct {
	ID          string               `json:"_id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	IsActive    bool                 `json:"isActive"`
	Permissions []PermissionResponse `json:"permissions"`
	AuditFields
}

// Role renders one role.
func Role(r *domain.Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
		Permissions: Permissions(r.Permissions),
		AuditFields: auditFields(r.Audit),
	}
}

// Roles renders a list of roles.
func Roles(roles []domain.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(roles))
	for i := range roles {
		out = append(out, Role(&roles[i]))
	}
	return out
}
