package dto

import (
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/service"
)

// PermissionRequest is used for create and update; on update blank fields keep their stored value.
type PermissionRequest struct {
	Name    string `json:"name"`
	APIPath string `json:"apiPath"`
	Method  string `json:"method"`
	Module  string `json:"module"`
}

// ValidateCreate requires every field.
func (r PermissionRequest) ValidateCreate() error {
	f := fieldErrors{}
	f.required("name", r.Name)
	f.required("apiPath", r.APIPath)
	f.required("method", r.Method)
	f.required("module", r.Module)
	return f.err()
}

// Input converts the payload.
func (r PermissionRequest) Input() service.PermissionInput {
	return service.PermissionInput{Name: r.Name, APIPath: r.APIPath, Method: r.Method, Module: r.Module}
}

// PermissionResponse is one permission record.
type PermissionResponse struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	APIPath string `json:"apiPath"`
	Method  string `json:"method"`
	Module  string `json:"module"`
	AuditFields
}

// Permission renders a permission with its audit fields.
func Permission(p *domain.Permission) PermissionResponse {
	return PermissionResponse{
		ID:          p.ID,
		Name:        p.Name,
		APIPath:     p.APIPath,
		Method:      p.Method,
		Module:      p.Module,
		AuditFields: auditFields(p.Audit),
	}
}

// Permissions renders a list of permissions.
func Permissions(perms []domain.Permission) []PermissionResponse {
	out := make([]PermissionResponse, 0, len(perms))
	for i := range perms {
		out = append(out, Permission(&perms[i]))
	}
	return out
}
