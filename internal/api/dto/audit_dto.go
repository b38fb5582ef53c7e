package dto

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// AuditFields is flattened into every entity response.
type AuditFields struct {
	CreatedBy *string   `json:"createdBy,omitempty"`
	UpdatedBy *string   `json:"updatedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func auditFields(a domain.Audit) AuditFields {
	return AuditFields{CreatedBy: a.CreatedBy, UpdatedBy: a.UpdatedBy, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt}
}

// CompanyRef is the embedded {_id, name} company pointer used by users and jobs.
type CompanyRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

func (r *CompanyRef) toDomain() *domain.CompanyRef {
	if r == nil || r.ID == "" {
		return nil
	}
	return &domain.CompanyRef{ID: r.ID, Name: r.Name}
}

func companyRef(r *domain.CompanyRef) *CompanyRef {
	if r == nil {
		return nil
	}
	return &CompanyRef{ID: r.ID, Name: r.Name}
}
