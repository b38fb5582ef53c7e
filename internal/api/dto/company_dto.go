package dto

import (
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/service"
)

// CompanyRequest is the create payload.
type CompanyRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
}

// ValidateCreate requires a name and an address.
func (r CompanyRequest) ValidateCreate() error {
	f := fieldErrors{}
	f.required("name", r.Name)
	f.required("address", r.Address)
	return f.err()
}

// Input converts the payload.
func (r CompanyRequest) Input() service.CompanyInput {
	return service.CompanyInput{Name: r.Name, Address: r.Address, Description: r.Description, Logo: r.Logo}
}

// CompanyUpdateRequest is the PATCH payload; omitted fields keep their stored value.
type CompanyUpdateRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
	Logo        *string `json:"logo"`
}

// Patch keeps only the keys present in the body.
func (r CompanyUpdateRequest) Patch() service.CompanyPatch {
	return service.CompanyPatch{Name: r.Name, Address: r.Address, Description: r.Description, Logo: r.Logo}
}

// CompanyResponse is one company.
type CompanyResponse struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Logo        string `json:"logo,omitempty"`
	AuditFields
}

// Company renders one company.
func Company(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Address:     c.Address,
		Description: c.Description,
		Logo:        c.Logo,
		AuditFields: auditFields(c.Audit),
	}
}

// Companies renders a list of companies.
func Companies(companies []domain.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, Company(&companies[i]))
	}
	return out
}
