package service

import (
	"context"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/ids"
	"github.com/spec-kit/job-board/internal/repository"
)

// CompanyInput carries the writable company fields.
type CompanyInput struct {
	Name        string
	Address     string
	Description string
	Logo        string
}

// CompanyPatch carries the company fields a partial update may change; nil keeps the stored value.
type CompanyPatch struct {
	Name        *string
	Address     *string
	Description *string
	Logo        *string
}

// CompanyService manages employers.
type CompanyService struct {
	companies repository.CompanyRepository
}

// NewCompanyService builds the service.
func NewCompanyService(companies repository.CompanyRepository) *CompanyService {
	return &CompanyService{companies: companies}
}

func (s *CompanyService) Create(ctx context.Context, actor domain.Actor, in CompanyInput) (*domain.Company, error) {
	company := &domain.Company{
		ID:          ids.New(),
		Name:        in.Name,
		Address:     in.Address,
		Description: in.Description,
		Logo:        in.Logo,
	}
	company.CreatedBy = actor.ActorID()
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) Get(ctx context.Context, id string) (*domain.Company, error) {
	company, err := s.companies.FindByID(ctx, id)
	return company, notFound(err)
}

func (s *CompanyService) List(ctx context.Context) ([]domain.Company, error) {
	return s.companies.List(ctx)
}

// Update applies the fields present in the patch.
func (s *CompanyService) Update(ctx context.Context, actor domain.Actor, id string, in CompanyPatch) (*domain.Company, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, invalid("name", "must not be empty")
		}
		company.Name = *in.Name
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Description != nil {
		company.Description = *in.Description
	}
	if in.Logo != nil {
		company.Logo = *in.Logo
	}
	company.UpdatedBy = actor.ActorID()
	if err := s.companies.Update(ctx, company); err != nil {
		return nil, notFound(err)
	}
	return company, nil
}

func (s *CompanyService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return notFound(s.companies.SoftDelete(ctx, id, actor.ActorID()))
}
