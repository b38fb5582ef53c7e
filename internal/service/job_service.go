package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/ids"
	"github.com/spec-kit/job-board/internal/repository"
)

// JobInput carries the writable job fields.
type JobInput struct {
	Name        string
	Skills      []string
	CompanyID   string
	Location    string
	Salary      int64
	Quantity    int
	Level       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	IsActive    bool
}

// JobPatch carries the job fields a partial update may change; nil keeps the stored value.
// The merged posting is validated as a whole.
type JobPatch struct {
	Name        *string
	Skills      *[]string
	CompanyID   *string
	Location    *string
	Salary      *int64
	Quantity    *int
	Level       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    *bool
}

// JobService manages job postings.
type JobService struct {
	jobs      repository.JobRepository
	companies repository.CompanyRepository
}

// NewJobService builds the service.
func NewJobService(jobs repository.JobRepository, companies repository.CompanyRepository) *JobService {
	return &JobService{jobs: jobs, companies: companies}
}

func (s *JobService) Create(ctx context.Context, actor domain.Actor, in JobInput) (*domain.Job, error) {
	if err := validateJob(in); err != nil {
		return nil, err
	}
	company, err := s.company(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}

	job := &domain.Job{ID: ids.New()}
	applyJobInput(job, in, company)
	job.CreatedBy = actor.ActorID()
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	return job, notFound(err)
}

func (s *JobService) List(ctx context.Context) ([]domain.Job, error) {
	return s.jobs.List(ctx)
}

// Update applies the fields present in the patch, re-resolving the company when it changes.
func (s *JobService) Update(ctx context.Context, actor domain.Actor, id string, in JobPatch) (*domain.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	merged := jobInputOf(job)
	in.applyTo(&merged)
	if err := validateJob(merged); err != nil {
		return nil, err
	}
	company := job.Company
	if in.CompanyID != nil {
		if company, err = s.company(ctx, merged.CompanyID); err != nil {
			return nil, err
		}
	}

	applyJobInput(job, merged, company)
	job.UpdatedBy = actor.ActorID()
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, notFound(err)
	}
	return job, nil
}

func jobInputOf(job *domain.Job) JobInput {
	return JobInput{
		Name:        job.Name,
		Skills:      job.Skills,
		CompanyID:   job.Company.ID,
		Location:    job.Location,
		Salary:      job.Salary,
		Quantity:    job.Quantity,
		Level:       job.Level,
		Description: job.Description,
		StartDate:   job.StartDate,
		EndDate:     job.EndDate,
		IsActive:    job.IsActive,
	}
}

func (p JobPatch) applyTo(in *JobInput) {
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Skills != nil {
		in.Skills = *p.Skills
	}
	if p.CompanyID != nil {
		in.CompanyID = *p.CompanyID
	}
	if p.Location != nil {
		in.Location = *p.Location
	}
	if p.Salary != nil {
		in.Salary = *p.Salary
	}
	if p.Quantity != nil {
		in.Quantity = *p.Quantity
	}
	if p.Level != nil {
		in.Level = *p.Level
	}
	if p.Description != nil {
		in.Description = *p.Description
	}
	if p.StartDate != nil {
		in.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		in.EndDate = *p.EndDate
	}
	if p.IsActive != nil {
		in.IsActive = *p.IsActive
	}
}

func (s *JobService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return notFound(s.jobs.SoftDelete(ctx, id, actor.ActorID()))
}

func (s *JobService) company(ctx context.Context, id string) (domain.CompanyRef, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.CompanyRef{}, invalid("company", "does not exist")
		}
		return domain.CompanyRef{}, err
	}
	return domain.CompanyRef{ID: company.ID, Name: company.Name}, nil
}

func validateJob(in JobInput) error {
	skills := 0
	for _, skill := range in.Skills {
		if strings.TrimSpace(skill) != "" {
			skills++
		}
	}
	if skills == 0 {
		return invalid("skills", "at least one skill is required")
	}
	if !in.EndDate.After(in.StartDate) {
		return invalid("endDate", "must be after startDate")
	}
	if in.Salary < 0 || in.Quantity < 0 {
		return invalid("salary", "salary and quantity must not be negative")
	}
	return nil
}

func applyJobInput(job *domain.Job, in JobInput, company domain.CompanyRef) {
	job.Name = in.Name
	job.Skills = in.Skills
	job.Company = company
	job.Location = in.Location
	job.Salary = in.Salary
	job.Quantity = in.Quantity
	job.Level = in.Level
	job.Description = in.Description
	job.StartDate = in.StartDate
	job.EndDate = in.EndDate
	job.IsActive = in.IsActive
}
