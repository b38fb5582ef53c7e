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

// ResumeInput carries what a candidate submits. Email and owner come from the caller.
type ResumeInput struct {
	URL       string
	CompanyID string
	JobID     string
}

// ResumeService manages job applications and their review history.
type ResumeService struct {
	resumes   repository.ResumeRepository
	companies repository.CompanyRepository
	jobs      repository.JobRepository
	now       func() time.Time
}

// NewResumeService builds the service.
func NewResumeService(resumes repository.ResumeRepository, companies repository.CompanyRepository, jobs repository.JobRepository) *ResumeService {
	return &ResumeService{resumes: resumes, companies: companies, jobs: jobs, now: time.Now}
}

// Create files a PENDING resume for the caller against an existing job of an existing company.
func (s *ResumeService) Create(ctx context.Context, caller domain.Actor, in ResumeInput) (*domain.Resume, error) {
	if strings.TrimSpace(in.URL) == "" {
		return nil, invalid("url", "is required")
	}
	if _, err := s.companies.FindByID(ctx, in.CompanyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid("company", "does not exist")
		}
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid("job", "does not exist")
		}
		return nil, err
	}
	if job.Company.ID != in.CompanyID {
		return nil, invalid("job", "does not belong to the company")
	}

	resume := &domain.Resume{
		ID:        ids.New(),
		Email:     caller.Email,
		UserID:    caller.ID,
		URL:       strings.TrimSpace(in.URL),
		Status:    domain.ResumePending,
		CompanyID: in.CompanyID,
		JobID:     in.JobID,
		History: []domain.ResumeHistory{{
			Status:    domain.ResumePending,
			UpdatedAt: s.now().UTC(),
			UpdatedBy: caller,
		}},
	}
	resume.CreatedBy = caller.ActorID()
	if err := s.resumes.Create(ctx, resume); err != nil {
		return nil, err
	}
	return resume, nil
}

func (s *ResumeService) Get(ctx context.Context, id string) (*domain.Resume, error) {
	resume, err := s.resumes.FindByID(ctx, id)
	return resume, notFound(err)
}

func (s *ResumeService) List(ctx context.Context) ([]domain.Resume, error) {
	return s.resumes.List(ctx)
}

// ByUser lists the resumes a user has submitted, newest first.
func (s *ResumeService) ByUser(ctx context.Context, userID string) ([]domain.Resume, error) {
	return s.resumes.ListByUser(ctx, userID)
}

// UpdateStatus moves a resume to status and appends the transition to its history.
func (s *ResumeService) UpdateStatus(ctx context.Context, actor domain.Actor, id, status string) (*domain.Resume, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !domain.ValidResumeStatus(status) {
		return nil, invalid("status", "must be one of PENDING, REVIEWING, APPROVED, REJECTED")
	}
	entry := domain.ResumeHistory{Status: status, UpdatedAt: s.now().UTC(), UpdatedBy: actor}
	resume, err := s.resumes.UpdateStatus(ctx, id, entry, actor.ActorID())
	if err != nil {
		return nil, notFound(err)
	}
	return resume, nil
}

func (s *ResumeService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return notFound(s.resumes.SoftDelete(ctx, id, actor.ActorID()))
}
