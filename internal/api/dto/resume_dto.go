package dto

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/service"
)

// ResumeRequest is what a candidate submits; company and job are ids.
type ResumeRequest struct {
	URL     string `json:"url"`
	Company string `json:"company"`
	Job     string `json:"job"`
}

// Validate requires url, company and job.
func (r ResumeRequest) Validate() error {
	f := fieldErrors{}
	f.required("url", r.URL)
	f.required("company", r.Company)
	f.required("job", r.Job)
	return f.err()
}

// Input converts the payload.
func (r ResumeRequest) Input() service.ResumeInput {
	return service.ResumeInput{URL: r.URL, CompanyID: r.Company, JobID: r.Job}
}

// ResumeStatusRequest moves a resume through review.
type ResumeStatusRequest struct {
	Status string `json:"status"`
}

// Validate requires a status; the service checks it against the enum.
func (r ResumeStatusRequest) Validate() error {
	f := fieldErrors{}
	f.required("status", r.Status)
	return f.err()
}

// ActorResponse identifies who moved a resume.
type ActorResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ResumeHistoryResponse is one status transition.
type ResumeHistoryResponse struct {
	Status    string        `json:"status"`
	UpdatedAt time.Time     `json:"updatedAt"`
	UpdatedBy ActorResponse `json:"updatedBy"`
}

// ResumeResponse is a resume with its history.
type ResumeResponse struct {
	ID        string                  `json:"_id"`
	Email     string                  `json:"email"`
	UserID    string                  `json:"userId"`
	URL       string                  `json:"url"`
	Status    string                  `json:"status"`
	Company   string                  `json:"company"`
	Job       string                  `json:"job"`
	History   []ResumeHistoryResponse `json:"history"`
	AuditFields
}

// Resume renders a resume with its full status history.
func Resume(r *domain.Resume) ResumeResponse {
	history := make([]ResumeHistoryResponse, 0, len(r.History))
	for _, h := range r.History {
		history = append(history, ResumeHistoryResponse{
			Status:    h.Status,
			UpdatedAt: h.UpdatedAt,
			UpdatedBy: ActorResponse{ID: h.UpdatedBy.ID, Name: h.UpdatedBy.Name, Email: h.UpdatedBy.Email},
		})
	}
	return ResumeResponse{
		ID:          r.ID,
		Email:       r.Email,
		UserID:      r.UserID,
		URL:         r.URL,
		Status:      r.Status,
		Company:     r.CompanyID,
		Job:         r.JobID,
		History:     history,
		AuditFields: auditFields(r.Audit),
	}
}

// Resumes renders a list of resumes.
func Resumes(resumes []domain.Resume) []ResumeResponse {
	out := make([]ResumeResponse, 0, len(resumes))
	for i := range resumes {
		out = append(out, Resume(&resumes[i]))
	}
	return out
}
