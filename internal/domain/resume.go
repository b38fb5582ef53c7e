package domain

import "time"

// Resume review states.
const (
	ResumePending   = "PENDING"
	ResumeReviewing = "REVIEWING"
	ResumeApproved  = "APPROVED"
	ResumeRejected  = "REJECTED"
)

// ValidResumeStatus reports whether s is one of the review states.
func ValidResumeStatus(s string) bool {
	switch s {
	case ResumePending, ResumeReviewing, ResumeApproved, ResumeRejected:
		return true
	}
	return false
}

// ResumeHistory records one status transition.
type ResumeHistory struct {
	Status    string
	UpdatedAt time.Time
	UpdatedBy Actor
}

// Resume is a candidate's application to a job. History only grows.
type Resume struct {
	ID        string
	Email     string
	UserID    string
	URL       string
	Status    string
	CompanyID string
	JobID     string
	History   []ResumeHistory
	Audit
}
