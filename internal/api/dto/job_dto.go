package dto

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/service"
)

// JobRequest payload. The company name is looked up server-side; only _id is read.
type JobRequest struct {
	Name        string     `json:"name"`
	Skills      []string   `json:"skills"`
	Company     CompanyRef `json:"company"`
	Location    string     `json:"location"`
	Salary      int64      `json:"salary"`
	Quantity    int        `json:"quantity"`
	Level       string     `json:"level"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	IsActive    *bool      `json:"isActive"`
}

// Validate checks required fields; date and skill rules live in the service.
func (r JobRequest) Validate() error {
	f := fieldErrors{}
	f.required("name", r.Name)
	f.required("company", r.Company.ID)
	f.required("location", r.Location)
	f.required("level", r.Level)
	if r.StartDate.IsZero() {
		f["startDate"] = "is required"
	}
	if r.EndDate.IsZero() {
		f["endDate"] = "is required"
	}
	return f.err()
}

// Input converts the payload, defaulting isActive to true.
func (r JobRequest) Input() service.JobInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.JobInput{
		Name:        r.Name,
		Skills:      r.Skills,
		CompanyID:   r.Company.ID,
		Location:    r.Location,
		Salary:      r.Salary,
		Quantity:    r.Quantity,
		Level:       r.Level,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		IsActive:    active,
	}
}

// JobUpdateRequest is the PATCH payload; omitted fields keep their stored value.
type JobUpdateRequest struct {
	Name        *string     `json:"name"`
	Skills      []string    `json:"skills"`
	Company     *CompanyRef `json:"company"`
	Location    *string     `json:"location"`
	Salary      *int64      `json:"salary"`
	Quantity    *int        `json:"quantity"`
	Level       *string     `json:"level"`
	Description *string     `json:"description"`
	StartDate   *time.Time  `json:"startDate"`
	EndDate     *time.Time  `json:"endDate"`
	IsActive    *bool       `json:"isActive"`
}

// Patch keeps only the keys present in the body.
func (r JobUpdateRequest) Patch() service.JobPatch {
	patch := service.JobPatch{
		Name:        r.Name,
		Location:    r.Location,
		Salary:      r.Salary,
		Quantity:    r.Quantity,
		Level:       r.Level,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		IsActive:    r.IsActive,
	}
	if r.Skills != nil {
		skills := r.Skills
		patch.Skills = &skills
	}
	if r.Company != nil {
		patch.CompanyID = &r.Company.ID
	}
	return patch
}

// JobResponse is a posting with its company reference.
type JobResponse struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	Skills      []string   `json:"skills"`
	Company     CompanyRef `json:"company"`
	Location    string     `json:"location"`
	Salary      int64      `json:"salary"`
	Quantity    int        `json:"quantity"`
	Level       string     `json:"level"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	IsActive    bool       `json:"isActive"`
	AuditFields
}

// Job renders one posting.
func Job(j *domain.Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		Name:        j.Name,
		Skills:      j.Skills,
		Company:     CompanyRef{ID: j.Company.ID, Name: j.Company.Name},
		Location:    j.Location,
		Salary:      j.Salary,
		Quantity:    j.Quantity,
		Level:       j.Level,
		Description: j.Description,
		StartDate:   j.StartDate,
		EndDate:     j.EndDate,
		IsActive:    j.IsActive,
		AuditFields: auditFields(j.Audit),
	}
}

// Jobs renders a list of postings.
func Jobs(jobs []domain.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, Job(&jobs[i]))
	}
	return out
}
