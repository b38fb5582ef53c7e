package dto

import (
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/service"
)

// SubscriberRequest is the create payload.
type SubscriberRequest struct {
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// Validate checks email format, name and at least one skill.
func (r SubscriberRequest) Validate() error {
	f := fieldErrors{}
	f.email("email", r.Email)
	f.required("name", r.Name)
	if len(r.Skills) == 0 {
		f["skills"] = "at least one skill is required"
	}
	return f.err()
}

// Input converts the payload.
func (r SubscriberRequest) Input() service.SubscriberInput {
	return service.SubscriberInput{Email: r.Email, Name: r.Name, Skills: r.Skills}
}

// SubscriberUpdateRequest is the PATCH payload; omitted fields keep their stored value.
type SubscriberUpdateRequest struct {
	Email  *string  `json:"email"`
	Name   *string  `json:"name"`
	Skills []string `json:"skills"`
}

// Validate checks the email when present.
func (r SubscriberUpdateRequest) Validate() error {
	f := fieldErrors{}
	if r.Email != nil {
		f.email("email", *r.Email)
	}
	return f.err()
}

// Patch keeps only the keys present in the body.
func (r SubscriberUpdateRequest) Patch() service.SubscriberPatch {
	patch := service.SubscriberPatch{Email: r.Email, Name: r.Name}
	if r.Skills != nil {
		skills := r.Skills
		patch.Skills = &skills
	}
	return patch
}

// SubscriberResponse is one subscriber.
type SubscriberResponse struct {
	ID     string   `json:"_id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
	AuditFields
}

// Subscriber renders one subscriber.
func Subscriber(s *domain.Subscriber) SubscriberResponse {
	return SubscriberResponse{
		ID:          s.ID,
		Email:       s.Email,
		Name:        s.Name,
		Skills:      s.Skills,
		AuditFields: auditFields(s.Audit),
	}
}

// Subscribers renders a list of subscribers.
func Subscribers(subs []domain.Subscriber) []SubscriberResponse {
	out := make([]SubscriberResponse, 0, len(subs))
	for i := range subs {
		out = append(out, Subscriber(&subs[i]))
	}
	return out
}
