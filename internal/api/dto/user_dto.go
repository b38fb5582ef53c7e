package dto

import (
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/service"
)

// UserRequest is the admin create payload.
type UserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Age      int         `json:"age"`
	Gender   string      `json:"gender"`
	Address  string      `json:"address"`
	Role     string      `json:"role"`
	Company  *CompanyRef `json:"company"`
}

// ValidateCreate checks the fields a new account needs.
func (r UserRequest) ValidateCreate() error {
	f := fieldErrors{}
	f.required("name", r.Name)
	f.email("email", r.Email)
	f.required("password", r.Password)
	f.required("role", r.Role)
	f.nonNegative("age", int64(r.Age))
	return f.err()
}

// Input converts the payload for UserService.Create.
func (r UserRequest) Input() service.UserInput {
	return service.UserInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Age:      r.Age,
		Gender:   r.Gender,
		Address:  r.Address,
		RoleID:   r.Role,
		Company:  r.Company.toDomain(),
	}
}

// UserUpdateRequest is the PATCH payload; omitted fields keep their stored value.
// Passwords change through /auth/change-password only.
type UserUpdateRequest struct {
	Name    *string     `json:"name"`
	Email   *string     `json:"email"`
	Age     *int        `json:"age"`
	Gender  *string     `json:"gender"`
	Address *string     `json:"address"`
	Role    *string     `json:"role"`
	Company *CompanyRef `json:"company"`
}

// Validate checks only the fields present in the body.
func (r UserUpdateRequest) Validate() error {
	f := fieldErrors{}
	if r.Email != nil {
		f.email("email", *r.Email)
	}
	if r.Age != nil {
		f.nonNegative("age", int64(*r.Age))
	}
	return f.err()
}

// Patch keeps only the keys present in the body.
func (r UserUpdateRequest) Patch() service.UserPatch {
	return service.UserPatch{
		Name:    r.Name,
		Email:   r.Email,
		Age:     r.Age,
		Gender:  r.Gender,
		Address: r.Address,
		RoleID:  r.Role,
		Company: r.Company.toDomain(),
	}
}

// UserResponse never carries the password hash or refresh token.
type UserResponse struct {
	ID      string      `json:"_id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Age     int         `json:"age"`
	Gender  string      `json:"gender"`
	Address string      `json:"address"`
	Role    *string     `json:"role"`
	Company *CompanyRef `json:"company,omitempty"`
	AuditFields
}

// User renders an account without its password hash or refresh token.
func User(a *domain.Account) UserResponse {
	return UserResponse{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Age:         a.Age,
		Gender:      a.Gender,
		Address:     a.Address,
		Role:        a.RoleID,
		Company:     companyRef(a.Company),
		AuditFields: auditFields(a.Audit),
	}
}

// Users renders a list of accounts.
func Users(accounts []domain.Account) []UserResponse {
	out := make([]UserResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, User(&accounts[i]))
	}
	return out
}
