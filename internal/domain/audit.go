package domain

import "time"

// Audit carries creation, update and soft-delete markers shared by every entity.
type Audit struct {
	CreatedBy *string
	UpdatedBy *string
	DeletedBy *string
	IsDeleted bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Actor identifies who performed a mutation.
type Actor struct {
	ID    string
	Name  string
	Email string
}

// ActorID returns a pointer suitable for the audit columns.
func (a Actor) ActorID() *string {
	if a.ID == "" {
		return nil
	}
	id := a.ID
	return &id
}
