package domain

import "time"

// Job is a posting owned by a company.
type Job struct {
	ID          string
	Name        string
	Skills      []string
	Company     CompanyRef
	Location    string
	Salary      int64
	Quantity    int
	Level       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	IsActive    bool
	Audit
}
