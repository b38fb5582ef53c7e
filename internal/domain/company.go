package domain

// Company is an employer that posts jobs.
type Company struct {
	ID          string
	Name        string
	Address     string
	Description string
	Logo        string
	Audit
}
