package domain

// Subscriber receives job alerts for the skills they follow.
type Subscriber struct {
	ID     string
	Email  string
	Name   string
	Skills []string
	Audit
}
