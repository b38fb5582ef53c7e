package domain

// Account is the identity record for anyone who signs in.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Age          int
	Gender       string
	Address      string
	RoleID       *string
	Company      *CompanyRef
	RefreshToken string
	Audit
}

// CompanyRef is a denormalized pointer to a company.
type CompanyRef struct {
	ID   string
	Name string
}
