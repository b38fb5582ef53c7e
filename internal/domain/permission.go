package domain

// Permission authorizes one route template and HTTP method.
type Permission struct {
	ID      string
	Name    string
	APIPath string
	Method  string
	Module  string
	Audit
}

// Grant is the permission snapshot embedded in tokens and identities.
type Grant struct {
	ID      string
	Name    string
	APIPath string
	Method  string
	Module  string
}

// GrantOf projects a permission into its snapshot form.
func GrantOf(p Permission) Grant {
	return Grant{ID: p.ID, Name: p.Name, APIPath: p.APIPath, Method: p.Method, Module: p.Module}
}

// GrantsOf projects a permission list preserving order.
func GrantsOf(perms []Permission) []Grant {
	grants := make([]Grant, 0, len(perms))
	for _, p := range perms {
		grants = append(grants, GrantOf(p))
	}
	return grants
}
