package domain

// RoleRef is the role reference carried in claims.
type RoleRef struct {
	ID   string
	Name string
}

// Identity is the verified caller: account fields plus the resolved permission list.
type Identity struct {
	ID          string
	Name        string
	Email       string
	Role        RoleRef
	Permissions []Grant
}

// Actor converts the identity into an audit actor.
func (i Identity) Actor() Actor {
	return Actor{ID: i.ID, Name: i.Name, Email: i.Email}
}

// Allows reports whether the permission list holds the exact route template and method.
func (i Identity) Allows(method, apiPath string) bool {
	for _, g := range i.Permissions {
		if g.APIPath == apiPath && g.Method == method {
			return true
		}
	}
	return false
}
