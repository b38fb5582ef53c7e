package domain

const (
	// RoleAdmin is granted every permission and cannot be deleted.
	RoleAdmin = "ADMIN"
	// RoleUser is assigned on self-registration.
	RoleUser = "USER"
)

// Role bundles an ordered set of permissions.
type Role struct {
	ID            string
	Name          string
	Description   string
	IsActive      bool
	PermissionIDs []string
	Permissions   []Permission
	Audit
}
