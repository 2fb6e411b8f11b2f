package model

// Role is the closed set of authorization roles a user can hold.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleEditor     Role = "editor"
	RoleSubscriber Role = "subscriber"
)

// Roles lists every valid role.
var Roles = []Role{RoleSuperAdmin, RoleEditor, RoleSubscriber}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleEditor, RoleSubscriber:
		return true
	}
	return false
}

// In reports whether r belongs to the allowed set. Route gating is built on
// this so the check stays independent of any HTTP framework.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
