package types

import "fmt"

// Role represents the kind of actor issuing an operation. The service
// trusts the authenticated identity; roles only select the permitted
// operation set.
type Role string

const (
	RoleHR         Role = "hr"
	RoleDepartment Role = "department"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleHR, RoleDepartment:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}
