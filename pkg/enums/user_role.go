package enums

import "fmt"

// UserRole distinguishes shop customers from administrators. USUARIO is kept
// for accounts imported from the legacy store.
type UserRole string

const (
	UserRoleCliente UserRole = "CLIENTE"
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleUsuario UserRole = "USUARIO"
)

var validUserRoles = []UserRole{
	UserRoleCliente,
	UserRoleAdmin,
	UserRoleUsuario,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
