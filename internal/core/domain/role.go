package domain

import "fmt"

// Role is the closed set of identity categories on the platform. An
// unauthenticated visitor has no role at all — absence of a session, not a
// stored value.
type Role string

const (
	RoleSuperAdmin   Role = "superadmin"
	RoleNGOAdmin     Role = "ngo_admin"
	RoleVolunteer    Role = "volunteer"
	RoleVeterinarian Role = "veterinarian"
	RoleAdopter      Role = "adopter"
)

// Roles lists every defined role, in a stable order.
var Roles = []Role{RoleSuperAdmin, RoleNGOAdmin, RoleVolunteer, RoleVeterinarian, RoleAdopter}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleNGOAdmin, RoleVolunteer, RoleVeterinarian, RoleAdopter:
		return true
	}
	return false
}

// RequiresVerification reports whether accounts with this role need
// administrative approval before they may authenticate.
func (r Role) RequiresVerification() bool {
	return r == RoleNGOAdmin || r == RoleVeterinarian
}

// ParseRole converts a raw string into a Role, rejecting anything outside
// the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}
