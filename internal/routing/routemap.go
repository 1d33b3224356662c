// Package routing holds the pure navigation decision layer: the role route
// map, the route guard, and the entry redirect. It knows nothing about HTTP;
// the adapters in internal/api/middleware translate its decisions for the
// router.
package routing

import "github.com/pawconnect/platform/internal/core/domain"

// Canonical paths shared by the route map, the guards, and any navigation
// element that needs "go to my dashboard".
const (
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
	PathVolunteer = "/volunteer"
	PathVet       = "/vet"
	PathAdopter   = "/adopter"
)

// LandingPath maps a role to its canonical landing path. The switch is
// exhaustive over the closed role set, so adding a role without a landing
// path shows up here, not as a silent runtime fallback. A role outside the
// set has no landing path and produces no redirect.
func LandingPath(r domain.Role) (string, bool) {
	switch r {
	case domain.RoleSuperAdmin, domain.RoleNGOAdmin:
		return PathDashboard, true
	case domain.RoleVolunteer:
		return PathVolunteer, true
	case domain.RoleVeterinarian:
		return PathVet, true
	case domain.RoleAdopter:
		return PathAdopter, true
	}
	return "", false
}
