package routing

import "github.com/pawconnect/platform/internal/core/domain"

// EntryRedirect applies only to the public landing entry point, not to every
// public route. An authenticated session whose role has a mapped landing
// path is sent there; an unauthenticated visitor, or a role with no landing
// path, sees the public content unchanged.
func EntryRedirect(state domain.SessionState) Decision {
	if state.Loading {
		return pending()
	}
	if state.User == nil {
		return allowed()
	}
	if target, ok := LandingPath(state.User.Role); ok {
		return redirectTo(target)
	}
	return allowed()
}
