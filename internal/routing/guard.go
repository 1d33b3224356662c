package routing

import "github.com/pawconnect/platform/internal/core/domain"

// Outcome classifies a navigation decision.
type Outcome int

const (
	// Pending means the session is still loading; no navigation decision
	// can be made yet.
	Pending Outcome = iota

	// Allow permits rendering of the guarded subtree.
	Allow

	// Redirect terminates navigation toward Decision.Target.
	Redirect
)

// Decision is the result of evaluating a guard against the session state.
type Decision struct {
	Outcome Outcome

	// Target is the redirect destination, set only when Outcome is Redirect.
	Target string
}

func pending() Decision { return Decision{Outcome: Pending} }

func allowed() Decision { return Decision{Outcome: Allow} }

func redirectTo(target string) Decision { return Decision{Outcome: Redirect, Target: target} }

// Guard decides whether the session may enter a subtree restricted to the
// given roles.
//
// An unauthenticated visitor is sent to the login entry. An authenticated
// user with the wrong role is sent to their own landing path instead — the
// identity is valid, just not authorized for this subtree.
func Guard(state domain.SessionState, allowedRoles ...domain.Role) Decision {
	if state.Loading {
		return pending()
	}
	if state.User == nil {
		return redirectTo(PathLogin)
	}
	for _, r := range allowedRoles {
		if state.User.Role == r {
			return allowed()
		}
	}
	if target, ok := LandingPath(state.User.Role); ok {
		return redirectTo(target)
	}
	return redirectTo(PathLogin)
}

// GuardChain evaluates nested guards in enclosing order. Every level must
// allow; the first pending or redirect decision terminates the chain, so a
// narrower inner guard can reject what an outer guard admitted.
func GuardChain(state domain.SessionState, levels ...[]domain.Role) Decision {
	for _, roles := range levels {
		if d := Guard(state, roles...); d.Outcome != Allow {
			return d
		}
	}
	return allowed()
}
