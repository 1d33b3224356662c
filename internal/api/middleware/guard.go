package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawconnect/platform/internal/api/metrics"
	"github.com/pawconnect/platform/internal/core/domain"
	"github.com/pawconnect/platform/internal/routing"
)

// Sessions is the snapshot source the guards consume.
type Sessions interface {
	Snapshot() domain.SessionState
}

// Guard gates a route subtree to the allowed roles. Decisions come from the
// routing package; nesting Guard middlewares on nested groups evaluates them
// in enclosing order, so an inner guard can narrow what an outer one
// admitted.
func Guard(sessions Sessions, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return apply(c, routing.Guard(sessions.Snapshot(), allowedRoles...), next)
		}
	}
}

// EntryRedirect wraps the public landing entry point: an authenticated
// session with a mapped landing path is bounced there; everyone else falls
// through to the public content.
func EntryRedirect(sessions Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return apply(c, routing.EntryRedirect(sessions.Snapshot()), next)
		}
	}
}

// apply translates a routing decision into HTTP: pending becomes 503 with
// Retry-After (no navigation decision yet), redirect becomes 302, allow
// falls through to the wrapped handler.
func apply(c echo.Context, d routing.Decision, next echo.HandlerFunc) error {
	switch d.Outcome {
	case routing.Pending:
		metrics.GuardDecisionsTotal.WithLabelValues("pending").Inc()
		c.Response().Header().Set("Retry-After", "1")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
	case routing.Redirect:
		metrics.GuardDecisionsTotal.WithLabelValues("redirect").Inc()
		return c.Redirect(http.StatusFound, d.Target)
	}
	metrics.GuardDecisionsTotal.WithLabelValues("allow").Inc()
	return next(c)
}
