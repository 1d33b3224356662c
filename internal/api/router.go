package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pawconnect/platform/internal/api/handler"
	"github.com/pawconnect/platform/internal/api/middleware"
	"github.com/pawconnect/platform/internal/core/domain"
	"github.com/pawconnect/platform/internal/core/ports"
)

// NewRouter builds the Echo instance for the local UI shell. The session
// manager is injected from the composition root; rdb may be nil when the
// file-backed session store is in use.
func NewRouter(sessions ports.SessionService, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Session endpoints ---
	sessionHandler := handler.NewSessionHandler(sessions)
	e.POST("/login", sessionHandler.Login)
	e.POST("/register", sessionHandler.Register)
	e.POST("/logout", sessionHandler.Logout)
	e.PUT("/profile", sessionHandler.UpdateProfile)
	e.GET("/session", sessionHandler.Current)

	// Public login entry. The POST above is the form submission target;
	// this is the page itself, reachable by everyone.
	e.GET("/login", page("login"))

	// Public landing entry: authenticated identities are bounced to their
	// role's landing path, everyone else sees the public content.
	e.GET("/", page("landing"), middleware.EntryRedirect(sessions))

	// --- Guarded sections ---
	// Nesting narrows: /dashboard admits both admin roles, /dashboard/system
	// only superadmin. Echo runs group middleware in enclosing order, which
	// is exactly the guard-chain evaluation order.
	dashboard := e.Group("/dashboard", middleware.Guard(sessions, domain.RoleSuperAdmin, domain.RoleNGOAdmin))
	dashboard.GET("", page("dashboard"))
	system := dashboard.Group("/system", middleware.Guard(sessions, domain.RoleSuperAdmin))
	system.GET("", page("system"))

	volunteer := e.Group("/volunteer", middleware.Guard(sessions, domain.RoleVolunteer))
	volunteer.GET("", page("volunteer"))

	vet := e.Group("/vet", middleware.Guard(sessions, domain.RoleVeterinarian))
	vet.GET("", page("vet"))

	adopter := e.Group("/adopter", middleware.Guard(sessions, domain.RoleAdopter))
	adopter.GET("", page("adopter"))

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

// page is a placeholder for the rendering layer, which is outside this core.
// It answers with the section name so guards can be exercised end to end.
func page(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"page": name})
	}
}
