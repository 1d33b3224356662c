package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawconnect/platform/internal/api/metrics"
	"github.com/pawconnect/platform/internal/core/domain"
	"github.com/pawconnect/platform/internal/core/ports"
	"github.com/pawconnect/platform/internal/routing"
)

// SessionHandler exposes the session manager's operations to the local UI
// shell: login, registration, logout, profile updates, and the current
// session view. The token itself never leaves the process through these
// endpoints.
type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email                string `json:"email"        validate:"required,email"`
	Password             string `json:"password"     validate:"required,min=8"`
	Name                 string `json:"name"         validate:"required"`
	Role                 string `json:"role"         validate:"required,oneof=superadmin ngo_admin volunteer veterinarian adopter"`
	Phone                string `json:"phone"`
	Organization         string `json:"organization"`
	VerificationDocument string `json:"verificationDocument"`
}

type profileRequest struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	Organization    *string `json:"organization"`
	Avatar          *string `json:"avatar"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"`
}

type sessionResponse struct {
	User     *domain.User `json:"user"`
	Redirect string       `json:"redirect,omitempty"`
	Loading  bool         `json:"loading,omitempty"`
}

// Login authenticates against the Auth API and reports the landing path for
// the authenticated role.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if !h.sessions.Login(c.Request().Context(), req.Email, req.Password) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "login failed"})
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionActive.Set(1)

	return c.JSON(http.StatusOK, h.currentResponse())
}

// Register creates a new account. Roles requiring administrative approval
// get 202 and no session; the UI routes them to a pending screen.
//
// @Summary      Register a new account
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	outcome := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		Email:                req.Email,
		Password:             req.Password,
		Name:                 req.Name,
		Role:                 role,
		Phone:                req.Phone,
		Organization:         req.Organization,
		VerificationDocument: req.VerificationDocument,
	})

	switch outcome {
	case ports.RegisterAuthenticated:
		metrics.RegistrationsTotal.WithLabelValues("authenticated").Inc()
		metrics.SessionActive.Set(1)
		return c.JSON(http.StatusCreated, h.currentResponse())
	case ports.RegisterPendingVerification:
		metrics.RegistrationsTotal.WithLabelValues("pending_verification").Inc()
		return c.JSON(http.StatusAccepted, map[string]string{
			"status":  "pending_verification",
			"message": "account awaiting administrative approval",
		})
	}
	metrics.RegistrationsTotal.WithLabelValues("failed").Inc()
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "registration failed"})
}

// Logout clears the session and purges storage. Always succeeds.
//
// @Summary      Logout
// @Tags         session
// @Success      204
// @Router       /logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	metrics.SessionActive.Set(0)
	return c.NoContent(http.StatusNoContent)
}

// UpdateProfile pushes a profile change to the Auth API. This is the one
// path that surfaces the server-provided error message.
//
// @Summary      Update profile
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Profile changes"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /profile [put]
func (h *SessionHandler) UpdateProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.sessions.UpdateProfile(c.Request().Context(), ports.ProfileUpdate{
		Name:            req.Name,
		Phone:           req.Phone,
		Organization:    req.Organization,
		Avatar:          req.Avatar,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "no active session"})
		}
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, sessionResponse{User: user})
}

// Current returns the session snapshot for the UI shell.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, h.currentResponse())
}

// currentResponse builds the session view plus the landing path for the
// current role, so navigation elements can offer "go to my dashboard".
func (h *SessionHandler) currentResponse() sessionResponse {
	state := h.sessions.Snapshot()
	resp := sessionResponse{User: state.User, Loading: state.Loading}
	if state.User != nil {
		if target, ok := routing.LandingPath(state.User.Role); ok {
			resp.Redirect = target
		}
	}
	return resp
}
