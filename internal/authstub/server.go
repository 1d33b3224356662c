package authstub

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	apihandler "github.com/pawconnect/platform/internal/api/handler"
	"github.com/pawconnect/platform/internal/core/domain"
)

// NewServer builds the stub Auth API under /api, matching the external
// contract the client consumes: error bodies carry {"message": ...}.
func NewServer(repo Repository, jwtSecret string, tokenTTL time.Duration) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = apihandler.NewValidator()
	e.Use(echomiddleware.Recover())

	h := &handler{service: NewService(repo, jwtSecret, tokenTTL)}

	g := e.Group("/api")
	g.POST("/auth/register", h.register)
	g.POST("/auth/login", h.login)
	g.PUT("/profile", h.updateProfile)

	return e
}

type handler struct {
	service *Service
}

type registerRequest struct {
	Email                string `json:"email"    validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8"`
	Name                 string `json:"name"     validate:"required"`
	Role                 string `json:"role"     validate:"required"`
	Phone                string `json:"phone"`
	Organization         string `json:"organization"`
	VerificationDocument string `json:"verificationDocument"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	Organization    *string `json:"organization"`
	Avatar          *string `json:"avatar"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"`
}

type authResponse struct {
	Token                string       `json:"token,omitempty"`
	User                 *domain.User `json:"user,omitempty"`
	RequiresVerification bool         `json:"requiresVerification,omitempty"`
	Message              string       `json:"message,omitempty"`
}

type errorMessage struct {
	Message string `json:"message"`
}

func (h *handler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorMessage{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorMessage{Message: err.Error()})
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorMessage{Message: "invalid role"})
	}

	result, err := h.service.Register(c.Request().Context(), NewAccount{
		Email:                req.Email,
		Password:             req.Password,
		Name:                 req.Name,
		Role:                 role,
		Phone:                req.Phone,
		Organization:         req.Organization,
		VerificationDocument: req.VerificationDocument,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrUserExists):
			status = http.StatusConflict
		case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidRole):
			status = http.StatusBadRequest
		}
		return c.JSON(status, errorMessage{Message: err.Error()})
	}

	if result.RequiresVerification {
		return c.JSON(http.StatusOK, authResponse{
			RequiresVerification: true,
			Message:              "account created, awaiting administrative verification",
		})
	}

	user := result.Account.User
	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: &user})
}

func (h *handler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorMessage{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorMessage{Message: err.Error()})
	}

	token, account, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, domain.ErrVerificationPending) {
			status = http.StatusForbidden
		}
		return c.JSON(status, errorMessage{Message: err.Error()})
	}

	user := account.User
	return c.JSON(http.StatusOK, authResponse{Token: token, User: &user})
}

func (h *handler) updateProfile(c echo.Context) error {
	token, err := bearerToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errorMessage{Message: err.Error()})
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorMessage{Message: "invalid payload"})
	}

	account, err := h.service.UpdateProfile(c.Request().Context(), token, ProfileChanges{
		Name:            req.Name,
		Phone:           req.Phone,
		Organization:    req.Organization,
		Avatar:          req.Avatar,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		return c.JSON(status, errorMessage{Message: err.Error()})
	}

	user := account.User
	return c.JSON(http.StatusOK, authResponse{User: &user})
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
