package ports

import (
	"context"

	"github.com/pawconnect/platform/internal/core/domain"
)

// RegisterInput is the payload for creating a new account.
type RegisterInput struct {
	Email                string
	Password             string
	Name                 string
	Role                 domain.Role
	Phone                string
	Organization         string
	VerificationDocument string
}

// RegisterResponse is the Auth API's answer to a successful registration
// call. Either Session is set, or RequiresVerification is true and the
// account must be approved before it can authenticate — never both.
type RegisterResponse struct {
	Session              *domain.Session
	RequiresVerification bool
	Message              string
}

// ProfileUpdate carries a remote profile change. Nil fields are omitted from
// the request. Password changes require the current password.
type ProfileUpdate struct {
	Name            *string
	Phone           *string
	Organization    *string
	Avatar          *string
	CurrentPassword string
	NewPassword     string
}

// AuthAPI is the external authentication backend consumed by the session
// manager. The core depends only on this contract; the backend itself is an
// external collaborator. Transport failures and rejected requests both
// surface as errors.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, input RegisterInput) (*RegisterResponse, error)
	UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*domain.User, error)
}
