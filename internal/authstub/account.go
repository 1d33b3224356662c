// Package authstub implements the Auth API contract for development and
// tests. In production the backend is an external collaborator; this stub
// exists so the session core can be exercised end to end without it. Its
// hashing and signing choices are dev conveniences, not authentication
// policy.
package authstub

import (
	"context"

	"github.com/pawconnect/platform/internal/core/domain"
)

// Account couples a platform user with stub-side credentials and the
// verification flag for roles that need administrative approval.
type Account struct {
	User                 domain.User
	PasswordHash         string
	Verified             bool
	VerificationDocument string
}

// Repository stores stub accounts. Implementations: in-memory for tests,
// Mongo-backed for a persistent development environment.
type Repository interface {
	// Create stores a new account, assigning an ID when none is set.
	// Returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, account *Account) (*Account, error)

	// FindByEmail returns domain.ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// FindByID returns domain.ErrUserNotFound when absent.
	FindByID(ctx context.Context, id string) (*Account, error)

	// Update overwrites an existing account by ID.
	Update(ctx context.Context, account *Account) (*Account, error)
}
