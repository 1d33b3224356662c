package ports

import (
	"context"

	"github.com/pawconnect/platform/internal/core/domain"
)

// SessionStore persists the single serialized session blob across restarts.
// One fixed key, one JSON value.
type SessionStore interface {
	// Save serializes the session and overwrites any prior value.
	Save(ctx context.Context, session domain.Session) error

	// Load returns the stored session, or nil when the entry is absent.
	// A stored value that does not parse as a complete session is purged
	// and reported as absent — corruption fails open to unauthenticated.
	Load(ctx context.Context) (*domain.Session, error)

	// Clear deletes the stored entry unconditionally.
	Clear(ctx context.Context) error
}
