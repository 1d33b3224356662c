package ports

import (
	"context"

	"github.com/pawconnect/platform/internal/core/domain"
)

// RegisterOutcome classifies the result of a registration attempt. Failure
// detail is deliberately coarse: callers get no structured error code, only
// the outcome.
type RegisterOutcome int

const (
	// RegisterFailed covers every failure mode — rejected input, transport
	// errors, non-success responses.
	RegisterFailed RegisterOutcome = iota

	// RegisterAuthenticated means the account was created and a session
	// established.
	RegisterAuthenticated

	// RegisterPendingVerification means the account was created but awaits
	// administrative approval. No session is established; the caller should
	// route the user to a login/pending screen.
	RegisterPendingVerification
)

// SessionService owns the process-wide session state.
type SessionService interface {
	// Init restores a persisted session. Runs once at startup; guards keep
	// rendering a pending decision until it completes.
	Init(ctx context.Context)

	// Login reports success only. A failed attempt never disturbs a
	// previously held session.
	Login(ctx context.Context, email, password string) bool

	Register(ctx context.Context, input RegisterInput) RegisterOutcome

	// Logout clears the session. It cannot fail.
	Logout(ctx context.Context)

	// UpdateUser merges profile fields locally and re-persists the session
	// under the unchanged token. No-op without an active session.
	UpdateUser(ctx context.Context, patch domain.UserPatch)

	// UpdateProfile pushes a change to the Auth API. The one operation that
	// surfaces the server-provided error message to the caller.
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*domain.User, error)

	Snapshot() domain.SessionState
}
