package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pawconnect/platform/internal/core/domain"
	"github.com/pawconnect/platform/internal/core/ports"
)

// SessionManager owns the single process-wide session. It is constructed
// once at the composition root and passed by reference to every consumer;
// there is no ambient singleton. All mutation is whole-value replacement —
// no intermediate state is ever observable through Snapshot.
//
// A stale in-flight login that resolves after the user has navigated away
// still has its result applied; no request cancellation or generation
// checking is performed.
type SessionManager struct {
	store ports.SessionStore
	api   ports.AuthAPI
	log   zerolog.Logger

	mu      sync.RWMutex
	user    *domain.User
	token   string
	loading bool
}

// NewSessionManager wires the manager to its store and Auth API client.
// Missing dependencies fail fast here, at startup, rather than at first use.
func NewSessionManager(store ports.SessionStore, api ports.AuthAPI, log zerolog.Logger) (*SessionManager, error) {
	if store == nil {
		return nil, errors.New("session manager: nil session store")
	}
	if api == nil {
		return nil, errors.New("session manager: nil auth api client")
	}
	// loading starts true so guards render pending until Init has run.
	return &SessionManager{store: store, api: api, log: log, loading: true}, nil
}

// Init adopts a persisted session if one exists. A corrupt stored entry has
// already been purged by the store; either way the manager ends up in a
// definite state and guards stop rendering pending.
func (m *SessionManager) Init(ctx context.Context) {
	sess, err := m.store.Load(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false

	if err != nil {
		m.log.Warn().Err(err).Msg("session restore failed, starting unauthenticated")
		return
	}
	if sess == nil {
		m.log.Debug().Msg("no persisted session")
		return
	}
	m.user = sess.User
	m.token = sess.Token
	m.log.Info().Str("user_id", sess.User.ID).Str("role", string(sess.User.Role)).Msg("session restored")
}

// Login authenticates against the Auth API. On success the new session is
// persisted and adopted. On any failure — wrong credentials, server error,
// unreachable network — it returns false and leaves previously held state
// untouched: a failed attempt never logs out an authenticated identity.
func (m *SessionManager) Login(ctx context.Context, email, password string) bool {
	m.setLoading(true)
	defer m.setLoading(false)

	sess, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.log.Debug().Err(err).Str("email", email).Msg("login failed")
		return false
	}
	if sess == nil || !sess.Authenticated() {
		m.log.Warn().Str("email", email).Msg("login response missing user or token")
		return false
	}

	m.adopt(ctx, *sess)
	m.log.Info().Str("user_id", sess.User.ID).Str("role", string(sess.User.Role)).Msg("logged in")
	return true
}

// Register creates a new account. Roles that need administrative approval
// (NGO admin, veterinarian) succeed at the transport level but establish no
// session; the caller routes the user to a pending screen instead.
func (m *SessionManager) Register(ctx context.Context, input ports.RegisterInput) ports.RegisterOutcome {
	m.setLoading(true)
	defer m.setLoading(false)

	resp, err := m.api.Register(ctx, input)
	if err != nil {
		m.log.Debug().Err(err).Str("email", input.Email).Msg("registration failed")
		return ports.RegisterFailed
	}
	if resp.RequiresVerification {
		m.log.Info().Str("email", input.Email).Str("role", string(input.Role)).Msg("registration pending verification")
		return ports.RegisterPendingVerification
	}
	if resp.Session == nil || !resp.Session.Authenticated() {
		m.log.Warn().Str("email", input.Email).Msg("registration response missing user or token")
		return ports.RegisterFailed
	}

	m.adopt(ctx, *resp.Session)
	return ports.RegisterAuthenticated
}

// Logout clears the in-memory session and purges the store. A storage
// failure is logged; the in-memory state is cleared regardless, so Logout
// never fails from the caller's point of view.
func (m *SessionManager) Logout(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("session purge failed")
	}

	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.mu.Unlock()
	m.log.Info().Msg("logged out")
}

// UpdateUser merges the patch into the current user and re-persists the
// session under the unchanged token. Without an active session it is a
// silent no-op. The patch has no role field, so the role cannot change
// through this path.
func (m *SessionManager) UpdateUser(ctx context.Context, patch domain.UserPatch) {
	m.mu.Lock()
	if m.user == nil {
		m.mu.Unlock()
		return
	}
	merged := patch.Apply(*m.user)
	m.user = &merged
	sess := domain.Session{User: m.user, Token: m.token}
	m.mu.Unlock()

	if err := m.store.Save(ctx, sess); err != nil {
		m.log.Warn().Err(err).Msg("session persist failed")
	}
}

// UpdateProfile sends a profile change to the Auth API under the current
// bearer token. Unlike login and register, a failure here carries the
// server-provided message back to the caller, who is expected to render it.
// The role on the returned user is forced back to the current role: it is
// immutable through this path.
func (m *SessionManager) UpdateProfile(ctx context.Context, update ports.ProfileUpdate) (*domain.User, error) {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()
	if token == "" {
		return nil, domain.ErrNoSession
	}

	user, err := m.api.UpdateProfile(ctx, token, update)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.token != token || m.user == nil {
		// Session changed while the request was in flight; don't adopt.
		m.mu.Unlock()
		return user, nil
	}
	user.Role = m.user.Role
	m.user = user
	sess := domain.Session{User: m.user, Token: m.token}
	m.mu.Unlock()

	if err := m.store.Save(ctx, sess); err != nil {
		m.log.Warn().Err(err).Msg("session persist failed")
	}
	return user, nil
}

// Snapshot returns the current session state. The user is copied so callers
// can never mutate manager-owned state through the snapshot.
func (m *SessionManager) Snapshot() domain.SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state := domain.SessionState{Token: m.token, Loading: m.loading}
	if m.user != nil {
		u := *m.user
		state.User = &u
	}
	return state
}

// adopt persists the session first, then replaces the in-memory state, so a
// crash between the two leaves storage ahead of memory, never behind.
func (m *SessionManager) adopt(ctx context.Context, sess domain.Session) {
	if err := m.store.Save(ctx, sess); err != nil {
		m.log.Warn().Err(err).Msg("session persist failed")
	}

	m.mu.Lock()
	m.user = sess.User
	m.token = sess.Token
	m.mu.Unlock()
}

func (m *SessionManager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

var _ ports.SessionService = (*SessionManager)(nil)
