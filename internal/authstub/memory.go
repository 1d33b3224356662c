package authstub

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pawconnect/platform/internal/core/domain"
)

// MemoryRepository is the in-memory account store used by tests and
// throwaway development runs.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]*Account // keyed by account ID
	byEmail  map[string]string   // email → account ID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		accounts: make(map[string]*Account),
		byEmail:  make(map[string]string),
	}
}

func (r *MemoryRepository) Create(_ context.Context, account *Account) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[account.User.Email]; exists {
		return nil, domain.ErrUserExists
	}

	stored := cloneAccount(account)
	if stored.User.ID == "" {
		stored.User.ID = uuid.NewString()
	}
	r.accounts[stored.User.ID] = stored
	r.byEmail[stored.User.Email] = stored.User.ID
	return cloneAccount(stored), nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneAccount(r.accounts[id]), nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneAccount(account), nil
}

func (r *MemoryRepository) Update(_ context.Context, account *Account) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.accounts[account.User.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if current.User.Email != account.User.Email {
		delete(r.byEmail, current.User.Email)
		r.byEmail[account.User.Email] = account.User.ID
	}
	stored := cloneAccount(account)
	r.accounts[stored.User.ID] = stored
	return cloneAccount(stored), nil
}

func cloneAccount(a *Account) *Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

var _ Repository = (*MemoryRepository)(nil)
