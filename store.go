package auth

import (
	"context"
	"sync"

	"github.com/goliatone/go-errors"
)

// MemoryIdentityStore keeps AuthUser records keyed by email. Lookups are
// case sensitive and emails are used verbatim as keys. All mutations run
// under a single write lock so check-then-insert is atomic.
type MemoryIdentityStore struct {
	mu    sync.RWMutex
	users map[string]AuthUser
}

var _ IdentityStore = (*MemoryIdentityStore)(nil)

// NewMemoryIdentityStore returns an empty in-memory identity store.
func NewMemoryIdentityStore() *MemoryIdentityStore {
	return &MemoryIdentityStore{
		users: make(map[string]AuthUser),
	}
}

// Find returns a copy of the stored record, or ErrIdentityNotFound.
func (s *MemoryIdentityStore) Find(_ context.Context, email string) (*AuthUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	return &user, nil
}

// Create inserts a new record and returns its email. It fails with
// ErrIdentityExists if the email is already present; under concurrent
// callers exactly one create for a given email can win.
func (s *MemoryIdentityStore) Create(_ context.Context, user AuthUser) (string, error) {
	if !user.IsHashed {
		return "", errors.New("refusing to store a plaintext password", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		return "", ErrIdentityExists
	}

	s.users[user.Email] = user
	return user.Email, nil
}

// Update replaces the record stored under email wholesale. When the record's
// email changed it is re-keyed, failing with ErrIdentityExists if the target
// email is already taken.
func (s *MemoryIdentityStore) Update(_ context.Context, user AuthUser, email string) (*AuthUser, error) {
	if !user.IsHashed {
		return nil, errors.New("refusing to store a plaintext password", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; !exists {
		return nil, ErrIdentityNotFound
	}

	if user.Email != email {
		if _, taken := s.users[user.Email]; taken {
			return nil, ErrIdentityExists
		}
		delete(s.users, email)
	}

	s.users[user.Email] = user
	return &user, nil
}

// Delete removes the record stored under email, or fails with ErrIdentityNotFound.
func (s *MemoryIdentityStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; !exists {
		return ErrIdentityNotFound
	}

	delete(s.users, email)
	return nil
}

// Len reports how many records the store holds.
func (s *MemoryIdentityStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
