package auth

import (
	"context"
	"sync"
	"time"
)

// ProviderAdapter hides provider-specific OAuth details from the service.
type ProviderAdapter interface {
	// ProviderID returns the stable provider identifier, e.g. "google".
	ProviderID() string

	// AuthURL builds the provider authorization URL carrying the state token.
	AuthURL(state string) (string, error)

	// ResolveProfile exchanges the authorization code for a normalized
	// profile.
	ResolveProfile(ctx context.Context, code string) (ExternalProfile, error)
}

// StateStore persists one-time state tokens for the authorization flow.
type StateStore interface {
	StoreState(ctx context.Context, state string, expiresAt time.Time) error

	// ConsumeState atomically checks that the state exists, is unexpired and
	// removes it. Returns ErrStateNotFound otherwise. Atomicity matters:
	// concurrent callbacks with the same state must not both succeed.
	ConsumeState(ctx context.Context, state string) error
}

// MemoryStateStore is an in-memory StateStore for development and tests.
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
}

// NewMemoryStateStore creates an in-memory state store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]time.Time)}
}

func (s *MemoryStateStore) StoreState(ctx context.Context, state string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Opportunistic cleanup keeps abandoned flows from accumulating.
	now := time.Now()
	for st, exp := range s.states {
		if now.After(exp) {
			delete(s.states, st)
		}
	}

	s.states[state] = expiresAt
	return nil
}

func (s *MemoryStateStore) ConsumeState(ctx context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.states[state]
	if !ok {
		return ErrStateNotFound
	}
	delete(s.states, state)

	if time.Now().After(expiresAt) {
		return ErrStateNotFound
	}
	return nil
}
