package otp

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for development and tests.
// A background janitor evicts expired challenges so abandoned signups do not
// accumulate.
type MemoryStore struct {
	mu         sync.RWMutex
	challenges map[string]*Challenge

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often expired challenges are evicted.
// Set to 0 to disable the janitor.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// NewMemoryStore creates an in-memory challenge store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		challenges:      make(map[string]*Challenge),
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(ms)
	}

	if ms.cleanupInterval > 0 {
		go ms.cleanup()
	}

	return ms
}

func (ms *MemoryStore) Upsert(ctx context.Context, challenge *Challenge) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	c := *challenge
	ms.challenges[challenge.Email] = &c
	return nil
}

func (ms *MemoryStore) Get(ctx context.Context, email string) (*Challenge, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	c, ok := ms.challenges[email]
	if !ok {
		return nil, ErrNotFound
	}

	// Copy so callers cannot mutate stored state.
	out := *c
	return &out, nil
}

func (ms *MemoryStore) MarkVerified(ctx context.Context, email string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	c, ok := ms.challenges[email]
	if !ok {
		return ErrNotFound
	}

	c.Verified = true
	return nil
}

func (ms *MemoryStore) IncrementAttempts(ctx context.Context, email string) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	c, ok := ms.challenges[email]
	if !ok {
		return 0, ErrNotFound
	}

	c.Attempts++
	return c.Attempts, nil
}

func (ms *MemoryStore) Delete(ctx context.Context, email string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.challenges, email)
	return nil
}

// Close stops the background janitor.
func (ms *MemoryStore) Close() {
	ms.closeOnce.Do(func() {
		close(ms.stopCleanup)
	})
}

func (ms *MemoryStore) cleanup() {
	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.removeExpired()
		case <-ms.stopCleanup:
			return
		}
	}
}

func (ms *MemoryStore) removeExpired() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	for email, c := range ms.challenges {
		if now.After(c.ExpiresAt) {
			delete(ms.challenges, email)
		}
	}
}
