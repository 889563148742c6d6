package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for development and single-instance
// deployments. A background janitor evicts expired sessions.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once
}

// NewMemoryStore creates an in-memory session store. Pass 0 to disable the
// janitor.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	ms := &MemoryStore{
		sessions:        make(map[string]*Session),
		cleanupInterval: cleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go ms.cleanup()
	}

	return ms
}

func (ms *MemoryStore) Put(ctx context.Context, session *Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	s := *session
	ms.sessions[session.Token] = &s
	return nil
}

func (ms *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	s, ok := ms.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}

	out := *s
	return &out, nil
}

func (ms *MemoryStore) Delete(ctx context.Context, token string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.sessions, token)
	return nil
}

func (ms *MemoryStore) DeleteExpired(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	for token, s := range ms.sessions {
		if now.After(s.ExpiresAt) {
			delete(ms.sessions, token)
		}
	}
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
			_ = ms.DeleteExpired(context.Background())
		case <-ms.stopCleanup:
			return
		}
	}
}

var _ Store = (*MemoryStore)(nil)
