package session

import "context"

// Store persists sessions keyed by token.
type Store interface {
	// Put stores the session, replacing any session with the same token.
	Put(ctx context.Context, session *Session) error

	// Get returns the session for the token or ErrNotFound.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes the session. Deleting a missing token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes sessions past their expiry. Backends that expire
	// entries natively may make this a no-op.
	DeleteExpired(ctx context.Context) error
}
