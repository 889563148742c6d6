package session

import (
	"time"

	"github.com/google/uuid"
)

// Session binds an opaque token to an authenticated user. Sessions exist only
// for authenticated users; an absent session is the normal unauthenticated
// state, not an error condition.
//
// Expiry is absolute from creation and never extended by activity.
type Session struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSession creates a session for the user with an absolute lifetime.
func NewSession(token string, userID uuid.UUID, lifetime time.Duration) *Session {
	now := time.Now()
	return &Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(lifetime),
		CreatedAt: now,
	}
}

// IsExpired reports whether the absolute lifetime has passed.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}
