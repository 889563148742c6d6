package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/republicadrc/memberkit/pkg/cookie"
	"github.com/republicadrc/memberkit/pkg/logger"
)

// Manager establishes, resolves and terminates sessions.
type Manager struct {
	store         Store
	transport     Transport
	config        Config
	cookieManager *cookie.Manager
	cookieOptions []cookie.Option
	log           *slog.Logger
}

// New creates a session manager. A cookie manager is required unless a
// custom transport is supplied.
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}

	if m.transport == nil {
		if m.cookieManager == nil {
			// Fail fast: a default transport without cookie encryption would
			// expose raw tokens.
			panic("session: cookie manager is required when using default cookie transport")
		}
		m.transport = NewCookieTransport(m.cookieManager, m.config.CookieName, m.config.SecureCookies, m.cookieOptions...)
	}

	return m
}

// Establish creates a session for the user and sets the token cookie,
// replacing whatever session the browser carried before.
func (m *Manager) Establish(ctx context.Context, w http.ResponseWriter, userID uuid.UUID) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, ErrTokenGeneration
	}

	session := NewSession(token, userID, m.config.Lifetime)
	if err := m.store.Put(ctx, session); err != nil {
		return nil, err
	}

	if err := m.transport.SetToken(w, token, m.config.Lifetime); err != nil {
		_ = m.store.Delete(ctx, token)
		return nil, err
	}

	m.log.InfoContext(ctx, "session established", logger.UserID(userID.String()))
	return session, nil
}

// Resolve returns the session for the request. A missing, unknown or expired
// token resolves to ErrUnauthenticated; expired sessions are removed from
// the store on the way.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil || token == "" {
		return nil, ErrUnauthenticated
	}

	session, err := m.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	if session.IsExpired() {
		_ = m.store.Delete(ctx, token)
		return nil, ErrUnauthenticated
	}

	return session, nil
}

// Terminate deletes the request's session and clears the cookie. Terminating
// without a session is a no-op, so logout is idempotent.
func (m *Manager) Terminate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	token, err := m.transport.GetToken(r)
	if err == nil && token != "" {
		_ = m.store.Delete(ctx, token)
	}

	return m.transport.ClearToken(w)
}

// Destroy removes a session by token without touching the response. Used
// when a session turns out to reference a deleted user.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	return m.store.Delete(ctx, token)
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
