package authz

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/republicadrc/memberkit/pkg/auth"
	"github.com/republicadrc/memberkit/pkg/logger"
	"github.com/republicadrc/memberkit/pkg/session"
)

// SessionResolver is the slice of the session manager the gate needs.
type SessionResolver interface {
	Resolve(ctx context.Context, r *http.Request) (*session.Session, error)
	Destroy(ctx context.Context, token string) error
}

// UserLoader loads the account a session points at.
type UserLoader interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

// ErrorWriter renders an authorization failure to the response.
type ErrorWriter func(w http.ResponseWriter, status int, code, message string)

// Gate enforces authentication and role checks on HTTP routes. It resolves
// the request's session, loads the user and stores it in the request context
// for handlers. A session whose user no longer exists is destroyed and the
// request treated as unauthenticated.
type Gate struct {
	sessions   SessionResolver
	users      UserLoader
	writeError ErrorWriter
	log        *slog.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithErrorWriter sets how authorization failures are rendered.
func WithErrorWriter(fn ErrorWriter) GateOption {
	return func(g *Gate) {
		g.writeError = fn
	}
}

// WithLogger sets a custom logger for the gate.
func WithLogger(log *slog.Logger) GateOption {
	return func(g *Gate) {
		g.log = log
	}
}

// NewGate creates an authorization gate.
func NewGate(sessions SessionResolver, users UserLoader, opts ...GateOption) *Gate {
	g := &Gate{
		sessions:   sessions,
		users:      users,
		writeError: defaultErrorWriter,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// RequireUser admits only authenticated requests. The loaded user is placed
// in the request context.
func (g *Gate) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := g.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireAdmin admits only authenticated admins: 401 for anonymous requests,
// 403 for authenticated non-admins.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := g.authenticate(w, r)
		if !ok {
			return
		}
		if !IsAdmin(user) {
			g.writeError(w, http.StatusForbidden, "forbidden", "admin access required")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func (g *Gate) authenticate(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	ctx := r.Context()

	sess, err := g.sessions.Resolve(ctx, r)
	if err != nil {
		g.writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return nil, false
	}

	user, err := g.users.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			// The account behind this session is gone; the session must not
			// keep granting access.
			if destroyErr := g.sessions.Destroy(ctx, sess.Token); destroyErr != nil {
				g.log.ErrorContext(ctx, "failed to destroy dangling session",
					logger.UserID(sess.UserID.String()),
					logger.Error(destroyErr))
			}
			g.writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
			return nil, false
		}

		g.log.ErrorContext(ctx, "failed to load session user",
			logger.UserID(sess.UserID.String()),
			logger.Error(err))
		g.writeError(w, http.StatusInternalServerError, "internal_error", "something went wrong")
		return nil, false
	}

	return user, true
}

func defaultErrorWriter(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
