package session

import "net/http"

// Middleware resolves the request's session and stores it in the context.
// Requests without a valid session pass through untouched; enforcement is
// the authorization layer's job, not the session layer's.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session, err := m.Resolve(r.Context(), r); err == nil {
				r = r.WithContext(WithSession(r.Context(), session))
			}
			next.ServeHTTP(w, r)
		})
	}
}
