package account

import "net/http"

// The OAuth dance is browser-driven, so failures redirect back to the
// frontend login page instead of returning JSON.

func (s *Service) loginFailureURL() string {
	return s.cfg.FrontendURL + "/login?error=true"
}

func (s *Service) handleGoogleRedirect(w http.ResponseWriter, r *http.Request) {
	url, err := s.oauth.AuthURL(r.Context())
	if err != nil {
		s.log.ErrorContext(r.Context(), "failed to start oauth flow", "error", err)
		http.Redirect(w, r, s.loginFailureURL(), http.StatusFound)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func (s *Service) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" || query.Get("error") != "" {
		http.Redirect(w, r, s.loginFailureURL(), http.StatusFound)
		return
	}

	user, err := s.oauth.Callback(r.Context(), code, state)
	if err != nil {
		s.log.WarnContext(r.Context(), "oauth callback rejected", "error", err)
		http.Redirect(w, r, s.loginFailureURL(), http.StatusFound)
		return
	}

	if _, err := s.sessions.Establish(r.Context(), w, user.ID); err != nil {
		s.log.ErrorContext(r.Context(), "failed to establish session", "error", err)
		http.Redirect(w, r, s.loginFailureURL(), http.StatusFound)
		return
	}

	http.Redirect(w, r, s.cfg.FrontendURL+"/", http.StatusFound)
}
