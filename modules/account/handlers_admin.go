package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/republicadrc/memberkit/pkg/auth"
)

func (s *Service) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	if users == nil {
		users = []auth.User{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "users": users})
}

func (s *Service) handlePromoteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "malformed user id")
		return
	}

	if err := s.users.UpdateUserRole(r.Context(), id, auth.RoleAdmin); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
