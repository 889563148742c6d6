package account

import (
	"errors"
	"net/http"

	"github.com/republicadrc/memberkit/pkg/auth"
	"github.com/republicadrc/memberkit/pkg/otp"
	"github.com/republicadrc/memberkit/pkg/sanitizer"
)

type emailLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Service) handleEmailLogin(w http.ResponseWriter, r *http.Request) {
	var req emailLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "malformed request body")
		return
	}

	user, err := s.resolver.ResolveLocal(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	if _, err := s.sessions.Establish(r.Context(), w, user.ID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

// handleSendOTP issues a signup code. Already-registered addresses are
// rejected up front so the conflict surfaces before any email is sent.
func (s *Service) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "malformed request body")
		return
	}

	email := sanitizer.NormalizeEmail(req.Email)
	if _, err := s.users.GetUserByEmail(r.Context(), email); err == nil {
		s.respondServiceError(w, r, auth.ErrEmailAlreadyExists)
		return
	} else if !errors.Is(err, auth.ErrUserNotFound) {
		s.respondServiceError(w, r, err)
		return
	}

	if err := s.ledger.Issue(r.Context(), email, otp.PurposeSignup); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (s *Service) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "malformed request body")
		return
	}

	if err := s.ledger.Verify(r.Context(), req.Email, req.Code); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

type emailSignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Service) handleEmailSignup(w http.ResponseWriter, r *http.Request) {
	var req emailSignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "malformed request body")
		return
	}

	user, err := s.resolver.CreateLocal(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	if _, err := s.sessions.Establish(r.Context(), w, user.ID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// handleForgotPasswordRequest issues a password reset code. Unknown
// addresses get a 404 so the client can point the user at signup instead.
func (s *Service) handleForgotPasswordRequest(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "malformed request body")
		return
	}

	email := sanitizer.NormalizeEmail(req.Email)
	if _, err := s.users.GetUserByEmail(r.Context(), email); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	if err := s.ledger.Issue(r.Context(), email, otp.PurposePasswordReset); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

func (s *Service) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "malformed request body")
		return
	}

	if _, err := s.resolver.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleCheck reports the session state. An absent, expired, or dangling
// session is a normal answer here, never an error status.
func (s *Service) handleCheck(w http.ResponseWriter, r *http.Request) {
	anonymous := func() {
		respondJSON(w, http.StatusOK, map[string]any{"authenticated": false, "user": nil})
	}

	sess, err := s.sessions.Resolve(r.Context(), r)
	if err != nil {
		anonymous()
		return
	}

	user, err := s.users.GetUserByID(r.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			if derr := s.sessions.Destroy(r.Context(), sess.Token); derr != nil {
				s.log.ErrorContext(r.Context(), "failed to destroy dangling session", "error", derr)
			}
			anonymous()
			return
		}
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"authenticated": true, "user": user})
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Terminate(r.Context(), w, r); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
