package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/republicadrc/memberkit/pkg/auth"
	"github.com/republicadrc/memberkit/pkg/otp"
	"github.com/republicadrc/memberkit/pkg/validator"
)

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// respondServiceError translates domain errors into the wire contract.
// Infrastructure failures are logged with detail but reach the client as a
// generic message.
func (s *Service) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		respondError(w, http.StatusBadRequest, "validation_failed", verrs.Error())
		return
	}

	switch {
	case errors.Is(err, auth.ErrNotRegistered):
		respondError(w, http.StatusUnauthorized, "not_registered", "no account exists for this email")
	case errors.Is(err, auth.ErrExternalAuthRequired):
		respondError(w, http.StatusUnauthorized, "external_auth_required", "this account signs in with an external provider")
	case errors.Is(err, auth.ErrInvalidPassword):
		respondError(w, http.StatusUnauthorized, "invalid_password", "incorrect password")
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		respondError(w, http.StatusConflict, "email_taken", "an account with this email already exists")
	case errors.Is(err, auth.ErrOtpNotVerified), errors.Is(err, otp.ErrNotVerified):
		respondError(w, http.StatusUnauthorized, "otp_not_verified", "verify the code sent to your email first")
	case errors.Is(err, auth.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "user_not_found", "user not found")
	case errors.Is(err, otp.ErrTooManyRequests):
		respondError(w, http.StatusTooManyRequests, "too_many_requests", "too many codes requested, try again later")
	case errors.Is(err, otp.ErrTooManyAttempts):
		respondError(w, http.StatusTooManyRequests, "too_many_attempts", "too many incorrect attempts, request a new code")
	case errors.Is(err, otp.ErrExpired):
		respondError(w, http.StatusUnauthorized, "otp_expired", "the code has expired, request a new one")
	case errors.Is(err, otp.ErrNotFoundOrExpired):
		respondError(w, http.StatusNotFound, "otp_not_found", "no pending code for this email, request a new one")
	case errors.Is(err, otp.ErrInvalidCode):
		respondError(w, http.StatusUnauthorized, "invalid_code", "incorrect code")
	case errors.Is(err, otp.ErrDeliveryFailed):
		s.log.ErrorContext(r.Context(), "otp delivery failed", "error", err)
		respondError(w, http.StatusInternalServerError, "delivery_failed", "failed to send the verification email")
	default:
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}

// decodeJSON reads the request body into dst, capping it at 1MB.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(dst)
}
