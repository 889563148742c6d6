package auth

import "errors"

// Resolver errors. ErrNotRegistered, ErrExternalAuthRequired and
// ErrInvalidPassword are distinct so the API layer can map them to the exact
// messages the frontend shows.
var (
	ErrUserNotFound         = errors.New("auth.errors.user_not_found")
	ErrNotRegistered        = errors.New("auth.errors.not_registered")
	ErrExternalAuthRequired = errors.New("auth.errors.external_auth_required")
	ErrInvalidPassword      = errors.New("auth.errors.invalid_password")
	ErrEmailAlreadyExists   = errors.New("auth.errors.email_already_exists")
	ErrOtpNotVerified       = errors.New("auth.errors.otp_not_verified")
)

// OAuth errors
var (
	ErrInvalidState    = errors.New("auth.errors.invalid_oauth_state")
	ErrStateNotFound   = errors.New("auth.errors.oauth_state_not_found")
	ErrInvalidCode     = errors.New("auth.errors.invalid_oauth_code")
	ErrUnverifiedEmail = errors.New("auth.errors.unverified_provider_email")
	ErrNoPrimaryEmail  = errors.New("auth.errors.no_primary_email")
	ErrInvalidProfile  = errors.New("auth.errors.invalid_provider_profile")
)

// ErrStoreFailed wraps unexpected storage backend failures.
var ErrStoreFailed = errors.New("auth.errors.store_failed")
