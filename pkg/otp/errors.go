package otp

import "errors"

var (
	// ErrNotFound indicates no challenge exists for the email.
	ErrNotFound = errors.New("otp.errors.not_found")
	// ErrNotFoundOrExpired is the caller-facing form of ErrNotFound: the
	// challenge was never issued or has already been cleaned up.
	ErrNotFoundOrExpired = errors.New("otp.errors.not_found_or_expired")
	// ErrExpired indicates the challenge window closed before verification.
	ErrExpired = errors.New("otp.errors.expired")
	// ErrInvalidCode indicates the submitted code does not match.
	ErrInvalidCode = errors.New("otp.errors.invalid_code")
	// ErrNotVerified indicates consumption was attempted before a successful
	// verification, or for a different purpose than the challenge was issued for.
	ErrNotVerified = errors.New("otp.errors.not_verified")
	// ErrTooManyAttempts indicates the verification attempt cap was exceeded
	// and the challenge was invalidated.
	ErrTooManyAttempts = errors.New("otp.errors.too_many_attempts")
	// ErrTooManyRequests indicates issuance was throttled for the email.
	ErrTooManyRequests = errors.New("otp.errors.too_many_requests")
	// ErrDeliveryFailed indicates the code could not be emailed. The stored
	// challenge is removed so an undeliverable code is never left pending.
	ErrDeliveryFailed = errors.New("otp.errors.delivery_failed")
	// ErrStoreFailed wraps storage backend failures.
	ErrStoreFailed = errors.New("otp.errors.store_failed")
)
