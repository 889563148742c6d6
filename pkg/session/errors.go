package session

import "errors"

var (
	// ErrUnauthenticated indicates no valid session accompanies the request.
	// This is the normal state for anonymous visitors, not a failure.
	ErrUnauthenticated = errors.New("session.unauthenticated")

	// ErrNotFound indicates the store holds no session for the token.
	ErrNotFound = errors.New("session.not_found")

	// ErrTokenGeneration indicates token generation failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrNoTransport indicates no transport is configured.
	ErrNoTransport = errors.New("session.no_transport")
)
