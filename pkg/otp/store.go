package otp

import "context"

// Store persists challenges keyed by email. Implementations must keep at most
// one challenge per email; Upsert replaces any existing challenge atomically.
type Store interface {
	// Upsert stores the challenge, replacing any prior challenge for the email.
	Upsert(ctx context.Context, challenge *Challenge) error

	// Get returns the challenge for the email or ErrNotFound.
	Get(ctx context.Context, email string) (*Challenge, error)

	// MarkVerified flips the verified flag. Returns ErrNotFound when no
	// challenge exists.
	MarkVerified(ctx context.Context, email string) error

	// IncrementAttempts bumps the failed attempt counter and returns the new
	// count. Returns ErrNotFound when no challenge exists.
	IncrementAttempts(ctx context.Context, email string) (int, error)

	// Delete removes the challenge. Deleting a missing challenge is not an error.
	Delete(ctx context.Context, email string) error
}
