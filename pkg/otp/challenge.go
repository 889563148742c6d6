package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Purpose distinguishes what a verified code unlocks. A challenge verified
// for one purpose cannot be consumed for another.
type Purpose string

const (
	PurposeSignup        Purpose = "signup"
	PurposePasswordReset Purpose = "password_reset"
)

// Challenge is a pending one-time code bound to an email address.
// At most one challenge exists per email at any time.
type Challenge struct {
	Email     string
	Code      string
	Purpose   Purpose
	Verified  bool
	Attempts  int
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the challenge window has closed.
func (c *Challenge) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// generateCode returns a uniformly random six-digit code in [100000, 999999].
// Codes never have a leading zero, so string and numeric forms round-trip.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
