package auth

import (
	"time"

	"github.com/google/uuid"
)

// Authentication method identifiers used to track how an account was created.
const (
	MethodLocal    = "local"
	MethodExternal = "external"
)

// Role identifiers. Every account is a plain user until promoted.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultAvatarURL is assigned to accounts created without a profile picture.
const DefaultAvatarURL = "https://i.imgur.com/6b6psO5.png"

// User represents an account. The password hash is deliberately kept out of
// the struct; it never leaves the store except through GetPasswordHash, so a
// User can be serialized into API responses as is.
type User struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	AvatarURL  string    `json:"avatar_url"`
	ExternalID string    `json:"-"` // provider subject ID, empty for local-only accounts
	AuthMethod string    `json:"auth_method"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsLinked reports whether the account is linked to an external provider.
func (u *User) IsLinked() bool {
	return u.ExternalID != ""
}

// ExternalProfile is the provider-agnostic identity a provider adapter hands
// to the resolver. It is intentionally a different type from User: an
// unresolved profile cannot be placed into a session.
type ExternalProfile struct {
	ProviderUserID string
	Email          string
	EmailVerified  bool
	Name           string
	AvatarURL      string
}
