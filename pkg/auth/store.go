package auth

import (
	"context"

	"github.com/google/uuid"
)

// UserStore defines the persistence operations the resolver needs.
// Email uniqueness is enforced by the store: concurrent creates for the same
// email must leave exactly one account, the loser receiving
// ErrEmailAlreadyExists.
type UserStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*User, error)

	CreateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// LinkExternalID attaches a provider identity to an existing account in a
	// single update. The avatar is set only when the account has none yet.
	LinkExternalID(ctx context.Context, id uuid.UUID, externalID, avatarURL string) error

	UpdateUserRole(ctx context.Context, id uuid.UUID, role string) error
	ListUsers(ctx context.Context) ([]User, error)

	GetPasswordHash(ctx context.Context, id uuid.UUID) ([]byte, error)
	StorePasswordHash(ctx context.Context, id uuid.UUID, hash []byte) error
}
