package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/republicadrc/memberkit/pkg/logger"
	"github.com/republicadrc/memberkit/pkg/otp"
	"github.com/republicadrc/memberkit/pkg/sanitizer"
	"github.com/republicadrc/memberkit/pkg/validator"
)

// Resolver reconciles every authentication path into exactly one persisted
// account per email. External profiles resolve by provider ID first, then by
// email (linking), then by creation; local credentials resolve against the
// stored password hash; OTP-gated operations consult the code ledger.
type Resolver struct {
	store            UserStore
	ledger           *otp.Ledger
	bcryptCost       int
	passwordStrength validator.PasswordStrengthConfig
	log              *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithBcryptCost sets the bcrypt cost for password hashing.
func WithBcryptCost(cost int) ResolverOption {
	return func(r *Resolver) {
		r.bcryptCost = cost
	}
}

// WithPasswordStrength sets custom password strength requirements.
func WithPasswordStrength(config validator.PasswordStrengthConfig) ResolverOption {
	return func(r *Resolver) {
		r.passwordStrength = config
	}
}

// WithResolverLogger sets a custom logger for the resolver.
func WithResolverLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.log = log
	}
}

// NewResolver creates an identity resolver backed by the given store and
// code ledger.
func NewResolver(store UserStore, ledger *otp.Ledger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:            store,
		ledger:           ledger,
		bcryptCost:       bcrypt.DefaultCost,
		passwordStrength: validator.DefaultPasswordStrength(),
		log:              slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ResolveExternal maps a provider profile to exactly one account.
// Lookup order is provider ID, then email, then creation. Email always wins
// over provider ID when both could apply: an existing local account gets the
// external ID attached instead of a duplicate record. Linking only adds
// capability, it never removes the password path, and a user-chosen avatar
// is never overwritten. The operation is idempotent.
func (r *Resolver) ResolveExternal(ctx context.Context, profile ExternalProfile) (*User, error) {
	if profile.ProviderUserID == "" {
		return nil, ErrInvalidProfile
	}
	if profile.Email == "" {
		return nil, ErrNoPrimaryEmail
	}
	profile.Email = sanitizer.NormalizeEmail(profile.Email)

	user, err := r.store.GetUserByExternalID(ctx, profile.ProviderUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	user, err = r.store.GetUserByEmail(ctx, profile.Email)
	if err == nil {
		if err := r.store.LinkExternalID(ctx, user.ID, profile.ProviderUserID, profile.AvatarURL); err != nil {
			return nil, errors.Join(ErrStoreFailed, err)
		}

		user.ExternalID = profile.ProviderUserID
		if user.AvatarURL == "" {
			user.AvatarURL = profile.AvatarURL
		}

		r.log.InfoContext(ctx, "linked external identity",
			logger.UserID(user.ID.String()),
			logger.Email(user.Email))
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	user = &User{
		ID:         uuid.New(),
		Email:      profile.Email,
		Name:       profile.Name,
		AvatarURL:  profile.AvatarURL,
		ExternalID: profile.ProviderUserID,
		AuthMethod: MethodExternal,
		Role:       RoleUser,
		CreatedAt:  time.Now(),
	}
	if user.AvatarURL == "" {
		user.AvatarURL = DefaultAvatarURL
	}

	if err := r.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			// Lost a concurrent create for the same email. The winner's
			// record is the account; link to it instead.
			return r.resolveExternalRace(ctx, profile)
		}
		return nil, errors.Join(ErrStoreFailed, err)
	}

	r.log.InfoContext(ctx, "created external account",
		logger.UserID(user.ID.String()),
		logger.Email(user.Email))
	return user, nil
}

func (r *Resolver) resolveExternalRace(ctx context.Context, profile ExternalProfile) (*User, error) {
	user, err := r.store.GetUserByEmail(ctx, profile.Email)
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	if user.ExternalID == "" {
		if err := r.store.LinkExternalID(ctx, user.ID, profile.ProviderUserID, profile.AvatarURL); err != nil {
			return nil, errors.Join(ErrStoreFailed, err)
		}
		user.ExternalID = profile.ProviderUserID
		if user.AvatarURL == "" {
			user.AvatarURL = profile.AvatarURL
		}
	}

	return user, nil
}

// ResolveLocal authenticates email plus password. The three failure modes
// are distinct on purpose: the frontend tells an unregistered visitor, an
// external-only account holder and a typo apart.
func (r *Resolver) ResolveLocal(ctx context.Context, email, password string) (*User, error) {
	email = sanitizer.NormalizeEmail(email)
	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.Required("password", password),
	); err != nil {
		return nil, err
	}

	user, err := r.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, errors.Join(ErrStoreFailed, err)
	}

	hash, err := r.store.GetPasswordHash(ctx, user.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Account exists but was created through an external provider
			// and never set a password.
			return nil, ErrExternalAuthRequired
		}
		return nil, errors.Join(ErrStoreFailed, err)
	}
	if len(hash) == 0 {
		return nil, ErrExternalAuthRequired
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

// CreateLocal registers a password account. The email must hold a verified,
// unexpired signup challenge; it is consumed only after the user record
// exists, so a failed create leaves the verification usable for a retry.
func (r *Resolver) CreateLocal(ctx context.Context, name, email, password string) (*User, error) {
	email = sanitizer.NormalizeEmail(email)
	name = sanitizer.Trim(name)
	if err := validator.Apply(
		validator.Required("name", name),
		validator.ValidEmail("email", email),
		validator.StrongPassword("password", password, r.passwordStrength),
	); err != nil {
		return nil, err
	}

	challenge, err := r.ledger.Peek(ctx, email)
	if err != nil || !challenge.Verified || challenge.Purpose != otp.PurposeSignup {
		return nil, ErrOtpNotVerified
	}

	_, err = r.store.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:         uuid.New(),
		Email:      email,
		Name:       name,
		AvatarURL:  DefaultAvatarURL,
		AuthMethod: MethodLocal,
		Role:       RoleUser,
		CreatedAt:  time.Now(),
	}

	if err := r.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, errors.Join(ErrStoreFailed, err)
	}

	if err := r.store.StorePasswordHash(ctx, user.ID, hash); err != nil {
		// Remove the half-created account so the email is not locked out of
		// future signups with no way to log in.
		if delErr := r.store.DeleteUser(ctx, user.ID); delErr != nil {
			r.log.ErrorContext(ctx, "failed to clean up user after hash store failure",
				logger.UserID(user.ID.String()),
				logger.Error(delErr))
		}
		return nil, errors.Join(ErrStoreFailed, err)
	}

	if err := r.ledger.Consume(ctx, email, otp.PurposeSignup); err != nil {
		// The account is already created; a consume failure only means the
		// challenge outlives it until the ledger cleans up.
		r.log.WarnContext(ctx, "failed to consume signup challenge",
			logger.Email(email),
			logger.Error(err))
	}

	r.log.InfoContext(ctx, "created local account",
		logger.UserID(user.ID.String()),
		logger.Email(user.Email))
	return user, nil
}

// ResetPassword replaces the password for an account holding a verified
// password reset challenge. The submitted code is re-validated against the
// stored challenge even though verification already happened, and expiry is
// re-checked, so a stale or replayed reset form cannot take over an account.
// The challenge is consumed on success. Resetting also works for external
// accounts without a prior password: it adds the local capability.
func (r *Resolver) ResetPassword(ctx context.Context, email, code, newPassword string) (*User, error) {
	email = sanitizer.NormalizeEmail(email)
	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.OTPCode("otp", code),
		validator.StrongPassword("password", newPassword, r.passwordStrength),
	); err != nil {
		return nil, err
	}

	challenge, err := r.ledger.Peek(ctx, email)
	if err != nil {
		return nil, err
	}
	if challenge.Purpose != otp.PurposePasswordReset || !challenge.Verified {
		return nil, ErrOtpNotVerified
	}
	if challenge.Code != code {
		return nil, otp.ErrInvalidCode
	}

	user, err := r.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, errors.Join(ErrStoreFailed, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), r.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := r.store.StorePasswordHash(ctx, user.ID, hash); err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	if err := r.ledger.Consume(ctx, email, otp.PurposePasswordReset); err != nil {
		r.log.WarnContext(ctx, "failed to consume password reset challenge",
			logger.Email(email),
			logger.Error(err))
	}

	r.log.InfoContext(ctx, "password reset",
		logger.UserID(user.ID.String()),
		logger.Email(user.Email))
	return user, nil
}
