package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/republicadrc/memberkit/pkg/logger"
)

// OAuthService drives the authorization-code flow for a single provider and
// hands resolved profiles to the identity resolver. A profile that fails
// resolution never reaches the caller, so nothing unresolved can end up in a
// session.
type OAuthService struct {
	resolver     *Resolver
	adapter      ProviderAdapter
	states       StateStore
	stateTTL     time.Duration
	verifiedOnly bool
	log          *slog.Logger
}

// OAuthOption configures an OAuthService.
type OAuthOption func(*OAuthService)

// WithStateTTL sets how long an authorization flow may take before the state
// token expires.
func WithStateTTL(ttl time.Duration) OAuthOption {
	return func(s *OAuthService) {
		s.stateTTL = ttl
	}
}

// WithVerifiedOnly controls whether unverified provider emails are rejected.
func WithVerifiedOnly(verifiedOnly bool) OAuthOption {
	return func(s *OAuthService) {
		s.verifiedOnly = verifiedOnly
	}
}

// WithOAuthLogger sets a custom logger for the service.
func WithOAuthLogger(log *slog.Logger) OAuthOption {
	return func(s *OAuthService) {
		s.log = log
	}
}

// NewOAuthService creates the OAuth flow service.
// Defaults: verifiedOnly true, state TTL 10 minutes.
func NewOAuthService(resolver *Resolver, adapter ProviderAdapter, states StateStore, opts ...OAuthOption) *OAuthService {
	s := &OAuthService{
		resolver:     resolver,
		adapter:      adapter,
		states:       states,
		stateTTL:     10 * time.Minute,
		verifiedOnly: true,
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AuthURL generates the provider authorization URL with a one-time state
// token stored for the callback to consume.
func (s *OAuthService) AuthURL(ctx context.Context) (string, error) {
	state, err := generateState()
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}

	if err := s.states.StoreState(ctx, state, time.Now().Add(s.stateTTL)); err != nil {
		return "", fmt.Errorf("failed to store state: %w", err)
	}

	url, err := s.adapter.AuthURL(state)
	if err != nil {
		return "", fmt.Errorf("failed to build auth url: %w", err)
	}
	return url, nil
}

// Callback validates the state token, resolves the provider profile and maps
// it to an account. State tokens are single use.
func (s *OAuthService) Callback(ctx context.Context, code, state string) (*User, error) {
	if err := s.states.ConsumeState(ctx, state); err != nil {
		if errors.Is(err, ErrStateNotFound) {
			return nil, ErrInvalidState
		}
		return nil, fmt.Errorf("failed to validate state: %w", err)
	}

	profile, err := s.adapter.ResolveProfile(ctx, code)
	if err != nil {
		if errors.Is(err, ErrInvalidCode) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("failed to resolve provider profile: %w", err)
	}

	if s.verifiedOnly && !profile.EmailVerified {
		return nil, ErrUnverifiedEmail
	}

	user, err := s.resolver.ResolveExternal(ctx, profile)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "external authentication completed",
		logger.UserID(user.ID.String()),
		slog.String("provider", s.adapter.ProviderID()))
	return user, nil
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
