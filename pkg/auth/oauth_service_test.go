package auth

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOAuthFixture(t *testing.T, adapter ProviderAdapter, opts ...OAuthOption) (*OAuthService, *memUserStore, *MemoryStateStore) {
	t.Helper()

	resolver, store, _ := newTestResolver(t)
	states := NewMemoryStateStore()
	svc := NewOAuthService(resolver, adapter, states, opts...)
	return svc, store, states
}

func TestOAuthAuthURL(t *testing.T) {
	t.Parallel()

	adapter := new(MockAdapter)
	adapter.On("AuthURL", mock.AnythingOfType("string")).
		Return("https://provider.example.com/authorize?state=x", nil)

	svc, _, states := newOAuthFixture(t, adapter)

	authURL, err := svc.AuthURL(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, authURL)

	// The generated state is stored and consumable exactly once.
	state := adapter.Calls[0].Arguments.String(0)
	require.NoError(t, states.ConsumeState(context.Background(), state))
	require.ErrorIs(t, states.ConsumeState(context.Background(), state), ErrStateNotFound)
}

func TestOAuthCallback(t *testing.T) {
	t.Parallel()

	profile := ExternalProfile{
		ProviderUserID: "google-42",
		Email:          "frank@example.com",
		EmailVerified:  true,
		Name:           "Frank",
	}

	storeState := func(t *testing.T, states *MemoryStateStore) string {
		t.Helper()
		state := "state-" + url.QueryEscape(t.Name())
		require.NoError(t, states.StoreState(context.Background(), state, time.Now().Add(time.Minute)))
		return state
	}

	t.Run("resolves profile into account", func(t *testing.T) {
		t.Parallel()

		adapter := new(MockAdapter)
		adapter.On("ProviderID").Return(ProviderGoogle)
		adapter.On("ResolveProfile", mock.Anything, "good-code").Return(profile, nil)

		svc, store, states := newOAuthFixture(t, adapter)
		state := storeState(t, states)

		user, err := svc.Callback(context.Background(), "good-code", state)
		require.NoError(t, err)
		require.Equal(t, "frank@example.com", user.Email)
		require.Equal(t, "google-42", user.ExternalID)

		stored, err := store.GetUserByExternalID(context.Background(), "google-42")
		require.NoError(t, err)
		require.Equal(t, user.ID, stored.ID)
	})

	t.Run("unknown state", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newOAuthFixture(t, new(MockAdapter))
		_, err := svc.Callback(context.Background(), "good-code", "forged")
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("state is single use", func(t *testing.T) {
		t.Parallel()

		adapter := new(MockAdapter)
		adapter.On("ProviderID").Return(ProviderGoogle)
		adapter.On("ResolveProfile", mock.Anything, "good-code").Return(profile, nil)

		svc, _, states := newOAuthFixture(t, adapter)
		state := storeState(t, states)

		_, err := svc.Callback(context.Background(), "good-code", state)
		require.NoError(t, err)

		_, err = svc.Callback(context.Background(), "good-code", state)
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("expired state", func(t *testing.T) {
		t.Parallel()

		svc, _, states := newOAuthFixture(t, new(MockAdapter))
		require.NoError(t, states.StoreState(context.Background(), "stale", time.Now().Add(-time.Minute)))

		_, err := svc.Callback(context.Background(), "good-code", "stale")
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("invalid code", func(t *testing.T) {
		t.Parallel()

		adapter := new(MockAdapter)
		adapter.On("ResolveProfile", mock.Anything, "bad-code").Return(ExternalProfile{}, ErrInvalidCode)

		svc, _, states := newOAuthFixture(t, adapter)
		state := storeState(t, states)

		_, err := svc.Callback(context.Background(), "bad-code", state)
		require.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("unverified provider email", func(t *testing.T) {
		t.Parallel()

		unverified := profile
		unverified.EmailVerified = false

		adapter := new(MockAdapter)
		adapter.On("ResolveProfile", mock.Anything, "good-code").Return(unverified, nil)

		svc, _, states := newOAuthFixture(t, adapter)
		state := storeState(t, states)

		_, err := svc.Callback(context.Background(), "good-code", state)
		require.ErrorIs(t, err, ErrUnverifiedEmail)
	})

	t.Run("unverified allowed when configured", func(t *testing.T) {
		t.Parallel()

		unverified := profile
		unverified.EmailVerified = false

		adapter := new(MockAdapter)
		adapter.On("ProviderID").Return(ProviderGoogle)
		adapter.On("ResolveProfile", mock.Anything, "good-code").Return(unverified, nil)

		svc, _, states := newOAuthFixture(t, adapter, WithVerifiedOnly(false))
		state := storeState(t, states)

		_, err := svc.Callback(context.Background(), "good-code", state)
		require.NoError(t, err)
	})
}

func TestGoogleAdapterConfig(t *testing.T) {
	t.Parallel()

	adapter := NewGoogleAdapter(GoogleOAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "https://api.example.com/auth/google/callback",
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email"},
	})

	require.Equal(t, ProviderGoogle, adapter.ProviderID())

	authURL, err := adapter.AuthURL("some-state")
	require.NoError(t, err)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	require.Equal(t, "some-state", parsed.Query().Get("state"))
	require.Equal(t, "client-id", parsed.Query().Get("client_id"))
}
