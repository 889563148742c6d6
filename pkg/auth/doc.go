// Package auth reconciles Google OAuth, password accounts and OTP-verified
// signup into one persisted account per email.
//
// The Resolver is the single entry point for every authentication path.
// ResolveExternal applies the account-linking rule: lookup by provider ID,
// then by email, then create. An existing account found by email gets the
// external ID attached rather than a second record, so the email stays the
// sole reconciliation key. ResolveLocal authenticates stored credentials with
// three distinct failure modes (not registered, external-only account, wrong
// password). CreateLocal and ResetPassword are gated on verified one-time
// codes from the otp package.
//
// OAuthService wraps a ProviderAdapter with CSRF state handling and feeds
// resolved profiles into the Resolver. ExternalProfile is a separate type
// from User on purpose: only a resolved User can be placed into a session.
//
// Example:
//
//	resolver := auth.NewResolver(store, ledger, auth.WithBcryptCost(10))
//
//	oauth := auth.NewOAuthService(resolver,
//		auth.NewGoogleAdapter(googleCfg),
//		stateStore,
//	)
//
//	url, _ := oauth.AuthURL(ctx)
//	// Redirect the browser, then in the callback:
//	user, err := oauth.Callback(ctx, code, state)
package auth
