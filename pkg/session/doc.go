// Package session manages server-side sessions carried by encrypted cookies.
//
// A session is created only after successful authentication and holds just
// the user ID behind an opaque random token. Expiry is absolute: 24 hours
// from creation by default, never refreshed by activity. Resolving a request
// without a valid session returns ErrUnauthenticated, which callers treat as
// the ordinary anonymous state.
//
// Stores: MemoryStore for development and single-instance deployments,
// RedisStore for anything that restarts or scales horizontally.
//
// Example:
//
//	manager := session.New(
//		session.WithStore(session.NewRedisStore(redisClient)),
//		session.WithCookieManager(cookieMgr),
//	)
//
//	// After login:
//	_, err := manager.Establish(ctx, w, user.ID)
//
//	// On authenticated requests:
//	sess, err := manager.Resolve(ctx, r)
//	if errors.Is(err, session.ErrUnauthenticated) {
//		// anonymous visitor
//	}
package session
